package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"slices"
	"strings"

	cryptoDomain "github.com/honeydid/honeydid/internal/crypto/domain"
)

const (
	// PassphraseWords is the number of distinct words in a generated passphrase.
	PassphraseWords = 6

	passphraseSeparator = "-"
)

// wordList holds 256 distinct lowercase words.
var wordList = [...]string{
	"amber", "anchor", "apple", "arrow", "aspen", "atlas", "autumn", "azure", "baker", "banana",
	"basil", "beacon", "berry", "birch", "blade", "blanket", "blaze", "bloom", "bottle", "branch",
	"breeze", "bridge", "bronze", "brook", "brush", "bucket", "butter", "cabin", "cactus", "candle",
	"canvas", "canyon", "carpet", "carrot", "castle", "cedar", "chain", "chair", "cherry", "cider",
	"circle", "cliff", "cloud", "clover", "coast", "cobalt", "coffee", "comet", "coral", "cotton",
	"crayon", "creek", "cricket", "crown", "crystal", "curtain", "cypress", "dagger", "daisy",
	"dancer", "delta", "desert", "diamond", "dolphin", "dragon", "dream", "drift", "drum", "eagle",
	"earth", "echo", "elder", "ember", "engine", "fabric", "falcon", "feather", "fern", "field",
	"fire", "flame", "flint", "flower", "forest", "forge", "fossil", "fountain", "frost", "galaxy",
	"garden", "garnet", "geyser", "glacier", "globe", "golden", "grain", "grape", "grass", "gravel",
	"grove", "hammer", "harbor", "harvest", "hawk", "hazel", "heart", "heather", "helmet", "honey",
	"horizon", "hunter", "ice", "indigo", "iris", "iron", "island", "ivory", "jade", "jasper", "jet",
	"journal", "jungle", "kelp", "kernel", "kettle", "kingdom", "kitchen", "kite", "lake", "lantern",
	"lapis", "lark", "lava", "leaf", "lemon", "library", "light", "lily", "linen", "lion", "lotus",
	"lunar", "magnet", "maple", "marble", "market", "meadow", "melon", "metal", "mirror", "mist",
	"moon", "moss", "mountain", "mushroom", "nectar", "needle", "night", "north", "oak", "oasis",
	"ocean", "olive", "onyx", "orange", "orchid", "osprey", "otter", "palm", "panther", "paper",
	"parrot", "path", "pebble", "pepper", "phoenix", "piano", "pillow", "pine", "planet", "plum",
	"pond", "poplar", "prism", "pumpkin", "quartz", "queen", "quiet", "rabbit", "radish", "rain",
	"rainbow", "raven", "reef", "ridge", "river", "robin", "rocket", "rose", "ruby", "sage", "salmon",
	"sand", "sapphire", "scarlet", "scroll", "shadow", "shell", "shore", "silver", "sky", "slate",
	"snow", "spark", "spirit", "spruce", "star", "stone", "storm", "stream", "summer", "summit",
	"sunset", "swift", "temple", "thistle", "thunder", "tiger", "timber", "torch", "trail",
	"treasure", "tree", "trout", "tulip", "turtle", "twilight", "umbrella", "valley", "velvet",
	"violet", "volcano", "wave", "wheat", "willow", "wind", "winter", "wolf", "wonder", "woods",
	"yarn", "yellow", "zebra", "zenith", "zephyr", "zinc",
}

// GeneratePassphrase returns PassphraseWords distinct words drawn uniformly from wordList and
// joined with "-".
func GeneratePassphrase() (string, error) {
	pool := slices.Clone(wordList[:])
	n := len(pool)
	for i := 0; i < PassphraseWords; i++ {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(n-i)))
		if err != nil {
			return "", fmt.Errorf("%w: failed to generate passphrase: %v", cryptoDomain.ErrEncryption, err)
		}
		k := i + int(j.Int64())
		pool[i], pool[k] = pool[k], pool[i]
	}
	return strings.Join(pool[:PassphraseWords], passphraseSeparator), nil
}
