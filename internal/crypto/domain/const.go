package domain

// Profile identifies a key derivation profile.
//
// The two profiles are never mixed for the same payload: the call site that seals a payload
// decides which profile its counterpart will use to open it.
type Profile string

const (
	// ProfileArgon2id is the memory-hard profile used where both derivation and verification run
	// natively (the local at-rest envelope).
	ProfileArgon2id Profile = "argon2id"

	// ProfilePBKDF2 is the browser-compatible profile. Its parameters are an external contract with
	// the WebCrypto code embedded in every exported artifact and must never change.
	ProfilePBKDF2 Profile = "pbkdf2-sha256"
)

// Argon2id profile parameters.
const (
	Argon2Memory  uint32 = 64 * 1024 // KiB, 64 MiB
	Argon2Time    uint32 = 3
	Argon2Threads uint8  = 4
)

// PBKDF2 profile parameters. Changing any of these breaks every previously exported file.
const (
	PBKDF2Iterations = 600000
)

// Sizes shared by both profiles and the AEAD cipher.
const (
	KeySize   = 32
	SaltSize  = 16
	NonceSize = 12
	TagSize   = 16
)
