package validation

import (
	"encoding/base64"
	"fmt"

	validation "github.com/jellydator/validation"
)

// Base64File validates a standard base64 encoded exported file. The decoded content must not be
// larger than MaxImportSize; the encoded length is checked first so oversized uploads are rejected
// without decoding them. Empty strings pass and are left to Required.
var Base64File = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_base64_type", "must be a string")
	}
	if s == "" {
		return nil
	}

	tooLarge := validation.NewError(
		"validation_base64_size",
		fmt.Sprintf("file content must be at most %d bytes", MaxImportSize),
	)
	if base64.StdEncoding.DecodedLen(len(s)) > MaxImportSize+2 {
		return tooLarge
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return validation.NewError("validation_base64", "must be valid base64-encoded data")
	}
	if len(data) > MaxImportSize {
		return tooLarge
	}
	return nil
})
