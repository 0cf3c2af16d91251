package digest

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// DefaultEncoding is used when no encoding is configured
const DefaultEncoding = "hex"

var encoders = map[string]func([]byte) string{
	"hex":       hex.EncodeToString,
	"base64":    base64.StdEncoding.EncodeToString,
	"base64url": base64.RawURLEncoding.EncodeToString,
	"latin1":    latin1,
	"binary":    latin1,
}

// latin1 maps each byte to the code point of the same value
func latin1(b []byte) string {
	r := make([]rune, len(b))
	for i, c := range b {
		r[i] = rune(c)
	}
	return string(r)
}

// Encode renders a digest sum in the requested encoding
func Encode(sum []byte, encoding string) (string, error) {
	enc, ok := encoders[encoding]
	if !ok {
		return "", fmt.Errorf("unsupported digest encoding: %s", encoding)
	}
	return enc(sum), nil
}

// IsSupportedEncoding checks if an encoding name is known
func IsSupportedEncoding(encoding string) bool {
	_, ok := encoders[encoding]
	return ok
}
