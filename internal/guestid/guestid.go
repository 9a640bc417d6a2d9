// Package guestid encodes guest ids into the opaque tokens embedded in
// confirmation links and QR codes. The tokens are obfuscation against
// casual guessing, not an access-control boundary: the salt is a fixed
// constant and the scheme must stay byte-compatible with links already
// printed on invitations.
package guestid

import (
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const salt = "wedding2026"

var ErrInvalidToken = errors.New("invalid guest token")

var leadingID = regexp.MustCompile(`^(\d+)-`)

// Encode builds the token "{id}-{salt}-{reversed zero-padded id}" and
// base64url-encodes it without padding.
func Encode(id uint) string {
	padded := fmt.Sprintf("%06d", id)
	combined := fmt.Sprintf("%d-%s-%s", id, salt, reverse(padded))
	return base64.RawURLEncoding.EncodeToString([]byte(combined))
}

// Decode recovers a guest id from a token. Three formats are accepted, in
// order: the current "{id}-{salt}-..." payload, a legacy payload that is a
// bare base64-encoded number, and the oldest links where the token itself
// is the plain numeric id. A decoded value is valid only when positive.
func Decode(token string) (uint, error) {
	normalized := strings.ReplaceAll(token, "-", "+")
	normalized = strings.ReplaceAll(normalized, "_", "/")
	if rem := len(normalized) % 4; rem != 0 {
		normalized += strings.Repeat("=", 4-rem)
	}

	decoded, err := base64.StdEncoding.DecodeString(normalized)
	if err != nil {
		// Oldest format: the token is the id itself.
		return parsePositive(token)
	}

	if m := leadingID.FindStringSubmatch(string(decoded)); m != nil {
		return parsePositive(m[1])
	}
	return parsePositive(string(decoded))
}

func parsePositive(s string) (uint, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, ErrInvalidToken
	}
	return uint(n), nil
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
