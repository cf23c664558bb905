package parser

import (
	"encoding/base64"
	"strings"
)

// DecodeBase64 decodes standard or URL-safe base64, repairing missing padding.
// It returns "" when s cannot be decoded; callers treat that as an absent value.
func DecodeBase64(s string) string {
	if s == "" {
		return ""
	}
	s = strings.NewReplacer("-", "+", "_", "/").Replace(s)
	if n := (4 - len(s)%4) % 4; n != 0 {
		s += strings.Repeat("=", n)
	}

	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return ""
	}
	return strings.ToValidUTF8(string(b), "")
}
