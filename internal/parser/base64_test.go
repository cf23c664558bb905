package parser

import (
	"encoding/base64"
	"testing"
)

func TestDecodeBase64_MissingPadding(t *testing.T) {
	// Lengths chosen so the encodings need 1 and 2 padding characters.
	for _, plain := range []string{"aes-256-gcm:password", "ab", "abcd", "chacha20:p"} {
		padded := base64.StdEncoding.EncodeToString([]byte(plain))
		want := DecodeBase64(padded)
		if want != plain {
			t.Fatalf("DecodeBase64(%q)=%q, want %q", padded, want, plain)
		}

		raw := base64.RawStdEncoding.EncodeToString([]byte(plain))
		if got := DecodeBase64(raw); got != want {
			t.Fatalf("DecodeBase64(%q)=%q, want %q", raw, got, want)
		}
	}
}

func TestDecodeBase64_ThreeMissingPaddingIsInvalid(t *testing.T) {
	// A single dangling character can never be valid base64.
	if got := DecodeBase64("YWJjZ"); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

func TestDecodeBase64_URLSafe(t *testing.T) {
	plain := "\xfb\xff\xbfok"
	urlSafe := base64.RawURLEncoding.EncodeToString([]byte(plain))
	std := base64.StdEncoding.EncodeToString([]byte(plain))
	if DecodeBase64(urlSafe) != DecodeBase64(std) {
		t.Fatalf("url-safe and standard alphabets decode differently")
	}

	text := "subjects?_d"
	enc := base64.URLEncoding.EncodeToString([]byte(text))
	if got := DecodeBase64(enc); got != text {
		t.Fatalf("DecodeBase64(%q)=%q, want %q", enc, got, text)
	}
}

func TestDecodeBase64_Invalid(t *testing.T) {
	for _, in := range []string{"", "!!!!", "not base64 at all", "a"} {
		if got := DecodeBase64(in); got != "" {
			t.Fatalf("DecodeBase64(%q)=%q, want empty", in, got)
		}
	}
}
