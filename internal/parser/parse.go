package parser

import (
	"errors"
	"sort"

	"url2clash/internal/model"
)

// Options selects optional output keys.
type Options struct {
	// Extended adds keys beyond the base Clash mapping: skip-cert-verify from
	// allowInsecure/insecure, hysteria auth_str, hysteria2 sni and obfs.
	Extended bool
}

type normalizer func(u URI, opts Options) (*model.Proxy, error)

// normalizers maps a lowercased scheme to its parser. hy and hy2 are the
// short aliases used by most clients.
var normalizers = map[string]normalizer{
	"vless":     parseVLESS,
	"vmess":     parseVMess,
	"ss":        parseShadowsocks,
	"trojan":    parseTrojan,
	"hysteria":  parseHysteria,
	"hy":        parseHysteria,
	"hysteria2": parseHysteria2,
	"hy2":       parseHysteria2,
	"tuic":      parseTUIC,
}

// Parse converts one share link into a proxy descriptor.
// Failures are *ParseError values wrapping ErrUnsupportedScheme or ErrInvalidPayload.
func Parse(raw string) (*model.Proxy, error) {
	return ParseWith(raw, Options{})
}

// ParseWith is Parse with optional keys enabled by opts.
func ParseWith(raw string, opts Options) (*model.Proxy, error) {
	raw = FixIllegalUrl(raw)
	u := Decompose(raw)

	parse, ok := normalizers[u.Scheme]
	if !ok {
		return nil, &ParseError{Link: raw, Scheme: u.Scheme, Kind: ErrUnsupportedScheme}
	}

	p, err := parse(u, opts)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Link = raw
			return nil, pe
		}
		return nil, &ParseError{Link: raw, Scheme: u.Scheme, Kind: ErrInvalidPayload, Cause: err}
	}
	return p, nil
}

// Schemes lists the supported schemes, longest first so that a regexp
// alternation built from them prefers "hysteria2" over "hysteria".
func Schemes() []string {
	schemes := make([]string, 0, len(normalizers))
	for scheme := range normalizers {
		schemes = append(schemes, scheme)
	}
	sort.Slice(schemes, func(i, j int) bool {
		if len(schemes[i]) != len(schemes[j]) {
			return len(schemes[i]) > len(schemes[j])
		}
		return schemes[i] < schemes[j]
	})
	return schemes
}
