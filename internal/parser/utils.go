package parser

import (
	"strings"

	"github.com/samber/lo"

	"url2clash/internal/model"
)

// FixIllegalUrl cleans up common issues in pasted links.
func FixIllegalUrl(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "")
	return s
}

// newProxy fills the fields every normalizer shares.
// The name falls back from the fragment to the host to the proxy type.
func newProxy(u URI, proxyType string) *model.Proxy {
	return &model.Proxy{
		Name:   displayName(u.Fragment, u.Host, proxyType),
		Type:   proxyType,
		Server: u.Host,
		Port:   model.ParseNumber(u.Port),
		UDP:    true,
	}
}

func displayName(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

func wsOptions(path, host string) *model.WSOptions {
	ws := &model.WSOptions{Path: path}
	if host != "" {
		ws.Headers = []model.KV{{Key: "Host", Value: host}}
	}
	return ws
}

// splitALPN turns "h3, h2,," into [h3 h2].
func splitALPN(s string) []string {
	if s == "" {
		return nil
	}
	alpn := lo.Compact(lo.Map(strings.Split(s, ","), func(item string, _ int) string {
		return strings.TrimSpace(item)
	}))
	if len(alpn) == 0 {
		return nil
	}
	return alpn
}

// splitNonEmpty splits on ',' and drops empty tokens, keeping surrounding spaces.
func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	items := lo.Compact(strings.Split(s, ","))
	if len(items) == 0 {
		return nil
	}
	return items
}

func truthy(v string) bool {
	return v == "1" || v == "true" || v == "True"
}

// allowInsecure reads the insecure flag under the spellings clients use (1/0/true/false).
func allowInsecure(q Params) bool {
	for _, key := range []string{"allowInsecure", "insecure", "allow_insecure"} {
		if val := q.Get(key); val != "" {
			return truthy(val)
		}
	}
	return false
}
