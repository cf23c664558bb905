package parser

import (
	"strings"

	"url2clash/internal/model"
)

// ssShape tells apart the two shadowsocks link encodings.
type ssShape int

const (
	// ss://<base64(method:password@host:port)>
	ssLegacy ssShape = iota
	// ss://<userinfo>@host:port, userinfo plain or base64 (SIP002)
	ssSIP002
)

func detectSSShape(u URI) ssShape {
	if strings.Contains(u.Rest, "@") {
		return ssSIP002
	}
	return ssLegacy
}

func parseShadowsocks(u URI, _ Options) (*model.Proxy, error) {
	var method, password, host, port string

	switch detectSSShape(u) {
	case ssLegacy:
		decoded := DecodeBase64(u.Rest)
		if strings.Contains(decoded, "@") && strings.Contains(decoded, ":") {
			at := strings.LastIndex(decoded, "@")
			userInfo, hostInfo := decoded[:at], decoded[at+1:]
			if m, pw, ok := strings.Cut(userInfo, ":"); ok {
				method, password = m, pw
			}
			if h, pt, ok := strings.Cut(hostInfo, ":"); ok {
				host, port = h, pt
			}
		} else {
			// No endpoint in the payload: the whole text is method[:password].
			method, password, _ = strings.Cut(decoded, ":")
		}
	case ssSIP002:
		method, password = splitSSUserInfo(u.UserInfo)
		host, port = u.Host, u.Port
	}

	p := &model.Proxy{
		Name:     displayName(u.Fragment, host, model.TypeSS),
		Type:     model.TypeSS,
		Server:   host,
		Port:     model.ParseNumber(port),
		Cipher:   method,
		Password: password,
		UDP:      true,
	}

	if plugin := u.Query.Get("plugin"); plugin != "" {
		p.Plugin, p.PluginOpts = parsePlugin(plugin)
	}
	return p, nil
}

// splitSSUserInfo accepts "method:password", base64("method:password") or a bare method.
func splitSSUserInfo(userInfo string) (method, password string) {
	if m, pw, ok := strings.Cut(userInfo, ":"); ok {
		return m, pw
	}
	if m, pw, ok := strings.Cut(DecodeBase64(userInfo), ":"); ok {
		return m, pw
	}
	return userInfo, ""
}

// parsePlugin splits "obfs-local;obfs=http;obfs-host=example.com" into the
// plugin name and its options. A bare option token means "true".
func parsePlugin(s string) (string, []model.KV) {
	parts := strings.Split(s, ";")
	var opts []model.KV
	for _, part := range parts[1:] {
		if part == "" {
			continue
		}
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			v = "true"
		}
		opts = model.SetOpt(opts, k, v)
	}
	return parts[0], opts
}
