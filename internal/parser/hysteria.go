package parser

import "url2clash/internal/model"

// --- Hysteria (v1) ---
func parseHysteria(u URI, opts Options) (*model.Proxy, error) {
	q := u.Query
	p := newProxy(u, model.TypeHysteria)
	p.Auth = q.Get("auth")
	if opts.Extended {
		p.AuthStr = q.Get("auth_str")
	}

	if q.Has("insecure") {
		p.Insecure = model.Bool(truthy(q.Get("insecure")))
	}
	p.UpMbps = model.ParseNumber(q.Get("upmbps"))
	p.DownMbps = model.ParseNumber(q.Get("downmbps"))
	p.ALPN = splitALPN(q.Get("alpn"))
	return p, nil
}

// --- Hysteria2 ---
// TLS is mandatory for hysteria2, so no tls flag is emitted.
func parseHysteria2(u URI, opts Options) (*model.Proxy, error) {
	q := u.Query
	p := newProxy(u, model.TypeHysteria2)
	p.Password = u.UserInfo
	p.ALPN = splitALPN(q.Get("alpn"))
	if !opts.Extended {
		return p, nil
	}

	p.SNI = q.Get("sni")
	p.ObfsPassword = q.Get("obfs-password")
	p.Obfs = q.Get("obfs")
	if p.Obfs == "" && p.ObfsPassword != "" {
		p.Obfs = "salamander"
	}
	p.SkipCertVerify = allowInsecure(q)
	return p, nil
}
