package parser

import "url2clash/internal/model"

func parseTrojan(u URI, opts Options) (*model.Proxy, error) {
	q := u.Query
	p := newProxy(u, model.TypeTrojan)
	p.Password = u.UserInfo

	// An SNI only makes sense over TLS.
	if q.Get("security") == "tls" || q.Has("sni") {
		p.TLS = true
	}
	p.ServerName = q.Get("sni")

	if q.Get("type") == "ws" {
		p.Network = "ws"
		p.WSOpts = wsOptions(q.Get("path"), q.Get("host"))
	}
	if opts.Extended {
		p.SkipCertVerify = allowInsecure(q)
	}
	return p, nil
}
