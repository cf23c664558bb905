package parser

import "url2clash/internal/model"

func parseVLESS(u URI, opts Options) (*model.Proxy, error) {
	q := u.Query
	p := newProxy(u, model.TypeVLESS)
	p.UUID = u.UserInfo
	p.Network = q.GetDefault("type", "tcp")

	switch q.Get("security") {
	case "reality":
		p.TLS = true
		p.RealityOpts = &model.RealityOptions{
			PublicKey: q.Get("pbk"),
			ShortID:   q.Get("sid"),
		}
	case "tls":
		p.TLS = true
	}

	p.Flow = q.Get("flow")
	p.ServerName = q.Get("sni")
	p.ClientFingerprint = q.Get("fp")

	if q.Get("type") == "ws" {
		p.WSOpts = wsOptions(q.Get("path"), q.Get("host"))
	}
	if opts.Extended {
		p.SkipCertVerify = allowInsecure(q)
	}
	return p, nil
}
