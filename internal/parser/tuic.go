package parser

import (
	"strings"

	"url2clash/internal/model"
)

func parseTUIC(u URI, opts Options) (*model.Proxy, error) {
	q := u.Query
	p := newProxy(u, model.TypeTUIC)
	p.UUID, p.Password, _ = strings.Cut(u.UserInfo, ":")

	p.SNI = q.Get("sni")
	p.ALPN = splitNonEmpty(q.Get("alpn"))
	p.CongestionController = q.First("congestion_control", "congestion-controller")
	p.UDPRelayMode = q.Get("udp_relay_mode")
	if opts.Extended {
		p.SkipCertVerify = allowInsecure(q)
	}
	return p, nil
}
