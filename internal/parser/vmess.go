package parser

import (
	"encoding/json"
	"errors"
	"strings"

	"url2clash/internal/model"
)

// vmessShape tells apart the two vmess link encodings.
type vmessShape int

const (
	// vmess://<base64(json)>
	vmessLegacy vmessShape = iota
	// vmess://uuid@host:port?type=ws&security=tls...
	vmessURI
)

func detectVMessShape(u URI) vmessShape {
	if !strings.Contains(u.Rest, "@") && u.RawQuery == "" {
		return vmessLegacy
	}
	return vmessURI
}

func parseVMess(u URI, opts Options) (*model.Proxy, error) {
	switch detectVMessShape(u) {
	case vmessLegacy:
		return parseVMessLegacy(u)
	default:
		return parseVMessURI(u, opts)
	}
}

var errNotObject = errors.New("payload is not a JSON object")

// vmessJSON keeps every value raw: clients disagree on whether port, aid and
// tls are strings, numbers or booleans.
type vmessJSON map[string]json.RawMessage

// str renders a JSON scalar as text. Missing and null values are absent.
func (v vmessJSON) str(key string) (string, bool) {
	raw, ok := v[key]
	if !ok {
		return "", false
	}
	text := strings.TrimSpace(string(raw))
	if text == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	return text, true
}

func (v vmessJSON) get(key string) string {
	s, _ := v.str(key)
	return s
}

func parseVMessLegacy(u URI) (*model.Proxy, error) {
	var cfg vmessJSON
	if err := json.Unmarshal([]byte(DecodeBase64(u.Rest)), &cfg); err != nil {
		return nil, &ParseError{Scheme: u.Scheme, Kind: ErrInvalidPayload, Cause: err}
	}
	if cfg == nil {
		return nil, &ParseError{Scheme: u.Scheme, Kind: ErrInvalidPayload, Cause: errNotObject}
	}

	p := &model.Proxy{
		Name:   displayName(u.Fragment, cfg.get("ps"), cfg.get("add"), model.TypeVMess),
		Type:   model.TypeVMess,
		Server: cfg.get("add"),
		Port:   model.ParseNumber(cfg.get("port")),
		UUID:   cfg.get("id"),
		Cipher: displayName(cfg.get("scy"), "auto"),
		UDP:    true,
	}

	p.Network = "tcp"
	if net, ok := cfg.str("net"); ok {
		p.Network = net
	}

	if aid := model.ParseNumber(cfg.get("aid")); !isZeroInt(aid) {
		p.AlterID = aid
	}

	switch strings.ToLower(cfg.get("tls")) {
	case "tls", "1", "true":
		p.TLS = true
	}
	p.ServerName = cfg.get("sni")

	if raw, ok := cfg["skip-cert-verify"]; ok && strings.TrimSpace(string(raw)) == "true" {
		p.SkipCertVerify = true
	}

	if p.Network == "ws" {
		p.WSOpts = wsOptions(cfg.get("path"), cfg.get("host"))
	}
	return p, nil
}

func parseVMessURI(u URI, opts Options) (*model.Proxy, error) {
	q := u.Query
	p := newProxy(u, model.TypeVMess)
	p.UUID = u.UserInfo
	p.Cipher = "auto"
	p.Network = q.GetDefault("type", "tcp")

	if q.Get("security") == "tls" {
		p.TLS = true
	}
	p.ServerName = q.Get("sni")

	if p.Network == "ws" {
		p.WSOpts = wsOptions(q.Get("path"), q.Get("host"))
	}
	if opts.Extended {
		p.SkipCertVerify = allowInsecure(q)
	}
	return p, nil
}

func isZeroInt(n model.Number) bool {
	v, ok := n.Int()
	return n.IsZero() || ok && v == 0
}
