package render

import (
	"io"
	"strings"

	"url2clash/internal/model"
)

// ClashRenderer emits a Clash/mihomo "proxies:" document.
type ClashRenderer struct{}

func (r *ClashRenderer) Render(w io.Writer, proxies []model.Proxy) error {
	_, err := io.WriteString(w, Clash(proxies))
	return err
}

// Clash serializes proxies into YAML text. Field order is fixed and part of
// the output contract; consumers diff and grep these files.
func Clash(proxies []model.Proxy) string {
	var d doc
	d.line(0, "proxies:")
	for i := range proxies {
		writeClashProxy(&d, &proxies[i])
	}
	return d.String()
}

func writeClashProxy(d *doc, p *model.Proxy) {
	name := p.Name
	if name == "" {
		name = "proxy"
	}
	d.line(2, "- name: "+yamlDQ(name))
	d.str(4, "type", p.Type)
	d.raw(4, "server", p.Server)
	d.raw(4, "port", p.Port.String())

	d.str(4, "uuid", p.UUID)
	d.str(4, "password", p.Password)
	d.str(4, "cipher", p.Cipher)
	d.num(4, "alterId", p.AlterID)
	d.str(4, "network", p.Network)
	d.str(4, "flow", p.Flow)
	d.str(4, "servername", p.ServerName)
	d.str(4, "client-fingerprint", p.ClientFingerprint)
	d.str(4, "sni", p.SNI)
	d.str(4, "auth_str", p.AuthStr)
	d.str(4, "auth", p.Auth)

	if p.TLS {
		d.bool(4, "tls", true)
	}
	d.bool(4, "udp", p.UDP)
	if p.Insecure != nil {
		d.bool(4, "insecure", *p.Insecure)
	}

	d.raw(4, "up-mbps", p.UpMbps.String())
	d.raw(4, "down-mbps", p.DownMbps.String())

	if ws := p.WSOpts; ws != nil {
		d.line(4, "ws-opts:")
		d.str(6, "path", ws.Path)
		if len(ws.Headers) > 0 {
			d.line(6, "headers:")
			for _, h := range ws.Headers {
				d.str(8, h.Key, h.Value)
			}
		}
	}

	if ro := p.RealityOpts; ro != nil {
		d.line(4, "reality-opts:")
		d.str(6, "public-key", ro.PublicKey)
		d.str(6, "short-id", ro.ShortID)
	}

	d.str(4, "plugin", p.Plugin)
	if len(p.PluginOpts) > 0 {
		d.line(4, "plugin-opts:")
		for _, kv := range p.PluginOpts {
			d.str(6, kv.Key, kv.Value)
		}
	}

	if len(p.ALPN) > 0 {
		d.line(4, "alpn:")
		for _, a := range p.ALPN {
			d.line(6, "- "+yamlDQ(a))
		}
	}

	d.str(4, "obfs", p.Obfs)
	d.str(4, "obfs-password", p.ObfsPassword)
	d.str(4, "congestion-controller", p.CongestionController)
	d.str(4, "udp-relay-mode", p.UDPRelayMode)
	if p.SkipCertVerify {
		d.bool(4, "skip-cert-verify", true)
	}
}

// doc accumulates indented lines. Empty values are dropped by every writer.
type doc struct {
	b strings.Builder
}

func (d *doc) line(indent int, text string) {
	d.b.WriteString(strings.Repeat(" ", indent))
	d.b.WriteString(text)
	d.b.WriteByte('\n')
}

// str writes a double-quoted string value.
func (d *doc) str(indent int, key, value string) {
	if value == "" {
		return
	}
	d.line(indent, key+": "+yamlDQ(value))
}

// raw writes the value unquoted.
func (d *doc) raw(indent int, key, value string) {
	if value == "" {
		return
	}
	d.line(indent, key+": "+value)
}

// num writes integers bare and non-numeric text quoted.
func (d *doc) num(indent int, key string, n model.Number) {
	if n.IsZero() {
		return
	}
	if _, ok := n.Int(); ok {
		d.raw(indent, key, n.String())
		return
	}
	d.str(indent, key, n.String())
}

func (d *doc) bool(indent int, key string, v bool) {
	if v {
		d.line(indent, key+": true")
		return
	}
	d.line(indent, key+": false")
}

func (d *doc) String() string {
	return d.b.String()
}

// yamlDQ quotes s as a YAML double-quoted scalar.
func yamlDQ(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return "\"" + s + "\""
}

func init() {
	Register("clash", func() Renderer { return &ClashRenderer{} })
}
