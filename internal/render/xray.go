package render

import (
	"encoding/json"
	"fmt"
	"io"

	"url2clash/internal/logger"
	"url2clash/internal/model"

	"github.com/xtls/xray-core/infra/conf"
)

// XrayRenderer emits an Xray "outbounds" JSON document. Types Xray cannot
// dial (hysteria v1, tuic) are skipped with a warning.
type XrayRenderer struct{}

type xrayDocument struct {
	Outbounds []*conf.OutboundDetourConfig `json:"outbounds"`
}

func (r *XrayRenderer) Render(w io.Writer, proxies []model.Proxy) error {
	out := xrayDocument{Outbounds: []*conf.OutboundDetourConfig{}}
	used := make(map[string]int, len(proxies))

	for i := range proxies {
		p := &proxies[i]
		ob, err := ToXrayOutbound(p, uniqueTag(p.Name, used))
		if err != nil {
			logger.Log.Warnf("xray: skipping %q: %v", p.Name, err)
			continue
		}
		out.Outbounds = append(out.Outbounds, ob)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// ToXrayOutbound converts a descriptor into an Xray outbound config.
func ToXrayOutbound(p *model.Proxy, tag string) (*conf.OutboundDetourConfig, error) {
	port, ok := p.Port.Int()
	if !ok || p.Server == "" {
		return nil, fmt.Errorf("missing or non-numeric endpoint %q:%q", p.Server, p.Port.String())
	}

	var protocol string
	var settings json.RawMessage

	switch p.Type {
	case model.TypeVMess:
		protocol = "vmess"
		settings = buildVMess(p, port)
	case model.TypeVLESS:
		protocol = "vless"
		settings = buildVLESS(p, port)
	case model.TypeTrojan:
		protocol = "trojan"
		settings = buildTrojan(p, port)
	case model.TypeSS:
		protocol = "shadowsocks"
		if p.Plugin != "" {
			logger.Log.Warnf("xray: %q: plugin %q is not supported, dropped", p.Name, p.Plugin)
		}
		settings = buildShadowsocks(p, port)
	case model.TypeHysteria2:
		protocol = "hysteria2"
		settings = buildHysteria2(p, port)
	default:
		return nil, fmt.Errorf("protocol not supported by xray: %s", p.Type)
	}

	return &conf.OutboundDetourConfig{
		Tag:           tag,
		Protocol:      protocol,
		Settings:      &settings,
		StreamSetting: buildStreamSettings(p),
	}, nil
}

// --- JSON Builders ---

func buildVMess(p *model.Proxy, port int) json.RawMessage {
	alterID, _ := p.AlterID.Int()
	return jsonRaw(map[string]interface{}{
		"vnext": []interface{}{
			map[string]interface{}{
				"address": p.Server,
				"port":    port,
				"users": []interface{}{
					map[string]interface{}{
						"id":       p.UUID,
						"alterId":  alterID,
						"security": p.Cipher,
					},
				},
			},
		},
	})
}

func buildVLESS(p *model.Proxy, port int) json.RawMessage {
	return jsonRaw(map[string]interface{}{
		"vnext": []interface{}{
			map[string]interface{}{
				"address": p.Server,
				"port":    port,
				"users": []interface{}{
					map[string]interface{}{
						"id":         p.UUID,
						"encryption": "none",
						"flow":       p.Flow,
					},
				},
			},
		},
	})
}

func buildTrojan(p *model.Proxy, port int) json.RawMessage {
	return jsonRaw(map[string]interface{}{
		"servers": []interface{}{
			map[string]interface{}{
				"address":  p.Server,
				"port":     port,
				"password": p.Password,
			},
		},
	})
}

func buildShadowsocks(p *model.Proxy, port int) json.RawMessage {
	return jsonRaw(map[string]interface{}{
		"servers": []interface{}{
			map[string]interface{}{
				"address":  p.Server,
				"port":     port,
				"method":   p.Cipher,
				"password": p.Password,
			},
		},
	})
}

func buildHysteria2(p *model.Proxy, port int) json.RawMessage {
	settings := map[string]interface{}{
		"address": p.Server,
		"port":    port,
		"auth":    p.Password,
	}
	if p.ObfsPassword != "" {
		settings["obfs"] = map[string]interface{}{
			"type": p.Obfs, // "salamander"
			"salamander": map[string]interface{}{
				"password": p.ObfsPassword,
			},
		}
	}
	return jsonRaw(settings)
}

func buildStreamSettings(p *model.Proxy) *conf.StreamConfig {
	network := p.Network
	if network == "" {
		network = "tcp"
	}

	security := ""
	switch {
	case p.RealityOpts != nil:
		security = "reality"
	case p.TLS, p.Type == model.TypeHysteria2:
		security = "tls"
	}

	sc := &conf.StreamConfig{
		Network:  (*conf.TransportProtocol)(&network),
		Security: security,
	}

	serverName := p.ServerName
	if serverName == "" {
		serverName = p.SNI
	}

	// TLS / REALITY
	if security != "" {
		sc.TLSSettings = &conf.TLSConfig{
			ServerName:  serverName,
			Fingerprint: p.ClientFingerprint,
		}
		if len(p.ALPN) > 0 {
			alpn := conf.StringList(p.ALPN)
			sc.TLSSettings.ALPN = &alpn
		}
		if p.SkipCertVerify {
			sc.TLSSettings.Insecure = true
		}

		if security == "reality" {
			sc.REALITYSettings = &conf.REALITYConfig{
				Fingerprint: p.ClientFingerprint,
				ServerName:  serverName,
				PublicKey:   p.RealityOpts.PublicKey,
				ShortId:     p.RealityOpts.ShortID,
			}
		}
	}

	if network == "ws" && p.WSOpts != nil {
		sc.WSSettings = &conf.WebSocketConfig{
			Path:    p.WSOpts.Path,
			Headers: map[string]string{},
		}
		for _, h := range p.WSOpts.Headers {
			sc.WSSettings.Headers[h.Key] = h.Value
		}
	}

	return sc
}

// uniqueTag derives an outbound tag from the proxy name; repeats get a -N suffix.
func uniqueTag(name string, used map[string]int) string {
	if name == "" {
		name = "proxy"
	}
	if n, ok := used[name]; ok {
		n++
		used[name] = n
		return fmt.Sprintf("%s-%d", name, n)
	}
	used[name] = 1
	return name
}

func jsonRaw(v interface{}) json.RawMessage {
	b, _ := json.Marshal(v)
	return json.RawMessage(b)
}

func init() {
	Register("xray", func() Renderer { return &XrayRenderer{} })
}
