package model

// Proxy types produced by the parsers.
const (
	TypeVLESS     = "vless"
	TypeVMess     = "vmess"
	TypeSS        = "ss"
	TypeTrojan    = "trojan"
	TypeHysteria  = "hysteria"
	TypeHysteria2 = "hysteria2"
	TypeTUIC      = "tuic"
)

// KV is one entry of an ordered string mapping.
type KV struct {
	Key   string
	Value string
}

// Proxy is the normalized, scheme-agnostic descriptor of one proxy endpoint.
// It is produced once per input link and only read afterwards.
//
// A field holding its zero value is absent and is never rendered.
type Proxy struct {
	Name   string
	Type   string
	Server string
	Port   Number

	// Credentials
	UUID     string
	Password string
	Cipher   string
	AlterID  Number

	Network           string
	Flow              string
	ServerName        string
	ClientFingerprint string
	SNI               string
	AuthStr           string
	Auth              string

	TLS      bool
	UDP      bool
	Insecure *bool // hysteria only; rendered even when false

	UpMbps   Number
	DownMbps Number

	WSOpts      *WSOptions
	RealityOpts *RealityOptions

	Plugin     string
	PluginOpts []KV

	ALPN []string

	Obfs                 string
	ObfsPassword         string
	CongestionController string
	UDPRelayMode         string
	SkipCertVerify       bool
}

// WSOptions is the websocket transport block.
type WSOptions struct {
	Path    string
	Headers []KV
}

// Header returns the value of the named header, or "" when unset.
func (o *WSOptions) Header(name string) string {
	if o == nil {
		return ""
	}
	for _, h := range o.Headers {
		if h.Key == name {
			return h.Value
		}
	}
	return ""
}

// RealityOptions carries the REALITY public key and short id.
type RealityOptions struct {
	PublicKey string
	ShortID   string
}

// SetOpt stores key=value in an ordered mapping, replacing an existing key in place.
func SetOpt(opts []KV, key, value string) []KV {
	for i := range opts {
		if opts[i].Key == key {
			opts[i].Value = value
			return opts
		}
	}
	return append(opts, KV{Key: key, Value: value})
}

// Bool returns a pointer to b, for tri-state fields.
func Bool(b bool) *bool {
	return &b
}
