package parser

import "strings"

// URI is a share link split into its components.
// Decoding is lenient: a malformed escape is kept as literal text and bytes
// that do not form UTF-8 become U+FFFD.
type URI struct {
	Scheme string // lowercased

	UserInfo string // whole userinfo, percent-decoded
	Username string // userinfo before the first ':'
	Password string // userinfo after the first ':'

	Host string // lowercased, IPv6 brackets removed
	Port string // raw port text, may be non-numeric

	Path     string
	RawQuery string
	Query    Params
	Fragment string // percent-decoded display name

	// Rest is the raw authority and path. Base64 payloads live here.
	Rest string
}

// Params holds decoded query parameters. Only the first value of a key is kept
// and keys with blank values are treated as absent.
type Params map[string]string

// Get returns the value for key, or "".
func (p Params) Get(key string) string {
	return p[key]
}

// GetDefault returns the value for key, or def when the key is absent.
func (p Params) GetDefault(key, def string) string {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}

// Has reports whether key carries a non-blank value.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// First returns the first non-empty value among keys.
func (p Params) First(keys ...string) string {
	for _, k := range keys {
		if v := p[k]; v != "" {
			return v
		}
	}
	return ""
}

// Decompose splits raw following scheme://userinfo@host:port/path?query#fragment.
// Unlike url.Parse it never fails.
func Decompose(raw string) URI {
	var u URI
	s := raw

	if i := strings.IndexByte(s, ':'); i > 0 && validScheme(s[:i]) {
		u.Scheme = strings.ToLower(s[:i])
		s = s[i+1:]
	}

	var authority string
	if strings.HasPrefix(s, "//") {
		s = s[2:]
		end := strings.IndexAny(s, "/?#")
		if end < 0 {
			end = len(s)
		}
		authority, s = s[:end], s[end:]
	}

	if i := strings.IndexByte(s, '#'); i >= 0 {
		u.Fragment = pathUnescape(s[i+1:])
		s = s[:i]
	}
	if i := strings.IndexByte(s, '?'); i >= 0 {
		u.RawQuery = s[i+1:]
		s = s[:i]
	}
	u.Path = s
	u.Rest = authority + s
	u.Query = parseQuery(u.RawQuery)

	hostPort := authority
	if i := strings.LastIndexByte(authority, '@'); i >= 0 {
		userInfo := authority[:i]
		hostPort = authority[i+1:]

		u.UserInfo = pathUnescape(userInfo)
		user, pass, _ := strings.Cut(userInfo, ":")
		u.Username = pathUnescape(user)
		u.Password = pathUnescape(pass)
	}
	u.Host, u.Port = splitHostPort(hostPort)

	return u
}

func splitHostPort(s string) (host, port string) {
	if strings.HasPrefix(s, "[") {
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return strings.ToLower(s[1:]), ""
		}
		host = s[1:end]
		if rest := s[end+1:]; strings.HasPrefix(rest, ":") {
			port = rest[1:]
		}
		return strings.ToLower(host), port
	}
	host, port, _ = strings.Cut(s, ":")
	return strings.ToLower(host), port
}

func parseQuery(raw string) Params {
	q := make(Params)
	for _, part := range strings.Split(raw, "&") {
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		k = queryUnescape(k)
		v = queryUnescape(v)
		if v == "" {
			continue
		}
		if _, seen := q[k]; seen {
			continue
		}
		q[k] = v
	}
	return q
}

func validScheme(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}

func pathUnescape(s string) string {
	return unescape(s, false)
}

func queryUnescape(s string) string {
	return unescape(s, true)
}

// unescape decodes every well-formed %XX on its own; with plus set, '+' is a space.
func unescape(s string, plus bool) string {
	if !strings.ContainsRune(s, '%') && !(plus && strings.ContainsRune(s, '+')) {
		return strings.ToValidUTF8(s, "\uFFFD")
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		case c == '+' && plus:
			b.WriteByte(' ')
		default:
			b.WriteByte(c)
		}
	}
	return strings.ToValidUTF8(b.String(), "\uFFFD")
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
