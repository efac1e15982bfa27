package gopher

import (
	"strconv"
	"strings"
)

// DefaultPort is the IANA-assigned Gopher port.
const DefaultPort = 70

// InternalHost is the pseudo-host whose URLs resolve against the
// built-in help pages instead of the network.
const InternalHost = "burrow"

// URL is a parsed gopher URL. Selector is opaque and keeps its
// leading slash when one was present.
type URL struct {
	Host     string
	Port     int
	Type     ItemType
	Selector string
}

// ParseURL decodes a gopher URL of the form
// gopher://host[:port]/[typechar]selector. It never fails: malformed
// input degrades to a best-effort URL with the Menu type and default
// port.
func ParseURL(raw string) URL {
	u := URL{Port: DefaultPort, Type: Menu}

	s := strings.TrimSpace(raw)
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}

	hostport := s
	var path string
	if i := strings.IndexByte(s, '/'); i >= 0 {
		hostport = s[:i]
		path = s[i:]
	}

	u.Host = hostport
	if i := strings.LastIndexByte(hostport, ':'); i >= 0 {
		u.Host = hostport[:i]
		if p, err := strconv.Atoi(hostport[i+1:]); err == nil && p > 0 {
			u.Port = p
		}
	}

	// The first character after the slash, when it is a valid type
	// code, names the item type and is not part of the selector:
	// /1/selector decodes to type Menu, selector /selector.
	if len(path) >= 2 {
		if t, ok := ParseItemType(rune(path[1])); ok {
			u.Type = t
			u.Selector = path[2:]
			return u
		}
	}
	u.Selector = path
	return u
}

// TypeForURL returns the item type a URL resolves to.
func TypeForURL(raw string) ItemType {
	return ParseURL(raw).Type
}

// IsInternal reports whether the URL addresses the client's built-in
// pseudo-namespace (gopher://burrow/...).
func IsInternal(raw string) bool {
	return ParseURL(raw).IsInternal()
}

// IsInternal reports whether the URL's host is the reserved built-in
// namespace.
func (u URL) IsInternal() bool {
	return u.Host == InternalHost
}

// String re-encodes the URL in textual form. The default port is
// omitted.
func (u URL) String() string {
	var b strings.Builder
	b.WriteString("gopher://")
	b.WriteString(u.Host)
	if u.Port != DefaultPort && u.Port != 0 {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(u.Port))
	}
	b.WriteByte('/')
	b.WriteRune(u.Type.Rune())
	b.WriteString(u.Selector)
	return b.String()
}

// Addr returns the host:port dial address.
func (u URL) Addr() string {
	port := u.Port
	if port == 0 {
		port = DefaultPort
	}
	return u.Host + ":" + strconv.Itoa(port)
}
