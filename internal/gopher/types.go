// Package gopher implements the client side of the Gopher protocol
// (RFC 1436): item types, URL parsing, menu parsing, and fetching
// resources over plain, TLS, or SOCKS-proxied connections.
//
// Parsing in this package is deliberately lenient. Every URL string
// maps to some URL and every menu payload maps to zero or more menu
// lines; malformed input degrades instead of failing.
package gopher

// ItemType classifies a menu line's referent per RFC 1436, plus the
// common non-canonical types (HTML, Info, images, sound).
type ItemType int

const (
	Text       ItemType = iota // 0
	Menu                       // 1
	CSOEntity                  // 2 (unsupported)
	Error                      // 3
	Binhex                     // 4 (download)
	DOSFile                    // 5 (download)
	UUEncoded                  // 6 (download)
	Search                     // 7
	Telnet                     // 8
	Binary                     // 9 (download)
	Mirror                     // + (unsupported)
	GIF                        // g (download)
	Telnet3270                 // T (unsupported)
	HTML                       // h
	Image                      // I (download)
	PNG                        // p (download)
	Info                       // i
	Sound                      // s (download)
	Document                   // d (download)
)

var typeRunes = map[ItemType]rune{
	Text:       '0',
	Menu:       '1',
	CSOEntity:  '2',
	Error:      '3',
	Binhex:     '4',
	DOSFile:    '5',
	UUEncoded:  '6',
	Search:     '7',
	Telnet:     '8',
	Binary:     '9',
	Mirror:     '+',
	GIF:        'g',
	Telnet3270: 'T',
	HTML:       'h',
	Image:      'I',
	PNG:        'p',
	Info:       'i',
	Sound:      's',
	Document:   'd',
}

var runeTypes = func() map[rune]ItemType {
	m := make(map[rune]ItemType, len(typeRunes))
	for t, r := range typeRunes {
		m[r] = t
	}
	return m
}()

// ParseItemType decodes an RFC type character. ok is false for
// characters outside the known set.
func ParseItemType(r rune) (ItemType, bool) {
	t, ok := runeTypes[r]
	return t, ok
}

// Rune returns the RFC character code for the type.
func (t ItemType) Rune() rune {
	if r, ok := typeRunes[t]; ok {
		return r
	}
	return '?'
}

func (t ItemType) String() string {
	return string(t.Rune())
}

// IsInfo reports whether this is an informational line with no
// destination.
func (t ItemType) IsInfo() bool {
	return t == Info
}

// IsHTML reports whether this is an HTML link.
func (t ItemType) IsHTML() bool {
	return t == HTML
}

// IsTelnet reports whether this is a telnet link.
func (t ItemType) IsTelnet() bool {
	return t == Telnet
}

// IsLink reports whether the line can be navigated to or opened.
func (t ItemType) IsLink() bool {
	switch t {
	case Menu, Search, Telnet, HTML:
		return true
	}
	return t.IsDownload()
}

// IsDownload reports whether the referent is saved to disk rather
// than rendered.
func (t ItemType) IsDownload() bool {
	switch t {
	case Binhex, DOSFile, UUEncoded, Binary, GIF, Image, PNG, Sound, Document:
		return true
	}
	return false
}

// IsSupported reports whether the client can do anything with the
// type at all.
func (t ItemType) IsSupported() bool {
	switch t {
	case CSOEntity, Mirror, Telnet3270:
		return false
	}
	return true
}
