package params

import (
	"net/url"
	"strings"
)

// Combine returns the URL with its query replaced by the given query string
// The query is used verbatim, it's not escaped again
func Combine(u *url.URL, query string) string {
	combined := *u
	combined.RawQuery = query
	combined.ForceQuery = false

	return combined.String()
}

// CombineString parses a raw URL and returns it with its query replaced by the given query string
func CombineString(rawURL, query string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	return Combine(u, query), nil
}

// Characters that are left as-is by Requote, in addition to the unreserved characters
const requoteSafe = "!#$%&'()*+,/:;=?@[]~"

// Requote percent-escapes the characters in a URL that can't be sent on the wire, such as spaces and control characters
// Existing escape sequences and reserved characters are kept, so an already valid URL is returned unchanged
func Requote(rawURL string) string {
	var buf strings.Builder
	buf.Grow(len(rawURL))

	for i := 0; i < len(rawURL); i++ {
		c := rawURL[i]

		switch {
		case c == '%' && i+2 < len(rawURL) && isHex(rawURL[i+1]) && isHex(rawURL[i+2]):
			buf.WriteString(rawURL[i : i+3])
			i += 2
		case c == '%':
			buf.WriteString("%25")
		case isUnreserved(c) || strings.IndexByte(requoteSafe, c) >= 0:
			buf.WriteByte(c)
		default:
			buf.WriteByte('%')
			buf.WriteByte(upperhex[c>>4])
			buf.WriteByte(upperhex[c&15])
		}
	}

	return buf.String()
}

const upperhex = "0123456789ABCDEF"

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isUnreserved(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') || c == '-' || c == '.' || c == '_' || c == '~'
}
