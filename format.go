package kvgate

import "strings"

// Format selects the wire encoding of a response.
type Format int

const (
	FormatJSON Format = iota
	FormatXML
	FormatText
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatXML:
		return "xml"
	case FormatText:
		return "text"
	default:
		return "json"
	}
}

// ContentType returns the Content-Type header value for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatXML:
		return "application/xml"
	case FormatText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// DetectFormat maps an Accept header value to a response format using a
// case-insensitive substring match. XML tokens win over text/plain, which
// wins over application/json; anything else, including an empty header,
// falls back to JSON. The order matters because a header value may contain
// several media types.
func DetectFormat(accept string) Format {
	a := strings.ToLower(accept)
	switch {
	case strings.Contains(a, "application/xml") || strings.Contains(a, "text/xml"):
		return FormatXML
	case strings.Contains(a, "text/plain"):
		return FormatText
	default:
		return FormatJSON
	}
}
