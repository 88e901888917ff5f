package kvgate

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Response is a store read result the codec can render. It is implemented
// by ScalarResponse, FieldResponse and HashResponse.
type Response interface {
	writeXML(sb *strings.Builder)
	text() string
}

// Encode renders a response in the given format. JSON marshals the struct
// directly, so absent optionals appear as null rather than omitted keys.
// XML wraps the value in a <response> element with entity characters
// escaped. Text renders the payload, "OK" for an absent or empty payload,
// or "ERROR: <message>" on failure.
func Encode(r Response, f Format) (string, error) {
	switch f {
	case FormatXML:
		var sb strings.Builder
		sb.WriteString("<response>")
		r.writeXML(&sb)
		sb.WriteString("</response>")
		return sb.String(), nil
	case FormatText:
		return r.text(), nil
	default:
		b, err := json.Marshal(r)
		if err != nil {
			return "", fmt.Errorf("encode json: %w", err)
		}
		return string(b), nil
	}
}

// writeElem writes <name>value</name> with the value XML-escaped.
func writeElem(sb *strings.Builder, name, value string) {
	sb.WriteString("<")
	sb.WriteString(name)
	sb.WriteString(">")
	_ = xml.EscapeText(sb, []byte(value))
	sb.WriteString("</")
	sb.WriteString(name)
	sb.WriteString(">")
}

func errorText(err *string) string {
	if err != nil {
		return "ERROR: " + *err
	}
	return "ERROR: Unknown error"
}

func (r ScalarResponse) writeXML(sb *strings.Builder) {
	writeElem(sb, "success", strconv.FormatBool(r.Success))
	if r.Result != nil {
		writeElem(sb, "result", *r.Result)
	}
	if r.Error != nil {
		writeElem(sb, "error", *r.Error)
	}
}

func (r ScalarResponse) text() string {
	if !r.Success {
		return errorText(r.Error)
	}
	if r.Result == nil {
		return "OK"
	}
	return *r.Result
}

func (r FieldResponse) writeXML(sb *strings.Builder) {
	writeElem(sb, "success", strconv.FormatBool(r.Success))
	if r.Value != nil {
		writeElem(sb, "value", *r.Value)
	}
	if r.Error != nil {
		writeElem(sb, "error", *r.Error)
	}
}

func (r FieldResponse) text() string {
	if !r.Success {
		return errorText(r.Error)
	}
	if r.Value == nil {
		return "OK"
	}
	return *r.Value
}

func (r HashResponse) writeXML(sb *strings.Builder) {
	writeElem(sb, "success", strconv.FormatBool(r.Success))
	if r.Fields != nil {
		// A present empty map still renders an empty <fields> element.
		sb.WriteString("<fields>")
		for _, k := range sortedKeys(r.Fields) {
			sb.WriteString("<field>")
			writeElem(sb, "key", k)
			writeElem(sb, "value", r.Fields[k])
			sb.WriteString("</field>")
		}
		sb.WriteString("</fields>")
	}
	if r.Error != nil {
		writeElem(sb, "error", *r.Error)
	}
}

func (r HashResponse) text() string {
	if !r.Success {
		return errorText(r.Error)
	}
	if len(r.Fields) == 0 {
		return "OK"
	}
	lines := make([]string, 0, len(r.Fields))
	for _, k := range sortedKeys(r.Fields) {
		lines = append(lines, k+": "+r.Fields[k])
	}
	return strings.Join(lines, "\n")
}

// sortedKeys orders map iteration so XML and text output are deterministic.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
