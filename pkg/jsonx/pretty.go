package jsonx

import (
	"bytes"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Indent is the indentation used for every pretty printed value.
const Indent = "  "

// prettyOptions never collapses arrays onto a single line and keeps object keys
// in the order they appear in the source document.
var prettyOptions = &pretty.Options{Width: 0, Prefix: "", Indent: Indent, SortKeys: false}

// Pretty serializes any Go value to JSON indented with two spaces.
//
// Raw JSON values (json.RawMessage, json.Marshaler output) keep their key order.
// HTML characters are not escaped and the result has no trailing newline.
//
// Parameters:
//   - v: The value to serialize.
//
// Returns:
//   - string: The indented JSON document.
//   - error: An error when the value can not be represented as JSON
//     (channels, functions, NaN, cycles or invalid raw JSON).
func Pretty(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return format(buf.Bytes()), nil
}

// Reindent parses a string holding serialized JSON and prints it again with
// two space indentation.
//
// When the string is not valid JSON it is returned unchanged together with false.
// Reindent never fails: the raw string is a legitimate outcome for callers that
// have to show whatever they were given.
func Reindent(raw string) (string, bool) {
	if !gjson.Valid(raw) {
		return raw, false
	}
	return format([]byte(raw)), true
}

func format(data []byte) string {
	return string(bytes.TrimRight(pretty.PrettyOptions(data, prettyOptions), "\n"))
}
