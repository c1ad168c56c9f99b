// SPDX-License-Identifier: Apache-2.0

package history

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sigs.k8s.io/yaml"
)

type Format int

const (
	InvalidFormat Format = iota
	// FormatJS is the dashboard file: a JavaScript assignment of the JSON
	// document to window.BENCHMARK_DATA.
	FormatJS
	FormatJSON
	// FormatYAML is an export format only; it does not preserve group order.
	FormatYAML
)

// ParseFormat returns the Format named by s ("js", "json" or "yaml").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "js", "javascript":
		return FormatJS, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return InvalidFormat, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Extension returns the file extension for the format
func (f Format) Extension() string {
	switch f {
	case FormatJS:
		return "js"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return ""
}

func (f Format) String() string {
	return f.Extension()
}

// Render returns the dashboard file representation of s.
func Render(s *Suite) ([]byte, error) {
	var buf bytes.Buffer
	if err := Serialize(&buf, s, FormatJS); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Serialize writes s to w in the given format. JS and JSON output match the
// dashboard writer byte for byte: two-space indentation, no HTML escaping
// and no trailing newline.
func Serialize(w io.Writer, s *Suite, f Format) error {
	switch f {
	case FormatJS, FormatJSON:
		body, err := encodeIndented(s)
		if err != nil {
			return fmt.Errorf("encode json benchmark data: %w", err)
		}
		if f == FormatJS {
			if _, err := io.WriteString(w, jsPrefix); err != nil {
				return err
			}
		}
		_, err = w.Write(body)
		return err
	case FormatYAML:
		yml, err := yaml.Marshal(s)
		if err != nil {
			return fmt.Errorf("encode yaml benchmark data: %w", err)
		}
		_, err = w.Write(yml)
		return err
	default:
		return ErrUnknownFormat
	}
}

func encodeIndented(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return unescapeLineSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// unescapeLineSeparators turns the \u2028 and \u2029 escapes written by
// encoding/json back into raw runes, as JSON.stringify leaves them.
// Escapes preceded by an escaped backslash are literal text and are kept.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' {
			out = append(out, data[i])
			continue
		}
		if i+5 < len(data) && data[i+1] == 'u' && string(data[i+2:i+5]) == "202" &&
			(data[i+5] == '8' || data[i+5] == '9') {
			if data[i+5] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			continue
		}
		// copy the escaped character as is so an escaped backslash is
		// never read as the start of an escape
		out = append(out, data[i])
		if i+1 < len(data) {
			i++
			out = append(out, data[i])
		}
	}
	return out
}
