// SPDX-License-Identifier: Apache-2.0

package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// jsPrefix is the assignment the dashboard file starts with.
const jsPrefix = "window.BENCHMARK_DATA = "

// Load reads benchmark data from r. Both the dashboard file
// (`window.BENCHMARK_DATA = {...}`) and bare JSON are accepted.
func Load(r io.Reader) (*Suite, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading benchmark data: %w", err)
	}
	return Parse(data)
}

// LoadFile reads benchmark data from the file at path.
func LoadFile(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes benchmark data. Any structural problem is reported as a
// *ParseError and no partial result is returned.
func Parse(data []byte) (*Suite, error) {
	body, start, err := stripAssignment(data)
	if err != nil {
		return nil, err
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return nil, parseError(err, start)
	}
	if err := validateSchema(doc); err != nil {
		return nil, &ParseError{Offset: -1, Err: err}
	}

	var s Suite
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, parseError(err, start)
	}
	return &s, nil
}

// stripAssignment returns the JSON document held in data along with its
// offset in data.
func stripAssignment(data []byte) ([]byte, int64, error) {
	trimmed := bytes.TrimLeft(data, "\ufeff \t\r\n")
	start := int64(len(data) - len(trimmed))

	if bytes.HasPrefix(trimmed, []byte("window.")) {
		eq := bytes.IndexByte(trimmed, '=')
		if eq < 0 {
			return nil, 0, &ParseError{Offset: start, Err: errors.New("missing assignment")}
		}
		rest := trimmed[eq+1:]
		body := bytes.TrimLeft(rest, " \t\r\n")
		start += int64(eq + 1 + len(rest) - len(body))
		trimmed = body
	}

	trimmed = bytes.TrimRight(trimmed, " \t\r\n")
	trimmed = bytes.TrimSuffix(trimmed, []byte(";"))
	if len(trimmed) == 0 {
		return nil, 0, &ParseError{Offset: start, Err: errors.New("no data")}
	}
	return trimmed, start, nil
}

func parseError(err error, start int64) *ParseError {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &ParseError{Offset: start + syntaxErr.Offset, Err: err}
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &ParseError{Offset: start + typeErr.Offset, Err: err}
	}
	return &ParseError{Offset: -1, Err: err}
}
