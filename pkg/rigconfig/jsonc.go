package rigconfig

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/tailscale/hujson"
)

// parseRigJSON strips comments and trailing commas, then decodes data as a
// single JSON object.
func parseRigJSON(data []byte) (map[string]any, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	dec := json.NewDecoder(bytes.NewReader(std))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, &ParseError{Err: err}
	}
	if obj == nil {
		return nil, &ParseError{Err: errors.New("expected a JSON object")}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ParseError{Err: errors.New("unexpected data after the top-level object")}
	}

	return obj, nil
}
