package rigconfig

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/cockroachdb/errors"
)

// SchemaFileName is the name under which the rig.json schema is published.
const SchemaFileName = "rig.schema.json"

//go:embed rig.schema.json
var schemaBytes []byte

var loadSchema = sync.OnceValues(func() (map[string]any, error) {
	var schema map[string]any
	if err := json.Unmarshal(schemaBytes, &schema); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", SchemaFileName)
	}
	return schema, nil
})

// JSONSchema returns the JSON schema describing config/rig.json. It is parsed
// on first use and shared for the life of the process; callers must not
// modify the returned map.
func JSONSchema() (map[string]any, error) {
	return loadSchema()
}

// JSONSchemaBytes returns a copy of the raw schema document.
func JSONSchemaBytes() []byte {
	return bytes.Clone(schemaBytes)
}
