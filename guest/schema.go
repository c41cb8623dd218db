package guest

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// GenerateSchema reflects a JSON Schema (Draft 2020-12) from a wire struct.
func GenerateSchema(v interface{}) (json.RawMessage, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true, // inline the struct instead of a $defs reference
	}
	schema := reflector.Reflect(v)

	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}
