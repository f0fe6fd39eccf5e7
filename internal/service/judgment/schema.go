// internal/service/judgment/schema.go

package judgment

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// generateSchema reflects a response struct into a strict-mode JSON schema
// for the provider's structured-output channel.
func generateSchema[T any]() map[string]interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	schema := reflector.Reflect(v)

	b, err := schema.MarshalJSON()
	if err != nil {
		panic(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		panic(err)
	}
	ensureStrictCompliance(m)
	return m
}

// ensureStrictCompliance rewrites a reflected schema into the subset the
// provider accepts in strict mode: objects forbid additional properties and
// every declared property is required.
func ensureStrictCompliance(schema map[string]interface{}) {
	if t, ok := schema["type"].(string); ok && t == "object" {
		schema["additionalProperties"] = false
		if props, ok := schema["properties"].(map[string]interface{}); ok {
			var required []string
			for name := range props {
				required = append(required, name)
			}
			if len(required) > 0 {
				schema["required"] = required
			}
		}
	}

	if props, ok := schema["properties"].(map[string]interface{}); ok {
		for _, prop := range props {
			if m, ok := prop.(map[string]interface{}); ok {
				ensureStrictCompliance(m)
			}
		}
	}
	if items, ok := schema["items"].(map[string]interface{}); ok {
		ensureStrictCompliance(items)
	}
	if extra, ok := schema["additionalProperties"].(map[string]interface{}); ok {
		ensureStrictCompliance(extra)
	}
}
