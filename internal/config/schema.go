package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed retidy-config.schema.json
var overrideSchema []byte

// ValidateOverride validates a .retidy.yaml document against the embedded
// JSON schema before it is merged over the defaults. Validation failures list
// every violation, not just the first.
func ValidateOverride(data []byte) error {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	if doc == nil {
		return nil // empty override file is a no-op
	}

	jsonData, err := json.Marshal(normalizeYAML(doc))
	if err != nil {
		return fmt.Errorf("convert to json: %w", err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(overrideSchema)
	documentLoader := gojsonschema.NewBytesLoader(jsonData)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if !result.Valid() {
		var errs []string
		for _, desc := range result.Errors() {
			errs = append(errs, desc.String())
		}
		return fmt.Errorf("configuration invalid:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// normalizeYAML rewrites yaml.v3's map[interface{}]interface{} values into
// map[string]interface{} so the document can round-trip through encoding/json.
func normalizeYAML(v interface{}) interface{} {
	switch val := v.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[fmt.Sprintf("%v", k)] = normalizeYAML(item)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = normalizeYAML(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = normalizeYAML(item)
		}
		return out
	default:
		return val
	}
}
