package servicedef

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// HealthSchema matches a Spring actuator health response.
const HealthSchema = `{
	"type": "object",
	"required": ["status"],
	"properties": {
		"status": {"type": "string"}
	}
}`

// CollectionSchema matches the envelope every listing route returns.
const CollectionSchema = `{
	"type": "object",
	"properties": {
		"collection": {
			"type": ["array", "null"],
			"items": {"type": "object"}
		}
	}
}`

var (
	healthSchema     = mustCompile(HealthSchema)
	collectionSchema = mustCompile(CollectionSchema)
)

// ValidateHealth checks that body is a health response.
func ValidateHealth(body []byte) error {
	return validate(healthSchema, body)
}

// ValidateCollection checks that body is a listing envelope.
func ValidateCollection(body []byte) error {
	return validate(collectionSchema, body)
}

func validate(schema *gojsonschema.Schema, body []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("cannot validate response: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var problems []string
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}
	return fmt.Errorf("response does not match the expected schema: %s", strings.Join(problems, "; "))
}

func mustCompile(schema string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("invalid built-in schema: %s", err))
	}
	return s
}
