package replay

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed recording.schema.json
var recordingSchemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource("recording.schema.json", strings.NewReader(recordingSchemaJSON)); err != nil {
			schemaErr = fmt.Errorf("replay: cannot load recording schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile("recording.schema.json")
	})
	return schema, schemaErr
}

// ValidateDocument checks that raw JSON matches the recording schema.
func ValidateDocument(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("replay: recording is not valid JSON: %w", err)
	}
	s, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("replay: recording does not match schema: %w", err)
	}
	return nil
}
