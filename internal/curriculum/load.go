package curriculum

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// moduleSchema is the JSON Schema every curriculum module file must
// satisfy before it reaches the engine. Shape mismatches here used to
// slip through as silent zero-evidence updates downstream, so loading
// validates eagerly and loudly.
const moduleSchema = `{
	"type": "object",
	"required": ["id", "domain", "items"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"domain": {"type": "string", "minLength": 1},
		"items": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"difficulty": {"type": "number", "minimum": 0, "maximum": 1},
					"importance": {"type": "number", "minimum": 0}
				}
			}
		},
		"optional_exercises": {
			"type": "array",
			"items": {"type": "string"}
		}
	}
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// compiled returns the compiled module schema, compiling it once.
func compiled() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(moduleSchema), &def); err != nil {
			schemaErr = fmt.Errorf("parse module schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://curriculum-module.json", def); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile("schema://curriculum-module.json")
	})
	return compiledSchema, schemaErr
}

// Parse validates raw JSON against the module schema and decodes it.
func Parse(raw []byte) (*Module, error) {
	schema, err := compiled()
	if err != nil {
		return nil, err
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid curriculum JSON: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("curriculum schema validation failed: %w", err)
	}

	var m Module
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode curriculum module: %w", err)
	}

	// Default importance for items that omit it.
	for i := range m.Items {
		if m.Items[i].Importance == 0 {
			m.Items[i].Importance = 1.0
		}
	}
	return &m, nil
}

// LoadFile reads and parses one curriculum module file.
func LoadFile(path string) (*Module, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read curriculum file: %w", err)
	}
	return Parse(raw)
}
