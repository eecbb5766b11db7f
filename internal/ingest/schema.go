package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/calweir/timegrid/internal/timetable"
)

// timetableSchema is the canonical shape the AI collaborator is asked for.
// Validation is a quality signal on model output, not a gate: structural
// repair happens in the normalizer regardless.
const timetableSchema = `{
	"type": "object",
	"properties": {
		"days": {
			"type": "array",
			"items": {"type": "string"}
		},
		"periods": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"name": {"type": "string"},
					"startTime": {"type": "string"},
					"endTime": {"type": "string"}
				},
				"required": ["name"]
			}
		},
		"classes": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"additionalProperties": {
					"type": "array",
					"items": {
						"type": "object",
						"properties": {
							"subject": {"type": "string"},
							"code": {"type": "string"},
							"room": {"type": "string"},
							"teacher": {"type": "string"},
							"startTime": {"type": "string"},
							"endTime": {"type": "string"}
						}
					}
				}
			}
		}
	},
	"required": ["days", "periods", "classes"]
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func compileSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("timetable.json", bytes.NewReader([]byte(timetableSchema))); err != nil {
			schemaErr = fmt.Errorf("failed to load timetable schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile("timetable.json")
	})
	return compiledSchema, schemaErr
}

// ValidateCandidate checks a candidate structure against the canonical
// schema.
func ValidateCandidate(candidate *timetable.Timetable) error {
	schema, err := compileSchema()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(candidate)
	if err != nil {
		return fmt.Errorf("failed to serialize candidate: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to decode candidate for validation: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("candidate does not match timetable schema: %w", err)
	}
	return nil
}
