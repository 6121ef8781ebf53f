// Package schema validates task payloads against the json
// schema documents embedded in the binary. The schemas are
// authored in yaml and converted to json before compilation.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed cobol.yaml
var cobolSchema []byte

const schemaURL = "https://greenscreen.io/schemas/cobol-task.json"

// task types with an embedded schema definition.
var definitions = []string{"compile", "call", "submit"}

// Validator validates task payloads against the embedded
// schema documents.
type Validator struct {
	schemas map[string]*jsonschema.Schema
}

// New compiles the embedded schemas and returns a Validator.
func New() (*Validator, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(cobolSchema, &doc); err != nil {
		return nil, fmt.Errorf("schema: cannot parse schema document: %w", err)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("schema: cannot convert schema document: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("schema: cannot add schema resource: %w", err)
	}

	v := &Validator{schemas: map[string]*jsonschema.Schema{}}
	for _, name := range definitions {
		s, err := compiler.Compile(schemaURL + "#/$defs/" + name)
		if err != nil {
			return nil, fmt.Errorf("schema: cannot compile schema %s: %w", name, err)
		}
		v.schemas["cobol/"+name] = s
	}
	return v, nil
}

// Must is like New but panics if the embedded schemas do not
// compile. A failure here is a build defect, not a runtime
// condition.
func Must() *Validator {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

// Validate validates the task payload for the named task
// type. It returns an error describing the first violation
// found, or nil if the payload is valid.
func (v *Validator) Validate(taskType string, data []byte) error {
	s, ok := v.schemas[taskType]
	if !ok {
		return fmt.Errorf("schema: no schema for task type %s", taskType)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("schema: malformed task data: %w", err)
	}

	return s.Validate(doc)
}

// Types returns the task types with an embedded schema.
func (v *Validator) Types() []string {
	types := make([]string, 0, len(v.schemas))
	for t := range v.schemas {
		types = append(types, t)
	}
	return types
}
