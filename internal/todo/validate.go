package todo

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/todo-go/internal/utils"
)

// schemaURL identifies the embedded schema inside the compiler.
const schemaURL = "https://github.com/nibzard/todo-go/tasks.schema.json"

//go:embed schema.json
var embeddedSchema []byte

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationOptions controls validation behavior.
type ValidationOptions struct {
	// SchemaPath overrides the embedded schema with a file on disk.
	// If the file cannot be used, validation falls back to minimal checks.
	SchemaPath string
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool // true if JSON Schema validation was performed
}

// SchemaJSON returns the embedded task file schema.
func SchemaJSON() []byte {
	return bytes.Clone(embeddedSchema)
}

// Validate checks raw task file contents.
func Validate(data []byte, opts ValidationOptions) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	// The store reads an empty file as an empty list.
	if len(bytes.TrimSpace(data)) == 0 {
		data = []byte("[]")
	}

	doc, err := decodeForSchema(data)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Err: fmt.Errorf("invalid JSON: %w", err)})
		return result
	}

	schema, warning := compileSchema(opts.SchemaPath)
	if warning != "" {
		result.Warnings = append(result.Warnings, warning)
	}
	if schema != nil {
		result.UsedSchema = true
		if err := schema.Validate(doc); err != nil {
			result.Valid = false
			appendSchemaErrors(result, err)
		}
	} else {
		validateMinimal(data, result)
	}

	if result.Valid {
		checkDuplicateIDs(data, result)
	}
	return result
}

func decodeForSchema(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// compileSchema returns the schema to validate with. A non-empty warning
// with a nil schema means the override could not be used.
func compileSchema(schemaPath string) (*jsonschema.Schema, string) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true

	if schemaPath == "" {
		if err := compiler.AddResource(schemaURL, bytes.NewReader(embeddedSchema)); err != nil {
			return nil, fmt.Sprintf("embedded schema unusable: %v", err)
		}
		schema, err := compiler.Compile(schemaURL)
		if err != nil {
			return nil, fmt.Sprintf("embedded schema unusable: %v", err)
		}
		return schema, ""
	}

	absPath, err := filepath.Abs(schemaPath)
	if err != nil {
		return nil, fmt.Sprintf("invalid schema path: %v", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Sprintf("schema file not found: %s", absPath)
		}
		return nil, fmt.Sprintf("failed to read schema file: %v", err)
	}
	schema, err := compiler.Compile(absPath)
	if err != nil {
		return nil, fmt.Sprintf("invalid schema file: %v", err)
	}
	return schema, ""
}

// validateMinimal performs minimal validation without JSON Schema.
func validateMinimal(data []byte, result *ValidationResult) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Err: fmt.Errorf("expected an array of tasks")})
		return
	}

	type fields struct {
		ID          *int    `json:"id"`
		Description *string `json:"description"`
		Completed   *bool   `json:"completed"`
	}
	for i, item := range raw {
		path := fmt.Sprintf("[%d]", i)
		var p fields
		if err := json.Unmarshal(item, &p); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{Path: path, Err: err})
			continue
		}
		switch {
		case p.ID == nil:
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{Path: path + ".id", Err: fmt.Errorf("missing required field")})
		case *p.ID < 1:
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{Path: path + ".id", Err: fmt.Errorf("must be at least 1, got %d", *p.ID)})
		}
		if p.Description == nil {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{Path: path + ".description", Err: fmt.Errorf("missing required field")})
		}
		if p.Completed == nil {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{Path: path + ".completed", Err: fmt.Errorf("missing required field")})
		}
	}
}

func checkDuplicateIDs(data []byte, result *ValidationResult) {
	var tasks List
	if err := json.Unmarshal(data, &tasks); err != nil {
		return
	}
	seen := make(map[int]int, len(tasks))
	for i, t := range tasks {
		if first, ok := seen[t.ID]; ok {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: fmt.Sprintf("[%d].id", i),
				Err:  fmt.Errorf("duplicate id %d (first used at [%d])", t.ID, first),
			})
			continue
		}
		seen[t.ID] = i
	}
}

func appendSchemaErrors(result *ValidationResult, err error) {
	if err == nil {
		return
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.Errors = append(result.Errors, err)
		return
	}

	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}
