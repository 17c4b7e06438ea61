package todo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{
			name:    "empty array",
			data:    `[]`,
			wantErr: false,
		},
		{
			name:    "empty file",
			data:    ``,
			wantErr: false,
		},
		{
			name:    "whitespace only",
			data:    " \n\t\n",
			wantErr: false,
		},
		{
			name:    "valid task",
			data:    `[{"id": 1, "description": "a", "completed": false, "created_at": "2025-08-02 14:00:00", "added_at": "2025-08-02 14:00:00"}]`,
			wantErr: false,
		},
		{
			name:    "not an array",
			data:    `{"tasks": []}`,
			wantErr: true,
		},
		{
			name:    "missing id",
			data:    `[{"description": "a", "completed": false, "created_at": "2025-08-02 14:00:00"}]`,
			wantErr: true,
		},
		{
			name:    "zero id",
			data:    `[{"id": 0, "description": "a", "completed": false, "created_at": "2025-08-02 14:00:00"}]`,
			wantErr: true,
		},
		{
			name:    "completed is a string",
			data:    `[{"id": 1, "description": "a", "completed": "no", "created_at": "2025-08-02 14:00:00"}]`,
			wantErr: true,
		},
		{
			name:    "bad timestamp",
			data:    `[{"id": 1, "description": "a", "completed": false, "created_at": "yesterday"}]`,
			wantErr: true,
		},
		{
			name: "duplicate ids",
			data: `[
				{"id": 1, "description": "a", "completed": false, "created_at": "2025-08-02 14:00:00"},
				{"id": 1, "description": "b", "completed": false, "created_at": "2025-08-02 14:00:00"}
			]`,
			wantErr: true,
		},
		{
			name:    "invalid JSON",
			data:    `[{`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate([]byte(tt.data), ValidationOptions{})
			if result.Valid == tt.wantErr {
				t.Errorf("Validate() valid = %v, want error %v (errors: %v)", result.Valid, tt.wantErr, result.Errors)
			}
		})
	}
}

func TestValidateUsesEmbeddedSchema(t *testing.T) {
	result := Validate([]byte(`[]`), ValidationOptions{})
	if !result.UsedSchema {
		t.Errorf("expected embedded schema to be used, warnings: %v", result.Warnings)
	}
}

func TestValidateErrorPaths(t *testing.T) {
	data := `[
		{"id": 1, "description": "a", "completed": false, "created_at": "2025-08-02 14:00:00"},
		{"id": 2, "description": "b", "completed": false, "created_at": "soon"}
	]`
	result := Validate([]byte(data), ValidationOptions{})
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	found := false
	for _, err := range result.Errors {
		if strings.HasPrefix(err.Error(), "[1].created_at") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an error at [1].created_at, got %v", result.Errors)
	}
}

func TestValidateMissingSchemaFallsBack(t *testing.T) {
	opts := ValidationOptions{SchemaPath: filepath.Join(t.TempDir(), "nope.json")}

	result := Validate([]byte(`[{"id": 1, "description": "a", "completed": false}]`), opts)
	if result.UsedSchema {
		t.Error("expected minimal validation when schema file is missing")
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning about the missing schema")
	}
	if !result.Valid {
		t.Errorf("expected valid result, got %v", result.Errors)
	}

	result = Validate([]byte(`[{"description": "a"}]`), opts)
	if result.Valid {
		t.Error("expected minimal checks to reject a task without id and completed")
	}
	if len(result.Errors) != 2 {
		t.Errorf("expected 2 errors, got %v", result.Errors)
	}
}

func TestValidateSchemaOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strict.schema.json")
	strict := `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "array",
		"maxItems": 1
	}`
	if err := os.WriteFile(path, []byte(strict), 0644); err != nil {
		t.Fatal(err)
	}

	result := Validate([]byte(`[1, 2]`), ValidationOptions{SchemaPath: path})
	if !result.UsedSchema {
		t.Fatalf("expected override schema to be used, warnings: %v", result.Warnings)
	}
	if result.Valid {
		t.Error("expected maxItems violation")
	}
}

func TestValidateSavedFile(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "one")
	mustAdd(t, s, "two")

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if result := Validate(data, ValidationOptions{}); !result.Valid {
		t.Errorf("a file written by Store should validate, got %v", result.Errors)
	}
}

func TestValidateAgreesWithLoadOnEmptyFile(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(s.Path(), []byte("\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tasks, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("Load() = %v, want empty list", tasks)
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if result := Validate(data, ValidationOptions{}); !result.Valid {
		t.Errorf("Validate() errors = %v, want valid", result.Errors)
	}
}
