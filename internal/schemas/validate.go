// Package schemas validates JSON artifacts written by the CLI against the JSON Schemas in schemas/.
package schemas

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// RankedPublicationsSchema is the repo-relative path of the rank command's output schema
const RankedPublicationsSchema = "schemas/ranked_publications.schema.json"

// maxParentLevels bounds how far ResolveSchemaPath climbs from the working directory
const maxParentLevels = 3

// ResolveSchemaPath finds relativePath from the working directory or one of its parents.
// Commands and tests run from different directories, so the repo root is not fixed.
// Returns the absolute path of the first match, or "" if none exists.
func ResolveSchemaPath(relativePath string) string {
	candidate := relativePath
	for i := 0; i <= maxParentLevels; i++ {
		if abs, err := filepath.Abs(candidate); err == nil {
			if _, err := os.Stat(abs); err == nil {
				return abs
			}
		}
		candidate = filepath.Join("..", candidate)
	}
	return ""
}

// FieldError is a single schema violation at a JSON field
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every violation found in a document
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError is returned when the schema or the document cannot be loaded
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateJSON validates the JSON file at jsonPath against the schema file at schemaPath
func ValidateJSON(schemaPath, jsonPath string) error {
	schemaAbs, err := existing(schemaPath, "schema")
	if err != nil {
		return err
	}
	jsonAbs, err := existing(jsonPath, "JSON")
	if err != nil {
		return err
	}
	return validate(schemaAbs,
		gojsonschema.NewReferenceLoader("file://"+schemaAbs),
		gojsonschema.NewReferenceLoader("file://"+jsonAbs))
}

// ValidateBytes validates an in-memory JSON document against the schema file at schemaPath
func ValidateBytes(schemaPath string, document []byte) error {
	schemaAbs, err := existing(schemaPath, "schema")
	if err != nil {
		return err
	}
	return validate(schemaAbs,
		gojsonschema.NewReferenceLoader("file://"+schemaAbs),
		gojsonschema.NewBytesLoader(document))
}

func existing(path, kind string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s path: %w", kind, err)
	}
	if _, err := os.Stat(abs); os.IsNotExist(err) {
		return "", fmt.Errorf("%s file not found: %s", kind, abs)
	}
	return abs, nil
}

func validate(schemaPath string, schema, document gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(schema, document)
	if err != nil {
		return &SchemaLoadError{Path: schemaPath, Message: "schema or document could not be loaded", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return verr
}
