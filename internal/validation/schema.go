// Package validation checks serialized snapshots against the published JSON
// schema so rendering code can rely on the contract without re-validating.
package validation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed snapshot_schema.json
var snapshotSchemaJSON []byte

// ErrSnapshotInvalid wraps every validation failure.
var ErrSnapshotInvalid = errors.New("validation: snapshot does not match schema")

var (
	compileOnce   sync.Once
	compiled      *jsonschema.Schema
	compileFailed error
)

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// SnapshotValidationError surfaces validation issues with schema-aware context.
type SnapshotValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *SnapshotValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSnapshotInvalid.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *SnapshotValidationError) Unwrap() error {
	return ErrSnapshotInvalid
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var snapErr *SnapshotValidationError
	if errors.As(err, &snapErr) && snapErr != nil {
		return snapErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// ValidateSnapshotJSON validates a serialized snapshot against the embedded
// schema.
func ValidateSnapshotJSON(data []byte) error {
	schema, err := snapshotSchema()
	if err != nil {
		return err
	}

	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return &SnapshotValidationError{Cause: err}
	}

	if err := schema.Validate(payload); err != nil {
		return &SnapshotValidationError{
			Issues: Issues(err),
			Cause:  err,
		}
	}
	return nil
}

func snapshotSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("snapshot_schema.json", bytes.NewReader(snapshotSchemaJSON)); err != nil {
			compileFailed = err
			return
		}
		compiled, compileFailed = compiler.Compile("snapshot_schema.json")
	})
	return compiled, compileFailed
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
