package bank

import (
	"fmt"
	"os"

	"digital.vasic.matchers/pkg/assertion"
	"digital.vasic.matchers/pkg/matcher"
)

// MatcherBuilder builds matchers from definitions.
// *assertion.DefaultEngine implements it.
type MatcherBuilder interface {
	Build(def assertion.Definition) (matcher.Matcher, error)
}

// ValidationError represents a validation issue found in a suite
// file.
type ValidationError struct {
	Field   string
	Message string
	Index   int // -1 if not applicable
}

func (e ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("assertions[%d].%s: %s", e.Index, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateFile validates a suite file against the built-in
// matcher types and returns all errors found.
func ValidateFile(path string) []ValidationError {
	return ValidateFileWith(path, assertion.NewEngine())
}

// ValidateFileWith is ValidateFile with the matcher types known
// to builder.
func ValidateFileWith(
	path string,
	builder MatcherBuilder,
) []ValidationError {
	data, err := os.ReadFile(path)
	if err != nil {
		return []ValidationError{{Field: "file", Message: err.Error(), Index: -1}}
	}

	file, err := Decode(data)
	if err != nil {
		return []ValidationError{{Field: "yaml", Message: err.Error(), Index: -1}}
	}

	return Validate(file, builder)
}

// Validate checks suite metadata, that every assertion names a
// type and a known target, and that its matcher can be built.
// A nil builder skips the build check.
func Validate(
	file *SuiteFile,
	builder MatcherBuilder,
) []ValidationError {
	var errors []ValidationError

	if file.Version == "" {
		errors = append(errors, ValidationError{
			Field: "version", Message: "version is required", Index: -1,
		})
	}
	if file.Name == "" {
		errors = append(errors, ValidationError{
			Field: "name", Message: "suite name is required", Index: -1,
		})
	}

	for i, def := range file.Assertions {
		if def.Type == "" {
			errors = append(errors, ValidationError{
				Field: "type", Message: "matcher type is required", Index: i,
			})
		}

		if def.Target == "" {
			errors = append(errors, ValidationError{
				Field: "target", Message: "target is required", Index: i,
			})
		} else if _, ok := file.Subjects[def.Target]; !ok {
			errors = append(errors, ValidationError{
				Field:   "target",
				Message: fmt.Sprintf("unknown subject: %s", def.Target),
				Index:   i,
			})
		}

		if builder == nil || def.Type == "" {
			continue
		}
		if _, err := builder.Build(def); err != nil {
			errors = append(errors, ValidationError{
				Field: "type", Message: err.Error(), Index: i,
			})
		}
	}

	return errors
}
