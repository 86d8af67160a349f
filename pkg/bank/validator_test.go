package bank

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.matchers/pkg/assertion"
	"digital.vasic.matchers/pkg/matcher"
)

func TestValidateFile_Valid(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "valid.yaml", suiteYAML)

	errors := ValidateFile(path)
	assert.Empty(t, errors)
}

func TestValidateFile_MissingVersion(t *testing.T) {
	dir := t.TempDir()
	path := createTestSuiteFile(t, dir, SuiteFile{
		Name:     "no-version",
		Subjects: map[string]any{"n": 1},
		Assertions: []assertion.Definition{
			{Type: "eq", Target: "n", Value: 1},
		},
	})

	errors := ValidateFile(path)
	require.Len(t, errors, 1)
	assert.Equal(t, "version", errors[0].Field)
	assert.Equal(t, -1, errors[0].Index)
	assert.Equal(t, "version: version is required", errors[0].Error())
}

func TestValidateFile_NotFound(t *testing.T) {
	errors := ValidateFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Len(t, errors, 1)
	assert.Equal(t, "file", errors[0].Field)
}

func TestValidateFile_BadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", "name: [")

	errors := ValidateFile(path)
	require.Len(t, errors, 1)
	assert.Equal(t, "yaml", errors[0].Field)
}

func TestValidate_Assertions(t *testing.T) {
	file := &SuiteFile{
		Version:  "1.0",
		Name:     "broken",
		Subjects: map[string]any{"n": 1},
		Assertions: []assertion.Definition{
			{Type: "eq", Target: "n", Value: 1},
			{Target: "n"},
			{Type: "eq", Value: 1},
			{Type: "eq", Target: "missing", Value: 1},
			{Type: "be_gt", Target: "n"},
			{Type: "frobnicate", Target: "n"},
		},
	}

	errors := Validate(file, assertion.NewEngine())
	require.Len(t, errors, 5)

	assert.Equal(t, "assertions[1].type: matcher type is required", errors[0].Error())
	assert.Equal(t, "assertions[2].target: target is required", errors[1].Error())
	assert.Equal(t, "assertions[3].target: unknown subject: missing", errors[2].Error())

	assert.Equal(t, 4, errors[3].Index)
	assert.Contains(t, errors[3].Message, "requires a value")
	assert.Equal(t, 5, errors[4].Index)
	assert.Contains(t, errors[4].Message, "unknown matcher type")
}

func TestValidate_NilBuilderSkipsBuild(t *testing.T) {
	file := &SuiteFile{
		Version:  "1.0",
		Name:     "unchecked",
		Subjects: map[string]any{"n": 1},
		Assertions: []assertion.Definition{
			{Type: "frobnicate", Target: "n"},
		},
	}

	assert.Empty(t, Validate(file, nil))
}

func TestValidateFileWith_CustomTypes(t *testing.T) {
	engine := assertion.NewEngine()
	require.NoError(t, engine.Register("same_as",
		func(def assertion.Definition) (matcher.Matcher, error) {
			return matcher.Equal(def.Value), nil
		},
	))

	path := createTestSuiteFile(t, t.TempDir(), SuiteFile{
		Version:  "1.0",
		Name:     "custom",
		Subjects: map[string]any{"n": 2},
		Assertions: []assertion.Definition{
			{Type: "same_as", Target: "n", Value: 2},
		},
	})

	assert.NotEmpty(t, ValidateFile(path))
	assert.Empty(t, ValidateFileWith(path, engine))
}
