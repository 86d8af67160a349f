package assertion

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseAssertionString parses a compact assertion string of the
// form "type:value" into its components. If no colon is present
// the entire string is treated as the type and value is nil.
//
// Examples:
//
//	"include:tuts"   -> ("include", "tuts")
//	"be_truthy"      -> ("be_truthy", nil)
//	"be_gt:2"        -> ("be_gt", "2")
func ParseAssertionString(
	s string,
) (matcherType string, value any) {
	parts := strings.SplitN(s, ":", 2)
	matcherType = parts[0]

	if len(parts) > 1 {
		value = parts[1]
	}

	return
}

// ParseDefinition turns a compact assertion string into a
// Definition for target. A leading "!" negates it. The value is
// decoded as a YAML scalar or flow collection, so "be_gt:2"
// carries the integer 2 and "start_with:[one, two]" a sequence.
// Patterns for "match" are kept verbatim.
//
// Examples:
//
//	"eq:3"                 -> {Type: "eq", Value: 3}
//	"!be:5"                -> {Type: "be", Value: 5, Negate: true}
//	"match:^\w+@\w+$"      -> {Type: "match", Value: `^\w+@\w+$`}
//	"start_with:[one, two]" -> {Type: "start_with", Values: [one two]}
func ParseDefinition(target, s string) Definition {
	def := Definition{Target: target}

	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "!") {
		def.Negate = true
		s = strings.TrimSpace(s[1:])
	}

	matcherType, raw := ParseAssertionString(s)
	def.Type = strings.TrimSpace(matcherType)

	text, ok := raw.(string)
	if !ok {
		return def
	}
	if normalizeType(def.Type) == "match" {
		def.Value = text
		return def
	}

	switch v := decodeScalar(text).(type) {
	case []any:
		def.Values = v
	default:
		def.Value = v
	}
	return def
}

// decodeScalar decodes text as YAML, falling back to the raw
// text when it does not parse or decodes to a mapping.
func decodeScalar(text string) any {
	var v any
	if err := yaml.Unmarshal([]byte(text), &v); err != nil {
		return text
	}
	switch v.(type) {
	case map[string]any, nil:
		return text
	}
	return v
}
