package assertion

import (
	"regexp"
	"strings"

	"digital.vasic.matchers/pkg/matcher"
)

// registerDefaults registers the built-in matcher builders.
func (e *DefaultEngine) registerDefaults() {
	e.builders["eq"] = buildEqual
	e.builders["equal"] = buildEqual
	e.builders["be"] = buildBe
	e.builders["be_gt"] = buildCompare(">")
	e.builders["be_gte"] = buildCompare(">=")
	e.builders["be_lt"] = buildCompare("<")
	e.builders["be_lte"] = buildCompare("<=")
	e.builders["match"] = buildMatch
	e.builders["be_an_instance_of"] = buildType(matcher.BeInstanceOf)
	e.builders["be_instance_of"] = buildType(matcher.BeInstanceOf)
	e.builders["be_a"] = buildType(matcher.BeA)
	e.builders["be_an"] = buildType(matcher.BeA)
	e.builders["be_kind_of"] = buildType(matcher.BeA)
	e.builders["be_true"] = buildConst(matcher.BeTrue)
	e.builders["be_false"] = buildConst(matcher.BeFalse)
	e.builders["be_truthy"] = buildConst(matcher.BeTruthy)
	e.builders["be_falsey"] = buildConst(matcher.BeFalsy)
	e.builders["be_falsy"] = buildConst(matcher.BeFalsy)
	e.builders["raise_error"] = buildRaiseError
	e.builders["throw_symbol"] = buildThrowSymbol
	e.builders["include"] = buildInclude
	e.builders["start_with"] = buildEdge(matcher.StartWith)
	e.builders["end_with"] = buildEdge(matcher.EndWith)
}

// buildEqual matches with value equality.
func buildEqual(def Definition) (matcher.Matcher, error) {
	return matcher.Equal(def.Value), nil
}

// buildBe matches with identity.
func buildBe(def Definition) (matcher.Matcher, error) {
	return matcher.Be(def.Value), nil
}

// buildCompare returns a builder for an ordering operator whose
// threshold is Value.
func buildCompare(op string) Builder {
	return func(def Definition) (matcher.Matcher, error) {
		if def.Value == nil {
			return nil, missingValue(def)
		}
		return matcher.BeComparedTo(op, def.Value)
	}
}

// buildMatch compiles Value as an unanchored regular
// expression.
func buildMatch(def Definition) (matcher.Matcher, error) {
	switch p := def.Value.(type) {
	case string:
		return matcher.MatchRegexp(p)
	case *regexp.Regexp:
		return matcher.MatchPattern(p), nil
	case nil:
		return nil, missingValue(def)
	default:
		return nil, matcher.NewError(
			matcher.KindInvalidArgument, def.Type,
			"pattern must be a string, got %T", def.Value,
		)
	}
}

// buildType resolves Value as a type name, or accepts a
// matcher.Type directly.
func buildType(
	ctor func(matcher.Type) matcher.Matcher,
) Builder {
	return func(def Definition) (matcher.Matcher, error) {
		t, err := resolveType(def, def.Value)
		if err != nil {
			return nil, err
		}
		return ctor(t), nil
	}
}

// buildConst returns a builder for an argument-free matcher.
func buildConst(ctor func() matcher.Matcher) Builder {
	return func(def Definition) (matcher.Matcher, error) {
		if len(def.Args()) > 0 {
			return nil, matcher.NewError(
				matcher.KindInvalidArity, def.Type,
				"takes no arguments, got %d", len(def.Args()),
			)
		}
		return ctor(), nil
	}
}

// buildRaiseError accepts an optional error type name followed
// by a message, or a message alone: values [error, "boom"] or
// value "boom".
func buildRaiseError(def Definition) (matcher.Matcher, error) {
	args := append([]any(nil), def.Args()...)
	if len(args) == 2 {
		if name, ok := args[0].(string); ok {
			t, err := resolveType(def, name)
			if err != nil {
				return nil, err
			}
			args[0] = t
		}
	}
	return matcher.RaiseError(args...)
}

// buildThrowSymbol passes tag and optional value through; a
// definition without a tag fails with InvalidArity. A leading
// colon on the tag is dropped, so ":oops" and "oops" agree.
func buildThrowSymbol(def Definition) (matcher.Matcher, error) {
	args := append([]any(nil), def.Args()...)
	if len(args) > 0 {
		if tag, ok := args[0].(string); ok {
			args[0] = strings.TrimPrefix(tag, ":")
		}
	}
	return matcher.ThrowSignal(args...)
}

// buildInclude requires at least one element.
func buildInclude(def Definition) (matcher.Matcher, error) {
	args := def.Args()
	if len(args) == 0 {
		return nil, matcher.NewError(
			matcher.KindInvalidArity, def.Type,
			"wrong number of arguments (given 0, expected 1+)",
		)
	}
	return matcher.Include(args[0], args[1:]...), nil
}

// buildEdge treats Values as a sequence and Value as a single
// element or sequence.
func buildEdge(ctor func(any) matcher.Matcher) Builder {
	return func(def Definition) (matcher.Matcher, error) {
		if len(def.Values) > 0 {
			return ctor(def.Values), nil
		}
		if def.Value == nil {
			return nil, missingValue(def)
		}
		return ctor(def.Value), nil
	}
}

func resolveType(def Definition, v any) (matcher.Type, error) {
	switch t := v.(type) {
	case matcher.Type:
		return t, nil
	case string:
		if resolved, ok := matcher.LookupType(t); ok {
			return resolved, nil
		}
		return nil, matcher.NewError(
			matcher.KindInvalidArgument, def.Type,
			"unknown type %q", t,
		)
	case nil:
		return nil, missingValue(def)
	default:
		return nil, matcher.NewError(
			matcher.KindInvalidArgument, def.Type,
			"type must be a name, got %T", v,
		)
	}
}

func missingValue(def Definition) error {
	return matcher.NewError(
		matcher.KindInvalidArity, def.Type,
		"requires a value for target %q", def.Target,
	)
}
