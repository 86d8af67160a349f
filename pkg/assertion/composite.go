package assertion

import (
	"fmt"

	"digital.vasic.matchers/pkg/matcher"
)

// AllPassComposite evaluates every definition and summarises
// them into one Result that passes only if all passed. An
// errored result makes the composite errored.
func AllPassComposite(
	engine Engine,
	defs []Definition,
	subjects map[string]any,
) Result {
	results := engine.EvaluateAll(defs, subjects)

	for _, r := range results {
		if r.Err != nil {
			composite := Result{
				Type: "all_pass",
				Message: fmt.Sprintf(
					"assertion '%s' on target '%s' errored",
					r.Type, r.Target,
				),
			}
			composite.setErr(r.Err)
			return composite
		}
		if !r.Passed {
			return Result{
				Type:   "all_pass",
				Passed: false,
				Message: fmt.Sprintf(
					"assertion '%s' on target '%s' failed: %s",
					r.Type, r.Target, r.Message,
				),
			}
		}
	}

	return Result{
		Type:   "all_pass",
		Passed: true,
		Message: fmt.Sprintf(
			"all %d assertions passed", len(results),
		),
	}
}

// AnyPassComposite evaluates every definition and passes if at
// least one passed. Errored results count as not passed.
func AnyPassComposite(
	engine Engine,
	defs []Definition,
	subjects map[string]any,
) Result {
	results := engine.EvaluateAll(defs, subjects)

	for _, r := range results {
		if r.Passed {
			return Result{
				Type:   "any_pass",
				Passed: true,
				Message: fmt.Sprintf(
					"assertion '%s' on target '%s' passed",
					r.Type, r.Target,
				),
			}
		}
	}

	return Result{
		Type:   "any_pass",
		Passed: false,
		Message: fmt.Sprintf(
			"none of %d assertions passed",
			len(results),
		),
	}
}

// CompositeAllPass returns a Builder whose matcher requires
// every sub-definition to hold for the same subject. Targets of
// the sub-definitions are ignored.
func CompositeAllPass(
	engine *DefaultEngine,
	subDefs []Definition,
) Builder {
	return func(_ Definition) (matcher.Matcher, error) {
		ms, err := buildAll(engine, subDefs)
		if err != nil {
			return nil, err
		}
		return matcher.And(ms...), nil
	}
}

// CompositeAnyPass returns a Builder whose matcher requires at
// least one sub-definition to hold.
func CompositeAnyPass(
	engine *DefaultEngine,
	subDefs []Definition,
) Builder {
	return func(_ Definition) (matcher.Matcher, error) {
		ms, err := buildAll(engine, subDefs)
		if err != nil {
			return nil, err
		}
		return matcher.Or(ms...), nil
	}
}

func buildAll(
	engine *DefaultEngine,
	defs []Definition,
) ([]matcher.Matcher, error) {
	ms := make([]matcher.Matcher, 0, len(defs))
	for _, def := range defs {
		m, err := engine.Build(def)
		if err != nil {
			return nil, fmt.Errorf("composite %s: %w", def.Type, err)
		}
		if def.Negate {
			m = matcher.Not(m)
		}
		ms = append(ms, m)
	}
	return ms, nil
}
