package matcher

import "strings"

type compoundMatcher struct {
	matchers []Matcher
	either   bool
}

// And matches when every matcher matches. The first evaluation
// error aborts the match.
func And(matchers ...Matcher) Matcher {
	return &compoundMatcher{matchers: matchers}
}

// Or matches when at least one matcher matches.
func Or(matchers ...Matcher) Matcher {
	return &compoundMatcher{matchers: matchers, either: true}
}

func (m *compoundMatcher) Name() string {
	if m.either {
		return "or"
	}
	return "and"
}

func (m *compoundMatcher) Match(subject any) (bool, error) {
	for _, sub := range m.matchers {
		ok, err := sub.Match(subject)
		if err != nil {
			return false, err
		}
		if ok && m.either {
			return true, nil
		}
		if !ok && !m.either {
			return false, nil
		}
	}
	return !m.either, nil
}

// Describe lists the parts responsible for the unwanted result.
func (m *compoundMatcher) Describe(subject any, negated bool) string {
	var parts []string
	for _, sub := range m.matchers {
		ok, err := sub.Match(subject)
		if err != nil {
			continue
		}
		if negated == ok {
			parts = append(parts, sub.Describe(subject, negated))
		}
	}
	if len(parts) == 0 {
		return expectation(subject, negated, m.String())
	}
	return strings.Join(parts, "\n...and:\n")
}

func (m *compoundMatcher) String() string {
	parts := make([]string, len(m.matchers))
	for i, sub := range m.matchers {
		parts[i] = sub.String()
	}
	sep := " and "
	if m.either {
		sep = " or "
	}
	return strings.Join(parts, sep)
}

type notMatcher struct {
	inner Matcher
}

// Not inverts m. Describe flips the negation passed to m, so
// messages still read naturally.
func Not(m Matcher) Matcher {
	return &notMatcher{inner: m}
}

func (m *notMatcher) Name() string { return "not_" + NameOf(m.inner) }

func (m *notMatcher) Match(subject any) (bool, error) {
	ok, err := m.inner.Match(subject)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

func (m *notMatcher) Describe(subject any, negated bool) string {
	return m.inner.Describe(subject, !negated)
}

func (m *notMatcher) String() string { return "not " + m.inner.String() }
