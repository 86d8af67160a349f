package matcher

type boolMatcher struct {
	want bool
}

// BeTrue matches only the bool literal true. Truthy values of
// other types do not match.
func BeTrue() Matcher { return &boolMatcher{want: true} }

// BeFalse matches only the bool literal false. nil, 0 and empty
// values do not match.
func BeFalse() Matcher { return &boolMatcher{want: false} }

func (m *boolMatcher) Name() string {
	if m.want {
		return "be_true"
	}
	return "be_false"
}

func (m *boolMatcher) Match(subject any) (bool, error) {
	b, ok := subject.(bool)
	return ok && b == m.want, nil
}

func (m *boolMatcher) Describe(subject any, negated bool) string {
	return expectation(subject, negated, m.String())
}

func (m *boolMatcher) String() string {
	if m.want {
		return "be true"
	}
	return "be false"
}

type truthMatcher struct {
	want bool
}

// BeTruthy matches anything except false and nil-like values.
func BeTruthy() Matcher { return &truthMatcher{want: true} }

// BeFalsy matches false and nil-like values.
func BeFalsy() Matcher { return &truthMatcher{want: false} }

// BeFalsey is BeFalsy.
func BeFalsey() Matcher { return BeFalsy() }

func (m *truthMatcher) Name() string {
	if m.want {
		return "be_truthy"
	}
	return "be_falsey"
}

func (m *truthMatcher) Match(subject any) (bool, error) {
	return truthy(subject) == m.want, nil
}

func (m *truthMatcher) Describe(subject any, negated bool) string {
	return expectation(subject, negated, m.String())
}

func (m *truthMatcher) String() string {
	if m.want {
		return "be truthy"
	}
	return "be falsey"
}
