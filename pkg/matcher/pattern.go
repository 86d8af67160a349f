package matcher

import "regexp"

type patternMatcher struct {
	re *regexp.Regexp
}

// MatchRegexp matches subjects whose text contains a match for
// pattern. The search is unanchored: a pattern without ^ and $
// passes on a partial match.
func MatchRegexp(pattern string) (Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &Error{
			Kind:    KindInvalidArgument,
			Matcher: "match",
			Message: "invalid pattern",
			Err:     err,
		}
	}
	return &patternMatcher{re: re}, nil
}

// MatchPattern is MatchRegexp for an already compiled expression.
func MatchPattern(re *regexp.Regexp) Matcher {
	return &patternMatcher{re: re}
}

func (m *patternMatcher) Name() string { return "match" }

func (m *patternMatcher) Match(subject any) (bool, error) {
	if isAbsent(subject) {
		return false, nil
	}
	return m.re.MatchString(asText(subject)), nil
}

func (m *patternMatcher) Describe(subject any, negated bool) string {
	return expectation(subject, negated, m.String())
}

func (m *patternMatcher) String() string {
	return "match /" + m.re.String() + "/"
}
