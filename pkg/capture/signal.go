package capture

import "fmt"

// Tag names a control signal.
type Tag string

// String renders the tag in symbol form, e.g. ":oops".
func (t Tag) String() string {
	return ":" + string(t)
}

// Signal is a non-error control transfer raised by Throw. It
// unwinds like a panic but is not an error.
type Signal struct {
	Tag   Tag
	Value any
}

func (s *Signal) String() string {
	if s == nil {
		return "<nothing>"
	}
	if s.Value == nil {
		return s.Tag.String()
	}
	return fmt.Sprintf("%s with %v", s.Tag, s.Value)
}

// Throw raises a control signal carrying tag and an optional
// value. It does not return.
func Throw(tag Tag, value ...any) {
	s := &Signal{Tag: tag}
	if len(value) > 0 {
		s.Value = value[0]
	}
	panic(s)
}

// Catch runs fn and stops any signal with the given tag,
// returning its value. Signals with other tags, errors and
// panics keep propagating.
func Catch(tag Tag, fn func()) (value any, caught bool) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		s, ok := r.(*Signal)
		if !ok || s.Tag != tag {
			panic(r)
		}
		value, caught = s.Value, true
	}()

	fn()
	return nil, false
}
