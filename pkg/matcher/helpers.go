package matcher

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/stretchr/testify/assert"
)

// Format renders a subject or argument for failure messages.
func Format(v any) string {
	if v == nil {
		return "nil"
	}

	rv := reflect.ValueOf(v)
	if isNilable(rv.Kind()) && rv.IsNil() {
		return "nil"
	}

	switch x := v.(type) {
	case string:
		return strconv.Quote(x)
	case error:
		return fmt.Sprintf("%T(%q)", x, x.Error())
	case fmt.Stringer:
		return x.String()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = Format(rv.Index(i).Interface())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case reflect.Struct:
		return fmt.Sprintf("%#v", v)
	case reflect.Pointer:
		if rv.Elem().Kind() == reflect.Struct {
			return "&" + fmt.Sprintf("%#v", rv.Elem().Interface())
		}
	}
	return fmt.Sprintf("%v", v)
}

func isNilable(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return true
	}
	return false
}

// isAbsent reports whether v is the absence value: a nil
// interface or a nil pointer, map, slice, chan or func.
func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return isNilable(rv.Kind()) && rv.IsNil()
}

// truthy reports whether v coerces to true: everything except
// false and absence values.
func truthy(v any) bool {
	if isAbsent(v) {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// valuesEqual compares with deep equality and falls back to
// numeric value equality when both sides are numbers.
func valuesEqual(expected, actual any) bool {
	if assert.ObjectsAreEqual(expected, actual) {
		return true
	}

	ev, av := reflect.ValueOf(expected), reflect.ValueOf(actual)
	if !ev.IsValid() || !av.IsValid() {
		return false
	}
	if isNumeric(ev.Kind()) && isNumeric(av.Kind()) {
		c, ok := compareNumbers(av, ev)
		return ok && c == 0
	}
	return false
}

func isInt(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUint(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

// isNumeric covers the ordered numeric kinds.
func isNumeric(k reflect.Kind) bool {
	return isInt(k) || isUint(k) || isFloat(k)
}

// compareNumbers orders two numeric values of any kind. The
// boolean is false when the values are unordered (NaN).
func compareNumbers(a, b reflect.Value) (int, bool) {
	ak, bk := a.Kind(), b.Kind()

	switch {
	case isInt(ak) && isInt(bk):
		return cmp.Compare(a.Int(), b.Int()), true
	case isUint(ak) && isUint(bk):
		return cmp.Compare(a.Uint(), b.Uint()), true
	case isInt(ak) && isUint(bk):
		if a.Int() < 0 {
			return -1, true
		}
		return cmp.Compare(uint64(a.Int()), b.Uint()), true
	case isUint(ak) && isInt(bk):
		if b.Int() < 0 {
			return 1, true
		}
		return cmp.Compare(a.Uint(), uint64(b.Int())), true
	}

	switch {
	case isFloat(ak) && isFloat(bk):
	case isFloat(bk):
		return compareWithFloat(a, b.Float())
	case isFloat(ak):
		c, ok := compareWithFloat(b, a.Float())
		return -c, ok
	}

	af, bf := a.Float(), b.Float()
	switch {
	case af < bf:
		return -1, true
	case af > bf:
		return 1, true
	case af == bf:
		return 0, true
	}
	return 0, false
}

const (
	two63 = float64(1 << 63)
	two64 = float64(1 << 64)
)

// compareWithFloat orders an integer value against f exactly.
// Converting the integer to float64 would round above 2^53.
func compareWithFloat(v reflect.Value, f float64) (int, bool) {
	if math.IsNaN(f) {
		return 0, false
	}

	var c int
	whole := math.Trunc(f)
	if isInt(v.Kind()) {
		switch {
		case f >= two63:
			return -1, true
		case f < -two63:
			return 1, true
		}
		c = cmp.Compare(v.Int(), int64(whole))
	} else {
		switch {
		case f < 0:
			return 1, true
		case f >= two64:
			return -1, true
		}
		c = cmp.Compare(v.Uint(), uint64(whole))
	}
	if c != 0 {
		return c, true
	}

	switch {
	case f > whole:
		return -1, true
	case f < whole:
		return 1, true
	}
	return 0, true
}

// sign returns -1, 0 or 1 for a numeric value.
func sign(v reflect.Value) int {
	switch k := v.Kind(); {
	case isInt(k):
		return cmp.Compare(v.Int(), 0)
	case isUint(k):
		if v.Uint() == 0 {
			return 0
		}
		return 1
	default:
		return cmp.Compare(v.Float(), 0)
	}
}

// asText coerces a subject to text for pattern matching.
func asText(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}
