package field

import (
	"cmp"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hadi77ir/go-memquery/query"
)

// Accessor builds selectors, predicates and comparators that read fields of
// T by name. Structs are matched by field name (case-insensitive) or by json
// and bson tag, maps by key. Dotted names descend into nested values.
type Accessor[T any] struct {
	options *Options
}

// New creates an accessor. nil options allow every field and use reflection.
func New[T any](opts *Options) *Accessor[T] {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Accessor[T]{options: opts}
}

// Value returns the named field of item
func (a *Accessor[T]) Value(item T, name string) (interface{}, error) {
	if err := a.check(name); err != nil {
		return nil, err
	}
	return a.value(item, name)
}

// Key returns a group-by selector for the named field. Items without the
// field get a nil key.
func (a *Accessor[T]) Key(name string) (query.Selector[T, any], error) {
	if err := a.check(name); err != nil {
		return nil, err
	}
	return func(item T) any {
		v, err := a.value(item, name)
		if err != nil {
			return nil
		}
		return v
	}, nil
}

// Where returns a predicate comparing the named field against value. Items
// without the field never match. The field, operator and value are checked
// here so that evaluation cannot fail.
func (a *Accessor[T]) Where(name string, op Operator, value interface{}) (query.Predicate[T], error) {
	if err := a.check(name); err != nil {
		return nil, err
	}
	match, err := a.matcher(op, value)
	if err != nil {
		return nil, NewFieldError(name, err)
	}
	return func(item T) bool {
		v, err := a.value(item, name)
		if err != nil {
			return false
		}
		return match(v)
	}, nil
}

// Ascending returns a comparator ordering items by the named field. Items
// without the field sort first.
func (a *Accessor[T]) Ascending(name string) (query.Comparator[T], error) {
	if err := a.check(name); err != nil {
		return nil, err
	}
	return func(x, y T) int {
		return compareValues(a.valueOrNil(x, name), a.valueOrNil(y, name))
	}, nil
}

// Descending returns the reverse of Ascending
func (a *Accessor[T]) Descending(name string) (query.Comparator[T], error) {
	asc, err := a.Ascending(name)
	if err != nil {
		return nil, err
	}
	return func(x, y T) int { return asc(y, x) }, nil
}

func (a *Accessor[T]) check(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewFieldError(name, ErrInvalidFieldName)
	}
	// Check if field is allowed (security check)
	if !a.options.IsFieldAllowed(name) {
		return NewFieldError(name, ErrFieldNotAllowed)
	}
	return nil
}

func (a *Accessor[T]) valueOrNil(item T, name string) interface{} {
	v, err := a.value(item, name)
	if err != nil {
		return nil
	}
	return v
}

func (a *Accessor[T]) value(item T, name string) (interface{}, error) {
	if a.options.Getter != nil {
		v, err := a.options.Getter(item, name)
		if err != nil {
			return nil, NewFieldError(name, err)
		}
		return v, nil
	}

	v, err := lookup(reflect.ValueOf(item), name)
	if err == nil || !strings.Contains(name, ".") {
		return v, err
	}

	// descend through dotted paths
	var current interface{} = item
	for _, part := range strings.Split(name, ".") {
		current, err = lookup(reflect.ValueOf(current), part)
		if err != nil {
			return nil, NewFieldError(name, ErrFieldNotFound)
		}
	}
	return current, nil
}

// lookup gets a field value from a struct or map
func lookup(item reflect.Value, name string) (interface{}, error) {
	// Dereference pointers and interfaces
	for item.Kind() == reflect.Ptr || item.Kind() == reflect.Interface {
		if item.IsNil() {
			return nil, NewFieldError(name, ErrFieldNotFound)
		}
		item = item.Elem()
	}

	switch item.Kind() {
	case reflect.Struct:
		typ := item.Type()
		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			if strings.EqualFold(field.Name, name) {
				return item.Field(i).Interface(), nil
			}
			if tag := field.Tag.Get("json"); tag != "" && strings.EqualFold(strings.Split(tag, ",")[0], name) {
				return item.Field(i).Interface(), nil
			}
			if tag := field.Tag.Get("bson"); tag != "" && strings.EqualFold(strings.Split(tag, ",")[0], name) {
				return item.Field(i).Interface(), nil
			}
		}

	case reflect.Map:
		if item.Type().Key().Kind() != reflect.String {
			break
		}
		// Try exact match first
		val := item.MapIndex(reflect.ValueOf(name).Convert(item.Type().Key()))
		if val.IsValid() {
			return val.Interface(), nil
		}
		iter := item.MapRange()
		for iter.Next() {
			if strings.EqualFold(iter.Key().String(), name) {
				return iter.Value().Interface(), nil
			}
		}
	}

	return nil, NewFieldError(name, ErrFieldNotFound)
}

// matcher prepares the comparison for op so that patterns are compiled once
func (a *Accessor[T]) matcher(op Operator, value interface{}) (func(interface{}) bool, error) {
	switch op {
	case OpEqual:
		return func(v interface{}) bool { return equalValues(v, value) }, nil
	case OpNotEqual:
		return func(v interface{}) bool { return !equalValues(v, value) }, nil
	case OpGreaterThan:
		return func(v interface{}) bool { return compareValues(v, value) > 0 }, nil
	case OpGreaterThanOrEqual:
		return func(v interface{}) bool { return compareValues(v, value) >= 0 }, nil
	case OpLessThan:
		return func(v interface{}) bool { return compareValues(v, value) < 0 }, nil
	case OpLessThanOrEqual:
		return func(v interface{}) bool { return compareValues(v, value) <= 0 }, nil

	case OpLike, OpNotLike:
		re, err := likePattern(fmt.Sprintf("%v", value))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidOperator, err)
		}
		negate := op == OpNotLike
		return func(v interface{}) bool { return re.MatchString(fmt.Sprintf("%v", v)) != negate }, nil

	case OpContains, OpIContains:
		sub := fmt.Sprintf("%v", value)
		if op == OpIContains {
			sub = strings.ToLower(sub)
			return func(v interface{}) bool {
				return strings.Contains(strings.ToLower(fmt.Sprintf("%v", v)), sub)
			}, nil
		}
		return func(v interface{}) bool { return strings.Contains(fmt.Sprintf("%v", v), sub) }, nil

	case OpStartsWith:
		prefix := fmt.Sprintf("%v", value)
		return func(v interface{}) bool { return strings.HasPrefix(fmt.Sprintf("%v", v), prefix) }, nil

	case OpEndsWith:
		suffix := fmt.Sprintf("%v", value)
		return func(v interface{}) bool { return strings.HasSuffix(fmt.Sprintf("%v", v), suffix) }, nil

	case OpRegex:
		if a.options.DisableRegex {
			return nil, ErrRegexNotSupported
		}
		re, err := regexp.Compile(fmt.Sprintf("%v", value))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidOperator, err)
		}
		return func(v interface{}) bool { return re.MatchString(fmt.Sprintf("%v", v)) }, nil

	case OpIn, OpNotIn:
		arr := reflect.ValueOf(value)
		if arr.Kind() != reflect.Slice && arr.Kind() != reflect.Array {
			return nil, fmt.Errorf("%w: %s needs a slice, got %T", ErrInvalidOperator, op, value)
		}
		set := make([]interface{}, arr.Len())
		for i := range set {
			set[i] = arr.Index(i).Interface()
		}
		negate := op == OpNotIn
		return func(v interface{}) bool {
			for _, candidate := range set {
				if equalValues(v, candidate) {
					return !negate
				}
			}
			return negate
		}, nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidOperator, int(op))
	}
}

// likePattern converts a SQL LIKE pattern to an anchored regex
func likePattern(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}

func equalValues(a, b interface{}) bool {
	if af, ok := toFloat64(a); ok {
		if bf, ok := toFloat64(b); ok {
			return af == bf
		}
	}
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

// compareValues orders numbers numerically, times chronologically and
// everything else by string form. nil sorts first.
func compareValues(a, b interface{}) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	if af, ok := toFloat64(a); ok {
		if bf, ok := toFloat64(b); ok {
			return cmp.Compare(af, bf)
		}
	}
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Compare(bt)
		}
	}
	return strings.Compare(fmt.Sprintf("%v", a), fmt.Sprintf("%v", b))
}

func toFloat64(v interface{}) (float64, bool) {
	val := reflect.ValueOf(v)
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(val.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(val.Uint()), true
	case reflect.Float32, reflect.Float64:
		return val.Float(), true
	case reflect.String:
		// Try to parse string as float
		f, err := strconv.ParseFloat(val.String(), 64)
		if err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}
