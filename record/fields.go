package record

import (
	"iter"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Fields is an insertion-ordered mapping of field names to values.
//
// Values are one of string, int64, float64, bool, nil, []any, *Fields or a
// caller-supplied value such as time.Time.
type Fields struct {
	keys   []string
	values map[string]any
}

// NewFields returns an empty field bag.
func NewFields() *Fields {
	return &Fields{values: make(map[string]any)}
}

// ParseFields decodes a JSON object, keeping document order. Anything other
// than an object yields an empty bag.
func ParseFields(obj gjson.Result) *Fields {
	f := NewFields()
	if !obj.IsObject() {
		return f
	}
	obj.ForEach(func(key, value gjson.Result) bool {
		f.Set(key.String(), fromJSON(value))
		return true
	})
	return f
}

// Set stores value under name. Existing names keep their position.
func (f *Fields) Set(name string, value any) *Fields {
	if f.values == nil {
		f.values = make(map[string]any)
	}
	if _, ok := f.values[name]; !ok {
		f.keys = append(f.keys, name)
	}
	f.values[name] = normalize(value)
	return f
}

// Lookup returns the raw value and whether it was present.
func (f *Fields) Lookup(name string) (any, bool) {
	if f == nil {
		return nil, false
	}
	v, ok := f.values[name]
	return v, ok
}

// Has reports whether name is present.
func (f *Fields) Has(name string) bool {
	_, ok := f.Lookup(name)
	return ok
}

// Len returns the number of fields.
func (f *Fields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// Keys returns a copy of the field names in order.
func (f *Fields) Keys() []string {
	if f == nil {
		return nil
	}
	return append([]string(nil), f.keys...)
}

// All yields name/value pairs in insertion order.
func (f *Fields) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if f == nil {
			return
		}
		for _, k := range f.keys {
			if !yield(k, f.values[k]) {
				return
			}
		}
	}
}

// Values returns the values in insertion order.
func (f *Fields) Values() []any {
	out := make([]any, 0, f.Len())
	for _, v := range f.All() {
		out = append(out, v)
	}
	return out
}

func fromJSON(v gjson.Result) any {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Number:
		if !strings.ContainsAny(v.Raw, ".eE") {
			if n, err := strconv.ParseInt(v.Raw, 10, 64); err == nil {
				return n
			}
		}
		return v.Num
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.JSON:
		if v.IsArray() {
			items := v.Array()
			out := make([]any, 0, len(items))
			for _, item := range items {
				out = append(out, fromJSON(item))
			}
			return out
		}
		return ParseFields(v)
	}
	return nil
}

func normalize(value any) any {
	switch v := value.(type) {
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case uint:
		return int64(v)
	case uint32:
		return int64(v)
	case float32:
		return float64(v)
	}
	return value
}

// toInt coerces a field value to an int the way ids are compared: numbers
// truncate, numeric strings parse, everything else is zero.
func toInt(value any) int {
	switch v := value.(type) {
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	case bool:
		if v {
			return 1
		}
	}
	return 0
}
