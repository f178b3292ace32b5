package store

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"gorm.io/gorm/clause"
)

// Filter is an exact-match predicate keyed by column or Go field name.
// A slice value means "column IN (values...)", a nil value means IS NULL.
type Filter map[string]any

func (f Filter) String() string {
	keys := f.keys()
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, f[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (f Filter) keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (f Filter) expressions(resolve func(string) (string, bool)) ([]clause.Expression, error) {
	out := make([]clause.Expression, 0, len(f))
	for _, k := range f.keys() {
		col, ok := resolve(k)
		if !ok {
			return nil, fmt.Errorf("unknown filter field %q", k)
		}
		column := clause.Column{Table: clause.CurrentTable, Name: col}
		if values, ok := inValues(f[k]); ok {
			out = append(out, clause.IN{Column: column, Values: values})
			continue
		}
		out = append(out, clause.Eq{Column: column, Value: f[k]})
	}
	return out, nil
}

func inValues(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice || rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
