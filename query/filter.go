package query

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/s0up4200/onering/onering"
)

// Search keeps records whose field Key contains Value
type Search struct {
	Key   string
	Value string
}

// ParseSearch parses a "key,value" search filter
func ParseSearch(s string) (*Search, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, &ValidationError{
			Argument: "search filter",
			Value:    s,
			Reason:   "please provide 1 key,value for search",
		}
	}
	return &Search{Key: parts[0], Value: parts[1]}, nil
}

// Match reports whether the record's field contains the search value
func (s *Search) Match(rec onering.Record) (bool, error) {
	v, ok := rec.Get(s.Key)
	if !ok {
		return false, &DataError{Field: s.Key, Reason: "not present"}
	}
	return strings.Contains(Stringify(v), s.Value), nil
}

// Apply returns the matching records in their original order
func (s *Search) Apply(recs []onering.Record) ([]onering.Record, error) {
	result := make([]onering.Record, 0, len(recs))
	for i, rec := range recs {
		ok, err := s.Match(rec)
		if err != nil {
			return nil, withIndex(err, i)
		}
		if ok {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (s *Search) String() string {
	return s.Key + "," + s.Value
}

// Fields is an ordered list of field names to keep
type Fields []string

// ParseFields parses a comma separated field list
func ParseFields(s string) Fields {
	if s == "" {
		return nil
	}
	return Fields(strings.Split(s, ","))
}

// Project returns a new record holding only the requested fields, in order
func (f Fields) Project(rec onering.Record) (onering.Record, error) {
	var out onering.Record
	for _, field := range f {
		v, ok := rec.Get(field)
		if !ok {
			return onering.Record{}, &DataError{Field: field, Reason: "not present"}
		}
		out.Set(field, v)
	}
	return out, nil
}

// Apply projects every record
func (f Fields) Apply(recs []onering.Record) ([]onering.Record, error) {
	result := make([]onering.Record, 0, len(recs))
	for i, rec := range recs {
		projected, err := f.Project(rec)
		if err != nil {
			return nil, withIndex(err, i)
		}
		result = append(result, projected)
	}
	return result, nil
}

// Stringify renders a JSON value the way the search filter compares it.
// Scalars use their plain form, objects and arrays their JSON encoding.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case json.Number:
		return val.String()
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return s
}

func withIndex(err error, i int) error {
	if dataErr, ok := err.(*DataError); ok {
		dataErr.Index = i
	}
	return err
}
