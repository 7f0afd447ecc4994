package recruitee

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Match selects how list-valued predicates combine: "any" is a logical OR
// across the list, "all" is a logical AND. No other value is accepted.
type Match string

const (
	MatchAny Match = "any"
	MatchAll Match = "all"
)

func (m Match) validate() error {
	if m != MatchAny && m != MatchAll {
		return &ValidationError{Message: fmt.Sprintf("match must be %q or %q, got %q", MatchAny, MatchAll, string(m))}
	}
	return nil
}

// Comparator names the closed set of predicate operators understood by the
// advanced search endpoint.
type Comparator string

const (
	CmpEq  Comparator = "eq"
	CmpGte Comparator = "gte"
	CmpLte Comparator = "lte"
	CmpAny Comparator = "any"
	CmpAll Comparator = "all"
)

// Filter is one atomic search predicate over a single field. A zero Filter
// is invalid; use NewFilter or the convenience constructors. Range
// predicates carry both bounds in the same filter object.
type Filter struct {
	Field string
	Eq    interface{} // nil means absent; false is a valid value
	Gte   *int64
	Lte   *int64
	Any   []interface{}
	All   []interface{}
}

// MarshalJSON emits the wire shape of a filter: the field name followed by
// each present comparator, e.g. {"field":"created_at","gte":1709251200}.
func (f Filter) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"field":`)
	if err := writeJSON(&buf, f.Field); err != nil {
		return nil, err
	}
	if f.Eq != nil {
		buf.WriteString(`,"eq":`)
		if err := writeJSON(&buf, f.Eq); err != nil {
			return nil, err
		}
	}
	if f.Gte != nil {
		buf.WriteString(`,"gte":`)
		if err := writeJSON(&buf, *f.Gte); err != nil {
			return nil, err
		}
	}
	if f.Lte != nil {
		buf.WriteString(`,"lte":`)
		if err := writeJSON(&buf, *f.Lte); err != nil {
			return nil, err
		}
	}
	if f.Any != nil {
		buf.WriteString(`,"any":`)
		if err := writeJSON(&buf, f.Any); err != nil {
			return nil, err
		}
	}
	if f.All != nil {
		buf.WriteString(`,"all":`)
		if err := writeJSON(&buf, f.All); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}

// NewFilter builds one predicate from a field/comparator/value triple.
// Values for gte/lte are coerced to epoch seconds; values for any/all must
// be sequences.
func NewFilter(field string, cmp Comparator, value interface{}) (Filter, error) {
	if field == "" {
		return Filter{}, &ValidationError{Message: "filter field is required"}
	}
	switch cmp {
	case CmpEq:
		return Filter{Field: field, Eq: value}, nil
	case CmpGte:
		ts, err := EpochSeconds(value)
		if err != nil {
			return Filter{}, err
		}
		return Filter{Field: field, Gte: &ts}, nil
	case CmpLte:
		ts, err := EpochSeconds(value)
		if err != nil {
			return Filter{}, err
		}
		return Filter{Field: field, Lte: &ts}, nil
	case CmpAny, CmpAll:
		seq, ok := toSequence(value)
		if !ok {
			return Filter{}, &ValidationError{Message: fmt.Sprintf("comparator %q requires a sequence value", cmp)}
		}
		if cmp == CmpAny {
			return Filter{Field: field, Any: seq}, nil
		}
		return Filter{Field: field, All: seq}, nil
	default:
		return Filter{}, &ValidationError{Message: fmt.Sprintf("unknown comparator %q", cmp)}
	}
}

func toSequence(value interface{}) ([]interface{}, bool) {
	switch v := value.(type) {
	case []interface{}:
		return v, true
	case []string:
		out := make([]interface{}, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	case []int64:
		out := make([]interface{}, len(v))
		for i, n := range v {
			out[i] = n
		}
		return out, true
	case []int:
		out := make([]interface{}, len(v))
		for i, n := range v {
			out[i] = n
		}
		return out, true
	default:
		return nil, false
	}
}

// MatchAllText matches a free-text query against every candidate field.
func MatchAllText(query string) Filter {
	return Filter{Field: "all", Eq: query}
}

// UpdatedWithinHours selects records whose updated_at is within the last n
// hours.
func UpdatedWithinHours(hours int) Filter {
	since := time.Now().UTC().Add(-time.Duration(hours) * time.Hour).Unix()
	return Filter{Field: "updated_at", Gte: &since}
}

// CreatedBetween selects records created inside [start, end]. Both bounds
// accept anything EpochSeconds accepts.
func CreatedBetween(start, end interface{}) (Filter, error) {
	from, err := EpochSeconds(start)
	if err != nil {
		return Filter{}, err
	}
	to, err := EpochSeconds(end)
	if err != nil {
		return Filter{}, err
	}
	return Filter{Field: "created_at", Gte: &from, Lte: &to}, nil
}

// FlagIs matches a boolean field, e.g. FlagIs("has_avatar", false).
func FlagIs(field string, value bool) Filter {
	return Filter{Field: field, Eq: value}
}

// IDsAnyOf matches records whose field holds any of the given identifiers.
func IDsAnyOf(field string, ids ...int64) Filter {
	seq := make([]interface{}, len(ids))
	for i, id := range ids {
		seq[i] = id
	}
	return Filter{Field: field, Any: seq}
}

// TagsMatch matches candidate tags with any/all semantics.
func TagsMatch(tags []string, match Match) (Filter, error) {
	return listMatch("tags", tags, match)
}

// SourcesMatch matches candidate sources with any/all semantics.
func SourcesMatch(sources []string, match Match) (Filter, error) {
	return listMatch("sources", sources, match)
}

// LocationsMatch matches candidate locations with any/all semantics.
func LocationsMatch(locations []string, match Match) (Filter, error) {
	return listMatch("locations", locations, match)
}

func listMatch(field string, values []string, match Match) (Filter, error) {
	if err := match.validate(); err != nil {
		return Filter{}, err
	}
	seq := make([]interface{}, len(values))
	for i, v := range values {
		seq[i] = v
	}
	if match == MatchAll {
		return Filter{Field: field, All: seq}, nil
	}
	return Filter{Field: field, Any: seq}, nil
}

// FilterSource is anything that yields an ordered filter sequence: a raw
// Filters slice or the fluent FilterSet builder.
type FilterSource interface {
	Filters() []Filter
}

// Filters is a raw ordered sequence of predicates.
type Filters []Filter

// Filters implements FilterSource.
func (f Filters) Filters() []Filter { return f }

// FilterSet builds a filter sequence fluently, preserving append order. It is
// not safe for concurrent use; build fully, then hand it off.
type FilterSet struct {
	filters []Filter
	err     error
}

// NewFilterSet returns an empty builder.
func NewFilterSet() *FilterSet {
	return &FilterSet{}
}

// Add appends one predicate.
func (s *FilterSet) Add(f Filter) *FilterSet {
	s.filters = append(s.filters, f)
	return s
}

// Text appends a match-all-fields text predicate.
func (s *FilterSet) Text(query string) *FilterSet {
	return s.Add(MatchAllText(query))
}

// UpdatedWithin appends an updated-within-hours predicate.
func (s *FilterSet) UpdatedWithin(hours int) *FilterSet {
	return s.Add(UpdatedWithinHours(hours))
}

// CreatedBetween appends a created-between predicate; a coercion failure is
// remembered and surfaced by Err.
func (s *FilterSet) CreatedBetween(start, end interface{}) *FilterSet {
	f, err := CreatedBetween(start, end)
	if err != nil {
		s.recordErr(err)
		return s
	}
	return s.Add(f)
}

// Flag appends a boolean-field predicate.
func (s *FilterSet) Flag(field string, value bool) *FilterSet {
	return s.Add(FlagIs(field, value))
}

// Tags appends a tag-match predicate.
func (s *FilterSet) Tags(tags []string, match Match) *FilterSet {
	f, err := TagsMatch(tags, match)
	if err != nil {
		s.recordErr(err)
		return s
	}
	return s.Add(f)
}

func (s *FilterSet) recordErr(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Err reports the first construction error recorded by the fluent methods.
func (s *FilterSet) Err() error { return s.err }

// Filters implements FilterSource.
func (s *FilterSet) Filters() []Filter {
	return s.filters
}

// ParseFilters decodes a JSON filter array (as received in tool arguments)
// into typed predicates, validating each entry up front.
func ParseFilters(raw []interface{}) (Filters, error) {
	out := make(Filters, 0, len(raw))
	for i, entry := range raw {
		m, ok := entry.(map[string]interface{})
		if !ok {
			return nil, &ValidationError{Message: fmt.Sprintf("filters[%d] must be an object, got %T", i, entry)}
		}
		field, _ := m["field"].(string)
		if field == "" {
			return nil, &ValidationError{Message: fmt.Sprintf("filters[%d] requires a 'field'", i)}
		}
		f := Filter{Field: field}
		seen := false
		for key, val := range m {
			if key == "field" {
				continue
			}
			switch Comparator(key) {
			case CmpEq:
				f.Eq = val
			case CmpGte:
				ts, err := EpochSeconds(val)
				if err != nil {
					return nil, &ValidationError{Message: fmt.Sprintf("filters[%d].gte: %v", i, err)}
				}
				f.Gte = &ts
			case CmpLte:
				ts, err := EpochSeconds(val)
				if err != nil {
					return nil, &ValidationError{Message: fmt.Sprintf("filters[%d].lte: %v", i, err)}
				}
				f.Lte = &ts
			case CmpAny, CmpAll:
				seq, ok := toSequence(val)
				if !ok {
					return nil, &ValidationError{Message: fmt.Sprintf("filters[%d].%s must be a sequence", i, key)}
				}
				if Comparator(key) == CmpAny {
					f.Any = seq
				} else {
					f.All = seq
				}
			default:
				return nil, &ValidationError{Message: fmt.Sprintf("filters[%d] has unknown comparator %q", i, key)}
			}
			seen = true
		}
		if !seen {
			return nil, &ValidationError{Message: fmt.Sprintf("filters[%d] has no comparator", i)}
		}
		out = append(out, f)
	}
	return out, nil
}

func normalizeFilters(src FilterSource) []Filter {
	if src == nil {
		return []Filter{}
	}
	filters := src.Filters()
	if filters == nil {
		return []Filter{}
	}
	return filters
}
