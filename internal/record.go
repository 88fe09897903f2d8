package internal

import "sort"

// Record is a struct that contains a set of fields and their corresponding values.
// It is used to represent a row of data from a source.
// Field order is kept so records print and serialize the way the source produced them.
type Record struct {
	fields []string
	values []any
}

func NewRecord(fields []string, values []any) *Record {
	return &Record{
		fields: fields,
		values: values,
	}
}

// NewRecordFromMap builds a record from a document. Maps carry no order, so
// fields are sorted by name.
func NewRecordFromMap(m map[string]any) *Record {
	fields := make([]string, 0, len(m))
	for f := range m {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	values := make([]any, len(fields))
	for i, f := range fields {
		values[i] = m[f]
	}
	return NewRecord(fields, values)
}

func (r *Record) Fields() []string {
	return r.fields
}

// Get returns the value of field and whether the record has it.
func (r *Record) Get(field string) (any, bool) {
	if r == nil {
		return nil, false
	}
	for i, f := range r.fields {
		if f == field {
			return r.values[i], true
		}
	}
	return nil, false
}
