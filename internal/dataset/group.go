package dataset

import (
	"fmt"

	"github.com/turbolytics/seer/internal"
	"github.com/turbolytics/seer/internal/linechart"
)

// GroupBy splits records into series by the value of field. Series are
// ordered by the first appearance of their key and keep their records in
// source order. Each series owner is the first record of its group, so a
// column title can come from any field that record carries.
//
// An empty field puts every record into a single series without an owner.
func GroupBy(records []*internal.Record, field string) ([]linechart.Series[*internal.Record], error) {
	if len(records) == 0 {
		return nil, nil
	}
	if field == "" {
		return []linechart.Series[*internal.Record]{{Records: records}}, nil
	}

	var series []linechart.Series[*internal.Record]
	index := make(map[string]int)

	for i, r := range records {
		v, ok := r.Get(field)
		if !ok {
			return nil, fmt.Errorf("record %d: %w: %q", i, ErrMissingField, field)
		}

		key := FormatLabel(v)
		n, ok := index[key]
		if !ok {
			n = len(series)
			index[key] = n
			series = append(series, linechart.Series[*internal.Record]{
				Owner: r,
			})
		}
		series[n].Records = append(series[n].Records, r)
	}

	return series, nil
}

// CountRecords returns the number of records across all series.
func CountRecords(series []linechart.Series[*internal.Record]) int {
	n := 0
	for _, s := range series {
		n += s.Len()
	}
	return n
}
