package linechart

import "fmt"

// ResolveColumnLabels returns one column title per series, in series order.
//
// The first series owner decides the policy for every column: when
// seriesLabel reports a title for it, each column is titled from its own
// series owner. Otherwise field is used verbatim as the title of every
// column.
func ResolveColumnLabels[R any](series []Series[R], field string, seriesLabel SeriesLabelFunc) ([]string, error) {
	headers := make([]string, len(series))

	dynamic := false
	if seriesLabel != nil && len(series) > 0 {
		_, dynamic = seriesLabel(series[0].Owner)
	}

	for i, s := range series {
		if !dynamic {
			headers[i] = field
			continue
		}

		title, ok := seriesLabel(s.Owner)
		if !ok {
			return nil, fmt.Errorf("%w: owner of series %d has no %q", ErrAccessor, i, field)
		}
		headers[i] = title
	}

	return headers, nil
}
