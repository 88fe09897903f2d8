package linechart

// CollectRowLabels returns the union of all record labels across series.
// Labels keep the order they are first seen in: the first series fixes the
// initial order and later series only append labels not seen before.
func CollectRowLabels[R any, L comparable](series []Series[R], label LabelFunc[R, L]) ([]L, error) {
	rows := []L{}
	seen := make(map[L]struct{})

	for i, s := range series {
		for j, r := range s.Records {
			l, err := label(r)
			if err != nil {
				return nil, accessorError("label", i, j, err)
			}
			if _, ok := seen[l]; ok {
				continue
			}
			seen[l] = struct{}{}
			rows = append(rows, l)
		}
	}

	return rows, nil
}
