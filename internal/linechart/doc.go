/*
Package linechart turns labeled numeric series into a Google Visualization
line chart descriptor.

A render walks four stages, each usable on its own:

	rows, _    := CollectRowLabels(series, label)
	headers, _ := ResolveColumnLabels(series, "name", seriesLabel)
	matrix, _  := BuildMatrix(rows, series, label, value, LabelIndexed)
	options, _ := SerializeOptions(ResolveOptions(defaults, supplied))

and NewDescriptor assembles the statements. Most callers only need Render.

Everything built here is scoped to a single render. Nothing is cached and no
package state is mutated, so concurrent renders over distinct inputs need no
coordination.
*/
package linechart
