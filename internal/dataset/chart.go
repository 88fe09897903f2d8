package dataset

import (
	"github.com/turbolytics/seer/internal"
	"github.com/turbolytics/seer/internal/linechart"
)

// Chart names the record fields a line chart is drawn from.
type Chart struct {
	SeriesLabel   string
	DataLabel     string
	DataMethod    string
	InElement     string
	RowLabelTitle string
	Placement     linechart.Placement
	Options       linechart.Options
	Defaults      linechart.Defaults
}

// Config binds the named fields to record accessors.
func (c Chart) Config() linechart.Config[*internal.Record, string] {
	return linechart.Config[*internal.Record, string]{
		SeriesLabelField: c.SeriesLabel,
		SeriesLabel:      OwnerLabel(c.SeriesLabel),
		Label:            LabelField(c.DataLabel),
		Value:            ValueField(c.DataMethod),
		Options:          c.Options,
		Defaults:         c.Defaults,
		Element:          c.InElement,
		RowLabelTitle:    c.RowLabelTitle,
		Placement:        c.Placement,
	}
}

// Build renders series into a descriptor.
func (c Chart) Build(series []linechart.Series[*internal.Record]) (*linechart.Descriptor, error) {
	return linechart.Build(series, c.Config())
}
