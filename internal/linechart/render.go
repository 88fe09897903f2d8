package linechart

import (
	"errors"
	"fmt"
)

// Config describes how to read a set of series and how to dress the chart.
type Config[R any, L comparable] struct {
	// SeriesLabelField names the per-series title. It is the title itself
	// when SeriesLabel does not resolve it from the first series owner.
	SeriesLabelField string
	SeriesLabel      SeriesLabelFunc

	Label LabelFunc[R, L]
	Value ValueFunc[R]

	// FormatLabel renders a row label for the descriptor. Defaults to
	// fmt.Sprint.
	FormatLabel func(L) string

	Options  Options
	Defaults Defaults

	// Element is the id of the DOM element the chart is drawn into.
	Element       string
	RowLabelTitle string
	Placement     Placement
}

// Build runs every stage of a render and returns the descriptor.
func Build[R any, L comparable](series []Series[R], cfg Config[R, L]) (*Descriptor, error) {
	if cfg.Label == nil || cfg.Value == nil {
		return nil, errors.New("label and value accessors are required")
	}

	rows, err := CollectRowLabels(series, cfg.Label)
	if err != nil {
		return nil, err
	}

	headers, err := ResolveColumnLabels(series, cfg.SeriesLabelField, cfg.SeriesLabel)
	if err != nil {
		return nil, err
	}

	matrix, err := BuildMatrix(rows, series, cfg.Label, cfg.Value, cfg.Placement)
	if err != nil {
		return nil, err
	}

	entries, err := SerializeOptions(ResolveOptions(cfg.Defaults, cfg.Options))
	if err != nil {
		return nil, err
	}

	format := cfg.FormatLabel
	if format == nil {
		format = func(l L) string { return fmt.Sprint(l) }
	}
	labels := make([]string, len(rows))
	for i, r := range rows {
		labels[i] = format(r)
	}

	return NewDescriptor(
		matrix,
		labels,
		headers,
		entries,
		resolveElement(cfg.Defaults, cfg.Element),
		resolveRowLabelTitle(cfg.Defaults, cfg.RowLabelTitle),
	), nil
}

// Render returns the embeddable initialization script for series.
func Render[R any, L comparable](series []Series[R], cfg Config[R, L]) (string, error) {
	d, err := Build(series, cfg)
	if err != nil {
		return "", err
	}
	return d.Script(), nil
}
