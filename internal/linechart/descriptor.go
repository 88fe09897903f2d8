package linechart

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Descriptor is the ordered list of statements that builds and draws a
// line chart with the Google Visualization API.
type Descriptor struct {
	Element string
	Rows    int
	Columns int

	statements []string
}

// NewDescriptor assembles the statements for a chart: the table shape, the
// row labels, every present cell, the options and finally the draw call
// against element.
func NewDescriptor(m *Matrix, rowLabels, headers []string, options []OptionEntry, element, rowLabelTitle string) *Descriptor {
	stmts := make([]string, 0, 8+len(headers)+len(rowLabels)+m.Len()+len(options))

	stmts = append(stmts,
		"var data = new google.visualization.DataTable();",
		fmt.Sprintf("data.addRows(%d);", len(rowLabels)),
		fmt.Sprintf("data.addColumn('string', %s);", jsString(rowLabelTitle)),
	)
	for _, h := range headers {
		stmts = append(stmts, fmt.Sprintf("data.addColumn('number', %s);", jsString(h)))
	}

	for i, l := range rowLabels {
		stmts = append(stmts, fmt.Sprintf("data.setCell(%d, 0, %s);", i, jsString(l)))
	}
	for _, c := range m.Cells() {
		// column 0 holds the row labels
		stmts = append(stmts, fmt.Sprintf("data.setCell(%d, %d, %s);", c.Row, c.Column+1, jsNumber(c.Value)))
	}

	stmts = append(stmts, "var options = {};")
	for _, o := range options {
		stmts = append(stmts, fmt.Sprintf("options[%s] = %s;", jsString(o.Key()), o.Value))
	}

	stmts = append(stmts,
		fmt.Sprintf("var container = document.getElementById(%s);", jsString(element)),
		"var chart = new google.visualization.LineChart(container);",
		"chart.draw(data, options);",
	)

	return &Descriptor{
		Element:    element,
		Rows:       len(rowLabels),
		Columns:    len(headers),
		statements: stmts,
	}
}

// Statements returns a copy of the statement list.
func (d *Descriptor) Statements() []string {
	return append([]string(nil), d.statements...)
}

// String returns the statements, one per line.
func (d *Descriptor) String() string {
	return strings.Join(d.statements, "\n")
}

// Script wraps the statements in a script block that runs once the
// visualization library has loaded.
func (d *Descriptor) Script() string {
	var b strings.Builder
	b.WriteString("<script type=\"text/javascript\">\n")
	b.WriteString("  google.setOnLoadCallback(function() {\n")
	for _, s := range d.statements {
		b.WriteString("    ")
		b.WriteString(s)
		b.WriteString("\n")
	}
	b.WriteString("  });\n")
	b.WriteString("</script>\n")
	return b.String()
}

func jsString(s string) string {
	// json escapes <, > and & so the literal cannot close the script tag
	bs, _ := json.Marshal(s)
	return string(bs)
}

func jsNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
