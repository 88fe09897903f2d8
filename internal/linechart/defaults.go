package linechart

const (
	DefaultHeight        = 350
	DefaultWidth         = 550
	DefaultLegend        = "bottom"
	DefaultElement       = "chart"
	DefaultRowLabelTitle = "Date"
)

// DefaultColors returns the default series palette.
func DefaultColors() []string {
	return []string{"#324F69", "#919E4B", "#A34D4D", "#BEA037", "#5D3A4C", "#F28C1D"}
}

// Defaults are the fallback values used when a render does not supply its
// own. Zero fields fall through to the package defaults above.
type Defaults struct {
	Height        int      `yaml:"height" json:"height,omitempty"`
	Width         int      `yaml:"width" json:"width,omitempty"`
	Legend        string   `yaml:"legend" json:"legend,omitempty"`
	Colors        []string `yaml:"colors" json:"colors,omitempty"`
	Element       string   `yaml:"element" json:"element,omitempty"`
	RowLabelTitle string   `yaml:"row_label_title" json:"row_label_title,omitempty"`
}

// ResolveOptions returns supplied with every defaulted option filled in.
// Each option resolves the same way: package default, then the fallback in
// d, then the supplied value.
func ResolveOptions(d Defaults, supplied Options) Options {
	o := supplied
	o.Height = resolveHeight(d, supplied.Height)
	o.Width = resolveWidth(d, supplied.Width)
	o.Legend = resolveLegend(d, supplied.Legend)
	o.Colors = resolveColors(d, supplied.Colors)
	return o
}

func resolveHeight(d Defaults, supplied *int) *int {
	return layered(DefaultHeight, d.Height, supplied)
}

func resolveWidth(d Defaults, supplied *int) *int {
	return layered(DefaultWidth, d.Width, supplied)
}

func resolveLegend(d Defaults, supplied string) string {
	return *layered(DefaultLegend, d.Legend, nonEmpty(supplied))
}

func resolveElement(d Defaults, supplied string) string {
	return *layered(DefaultElement, d.Element, nonEmpty(supplied))
}

func resolveRowLabelTitle(d Defaults, supplied string) string {
	return *layered(DefaultRowLabelTitle, d.RowLabelTitle, nonEmpty(supplied))
}

func resolveColors(d Defaults, supplied []string) []string {
	colors := DefaultColors()
	if len(d.Colors) > 0 {
		colors = d.Colors
	}
	if len(supplied) > 0 {
		colors = supplied
	}
	return append([]string(nil), colors...)
}

// layered returns hard, overridden by fallback when it is not the zero
// value, overridden by supplied when it is set.
func layered[T comparable](hard, fallback T, supplied *T) *T {
	var zero T
	v := hard
	if fallback != zero {
		v = fallback
	}
	if supplied != nil {
		v = *supplied
	}
	return &v
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
