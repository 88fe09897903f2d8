package linechart

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Options are the chart options understood by the line chart. Unset fields
// (nil pointers, empty strings, empty slices) are left out of the
// descriptor so the charting library applies its own defaults.
type Options struct {
	AxisBackgroundColor   string   `yaml:"axis_background_color" json:"axis_background_color,omitempty"`
	AxisColor             string   `yaml:"axis_color" json:"axis_color,omitempty"`
	AxisFontSize          *int     `yaml:"axis_font_size" json:"axis_font_size,omitempty"`
	BackgroundColor       string   `yaml:"background_color" json:"background_color,omitempty"`
	BorderColor           string   `yaml:"border_color" json:"border_color,omitempty"`
	Colors                []string `yaml:"colors" json:"colors,omitempty"`
	EnableTooltip         *bool    `yaml:"enable_tooltip" json:"enable_tooltip,omitempty"`
	FocusBorderColor      string   `yaml:"focus_border_color" json:"focus_border_color,omitempty"`
	Height                *int     `yaml:"height" json:"height,omitempty"`
	Legend                string   `yaml:"legend" json:"legend,omitempty"`
	LegendBackgroundColor string   `yaml:"legend_background_color" json:"legend_background_color,omitempty"`
	LegendFontSize        *int     `yaml:"legend_font_size" json:"legend_font_size,omitempty"`
	LegendTextColor       string   `yaml:"legend_text_color" json:"legend_text_color,omitempty"`
	LineSize              *int     `yaml:"line_size" json:"line_size,omitempty"`
	LogScale              *bool    `yaml:"log_scale" json:"log_scale,omitempty"`
	Max                   *float64 `yaml:"max" json:"max,omitempty"`
	Min                   *float64 `yaml:"min" json:"min,omitempty"`
	PointSize             *int     `yaml:"point_size" json:"point_size,omitempty"`
	ReverseAxis           *bool    `yaml:"reverse_axis" json:"reverse_axis,omitempty"`
	ShowCategories        *bool    `yaml:"show_categories" json:"show_categories,omitempty"`
	SmoothLine            *bool    `yaml:"smooth_line" json:"smooth_line,omitempty"`
	Title                 string   `yaml:"title" json:"title,omitempty"`
	TitleColor            string   `yaml:"title_color" json:"title_color,omitempty"`
	TitleFontSize         *int     `yaml:"title_font_size" json:"title_font_size,omitempty"`
	TitleX                string   `yaml:"title_x" json:"title_x,omitempty"`
	TitleY                string   `yaml:"title_y" json:"title_y,omitempty"`
	TooltipFontSize       *int     `yaml:"tooltip_font_size" json:"tooltip_font_size,omitempty"`
	TooltipHeight         string   `yaml:"tooltip_height" json:"tooltip_height,omitempty"`
	TooltipWidth          string   `yaml:"tooltip_width" json:"tooltip_width,omitempty"`
	Width                 *int     `yaml:"width" json:"width,omitempty"`
}

// OptionsFromMap decodes a flattened option bundle. Keys that are not
// chart options are ignored; a recognized key holding a value of the wrong
// type is an ErrInvalidOption.
func OptionsFromMap(m map[string]any) (Options, error) {
	var o Options
	if len(m) == 0 {
		return o, nil
	}

	bs, err := yaml.Marshal(m)
	if err != nil {
		return o, fmt.Errorf("%w: %w", ErrInvalidOption, err)
	}
	if err := yaml.Unmarshal(bs, &o); err != nil {
		return Options{}, fmt.Errorf("%w: %w", ErrInvalidOption, err)
	}
	return o, nil
}

// Kind decides how an option value is written into the descriptor.
type Kind int

const (
	// Literal values (numbers, booleans, arrays) are written as is.
	Literal Kind = iota

	// Quoted values are written as string literals.
	Quoted
)

func (k Kind) String() string {
	if k == Quoted {
		return "quoted"
	}
	return "literal"
}

// OptionEntry is one serialized option.
type OptionEntry struct {
	Name  string
	Kind  Kind
	Value string
}

// Key is the option name as the charting library spells it.
func (e OptionEntry) Key() string {
	return lowerCamel(e.Name)
}

func (e OptionEntry) String() string {
	return e.Name + ": " + e.Value
}

type option struct {
	name string
	kind Kind
	get  func(Options) (any, bool)
}

// registry lists every recognized option in emission order: literals first,
// then quoted, each in declaration order.
var registry = []option{
	{"axis_font_size", Literal, ptr(func(o Options) *int { return o.AxisFontSize })},
	{"colors", Literal, func(o Options) (any, bool) { return o.Colors, len(o.Colors) > 0 }},
	{"enable_tooltip", Literal, ptr(func(o Options) *bool { return o.EnableTooltip })},
	{"height", Literal, ptr(func(o Options) *int { return o.Height })},
	{"legend_font_size", Literal, ptr(func(o Options) *int { return o.LegendFontSize })},
	{"line_size", Literal, ptr(func(o Options) *int { return o.LineSize })},
	{"log_scale", Literal, ptr(func(o Options) *bool { return o.LogScale })},
	{"max", Literal, ptr(func(o Options) *float64 { return o.Max })},
	{"min", Literal, ptr(func(o Options) *float64 { return o.Min })},
	{"point_size", Literal, ptr(func(o Options) *int { return o.PointSize })},
	{"reverse_axis", Literal, ptr(func(o Options) *bool { return o.ReverseAxis })},
	{"show_categories", Literal, ptr(func(o Options) *bool { return o.ShowCategories })},
	{"smooth_line", Literal, ptr(func(o Options) *bool { return o.SmoothLine })},
	{"title_font_size", Literal, ptr(func(o Options) *int { return o.TitleFontSize })},
	{"tooltip_font_size", Literal, ptr(func(o Options) *int { return o.TooltipFontSize })},
	{"width", Literal, ptr(func(o Options) *int { return o.Width })},

	{"axis_color", Quoted, str(func(o Options) string { return o.AxisColor })},
	{"axis_background_color", Quoted, str(func(o Options) string { return o.AxisBackgroundColor })},
	{"background_color", Quoted, str(func(o Options) string { return o.BackgroundColor })},
	{"border_color", Quoted, str(func(o Options) string { return o.BorderColor })},
	{"focus_border_color", Quoted, str(func(o Options) string { return o.FocusBorderColor })},
	{"legend", Quoted, str(func(o Options) string { return o.Legend })},
	{"legend_background_color", Quoted, str(func(o Options) string { return o.LegendBackgroundColor })},
	{"legend_text_color", Quoted, str(func(o Options) string { return o.LegendTextColor })},
	{"title", Quoted, str(func(o Options) string { return o.Title })},
	{"title_x", Quoted, str(func(o Options) string { return o.TitleX })},
	{"title_y", Quoted, str(func(o Options) string { return o.TitleY })},
	{"title_color", Quoted, str(func(o Options) string { return o.TitleColor })},
	{"tooltip_height", Quoted, str(func(o Options) string { return o.TooltipHeight })},
	{"tooltip_width", Quoted, str(func(o Options) string { return o.TooltipWidth })},
}

func ptr[T any](f func(Options) *T) func(Options) (any, bool) {
	return func(o Options) (any, bool) {
		p := f(o)
		if p == nil {
			return nil, false
		}
		return *p, true
	}
}

func str(f func(Options) string) func(Options) (any, bool) {
	return func(o Options) (any, bool) {
		s := f(o)
		return s, s != ""
	}
}

// OptionKind returns the kind of a recognized option name.
func OptionKind(name string) (Kind, bool) {
	for _, opt := range registry {
		if opt.name == name {
			return opt.kind, true
		}
	}
	return Literal, false
}

// SerializeOptions returns one entry per set option, in the fixed option
// order regardless of how the options were supplied.
func SerializeOptions(o Options) ([]OptionEntry, error) {
	var entries []OptionEntry
	for _, opt := range registry {
		v, ok := opt.get(o)
		if !ok {
			continue
		}

		if opt.kind == Quoted {
			v = fmt.Sprint(v)
		}
		bs, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidOption, opt.name, err)
		}

		entries = append(entries, OptionEntry{
			Name:  opt.name,
			Kind:  opt.kind,
			Value: string(bs),
		})
	}
	return entries, nil
}

func lowerCamel(name string) string {
	parts := strings.Split(name, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] == "" {
			continue
		}
		parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
	}
	return strings.Join(parts, "")
}
