package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/turbolytics/seer/internal/dataset"
	"github.com/turbolytics/seer/internal/linechart"
)

type Logger struct {
	Level string `yaml:"level"`
}

type Global struct {
	Logger   Logger             `yaml:"logger"`
	Defaults linechart.Defaults `yaml:"defaults"`
}

type Chart struct {
	Name          string            `yaml:"name"`
	SeriesLabel   string            `yaml:"series_label"`
	DataLabel     string            `yaml:"data_label"`
	DataMethod    string            `yaml:"data_method"`
	SeriesBy      string            `yaml:"series_by"`
	InElement     string            `yaml:"in_element"`
	RowLabelTitle string            `yaml:"row_label_title"`
	Placement     string            `yaml:"placement"`
	ChartOptions  linechart.Options `yaml:"chart_options"`
}

type Source struct {
	Type             string `yaml:"type"`
	Path             string `yaml:"path"`
	ConnectionString string `yaml:"connection_string"`
	Schema           string `yaml:"schema"`
	Table            string `yaml:"table"`
	Query            string `yaml:"query"`
}

type LocalConfig struct {
	Path string `yaml:"path"`
}

type S3Config struct {
	Bucket         string `yaml:"bucket"`
	Region         string `yaml:"region"`
	Prefix         string `yaml:"prefix"`
	Endpoint       string `yaml:"endpoint"`
	ForcePathStyle bool   `yaml:"force_path_style"`
}

type KafkaConfig struct {
	URL string `yaml:"url"`
}

type Repository struct {
	Type        string      `yaml:"type"`
	LocalConfig LocalConfig `yaml:"local"`
	S3Config    S3Config    `yaml:"s3"`
	KafkaConfig KafkaConfig `yaml:"kafka"`
}

type Seer struct {
	Global     Global     `yaml:"global"`
	Chart      Chart      `yaml:"chart"`
	Source     Source     `yaml:"source"`
	Repository Repository `yaml:"repository"`
}

func NewSeerFromFile(fpath string) (*Seer, error) {
	bs, err := os.ReadFile(fpath)
	if err != nil {
		return nil, err
	}

	var seer Seer
	if err := yaml.Unmarshal(bs, &seer); err != nil {
		return nil, err
	}

	if err := seer.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", fpath, err)
	}

	return &seer, nil
}

// NewGlobalFromFile reads only the global section of a config file. The
// chart, source and repository sections are not validated.
func NewGlobalFromFile(fpath string) (*Global, error) {
	bs, err := os.ReadFile(fpath)
	if err != nil {
		return nil, err
	}

	var seer Seer
	if err := yaml.Unmarshal(bs, &seer); err != nil {
		return nil, err
	}
	return &seer.Global, nil
}

// Validate reports every missing required setting at once.
func (s *Seer) Validate() error {
	var errs []error
	if s.Chart.DataLabel == "" {
		errs = append(errs, errors.New("chart.data_label is required"))
	}
	if s.Chart.DataMethod == "" {
		errs = append(errs, errors.New("chart.data_method is required"))
	}
	if _, err := linechart.ParsePlacement(s.Chart.Placement); err != nil {
		errs = append(errs, fmt.Errorf("chart.placement: %w", err))
	}
	if s.Source.Type == "" {
		errs = append(errs, errors.New("source.type is required"))
	}
	return errors.Join(errs...)
}

// ChartName is the configured chart name, "chart" when unset.
func (s *Seer) ChartName() string {
	if s.Chart.Name == "" {
		return "chart"
	}
	return s.Chart.Name
}

// DatasetChart binds the chart settings to record fields.
func (s *Seer) DatasetChart() (dataset.Chart, error) {
	placement, err := linechart.ParsePlacement(s.Chart.Placement)
	if err != nil {
		return dataset.Chart{}, err
	}

	return dataset.Chart{
		SeriesLabel:   s.Chart.SeriesLabel,
		DataLabel:     s.Chart.DataLabel,
		DataMethod:    s.Chart.DataMethod,
		InElement:     s.Chart.InElement,
		RowLabelTitle: s.Chart.RowLabelTitle,
		Placement:     placement,
		Options:       s.Chart.ChartOptions,
		Defaults:      s.Global.Defaults,
	}, nil
}
