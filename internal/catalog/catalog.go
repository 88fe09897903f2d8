package catalog

import (
	"time"

	"github.com/google/uuid"
)

/*
The catalog is a record of what a render produced.
It is written next to the rendered chart so every artifact can be traced
back to the source and the shape of the data it was drawn from.
*/

// Catalog represents the catalog of a single chart render
type Catalog struct {
	ID                  uuid.UUID `json:"id"`
	Chart               string    `json:"chart"`
	StartTime           time.Time `json:"start_time"`
	EndTime             time.Time `json:"end_time"`
	Source              string    `json:"source"`
	Artifact            string    `json:"artifact"`
	SourceFields        []string  `json:"source_fields,omitempty"`
	NumExpectedRecords  int       `json:"num_expected_records,omitempty"`
	NumSourceRecords    int       `json:"num_source_records"`
	NumRecordsProcessed int       `json:"num_records_processed"`
	NumSeries           int       `json:"num_series"`
	NumRows             int       `json:"num_rows"`
	NumStatements       int       `json:"num_statements"`
	Success             bool      `json:"success"`
	Error               string    `json:"error,omitempty"`
}

func New(id uuid.UUID, chart, source string) *Catalog {
	return &Catalog{
		ID:        id,
		Chart:     chart,
		Source:    source,
		StartTime: time.Now().UTC(),
	}
}

// Complete stamps the end time and outcome.
func (c *Catalog) Complete(err error) {
	c.EndTime = time.Now().UTC()
	c.Success = err == nil
	if err != nil {
		c.Error = err.Error()
	}
}
