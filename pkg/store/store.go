// Package store persists seating charts.
//
// [FileStore] writes one JSON file per chart and is what the CLI and a
// single API instance use. [MongoStore] keeps one document per chart for
// deployments that run several API servers.
//
// Both stores validate chart IDs with [errors.ValidateChartID] before using
// them as keys, return [ErrNotFound] (wrapped in a CHART_NOT_FOUND error)
// for unknown charts, and stamp UpdatedAt on every Put.
package store

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/matzehuels/seatplan/pkg/chart"
	"github.com/matzehuels/seatplan/pkg/errors"
)

// ErrNotFound is returned when a chart does not exist.
var ErrNotFound = stderrors.New("chart not found")

// Store is the interface for chart storage backends.
type Store interface {
	// Get loads a chart by ID.
	Get(ctx context.Context, id string) (*chart.Chart, error)

	// Put creates or replaces a chart. A chart without ID gets one.
	Put(ctx context.Context, c *chart.Chart) error

	// Delete removes a chart. Deleting a missing chart returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// List returns summaries of all charts, most recently updated first.
	List(ctx context.Context) ([]Summary, error)

	// Close releases backend resources.
	Close() error
}

// Summary describes a stored chart without its layout.
type Summary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Seats       int       `json:"seats"`
	Connections int       `json:"connections"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Summarize builds the summary for c.
func Summarize(c *chart.Chart) Summary {
	return Summary{
		ID:          c.ID,
		Name:        c.Name,
		Seats:       c.SeatCount(),
		Connections: len(c.Connections),
		UpdatedAt:   c.UpdatedAt,
	}
}

func notFound(id string) error {
	return errors.Wrap(errors.ErrCodeChartNotFound, ErrNotFound, "chart %s", id)
}

// prepare validates c before it is written.
func prepare(c *chart.Chart) error {
	if c == nil {
		return errors.New(errors.ErrCodeInvalidChart, "chart is nil")
	}
	if c.ID == "" {
		c.ID = chart.New("").ID
	}
	if err := errors.ValidateChartID(c.ID); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	return nil
}
