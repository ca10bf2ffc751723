package chart

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/seatplan/pkg/errors"
)

// ReadJSON decodes and validates a chart from r.
//
// Missing seat or connection arrays decode as empty. A LastSeatID below the
// highest seat ID is raised so new seats never collide. ReadJSON does not
// close r.
func ReadJSON(r io.Reader) (*Chart, error) {
	var c Chart
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode chart")
	}
	if c.Seats == nil {
		c.Seats = []Seat{}
	}
	if c.Connections == nil {
		c.Connections = []string{}
	}
	for _, s := range c.Seats {
		c.LastSeatID = max(c.LastSeatID, s.ID)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// WriteJSON encodes c as indented JSON.
func WriteJSON(w io.Writer, c *Chart) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ImportJSON reads a chart file.
func ImportJSON(path string) (*Chart, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeChartNotFound, err, "chart %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	c, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ExportJSON writes c to path, replacing any existing file.
func ExportJSON(c *Chart, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(f, c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
