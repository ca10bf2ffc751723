package adjacency

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/seatplan/pkg/chart"
	"github.com/matzehuels/seatplan/pkg/seating"
)

// DefaultScale converts chart units to inches: one grid gap is one inch.
const DefaultScale = chart.SeatGap

// Options configures diagram generation.
type Options struct {
	// Positions pins seats to their chart coordinates.
	Positions bool

	// Scale divides chart coordinates to get inches. 0 means DefaultScale.
	Scale float64

	// Labels replaces the default "Seat N" label per seat ID.
	Labels map[int]string
}

// ToDOT converts the chart's seats and connections to an undirected DOT graph.
// Seats without any connection are drawn dashed.
func ToDOT(ch *chart.Chart, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}

	connected := make(map[int]bool)
	var edges [][2]int
	for _, pair := range ch.Connections {
		a, b, err := seating.SplitPairID(pair)
		if err != nil {
			continue
		}
		connected[a], connected[b] = true, true
		edges = append(edges, [2]int{a, b})
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	if opts.Positions {
		buf.WriteString("  layout=neato;\n")
	}
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.05\"];\n")
	buf.WriteString("\n")

	number := make(map[int]int, len(ch.Seats))
	for i, id := range ch.SeatNumbers() {
		number[id] = i + 1
	}
	for _, s := range ch.Seats {
		attrs := []string{fmt.Sprintf("label=%q", seatLabel(s.ID, number[s.ID], opts.Labels))}
		if opts.Positions {
			attrs = append(attrs, fmt.Sprintf("pos=%q", position(s.X, s.Y, scale)))
		}
		if !connected[s.ID] {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"")
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", seatNode(s.ID), strings.Join(attrs, ", "))
	}

	if opts.Positions {
		for i, f := range ch.Fixed {
			fmt.Fprintf(&buf, "  fixed%d [label=%q, pos=%q, shape=box, style=filled, fillcolor=lightgrey, fontcolor=black];\n",
				i, f.Type, position(f.X, f.Y, scale))
		}
	}

	buf.WriteString("\n")
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %s -- %s;\n", seatNode(e[0]), seatNode(e[1]))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func seatNode(id int) string {
	return fmt.Sprintf("seat%d", id)
}

func seatLabel(id, number int, labels map[int]string) string {
	if l, ok := labels[id]; ok && l != "" {
		return fmt.Sprintf("%d\n%s", number, l)
	}
	return fmt.Sprintf("Seat %d", number)
}

// position flips y because chart coordinates grow downwards.
func position(x, y, scale float64) string {
	px, py := x/scale, -y/scale
	if py == 0 {
		py = 0 // no "-0"
	}
	return fmt.Sprintf("%s,%s!", fmtFloat(px), fmtFloat(py))
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's svg header with one that scales.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
