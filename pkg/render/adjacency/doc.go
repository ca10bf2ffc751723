// Package adjacency draws a chart's seat connections with Graphviz.
//
// Seats become nodes and connections become undirected edges, so a user can
// check which seats the solver will treat as neighbors before assigning:
//
//	dot := adjacency.ToDOT(ch, adjacency.Options{Positions: true})
//	svg, err := adjacency.RenderSVG(ctx, dot)
//
// With Positions set, nodes are pinned to the chart's seat coordinates and
// fixed elements are drawn as plain boxes; otherwise Graphviz lays the graph
// out freely. Labels can carry the names of an assignment result.
//
// [ToDOT] output can also be saved and processed with external Graphviz
// tools. [RenderSVG] renders in process with [github.com/goccy/go-graphviz].
package adjacency
