package conflict

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/daygrid/pkg/engine"
	"github.com/matzehuels/daygrid/pkg/engine/columns"
	"github.com/matzehuels/daygrid/pkg/timetable"
)

// Options configures the graph.
type Options struct {
	// Detailed adds teachers, rooms and the lane to node labels.
	Detailed bool
	// Title labels the whole graph, usually with the date.
	Title string
}

var priorityFill = map[columns.Priority]string{
	columns.PriorityExam:      "gold",
	columns.PriorityChange:    "lightblue",
	columns.PriorityNormal:    "white",
	columns.PriorityBadChange: "salmon",
	columns.PriorityCancelled: "lightgrey",
}

// ToDOT converts an arrangement's blocks and their overlaps to DOT.
func ToDOT(arr *engine.Arrangement, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph Overlaps {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=\"Helvetica\", fontsize=12];\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	buf.WriteString("\n")

	// A block's first placed item decides its cluster and lane.
	first := make(map[int]columns.Placed, len(arr.Blocks))
	for _, p := range arr.Placed {
		if _, ok := first[p.Source]; !ok {
			first[p.Source] = p
		}
	}

	for _, c := range arr.Clusters {
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", c.ID)
		fmt.Fprintf(&buf, "    label=%q;\n", fmt.Sprintf("%v-%v (%d lanes)", c.Start, c.End, c.Columns))
		buf.WriteString("    style=dashed;\n")
		for i := range arr.Blocks {
			if p, ok := first[i]; ok && p.Cluster == c.ID {
				fmt.Fprintf(&buf, "    b%d [%s];\n", i, strings.Join(nodeAttrs(arr.Blocks[i], p, opts.Detailed), ", "))
			}
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, e := range Edges(arr.Blocks) {
		fmt.Fprintf(&buf, "  b%d -- b%d;\n", e[0], e[1])
	}
	buf.WriteString("}\n")
	return buf.String()
}

// Edges returns every pair of block indices whose spans intersect, in
// index order.
func Edges(blocks []timetable.Lesson) [][2]int {
	var edges [][2]int
	for i := range blocks {
		for j := i + 1; j < len(blocks); j++ {
			if blocks[i].Start < blocks[j].End && blocks[j].Start < blocks[i].End {
				edges = append(edges, [2]int{i, j})
			}
		}
	}
	return edges
}

func nodeAttrs(b timetable.Lesson, p columns.Placed, detailed bool) []string {
	label := fmt.Sprintf("%s %v-%v", b.Subject, b.Start, b.End)
	if detailed {
		label += fmt.Sprintf("\nlane %d/%d", p.Column, p.Columns)
		if names := resourceNames(b.Teachers); names != "" {
			label += "\n" + names
		}
		if names := resourceNames(b.Rooms); names != "" {
			label += "\n" + names
		}
	}

	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("fillcolor=%s", priorityFill[p.Priority]),
	}
	if p.Priority == columns.PriorityCancelled {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fontcolor=grey30")
	}
	return attrs
}

func resourceNames(rs []timetable.Resource) string {
	parts := make([]string, 0, len(rs))
	for _, r := range rs {
		if r.Substituted() {
			parts = append(parts, fmt.Sprintf("%s (for %s)", r.Name, r.OriginalName))
			continue
		}
		parts = append(parts, r.Name)
	}
	return strings.Join(parts, ", ")
}

// RenderSVG lays out DOT source with Graphviz and returns SVG.
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
	if g == nil {
		return nil, fmt.Errorf("parse DOT: empty graph")
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

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// viewBox-only one so the SVG scales with its container.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
