// Package conflict renders the overlap graph of a day with Graphviz.
//
// Each merged block becomes a node; an edge joins every two blocks whose
// spans intersect. Nodes of one lane cluster share a Graphviz subgraph, so
// the picture shows at a glance why a cluster needs its column count:
//
//	MA 08:00-09:35 ── EN 08:45-09:30
//	       │
//	PH 09:00-09:45
//
// Node fill encodes the placement priority (exam, change, normal, bad
// change, cancelled) and cancelled blocks are dashed.
//
// [ToDOT] produces DOT source; [RenderSVG] lays it out with the embedded
// Graphviz build of github.com/goccy/go-graphviz and needs no system
// install.
package conflict
