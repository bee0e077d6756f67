// Package render turns laid out days into pictures.
//
// # Overview
//
// Lane layouts themselves are plain data (see [github.com/matzehuels/daygrid/pkg/view]);
// this package holds the renderers that are not part of a client UI:
//
//   - Overlap graphs of one day (in [conflict] subpackage)
//   - Format conversion from SVG to PDF and PNG
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// from librsvg. Without it both return an UNSUPPORTED error; [Available]
// checks up front.
//
//	svg, err := conflict.RenderSVG(ctx, conflict.ToDOT(arr, conflict.Options{}))
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [conflict]: https://pkg.go.dev/github.com/matzehuels/daygrid/pkg/render/conflict
package render
