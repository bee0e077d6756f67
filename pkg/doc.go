// Package pkg provides the core libraries for Daygrid timetable layout.
//
// # Overview
//
// Daygrid turns the lesson records of a school day into lanes: records of
// one logical lesson are merged into blocks, overlapping blocks are spread
// over columns, and a visibility policy decides how many columns fit the
// width a renderer has. The pkg directory is organized into four areas:
//
//  1. [timetable] - Lesson records, clock times and file decoding
//  2. [engine] - The layout engine (merge, segment, columns, visibility, overlay)
//  3. [pipeline] - Orchestration (group by date → lay out → cache)
//  4. [view] and [render] - Output for renderers
//
// # Architecture
//
// The data flow of one day:
//
//	Lesson records (JSON/YAML)
//	         ↓
//	    [engine/merge] (records → blocks)
//	         ↓
//	    [engine/segment] (compact mode only: blocks → atomic segments)
//	         ↓
//	    [engine/columns] (clusters + lane per item)
//	         ↓
//	    [engine/visibility] (width → visible lanes, with hysteresis)
//	         ↓
//	    [engine/overlay] (one exam rectangle per exam)
//	         ↓
//	    [view] layout.json / [render/conflict] overlap graph
//
// Everything up to the column assignment is width independent and runs once
// per day in [engine.Prepare]; [engine.Arrangement.Fit] then applies the
// visibility policy for each width sample.
//
// # Quick Start
//
//	lessons, _ := timetable.ReadFile("week.json")
//	day := timetable.ByDate(lessons)["2024-05-06"]
//
//	arr := engine.Prepare(day, engine.DefaultOptions())
//	res := arr.Fit(120, visibility.State{})
//	for i, p := range arr.Placed {
//	    fmt.Println(p.Lesson.Subject, p.Column, res.Hidden[i])
//	}
//
// # Supporting Packages
//
// [config] - TOML configuration ([merge], [layout], [visibility], [cache]).
//
// [cache] - Layout cache backends: file, Redis and a no-op cache, plus the
// key scheme and retry helpers.
//
// [observability] - Hook interfaces for layout and cache events.
//
// [errors] - Error codes shared by all packages.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test -short ./pkg/...   # Skip Graphviz rendering
//	go test -run Example ./... # Examples only
//
// [timetable]: https://pkg.go.dev/github.com/matzehuels/daygrid/pkg/timetable
// [engine]: https://pkg.go.dev/github.com/matzehuels/daygrid/pkg/engine
// [engine/merge]: https://pkg.go.dev/github.com/matzehuels/daygrid/pkg/engine/merge
// [engine/segment]: https://pkg.go.dev/github.com/matzehuels/daygrid/pkg/engine/segment
// [engine/columns]: https://pkg.go.dev/github.com/matzehuels/daygrid/pkg/engine/columns
// [engine/visibility]: https://pkg.go.dev/github.com/matzehuels/daygrid/pkg/engine/visibility
// [engine/overlay]: https://pkg.go.dev/github.com/matzehuels/daygrid/pkg/engine/overlay
// [engine.Prepare]: https://pkg.go.dev/github.com/matzehuels/daygrid/pkg/engine#Prepare
// [engine.Arrangement.Fit]: https://pkg.go.dev/github.com/matzehuels/daygrid/pkg/engine#Arrangement.Fit
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/daygrid/pkg/pipeline
// [view]: https://pkg.go.dev/github.com/matzehuels/daygrid/pkg/view
// [render]: https://pkg.go.dev/github.com/matzehuels/daygrid/pkg/render
// [render/conflict]: https://pkg.go.dev/github.com/matzehuels/daygrid/pkg/render/conflict
// [config]: https://pkg.go.dev/github.com/matzehuels/daygrid/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/daygrid/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/daygrid/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/daygrid/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/daygrid/pkg/buildinfo
package pkg
