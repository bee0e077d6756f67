// Package view defines the JSON document handed to renderers.
//
// A [Document] holds one [Day] per date. Each day lists its merged blocks
// once and refers to them by index from the placed items, so a block split
// into several segments in compact mode is not repeated:
//
//	{
//	  "version": 1,
//	  "mode": "wide",
//	  "width": 80,
//	  "days": [{
//	    "date": "2026-10-14",
//	    "state": {"collapsed": false, "visibleColumns": 2},
//	    "blocks": [{"id": 11, "subject": "MA", "startTime": 800, ...}],
//	    "items": [{"block": 0, "startTime": 800, "endTime": 935,
//	               "column": 0, "columns": 1, "cluster": 0, ...}],
//	    "clusters": [...],
//	    "exams": [...]
//	  }]
//	}
//
// Hidden items stay in the document with "hidden": true so a renderer can
// show a "+N" badge per cluster.
//
// Common operations:
//
//	day := view.FromResult(date, arr, arr.Fit(width, state))
//	data, _ := view.Marshal(view.Document{Days: []view.Day{day}})
//	doc, _ := view.ReadFile("layout.json")
package view
