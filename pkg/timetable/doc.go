// Package timetable defines the lesson records consumed by the daygrid layout
// engine.
//
// # Overview
//
// A [Lesson] is one time-stamped record for a single calendar day as it
// arrives from a timetable feed. Records are immutable inputs: the engine
// packages clone before they combine anything, so a decoded slice can be
// laid out repeatedly with identical results.
//
// Times are day-local [Clock] values (minutes since midnight). Feeds usually
// encode them as HHMM integers, so 805 is 08:05:
//
//	start := timetable.FromHHMM(805)
//	fmt.Println(start)        // 08:05
//	fmt.Println(start.HHMM()) // 805
//
// # Identity
//
// Records that describe one real-world lesson share an [Identifier]. It is
// resolved once per record by [Identify] and is one of:
//
//   - [Explicit]: the feed supplied a lesson identifier
//   - [Composite]: no identifier, so subject, sorted teacher names, sorted
//     room names and status stand in for it
//
// Both variants are comparable and can be used directly as map keys.
//
// # Input Files
//
// [ReadFile] and [Decode] accept JSON and YAML, either as a bare list of
// lessons or wrapped in an object with a "lessons" key:
//
//	{"lessons": [{"id": 1, "date": "2026-10-14", "startTime": 800, "endTime": 845, "subject": "MA"}]}
package timetable
