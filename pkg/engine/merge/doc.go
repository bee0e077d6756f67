// Package merge collapses lesson records that describe one continuous
// real-world lesson into a single block.
//
// # Overview
//
// Timetable feeds frequently split a double lesson into two 45-minute
// records, or emit the same lesson twice with different homework attached.
// [Merge] groups records by date, [timetable.Identifier] and status, and
// joins consecutive records of a group whose gap is at most
// [DefaultMaxBreak] minutes:
//
//	08:00-08:45 MA  ┐
//	08:50-09:35 MA  ┘ → 08:00-09:35 MA
//
// Records whose status differs never merge, so a partially cancelled double
// lesson stays two visually distinct blocks.
//
// # Combining Content
//
// A merged block spans the union of its inputs and keeps the smallest record
// ID as a stable key. Content is combined without loss:
//
//   - Homework is deduplicated by text, subject, due date and remark;
//     completion is the OR of all duplicates
//   - Exams are deduplicated by name, subject, date, span and text; the
//     first occurrence wins
//   - Info notes are split on "|", trimmed, deduplicated case-insensitively
//     and joined with " | " (see [JoinNotes])
//
// Because every combination step is a deduplicating union, merging is
// idempotent: Merge(Merge(x)) equals Merge(x).
//
// # Malformed Input
//
// Records with startTime >= endTime are dropped. Records without an
// identifier and without a subject fall back to an empty composite
// signature; two such unrelated records on one day will merge.
//
// # Pipeline Position
//
//	lessons → [this package] → segment.Slice (compact mode) → columns.Assign → visibility
package merge
