// Package chart models a seating chart: seats with stable IDs, fixed
// furniture, the neighbor connections between seats and the roster text
// the chart was last used with.
//
// # Seats
//
// Seat IDs are handed out once from [Chart.LastSeatID] and never reused, so a
// connection such as "3-9" keeps meaning the same two seats after other seats
// are deleted. Positions (X, Y, Rotate) are carried as data; nothing in this
// module interprets them geometrically.
//
// # Connections
//
// Connections are stored as canonical "min-max" strings built with
// [seating.PairID]. [Chart.Connect] refuses unknown seats and duplicate
// pairs, and [Chart.DeleteSeat] drops every connection touching the deleted
// seat. [Chart.NormalizedEdges] turns the set into the rank-based edges the
// solver consumes.
//
// # JSON Format
//
//	{
//	  "id": "5f0c...",
//	  "name": "Room 12",
//	  "seats": [{"id": 1, "x": 0, "y": 0, "rotate": 0}],
//	  "fixed": [{"type": "board", "x": 40, "y": -20, "rotate": 0}],
//	  "connections": ["1-2"],
//	  "names": "Muster, Anna; [Doe, Ben; Doe, Cara]",
//	  "last_seat_id": 2
//	}
//
// Use [ReadJSON]/[ImportJSON] to load and [WriteJSON]/[ExportJSON] to save.
// Loading validates the chart and repairs a LastSeatID that is lower than
// the highest seat ID.
//
// # Concurrency
//
// A *Chart is a plain value with no internal locking. Callers that share one
// between goroutines must synchronize.
package chart
