// Package model defines core data structures for SRLFlow.
package model

// Event is one coded row of a transcript spreadsheet: a single student
// action carrying an SRL behavior code. Position within a case is given
// by input row order, not by timestamp.
type Event struct {
	// CaseID identifies the conversation (one student's coded sequence).
	CaseID string

	// Code is the SRL action code assigned to this event.
	Code string

	// Phase is the SRL phase label, when the sheet carries one.
	Phase string

	// Row is the 1-based spreadsheet row the event came from, kept for
	// diagnostics.
	Row int
}

// Case is an ordered sequence of events sharing a case id. Order is the
// order rows appeared in the input.
type Case struct {
	ID     string
	Events []Event
}

// GroupByCase partitions events into cases, preserving both the input
// order of events within each case and the order in which case ids
// first appear.
func GroupByCase(events []Event) []Case {
	index := make(map[string]int)
	var cases []Case
	for _, e := range events {
		i, ok := index[e.CaseID]
		if !ok {
			i = len(cases)
			index[e.CaseID] = i
			cases = append(cases, Case{ID: e.CaseID})
		}
		cases[i].Events = append(cases[i].Events, e)
	}
	return cases
}
