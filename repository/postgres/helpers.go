package postgres

import "time"

// nullDate truncates a due date to its calendar day for the DATE column,
// passing NULL through unchanged.
func nullDate(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
