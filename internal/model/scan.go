package model

import "time"

// ScanRecord is one entry of a user's scan history. Records are
// append-only; one is written per successful scan.
type ScanRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	DocumentID string    `json:"document_id"`
	MatchCount int       `json:"match_count"`
	CreatedAt  time.Time `json:"created_at"`
}
