package model

import "time"

// Document is a single entry of the shared corpus. Documents are
// append-only: once created they are never mutated or deleted, and any
// user's scan may match any other user's prior document.
type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// MatchResult is one ranked similarity hit produced by a scan. It is
// transient: only the number of matches is persisted (on ScanRecord).
type MatchResult struct {
	DocumentID string    `json:"document_id"`
	Title      string    `json:"title"`
	CreatedAt  time.Time `json:"created_at"`
	Similarity float64   `json:"similarity"`
}
