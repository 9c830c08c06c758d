package model

import "time"

// CreditAccount tracks a user's remaining scan credits. The balance is
// mutated only through the ledger and never goes negative.
type CreditAccount struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Credits   int       `json:"credits"`
	CreatedAt time.Time `json:"created_at"`
}

// CreditRequest is a user's request for additional credits. Approval is
// currently automatic; the status field exists so a real approval
// workflow can be plugged in without a schema change.
type CreditRequest struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Amount    int       `json:"amount"`
	Reason    string    `json:"reason"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// CreditRequestApproved is the status written for auto-approved requests.
const CreditRequestApproved = "approved"
