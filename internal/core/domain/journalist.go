package domain

// Journalist is a platform user who publishes press coverage and earns points.
// The point balance is never stored on this record; it is always derived from
// the point transaction ledger to avoid drift between two sources of truth.
type Journalist struct {
	JournalistID string `json:"journalistID"` // Primary key (UUID)
	Email        string `json:"email"`        // Unique
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Country      string `json:"country"`
	Title        string `json:"title"`
	MediaHouse   string `json:"mediaHouse"`
	AuditFields
}
