package domain

import "time"

// LinkStatus indicates where a published link is in its review lifecycle.
type LinkStatus string

const (
	LinkPending  LinkStatus = "pending"
	LinkApproved LinkStatus = "approved"
	LinkRejected LinkStatus = "rejected"
)

// PublishedLink is a journalist's claim of having published a press release at
// a URL. Links start pending and move exactly once to approved or rejected;
// ReviewedBy/ReviewedAt are set at the same moment as the status change.
type PublishedLink struct {
	LinkID          string     `json:"linkID"`         // Primary key (UUID)
	JournalistID    string     `json:"journalistID"`   // Immutable after creation
	PressReleaseID  string     `json:"pressReleaseID"` // FK -> PressRelease
	URL             string     `json:"url"`
	Title           string     `json:"title"`
	PublicationDate *time.Time `json:"publicationDate,omitempty"`
	Status          LinkStatus `json:"status"`
	ReviewedBy      *string    `json:"reviewedBy,omitempty"` // UserID of the reviewer
	ReviewedAt      *time.Time `json:"reviewedAt,omitempty"`
	Notes           string     `json:"notes"`
	AuditFields
}

// IsTerminal reports whether the link has already been reviewed.
func (s LinkStatus) IsTerminal() bool {
	return s == LinkApproved || s == LinkRejected
}
