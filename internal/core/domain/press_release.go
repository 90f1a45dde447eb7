package domain

// PressRelease is a piece of client coverage distributed to journalists.
// Content generation and delivery happen upstream; this service only needs
// the metadata and the set of journalists it was shared with.
type PressRelease struct {
	PressReleaseID string `json:"pressReleaseID"` // Primary key (UUID)
	Title          string `json:"title"`
	Description    string `json:"description"`
	Content        string `json:"content"`
	Client         string `json:"client"`
	Partner        string `json:"partner"`
	Country        string `json:"country"`
	IsPublished    bool   `json:"isPublished"`
	AuditFields
}
