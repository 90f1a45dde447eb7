package domain

// User is a staff or journalist account that can authenticate against the
// service. Staff users review links and process withdrawals; a user linked to
// a journalist record acts as that journalist.
type User struct {
	UserID       string  `json:"userID"` // Primary key (UUID)
	Email        string  `json:"email"`  // Unique
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	PasswordHash string  `json:"-"`
	IsStaff      bool    `json:"isStaff"`
	JournalistID *string `json:"journalistID,omitempty"`
	AuditFields
}
