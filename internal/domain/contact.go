package domain

import "time"

type ContactSubmission struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Subject   string    `db:"subject" json:"subject"`
	Message   string    `db:"message" json:"message"`
	Role      Role      `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ParseContactRole accepts the roles a contact can be tagged with. Contacts
// are never admins.
func ParseContactRole(value string) (Role, bool) {
	role, ok := ParseRole(value)
	if !ok || role == RoleAdmin {
		return "", false
	}
	return role, true
}
