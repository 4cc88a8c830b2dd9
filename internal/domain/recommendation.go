package domain

import "time"

// Recommendation is a testimonial left by a visitor. Only approved ones are
// meant for the public site.
type Recommendation struct {
	ID             int64     `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Position       string    `db:"position" json:"position"`
	Company        string    `db:"company" json:"company"`
	Recommendation string    `db:"recommendation" json:"recommendation"`
	Approved       bool      `db:"approved" json:"approved"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// RecommendationEdit carries an admin edit. A nil Approved keeps the
// current moderation state.
type RecommendationEdit struct {
	Name           string
	Position       string
	Company        string
	Recommendation string
	Approved       *bool
}
