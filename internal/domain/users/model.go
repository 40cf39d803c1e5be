package users

import (
	"time"
)

// User is a marketplace participant. Role distinguishes coaches, coachees
// and admins; payment-processor state for coaches lives in
// coaches.CoachAccount, not here.
type User struct {
	ID       uint `gorm:"primaryKey"`
	Name     string
	Lastname string
	Email    string `gorm:"not null;uniqueIndex:idx_users_email"`
	Role     string

	StripeCustomerID *string `gorm:"column:stripe_customer_id;uniqueIndex:idx_users_stripe_customer_id"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	RoleCoach   = "coach"
	RoleCoachee = "coachee"
	RoleAdmin   = "admin"
)
