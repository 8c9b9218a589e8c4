package domain

import "time"

// Customer is the rental profile attached 1:1 to a user with the customer
// role. Customers are never hard-deleted; deactivation happens through
// User.IsActive.
type Customer struct {
	ID             int32     `json:"id"`
	UserID         int32     `json:"user_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	DriversLicense string    `json:"drivers_license"`
	CreatedOn      time.Time `json:"created_on"`

	// Populated on joined reads
	Email    string `json:"email,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}
