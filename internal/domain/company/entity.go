package company

import "time"

// Company is the tenancy unit: one restaurant, cafe or farm business.
type Company struct {
	ID        string
	Name      string
	Username  string
	Currency  string
	Timezone  string
	Address   *string
	Phone     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
