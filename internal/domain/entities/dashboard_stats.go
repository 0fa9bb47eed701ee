package entities

import "time"

// DashboardStats is the cached monthly snapshot, unique by (Year, Month).
//
// Storage model (DynamoDB):
//   - PK: year (number)
//   - SK: month (number, 1-12)
type DashboardStats struct {
	Year      int          `json:"year"`
	Month     int          `json:"month"`
	Clients   ClientStats  `json:"clients"`
	Services  ServiceStats `json:"services"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (d DashboardStats) IsZero() bool {
	return d.Year == 0 && d.Month == 0
}
