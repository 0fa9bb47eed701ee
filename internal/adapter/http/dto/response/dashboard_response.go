package response

import (
	"time"

	"copiadora_xpto/internal/domain/entities"
)

type DashboardStatsResponse struct {
	Year      int                   `json:"year"`
	Month     int                   `json:"month"`
	Clients   entities.ClientStats  `json:"clients"`
	Services  entities.ServiceStats `json:"services"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

func FromDashboardStats(d entities.DashboardStats) DashboardStatsResponse {
	return DashboardStatsResponse{
		Year:      d.Year,
		Month:     d.Month,
		Clients:   d.Clients,
		Services:  d.Services,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func FromDashboardHistory(in []entities.DashboardStats) []DashboardStatsResponse {
	out := make([]DashboardStatsResponse, 0, len(in))
	for _, d := range in {
		out = append(out, FromDashboardStats(d))
	}
	return out
}
