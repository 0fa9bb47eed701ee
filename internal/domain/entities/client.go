package entities

import "time"

type State struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	UF   string `json:"uf,omitempty"`
}

type City struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	State *State `json:"state,omitempty"`
}

type Neighborhood struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	City *City  `json:"city,omitempty"`
}

type Address struct {
	ID           string        `json:"id"`
	Street       string        `json:"street,omitempty"`
	Number       string        `json:"number,omitempty"`
	Complement   string        `json:"complement,omitempty"`
	ZipCode      string        `json:"zip_code,omitempty"`
	Neighborhood *Neighborhood `json:"neighborhood,omitempty"`
}

// Client owns services and copy machines. Only read by this service.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Active    bool      `json:"active"`
	Address   *Address  `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CityID resolves the city of the client's address, or "" when unknown.
func (c Client) CityID() string {
	if c.Address == nil || c.Address.Neighborhood == nil || c.Address.Neighborhood.City == nil {
		return ""
	}
	return c.Address.Neighborhood.City.ID
}

// ClientStats feeds the dashboard snapshot.
type ClientStats struct {
	Total        int `json:"total"`
	NewThisMonth int `json:"newThisMonth"`
}
