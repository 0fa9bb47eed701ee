package entities

type AcquisitionType string

const (
	AcquisitionTypeRent  AcquisitionType = "RENT"
	AcquisitionTypeSold  AcquisitionType = "SOLD"
	AcquisitionTypeOwned AcquisitionType = "OWNED"
)

func (a AcquisitionType) Valid() bool {
	switch a {
	case AcquisitionTypeRent, AcquisitionTypeSold, AcquisitionTypeOwned:
		return true
	}
	return false
}

type CatalogCopyMachine struct {
	ID           string `json:"id"`
	Model        string `json:"model"`
	Manufacturer string `json:"manufacturer"`
	Description  string `json:"description,omitempty"`
}

// ClientCopyMachine is a piece of equipment installed at a client.
type ClientCopyMachine struct {
	ID                   string              `json:"id"`
	SerialNumber         string              `json:"serial_number"`
	ClientID             string              `json:"client_id"`
	CatalogCopyMachineID string              `json:"catalog_copy_machine_id,omitempty"`
	AcquisitionType      AcquisitionType     `json:"acquisition_type"`
	Value                float64             `json:"value,omitempty"`
	CatalogCopyMachine   *CatalogCopyMachine `json:"catalogCopyMachine,omitempty"`
}
