package models

// Product represents a catalog entry for a sellable item.
type Product struct {
	ID                   string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name                 string  `json:"name" gorm:"type:varchar(100)"`
	Size                 float64 `json:"size"`
	Price                float64 `json:"price"`
	PrescriptionRequired bool    `json:"prescriptionRequired"`
	Category             string  `json:"category" gorm:"type:varchar(100)"`
}
