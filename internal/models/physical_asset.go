package models

// PhysicalAsset is an illiquid, non-monetary holding. It contributes to
// total patrimony but never to liquid totals. It leaves the inventory when
// liquidated or surrendered to pay a debt, and can enter the inventory
// when received in lieu of a receivable.
type PhysicalAsset struct {
	Base
	Name           string   `gorm:"not null" json:"name"`
	EstimatedValue float64  `gorm:"not null;default:0" json:"estimated_value"`
	Currency       Currency `gorm:"not null;default:'USD'" json:"currency"`
	Description    string   `json:"description,omitempty"`
}
