package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type AddStockRequest struct {
	MedicID    int        `json:"medicid" validate:"required,gt=0"`
	Quantity   int        `json:"quantity" validate:"required,gt=0"`
	BatchNo    string     `json:"batchno" validate:"required,max=50"`
	ExpiryDate *time.Time `json:"expirydate"`
	Location   string     `json:"location" validate:"max=100"`
}

type RemoveStockRequest struct {
	MedicID  int `json:"medicid" validate:"required,gt=0"`
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

type ThresholdsRequest struct {
	MinStock int `json:"minstock" validate:"gte=0"`
	MaxStock int `json:"maxstock" validate:"gtefield=MinStock"`
}

type LowStockAlert struct {
	MedicID      int    `json:"medicid"`
	MedicName    string `json:"medicname"`
	CurrentStock int    `json:"currentStock"`
	MinStock     int    `json:"minStock"`
}

type ExpiryAlert struct {
	MedicID    int       `json:"medicid"`
	MedicName  string    `json:"medicname"`
	BatchNo    string    `json:"batchno"`
	Quantity   int       `json:"quantity"`
	ExpiryDate time.Time `json:"expiryDate"`
}

type StockAlertsResponse struct {
	LowStock []LowStockAlert `json:"lowStock"`
	Expiring []ExpiryAlert   `json:"expiring"`
	Total    int             `json:"total"`
}

// ValuationLine is one medication's stock value: quantity on hand times
// unit price, in dinars.
type ValuationLine struct {
	MedicID   int             `json:"medicid"`
	MedicName string          `json:"medicname"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Value     decimal.Decimal `json:"value"`
}

type StockValuationResponse struct {
	Lines []ValuationLine `json:"lines"`
	Total decimal.Decimal `json:"total"`
}
