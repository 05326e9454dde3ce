package model

import "time"

// Stock is one inventory line for a medication batch. MedicName is a
// snapshot of the medication's itemname at the time the line was
// created, so stock listings stay readable even when the medication is
// later renamed or deactivated.
type Stock struct {
	Tracking
	MedicID    int        `gorm:"column:medicid;index" json:"medicid"`
	MedicName  string     `gorm:"column:medicname;size:150" json:"medicname"`
	Quantity   int        `gorm:"column:quantity" json:"quantity"`
	MinStock   int        `gorm:"column:minstock" json:"minstock"`
	MaxStock   int        `gorm:"column:maxstock" json:"maxstock"`
	ExpiryDate *time.Time `gorm:"column:expirydate" json:"expirydate"`
	BatchNo    string     `gorm:"column:batchno;size:50" json:"batchno"`
	Location   string     `gorm:"column:location;size:100" json:"location"`
	IsAlerted  int        `gorm:"column:isalerted" json:"isalerted"`
}

func (Stock) TableName() string { return "stock" }
