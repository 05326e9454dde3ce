package model

// Interaction records a drug–drug interaction between two substances,
// identified by DCI name on both sides. Independent of the
// lookup/medication sync logic.
type Interaction struct {
	Tracking
	Dci1        string `gorm:"column:dci1;size:100;index" json:"dci1"`
	Dci2        string `gorm:"column:dci2;size:100;index" json:"dci2"`
	Level       string `gorm:"column:level;size:20" json:"level"`
	Description string `gorm:"column:description;size:500" json:"description"`
	Conduite    string `gorm:"column:conduite;size:500" json:"conduite"`
	Mecanisme   string `gorm:"column:mecanisme;size:200" json:"mecanisme"`
}

func (Interaction) TableName() string { return "interact" }
