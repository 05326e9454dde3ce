package model

// The five lookup tables referenced by name from Medication. None of
// them is a foreign-key target: consistency with the denormalized
// medication columns is procedural (service.SyncService).
//
// Each type provides an explicit CopyFrom that copies every importable
// column except the primary key. The strict import relies on it to
// apply a spreadsheet row onto an existing record without ever touching
// recordid.

// Dci is a substance active (Dénomination Commune Internationale).
type Dci struct {
	Tracking
	ItemName string `gorm:"column:itemname;size:100;not null" json:"itemname"`
	SubValue string `gorm:"column:subvalue;size:100" json:"subvalue"`
	ItemInfo string `gorm:"column:iteminfo;size:500" json:"iteminfo"`
}

func (Dci) TableName() string { return "dci" }

func (d *Dci) DisplayName() string { return d.ItemName }

func (d *Dci) CopyFrom(src *Dci) {
	d.ItemName = src.ItemName
	d.SubValue = src.SubValue
	d.ItemInfo = src.ItemInfo
	d.AddedAt = src.AddedAt
	d.UpdatedAt = src.UpdatedAt
}

// Family is a famille thérapeutique.
type Family struct {
	Tracking
	ItemName string `gorm:"column:itemname;size:80;not null" json:"itemname"`
	SubValue string `gorm:"column:subvalue;size:100" json:"subvalue"`
}

func (Family) TableName() string { return "family" }

func (f *Family) DisplayName() string { return f.ItemName }

func (f *Family) CopyFrom(src *Family) {
	f.ItemName = src.ItemName
	f.SubValue = src.SubValue
	f.AddedAt = src.AddedAt
	f.UpdatedAt = src.UpdatedAt
}

// Labo is a laboratoire pharmaceutique.
type Labo struct {
	Tracking
	ItemName string `gorm:"column:itemname;size:100;not null" json:"itemname"`
	SubValue string `gorm:"column:subvalue;size:100" json:"subvalue"`
}

func (Labo) TableName() string { return "labos" }

func (l *Labo) DisplayName() string { return l.ItemName }

func (l *Labo) CopyFrom(src *Labo) {
	l.ItemName = src.ItemName
	l.SubValue = src.SubValue
	l.AddedAt = src.AddedAt
	l.UpdatedAt = src.UpdatedAt
}

// Forme is a forme pharmaceutique (comprimé, gélule, sirop...).
type Forme struct {
	Tracking
	ItemName  string `gorm:"column:itemname;size:50;not null" json:"itemname"`
	SubValue  string `gorm:"column:subvalue;size:50" json:"subvalue"`
	FormGroup string `gorm:"column:formgroup;size:25" json:"formgroup"`
	AbName    string `gorm:"column:abname;size:230" json:"abname"`
}

func (Forme) TableName() string { return "formes" }

func (f *Forme) DisplayName() string { return f.ItemName }

func (f *Forme) CopyFrom(src *Forme) {
	f.ItemName = src.ItemName
	f.SubValue = src.SubValue
	f.FormGroup = src.FormGroup
	f.AbName = src.AbName
	f.AddedAt = src.AddedAt
	f.UpdatedAt = src.UpdatedAt
}

// Voie is a voie d'administration (orale, injectable...).
type Voie struct {
	Tracking
	ItemName string `gorm:"column:itemname;size:40;not null" json:"itemname"`
	AbName   string `gorm:"column:abname;size:30" json:"abname"`
	SubValue string `gorm:"column:subvalue;size:50" json:"subvalue"`
}

func (Voie) TableName() string { return "voie" }

func (v *Voie) DisplayName() string { return v.ItemName }

func (v *Voie) CopyFrom(src *Voie) {
	v.ItemName = src.ItemName
	v.AbName = src.AbName
	v.SubValue = src.SubValue
	v.AddedAt = src.AddedAt
	v.UpdatedAt = src.UpdatedAt
}
