package model

import "strings"

// Medication is the main entity of the database. The composition
// (dci1..dci4), classification (fam1..fam3, family), laboratoire, forme
// and voie columns are denormalized free text: they duplicate the
// itemname of the matching lookup row and are kept consistent by
// service.SyncService, not by foreign keys.
type Medication struct {
	Tracking

	// Identification
	MedicNo int    `gorm:"column:medicno" json:"medicno"`
	MedicID string `gorm:"column:medicid;size:20" json:"medicid"`
	Barcode string `gorm:"column:barcode;size:20;index" json:"barcode"`
	AMM     string `gorm:"column:amm;size:30" json:"amm"`

	// Dénomination
	ItemName  string `gorm:"column:itemname;size:150;not null;index" json:"itemname"`
	ShortName string `gorm:"column:shortname;size:80" json:"shortname"`

	// Forme & voie
	Forme string `gorm:"column:forme;size:50" json:"forme"`
	Voie  string `gorm:"column:voie;size:40" json:"voie"`

	// Présentation
	Present  string `gorm:"column:present;size:80" json:"present"`
	Posology string `gorm:"column:posology;size:200" json:"posology"`

	// Composition (DCI). Dci is the combined display string, always
	// rebuilt from Dci1..Dci4 and never edited directly.
	Dci1 string `gorm:"column:dci1;size:100" json:"dci1"`
	Dci2 string `gorm:"column:dci2;size:100" json:"dci2"`
	Dci3 string `gorm:"column:dci3;size:100" json:"dci3"`
	Dci4 string `gorm:"column:dci4;size:100" json:"dci4"`
	Dci  string `gorm:"column:dci;size:400" json:"dci"`

	// Classification
	Fam1   string `gorm:"column:fam1;size:80" json:"fam1"`
	Fam2   string `gorm:"column:fam2;size:80" json:"fam2"`
	Fam3   string `gorm:"column:fam3;size:80" json:"fam3"`
	Family string `gorm:"column:family;size:200" json:"family"`

	// Laboratoire
	Labo string `gorm:"column:labo;size:100" json:"labo"`

	// Dosage
	Dose1 string `gorm:"column:dose1;size:20" json:"dose1"`
	Dose2 string `gorm:"column:dose2;size:20" json:"dose2"`
	U1    string `gorm:"column:u1;size:10" json:"u1"`
	U2    string `gorm:"column:u2;size:10" json:"u2"`

	// Tarification (millimes, integer amounts as in the source data)
	Price    int    `gorm:"column:price" json:"price"`
	RefPrice int    `gorm:"column:refprice" json:"refprice"`
	NetPrice int    `gorm:"column:netprice" json:"netprice"`
	Tableau  string `gorm:"column:tableau;size:10" json:"tableau"`

	// Informations médicales
	Indication string `gorm:"column:indication;size:2000" json:"indication"`
	Pediatric  int    `gorm:"column:pediatric" json:"pediatric"`

	// Statut
	IsActive int `gorm:"column:isactive;default:1" json:"isactive"`
}

func (Medication) TableName() string { return "medic" }

func (m *Medication) DisplayName() string { return m.ItemName }

// SubstanceFields returns pointers to the four substance slots so that
// fan-out propagation can rewrite them in place.
func (m *Medication) SubstanceFields() []*string {
	return []*string{&m.Dci1, &m.Dci2, &m.Dci3, &m.Dci4}
}

// FamilyFields returns pointers to the family slots, combined display
// field included (the source data stores a match there as well).
func (m *Medication) FamilyFields() []*string {
	return []*string{&m.Fam1, &m.Fam2, &m.Fam3, &m.Family}
}

// RebuildDci recomputes the combined substance display string as the
// " + "-joined concatenation of the non-blank trimmed substance slots.
func (m *Medication) RebuildDci() {
	parts := make([]string, 0, 4)
	for _, v := range []string{m.Dci1, m.Dci2, m.Dci3, m.Dci4} {
		if s := strings.TrimSpace(v); s != "" {
			parts = append(parts, s)
		}
	}
	m.Dci = strings.Join(parts, " + ")
}
