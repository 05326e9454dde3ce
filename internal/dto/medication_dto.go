package dto

// MedicationRequest carries the writable fields for create and update.
// The combined dci column is absent on purpose: it is always recomputed
// from dci1..dci4 on save.
type MedicationRequest struct {
	MedicNo   int    `json:"medicno"`
	MedicID   string `json:"medicid" validate:"max=20"`
	Barcode   string `json:"barcode" validate:"max=20"`
	AMM       string `json:"amm" validate:"max=30"`
	ItemName  string `json:"itemname" validate:"required,max=150"`
	ShortName string `json:"shortname" validate:"max=80"`

	Forme string `json:"forme" validate:"max=50"`
	Voie  string `json:"voie" validate:"max=40"`

	Present  string `json:"present" validate:"max=80"`
	Posology string `json:"posology" validate:"max=200"`

	Dci1 string `json:"dci1" validate:"max=100"`
	Dci2 string `json:"dci2" validate:"max=100"`
	Dci3 string `json:"dci3" validate:"max=100"`
	Dci4 string `json:"dci4" validate:"max=100"`

	Fam1   string `json:"fam1" validate:"max=80"`
	Fam2   string `json:"fam2" validate:"max=80"`
	Fam3   string `json:"fam3" validate:"max=80"`
	Family string `json:"family" validate:"max=200"`

	Labo string `json:"labo" validate:"max=100"`

	Dose1 string `json:"dose1" validate:"max=20"`
	Dose2 string `json:"dose2" validate:"max=20"`
	U1    string `json:"u1" validate:"max=10"`
	U2    string `json:"u2" validate:"max=10"`

	Price    int    `json:"price" validate:"gte=0"`
	RefPrice int    `json:"refprice" validate:"gte=0"`
	NetPrice int    `json:"netprice" validate:"gte=0"`
	Tableau  string `json:"tableau" validate:"max=10"`

	Indication string `json:"indication" validate:"max=2000"`
	Pediatric  int    `json:"pediatric" validate:"oneof=0 1"`
}

// MedicationFilter narrows the paged listing.
// Active: "false" = inactive only, "all" = everything, default active only.
type MedicationFilter struct {
	Name   string `form:"name"`
	Labo   string `form:"labo"`
	Family string `form:"family"`
	Dci    string `form:"dci"`
	Active string `form:"active"`
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=50"`
}
