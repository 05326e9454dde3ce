package dto

type InteractionRequest struct {
	Dci1        string `json:"dci1" validate:"required,max=100"`
	Dci2        string `json:"dci2" validate:"required,max=100"`
	Level       string `json:"level" validate:"max=20"`
	Description string `json:"description" validate:"max=500"`
	Conduite    string `json:"conduite" validate:"max=500"`
	Mecanisme   string `json:"mecanisme" validate:"max=200"`
}

// CheckInteractionsRequest asks which known interactions involve any of
// the given substances, typically the dci1..dci4 of a prescription.
type CheckInteractionsRequest struct {
	Substances []string `json:"substances" validate:"required,min=1,dive,required"`
}
