package dto

// LookupRequest is the shared write shape for the five reference
// tables. Fields a given table does not have are simply ignored when
// the request is applied to it.
type LookupRequest struct {
	ItemName  string `json:"itemname" validate:"required,max=100"`
	SubValue  string `json:"subvalue" validate:"max=100"`
	ItemInfo  string `json:"iteminfo" validate:"max=500"`
	FormGroup string `json:"formgroup" validate:"max=25"`
	AbName    string `json:"abname" validate:"max=230"`
}

// UsageResponse tells the UI how many medications reference a lookup
// value, so it can warn before a rename or delete.
type UsageResponse struct {
	RecordID int    `json:"recordid"`
	ItemName string `json:"itemname"`
	Count    int    `json:"count"`
}

// FanOutResponse reports how many medication rows a rename or delete
// touched.
type FanOutResponse struct {
	Affected int `json:"affected"`
}
