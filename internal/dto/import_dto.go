package dto

// FileValidation is the outcome of checking a spreadsheet's structure
// against an entity's expected columns. Errors are accumulated, not
// fail-fast, so the user sees every structural problem at once.
type FileValidation struct {
	IsValid        bool     `json:"isValid"`
	Errors         []string `json:"errors"`
	Warnings       []string `json:"warnings"`
	RowCount       int      `json:"rowCount"`
	FoundColumns   []string `json:"foundColumns"`
	MissingColumns []string `json:"missingColumns,omitempty"`
}

// StrictImportResult is what an import/validation attempt returns to
// the client. When IsValid is false nothing was written and the counts
// are zero.
type StrictImportResult struct {
	FileValidation
	InsertedCount int `json:"insertedCount"`
	UpdatedCount  int `json:"updatedCount"`
	SkippedCount  int `json:"skippedCount"`
}
