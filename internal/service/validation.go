package service

import (
	"regexp"
	"strings"
)

// Format checks shared by medication create/update. Both fields are
// optional in the data; when present they must look plausible.

var (
	// EAN-13 (13 digits, possibly shorter EAN-8) or Code 128 style
	// alphanumeric codes.
	barcodeRe = regexp.MustCompile(`^(\d{8}|\d{12,14}|[A-Za-z0-9\-]{6,20})$`)

	// Tunisian AMM numbers: letters and digits, with the usual
	// separators.
	ammRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 /\-.]*$`)
)

// ValidBarcode reports whether the barcode looks like an EAN-13/EAN-8
// or Code 128 value. A blank barcode is not valid; callers decide
// whether blank is allowed.
func ValidBarcode(barcode string) bool {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return false
	}
	return barcodeRe.MatchString(barcode)
}

// ValidAMM reports whether the AMM number is well-formed. Blank is
// accepted: the AMM is optional.
func ValidAMM(amm string) bool {
	amm = strings.TrimSpace(amm)
	if amm == "" {
		return true
	}
	return ammRe.MatchString(amm)
}
