package excel

import "strings"

// Pure helpers over header lists. All comparisons are case-insensitive:
// header matching never depends on how the spreadsheet author cased the
// column names.

// MissingColumns returns the expected columns absent from found.
func MissingColumns(found, expected []string) []string {
	var missing []string
	for _, e := range expected {
		if !containsFold(found, e) {
			missing = append(missing, e)
		}
	}
	return missing
}

// UnexpectedColumns returns the found columns that are not expected.
// Under the strict template these make the file unimportable: an
// unrecognized header usually means the file targets another schema
// version.
func UnexpectedColumns(found, expected []string) []string {
	var unexpected []string
	for _, f := range found {
		if !containsFold(expected, f) {
			unexpected = append(unexpected, f)
		}
	}
	return unexpected
}

// DuplicateColumns returns each header appearing more than once.
// Duplicates are ambiguous to map, so strict validation rejects them.
func DuplicateColumns(found []string) []string {
	seen := make(map[string]int, len(found))
	var duplicates []string
	for _, f := range found {
		key := strings.ToLower(strings.TrimSpace(f))
		seen[key]++
		if seen[key] == 2 {
			duplicates = append(duplicates, f)
		}
	}
	return duplicates
}

func containsFold(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(needle)) {
			return true
		}
	}
	return false
}
