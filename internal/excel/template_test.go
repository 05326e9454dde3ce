package excel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingColumns(t *testing.T) {
	expected := []string{"recordid", "itemname", "subvalue"}

	assert.Empty(t, MissingColumns([]string{"recordid", "itemname", "subvalue"}, expected))
	assert.Equal(t, []string{"subvalue"}, MissingColumns([]string{"recordid", "itemname"}, expected))
	assert.Equal(t, expected, MissingColumns(nil, expected))
}

func TestMissingColumnsCaseInsensitive(t *testing.T) {
	expected := []string{"recordid", "itemname"}
	assert.Empty(t, MissingColumns([]string{"RecordID", "  ITEMNAME "}, expected))
}

func TestUnexpectedColumns(t *testing.T) {
	expected := []string{"recordid", "itemname"}

	assert.Empty(t, UnexpectedColumns([]string{"recordid", "itemname"}, expected))
	assert.Equal(t, []string{"prix"}, UnexpectedColumns([]string{"recordid", "itemname", "prix"}, expected))
}

func TestDuplicateColumns(t *testing.T) {
	assert.Empty(t, DuplicateColumns([]string{"a", "b", "c"}))
	// {A, A, B, C} : one ambiguous header, reported once
	assert.Equal(t, []string{"A"}, DuplicateColumns([]string{"a", "A", "b", "c"}))
	assert.Len(t, DuplicateColumns([]string{"a", "a", "a"}), 1)
}
