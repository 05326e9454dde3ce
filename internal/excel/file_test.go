package excel

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/youssef7511/AVCNA/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook builds a minimal xlsx with the given rows, the first
// row being the headers.
func writeWorkbook(t *testing.T, rows [][]string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for r, row := range rows {
		for c, cell := range row {
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", name, cell))
		}
	}
	path := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImportFile(t *testing.T) {
	path := writeWorkbook(t, [][]string{
		{"recordid", "itemname", "subvalue", "iteminfo", "addedat", "updatedat"},
		{"1", "Paracetamol", "", "antalgique", "2024-01-15 10:30:00", ""},
		{"", "Ibuprofene", "", "", "", ""},
		{"", "", "", "", "", ""}, // blank row, skipped
	})

	rows, err := ImportFile(path, "", DciCodec())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0].RecordID)
	assert.Equal(t, "Paracetamol", rows[0].ItemName)
	assert.Equal(t, "antalgique", rows[0].ItemInfo)
	require.NotNil(t, rows[0].AddedAt)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), *rows[0].AddedAt)
	assert.Nil(t, rows[0].UpdatedAt)

	assert.Equal(t, 0, rows[1].RecordID)
	assert.Equal(t, "Ibuprofene", rows[1].ItemName)
}

func TestImportFileHeadersCaseInsensitive(t *testing.T) {
	path := writeWorkbook(t, [][]string{
		{"RecordID", "ItemName", "SubValue", "ItemInfo", "AddedAt", "UpdatedAt"},
		{"7", "Aspirine", "", "", "", ""},
	})

	rows, err := ImportFile(path, "", DciCodec())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 7, rows[0].RecordID)
	assert.Equal(t, "Aspirine", rows[0].ItemName)
}

func TestExportFileRoundTrip(t *testing.T) {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	entities := []model.Dci{
		{Tracking: model.Tracking{RecordID: 1, AddedAt: &now}, ItemName: "Paracetamol"},
		{Tracking: model.Tracking{RecordID: 2}, ItemName: "Amoxicilline", SubValue: "penicilline"},
	}

	path := filepath.Join(t.TempDir(), "export.xlsx")
	require.NoError(t, ExportFile(entities, path, "dci", DciCodec()))

	rows, err := ImportFile(path, "dci", DciCodec())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Paracetamol", rows[0].ItemName)
	require.NotNil(t, rows[0].AddedAt)
	assert.True(t, rows[0].AddedAt.Equal(now))
	assert.Equal(t, "penicilline", rows[1].SubValue)
}

func TestExportFileTemplateOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.xlsx")
	require.NoError(t, ExportFile[model.Dci](nil, path, "dci", DciCodec()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("dci")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, DciCodec().Names(), rows[0])
}

func TestValidateFile(t *testing.T) {
	expected := DciCodec().Names()

	t.Run("valid", func(t *testing.T) {
		path := writeWorkbook(t, [][]string{
			{"recordid", "itemname", "subvalue", "iteminfo", "addedat", "updatedat"},
			{"1", "Paracetamol", "", "", "", ""},
		})
		v := ValidateFile(path, expected)
		assert.True(t, v.IsValid)
		assert.Equal(t, 1, v.RowCount)
		assert.Empty(t, v.MissingColumns)
	})

	t.Run("missing column", func(t *testing.T) {
		path := writeWorkbook(t, [][]string{
			{"recordid", "itemname"},
			{"1", "Paracetamol"},
		})
		v := ValidateFile(path, expected)
		assert.False(t, v.IsValid)
		assert.Equal(t, []string{"subvalue", "iteminfo", "addedat", "updatedat"}, v.MissingColumns)
		require.Len(t, v.Errors, 1)
		assert.Contains(t, v.Errors[0], "Colonnes manquantes")
	})

	t.Run("unreadable file", func(t *testing.T) {
		v := ValidateFile(filepath.Join(t.TempDir(), "absent.xlsx"), expected)
		assert.False(t, v.IsValid)
		require.Len(t, v.Errors, 1)
		assert.Contains(t, v.Errors[0], "Erreur lors de l'ouverture du fichier")
	})
}

func TestCodecUnparseableCells(t *testing.T) {
	codec := DciCodec()
	headers := []string{"recordid", "itemname", "addedat"}

	d := codec.Decode(headers, []string{"abc", "Paracetamol", "pas une date"})
	assert.Equal(t, 0, d.RecordID)
	assert.Equal(t, "Paracetamol", d.ItemName)
	assert.Nil(t, d.AddedAt)

	// short row: missing cells leave zero values
	d = codec.Decode(headers, []string{"3"})
	assert.Equal(t, 3, d.RecordID)
	assert.Empty(t, d.ItemName)
}
