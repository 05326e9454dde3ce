package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/youssef7511/AVCNA/internal/dto"
	"github.com/youssef7511/AVCNA/internal/excel"
	"github.com/youssef7511/AVCNA/internal/metrics"
	"github.com/youssef7511/AVCNA/internal/model"
	"github.com/youssef7511/AVCNA/internal/repository"

	"github.com/rs/zerolog/log"
)

// Importable is the constraint for entities accepted by the strict
// import pipeline: trackable, named, and able to copy a spreadsheet row
// onto an existing record without touching the primary key.
type Importable[T any] interface {
	*T
	model.Trackable
	model.Named
	CopyFrom(*T)
}

// StrictSyncService imports a spreadsheet into one lookup table as a
// validated upsert. Validation is strict: the file's header row must be
// exactly the entity's expected column set, nothing missing and nothing
// extra, no duplicates. A file that fails validation is refused outright
// and nothing is written.
type StrictSyncService[T any, PT Importable[T]] struct {
	repo   repository.Repository[T]
	codec  *excel.Codec[T]
	entity string // entity label for logs
}

func NewStrictSyncService[T any, PT Importable[T]](repo repository.Repository[T], codec *excel.Codec[T], entity string) *StrictSyncService[T, PT] {
	return &StrictSyncService[T, PT]{repo: repo, codec: codec, entity: entity}
}

// ExpectedColumns returns the strict header set in template order.
func (s *StrictSyncService[T, PT]) ExpectedColumns() []string {
	return s.codec.Names()
}

// CreateTemplate writes an empty workbook carrying exactly the expected
// headers, for users to fill in and re-import.
func (s *StrictSyncService[T, PT]) CreateTemplate(path, sheetName string) error {
	return excel.ExportFile(nil, path, sheetName, s.codec)
}

// Export writes every current row of the table to a workbook. The
// output is itself a valid strict-import file, which is what makes the
// export → edit → re-import (upsert) round trip work.
func (s *StrictSyncService[T, PT]) Export(ctx context.Context, path, sheetName string) (int, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	if err := excel.ExportFile(rows, path, sheetName, s.codec); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// ValidateStrict runs the generic file validation, then the two strict
// checks on top: duplicate headers and unrecognized columns.
func (s *StrictSyncService[T, PT]) ValidateStrict(path string) *dto.StrictImportResult {
	validation := excel.ValidateFile(path, s.ExpectedColumns())
	result := &dto.StrictImportResult{FileValidation: *validation}

	if duplicates := excel.DuplicateColumns(result.FoundColumns); len(duplicates) > 0 {
		result.IsValid = false
		result.Errors = append(result.Errors,
			"En-têtes dupliqués : "+strings.Join(duplicates, ", "))
	}

	if unexpected := excel.UnexpectedColumns(result.FoundColumns, s.ExpectedColumns()); len(unexpected) > 0 {
		result.IsValid = false
		result.Errors = append(result.Errors,
			"Colonnes non reconnues (template strict) : "+strings.Join(unexpected, ", "))
	}

	return result
}

// ImportAndSync validates the file, then reconciles its rows into the
// repository: rows whose recordid matches an existing record become
// updates, everything else becomes an insert. A file carrying the same
// non-zero recordid twice is ambiguous ("update which row last?") and
// is rejected before anything is written. Rows with a blank display
// name are counted and skipped as incomplete template lines, not errors.
func (s *StrictSyncService[T, PT]) ImportAndSync(ctx context.Context, path, sheetName string) (*dto.StrictImportResult, error) {
	result := s.ValidateStrict(path)
	if !result.IsValid {
		return result, nil
	}

	imported, err := excel.ImportFile(path, sheetName, s.codec)
	if err != nil {
		return nil, err
	}

	if duplicates := duplicateIDs[T, PT](imported); len(duplicates) > 0 {
		result.IsValid = false
		result.Errors = append(result.Errors,
			"recordid dupliqués dans le fichier : "+joinInts(duplicates))
		return result, nil
	}

	existingByID, err := s.fetchExisting(ctx, imported)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var toInsert []T
	updated, skipped := 0, 0

	for i := range imported {
		row := PT(&imported[i])

		if strings.TrimSpace(row.DisplayName()) == "" {
			skipped++
			continue
		}

		if current, ok := existingByID[row.GetRecordID()]; row.GetRecordID() > 0 && ok {
			PT(current).CopyFrom(&imported[i])
			PT(current).SetUpdatedAt(now)
			if PT(current).GetAddedAt() == nil {
				PT(current).SetAddedAt(now)
			}
			if err := s.repo.Update(ctx, current); err != nil {
				return nil, err
			}
			updated++
			continue
		}

		row.SetRecordID(0)
		if row.GetAddedAt() == nil {
			row.SetAddedAt(now)
		}
		row.SetUpdatedAt(now)
		toInsert = append(toInsert, imported[i])
	}

	if err := s.repo.AddRange(ctx, toInsert); err != nil {
		return nil, err
	}

	result.InsertedCount = len(toInsert)
	result.UpdatedCount = updated
	result.SkippedCount = skipped

	metrics.ImportRowsTotal.WithLabelValues(s.entity, "inserted").Add(float64(result.InsertedCount))
	metrics.ImportRowsTotal.WithLabelValues(s.entity, "updated").Add(float64(result.UpdatedCount))
	metrics.ImportRowsTotal.WithLabelValues(s.entity, "skipped").Add(float64(result.SkippedCount))

	log.Info().
		Str("entity", s.entity).
		Int("rows", result.RowCount).
		Int("inserted", result.InsertedCount).
		Int("updated", result.UpdatedCount).
		Int("skipped", result.SkippedCount).
		Msg("import terminé")

	return result, nil
}

// fetchExisting loads every record whose id appears in the file in one
// batched query, instead of one lookup per row.
func (s *StrictSyncService[T, PT]) fetchExisting(ctx context.Context, imported []T) (map[int]*T, error) {
	var ids []int
	for i := range imported {
		if id := PT(&imported[i]).GetRecordID(); id > 0 {
			ids = append(ids, id)
		}
	}
	existing := make(map[int]*T, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}

	found, err := s.repo.Find(ctx, "recordid IN ?", ids)
	if err != nil {
		return nil, fmt.Errorf("import: fetch existing records: %w", err)
	}
	for i := range found {
		existing[PT(&found[i]).GetRecordID()] = &found[i]
	}
	return existing, nil
}

func duplicateIDs[T any, PT Importable[T]](rows []T) []int {
	counts := make(map[int]int, len(rows))
	var duplicates []int
	for i := range rows {
		id := PT(&rows[i]).GetRecordID()
		if id <= 0 {
			continue
		}
		counts[id]++
		if counts[id] == 2 {
			duplicates = append(duplicates, id)
		}
	}
	return duplicates
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
