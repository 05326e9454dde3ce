package service

import (
	"context"

	"github.com/youssef7511/AVCNA/internal/infra"
	"github.com/youssef7511/AVCNA/internal/repository"

	"github.com/rs/zerolog/log"
)

// ReportService renders the printable PDF reports and returns the path
// of the generated file for the handler to serve.
type ReportService interface {
	MedicationFiche(ctx context.Context, medicationID int) (string, error)
	StockReport(ctx context.Context) (string, error)
	InteractionsReport(ctx context.Context, substances []string) (string, error)
}

type reportService struct {
	medications  repository.MedicationRepository
	stocks       repository.StockRepository
	interactions InteractionService
	storagePath  string
}

func NewReportService(
	medications repository.MedicationRepository,
	stocks repository.StockRepository,
	interactions InteractionService,
	storagePath string,
) ReportService {
	return &reportService{
		medications:  medications,
		stocks:       stocks,
		interactions: interactions,
		storagePath:  storagePath,
	}
}

func (s *reportService) MedicationFiche(ctx context.Context, medicationID int) (string, error) {
	medication, err := s.medications.GetByID(ctx, medicationID)
	if err != nil {
		return "", err
	}
	path, err := infra.GenerateMedicationPDF(medication, s.storagePath)
	if err != nil {
		return "", err
	}
	log.Info().Int("recordid", medicationID).Str("path", path).Msg("fiche générée")
	return path, nil
}

func (s *reportService) StockReport(ctx context.Context) (string, error) {
	lines, err := s.stocks.GetAll(ctx)
	if err != nil {
		return "", err
	}
	path, err := infra.GenerateStockPDF(lines, s.storagePath)
	if err != nil {
		return "", err
	}
	log.Info().Int("lines", len(lines)).Str("path", path).Msg("rapport de stock généré")
	return path, nil
}

func (s *reportService) InteractionsReport(ctx context.Context, substances []string) (string, error) {
	found, err := s.interactions.Check(ctx, substances)
	if err != nil {
		return "", err
	}
	path, err := infra.GenerateInteractionsPDF(found, s.storagePath)
	if err != nil {
		return "", err
	}
	log.Info().Int("interactions", len(found)).Str("path", path).Msg("rapport d'interactions généré")
	return path, nil
}
