// Package scheduler runs the daily stock alert scan: flag lines below
// their minimum or nearing expiry, update the alert gauge, and send the
// digest email when a mailer is configured.
package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/youssef7511/AVCNA/internal/infra"
	"github.com/youssef7511/AVCNA/internal/metrics"
	"github.com/youssef7511/AVCNA/internal/service"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"
)

type Scheduler struct {
	scheduler *gocron.Scheduler
	stocks    service.StockService
	mailer    *infra.Mailer
	alertTo   string
}

func New(stocks service.StockService, mailer *infra.Mailer, alertTo string) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		stocks:    stocks,
		mailer:    mailer,
		alertTo:   alertTo,
	}
}

// Start schedules the daily scan and runs the scheduler asynchronously.
// cronExpr is a standard five-field cron expression.
func (s *Scheduler) Start(cronExpr string) error {
	if _, err := s.scheduler.Cron(cronExpr).Do(s.scanAlerts); err != nil {
		return fmt.Errorf("scheduler: schedule alert scan: %w", err)
	}
	s.scheduler.StartAsync()
	log.Info().Str("cron", cronExpr).Msg("alert scan scheduled")
	return nil
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) scanAlerts() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	alerts, err := s.stocks.Alerts(ctx)
	if err != nil {
		log.Error().Err(err).Msg("alert scan failed")
		return
	}

	metrics.StockAlertsActive.Set(float64(alerts.Total))
	log.Info().Int("lowStock", len(alerts.LowStock)).Int("expiring", len(alerts.Expiring)).
		Msg("alert scan terminé")

	if alerts.Total == 0 || s.mailer == nil || s.alertTo == "" {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Alertes de stock du %s\n\n", time.Now().Format("02/01/2006"))
	if len(alerts.LowStock) > 0 {
		b.WriteString("Stock bas :\n")
		for _, a := range alerts.LowStock {
			fmt.Fprintf(&b, "  - %s : %d en stock (minimum %d)\n", a.MedicName, a.CurrentStock, a.MinStock)
		}
		b.WriteString("\n")
	}
	if len(alerts.Expiring) > 0 {
		b.WriteString("Péremptions proches :\n")
		for _, a := range alerts.Expiring {
			fmt.Fprintf(&b, "  - %s (lot %s) : %d unités, expire le %s\n",
				a.MedicName, a.BatchNo, a.Quantity, a.ExpiryDate.Format("02/01/2006"))
		}
	}

	subject := fmt.Sprintf("Alertes de stock (%d)", alerts.Total)
	if err := s.mailer.SendAlertDigest(s.alertTo, subject, b.String(), ""); err != nil {
		log.Error().Err(err).Msg("alert digest email failed")
	}
}
