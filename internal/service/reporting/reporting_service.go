// Package reporting turns the projected portfolio into daily
// summaries: a text digest for the alert webhook and a row appended to
// the shared procurement spreadsheet.
package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"chemstock/internal/domain/models"
	repo "chemstock/internal/repository/sheets"
	"chemstock/internal/service/projection"
	"chemstock/pkg/clients/notify"
)

const (
	defaultSummaryRange = "Summary!A:H"
	maxReportedGaps     = 3
)

// PortfolioSource supplies the projected portfolio reports are built from.
type PortfolioSource interface {
	Dashboard(ctx context.Context, reference time.Time) (projection.Portfolio, error)
}

// Service exposes the daily reporting operations.
type Service struct {
	inventory    PortfolioSource
	sheets       repo.Repository
	notifier     notify.Client
	summaryRange string
	logger       *zap.Logger
}

// NewService wires a new reporting service instance. The sheets
// repository and the notifier may be nil when the corresponding
// integration is not configured.
func NewService(inventory PortfolioSource, sheetsRepo repo.Repository, notifier notify.Client, summaryRange string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if summaryRange == "" {
		summaryRange = defaultSummaryRange
	}
	return &Service{
		inventory:    inventory,
		sheets:       sheetsRepo,
		notifier:     notifier,
		summaryRange: summaryRange,
		logger:       logger,
	}
}

// BuildDailySummary renders the portfolio into a human-readable digest.
func (s *Service) BuildDailySummary(ctx context.Context, reference time.Time) (string, error) {
	portfolio, err := s.inventory.Dashboard(ctx, reference)
	if err != nil {
		return "", fmt.Errorf("load dashboard: %w", err)
	}
	return buildSummaryText(portfolio, reference), nil
}

// AppendDailySummary appends the day's portfolio counts to the shared
// spreadsheet. A nil sheets repository turns this into a no-op.
func (s *Service) AppendDailySummary(ctx context.Context, reference time.Time) error {
	if s.sheets == nil {
		s.logger.Debug("sheets export disabled, skipping daily summary row")
		return nil
	}

	portfolio, err := s.inventory.Dashboard(ctx, reference)
	if err != nil {
		return fmt.Errorf("load dashboard: %w", err)
	}

	if err := s.sheets.AppendRow(ctx, s.summaryRange, summaryRow(portfolio, reference)); err != nil {
		return fmt.Errorf("append daily summary: %w", err)
	}

	s.logger.Info("daily summary appended", zap.String("range", s.summaryRange))
	return nil
}

// DispatchDailyReport builds the digest, appends the spreadsheet row,
// and delivers the digest to the alert webhook. A failed spreadsheet
// append is logged but does not block delivery.
func (s *Service) DispatchDailyReport(ctx context.Context, reference time.Time) (string, error) {
	portfolio, err := s.inventory.Dashboard(ctx, reference)
	if err != nil {
		return "", fmt.Errorf("load dashboard: %w", err)
	}

	summary := buildSummaryText(portfolio, reference)

	if s.sheets != nil {
		if err := s.sheets.AppendRow(ctx, s.summaryRange, summaryRow(portfolio, reference)); err != nil {
			s.logger.Error("failed appending daily summary", zap.Error(err))
		}
	}

	if s.notifier == nil {
		s.logger.Debug("alert webhook disabled, daily report not delivered")
		return summary, nil
	}
	if err := s.notifier.SendText(ctx, summary); err != nil {
		return summary, fmt.Errorf("deliver daily report: %w", err)
	}

	s.logger.Info("daily report delivered")
	return summary, nil
}

func buildSummaryText(portfolio projection.Portfolio, reference time.Time) string {
	day := reference.Format(models.DateLayout)
	sum := portfolio.Summary

	if sum.Total == 0 {
		return fmt.Sprintf("Chemical supply %s: no chemicals tracked yet.", day)
	}

	lines := []string{fmt.Sprintf(
		"Chemical supply %s: %d tracked, %d critical, %d warning, %d low, %d ok, %d with supply gaps.",
		day, sum.Total, sum.Critical, sum.Warning, sum.Low, sum.OK, sum.WithGaps)}

	urgent := projection.SortGapsByUrgency(portfolio.GapItems)
	if len(urgent) > maxReportedGaps {
		urgent = urgent[:maxReportedGaps]
	}
	for _, item := range urgent {
		days := "unknown"
		if v, ok := item.ImmediateDaysRemaining.Days(); ok {
			days = fmt.Sprintf("%.1f", v)
		}
		lines = append(lines, fmt.Sprintf(
			"Order soon: %s has %s days of immediate stock and a %.0f day gap (%.0f %s short).",
			item.Name, days, item.GapDays, item.GapQuantity, item.Unit))
	}

	return strings.Join(lines, "\n")
}

func summaryRow(portfolio projection.Portfolio, reference time.Time) []interface{} {
	sum := portfolio.Summary

	note := ""
	if urgent := projection.SortGapsByUrgency(portfolio.GapItems); len(urgent) > 0 {
		note = fmt.Sprintf("most urgent: %s", urgent[0].Name)
	}

	return []interface{}{
		reference.Format(models.DateLayout),
		sum.Total,
		sum.Critical,
		sum.Warning,
		sum.Low,
		sum.OK,
		sum.WithGaps,
		note,
	}
}
