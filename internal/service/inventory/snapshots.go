package inventory

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"chemstock/internal/domain/models"
	"chemstock/internal/service/projection"
)

// snapshotLimit caps how many snapshots the document keeps. The oldest
// by insertion order is evicted first.
const snapshotLimit = 90

// CaptureSnapshot freezes the current collection and configuration
// under the given date key. An empty date means today. Capturing twice
// for the same date replaces the earlier snapshot in place.
func (s *Service) CaptureSnapshot(ctx context.Context, date string) (models.Snapshot, error) {
	if date == "" {
		date = s.now().Format(models.DateLayout)
	}
	if !models.ValidSnapshotDate(date) {
		return models.Snapshot{}, fmt.Errorf("%w, got %q", ErrBadSnapshotDate, date)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}

	snap := models.Snapshot{
		Date:      date,
		Chemicals: copyChemicals(doc.Chemicals),
		Config:    copyConfig(doc.Config),
	}

	replaced := false
	for i, existing := range doc.Snapshots {
		if existing.Date == date {
			doc.Snapshots[i] = snap
			replaced = true
			break
		}
	}
	if !replaced {
		doc.Snapshots = append(doc.Snapshots, snap)
	}
	doc.Snapshots = capSnapshots(doc.Snapshots)

	if err := s.store.Save(ctx, doc); err != nil {
		return models.Snapshot{}, fmt.Errorf("save state: %w", err)
	}

	s.logger.Info("snapshot captured",
		zap.String("date", date),
		zap.Bool("replaced", replaced),
		zap.Int("chemicals", len(snap.Chemicals)))
	return snap, nil
}

// Snapshots lists all stored snapshots in insertion order.
func (s *Service) Snapshots(ctx context.Context) ([]models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Snapshots, nil
}

// Snapshot returns the snapshot stored under date.
func (s *Service) Snapshot(ctx context.Context, date string) (models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}

	for _, snap := range doc.Snapshots {
		if snap.Date == date {
			return snap, nil
		}
	}
	return models.Snapshot{}, fmt.Errorf("snapshot %s: %w", date, ErrNotFound)
}

// DeleteSnapshot removes the snapshot stored under date.
func (s *Service) DeleteSnapshot(ctx context.Context, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return err
	}

	for i, snap := range doc.Snapshots {
		if snap.Date == date {
			doc.Snapshots = append(doc.Snapshots[:i], doc.Snapshots[i+1:]...)
			if err := s.store.Save(ctx, doc); err != nil {
				return fmt.Errorf("save state: %w", err)
			}
			s.logger.Info("snapshot deleted", zap.String("date", date))
			return nil
		}
	}
	return fmt.Errorf("snapshot %s: %w", date, ErrNotFound)
}

// SnapshotDashboard replays the projection for a stored snapshot using
// the snapshot's own date as the reference, so day offsets read as
// they did when the snapshot was taken.
func (s *Service) SnapshotDashboard(ctx context.Context, date string) (projection.Portfolio, error) {
	snap, err := s.Snapshot(ctx, date)
	if err != nil {
		return projection.Portfolio{}, err
	}

	reference, ok := models.ParseDate(snap.Date)
	if !ok {
		// Regex-valid but non-calendar dates can only arrive through a
		// bulk restore; fall back to now rather than failing the view.
		s.logger.Warn("snapshot date not parseable, using current date", zap.String("date", snap.Date))
		reference = s.now()
	}
	return projection.ProjectAll(snap.Chemicals, reference), nil
}

func capSnapshots(snapshots []models.Snapshot) []models.Snapshot {
	if len(snapshots) <= snapshotLimit {
		return snapshots
	}
	return snapshots[len(snapshots)-snapshotLimit:]
}

func copyChemicals(chemicals []models.Chemical) []models.Chemical {
	copied := make([]models.Chemical, len(chemicals))
	copy(copied, chemicals)
	return copied
}

func copyConfig(cfg models.PlantConfig) models.PlantConfig {
	shifts := make(map[string]int, len(cfg.Shifts))
	for k, v := range cfg.Shifts {
		shifts[k] = v
	}
	return models.PlantConfig{Shifts: shifts}
}
