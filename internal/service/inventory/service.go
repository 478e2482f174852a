// Package inventory owns the persisted inventory document: migration
// on read, chemical and configuration edits, snapshots, and the
// dashboard views derived from the collection. Every mutation is a
// serialized read-modify-write cycle against the backing store.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chemstock/internal/domain/models"
	"chemstock/internal/service/projection"
)

// Store is the persistence contract the service relies on: one JSON
// document, loaded and saved whole. A missing document loads as the
// zero value, not an error.
type Store interface {
	Load(ctx context.Context) (models.Document, error)
	Save(ctx context.Context, doc models.Document) error
	Close(ctx context.Context) error
}

var (
	// ErrNotFound marks lookups of chemicals or snapshots that do not exist.
	ErrNotFound = errors.New("not found")
	// ErrNameRequired rejects chemicals created or renamed without a name.
	ErrNameRequired = errors.New("chemical name is required")
	// ErrBadSnapshotDate rejects snapshot keys that are not plain calendar dates.
	ErrBadSnapshotDate = errors.New("snapshot date must be formatted YYYY-MM-DD")
)

// Service coordinates access to the inventory document.
type Service struct {
	store  Store
	logger *zap.Logger

	mu  sync.Mutex
	now func() time.Time
}

// NewService wires a new inventory service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Document returns the full persisted state, migrated to the current
// shape. The store itself is rewritten only on the next mutation.
func (s *Service) Document(ctx context.Context) (models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// ReplaceDocument overwrites the full persisted state, used for bulk
// imports and restores. Snapshot dates are validated before anything
// is written.
func (s *Service) ReplaceDocument(ctx context.Context, doc models.Document) (models.Document, error) {
	for _, snap := range doc.Snapshots {
		if !models.ValidSnapshotDate(snap.Date) {
			return models.Document{}, fmt.Errorf("%w, got %q", ErrBadSnapshotDate, snap.Date)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc = normalize(doc)
	for i := range doc.Chemicals {
		if doc.Chemicals[i].ID == "" {
			doc.Chemicals[i].ID = uuid.NewString()
		}
	}
	doc.Snapshots = capSnapshots(doc.Snapshots)
	if err := s.store.Save(ctx, doc); err != nil {
		return models.Document{}, fmt.Errorf("save state: %w", err)
	}

	s.logger.Info("state replaced",
		zap.Int("chemicals", len(doc.Chemicals)),
		zap.Int("snapshots", len(doc.Snapshots)))
	return doc, nil
}

// CreateChemical appends a new record with a generated id.
func (s *Service) CreateChemical(ctx context.Context, c models.Chemical) (models.Chemical, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return models.Chemical{}, ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return models.Chemical{}, err
	}

	c.ID = uuid.NewString()
	c.LastUpdated = s.now().Format(time.RFC3339)
	c = models.Migrate(c)

	doc.Chemicals = append(doc.Chemicals, c)
	if err := s.store.Save(ctx, doc); err != nil {
		return models.Chemical{}, fmt.Errorf("save state: %w", err)
	}

	s.logger.Info("chemical created", zap.String("id", c.ID), zap.String("name", c.Name))
	return c, nil
}

// UpdateChemical replaces the full record behind id, keeping the id.
func (s *Service) UpdateChemical(ctx context.Context, id string, c models.Chemical) (models.Chemical, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return models.Chemical{}, ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return models.Chemical{}, err
	}

	idx := findChemical(doc.Chemicals, id)
	if idx < 0 {
		return models.Chemical{}, fmt.Errorf("chemical %s: %w", id, ErrNotFound)
	}

	c.ID = id
	c.LastUpdated = s.now().Format(time.RFC3339)
	c = models.Migrate(c)

	doc.Chemicals[idx] = c
	if err := s.store.Save(ctx, doc); err != nil {
		return models.Chemical{}, fmt.Errorf("save state: %w", err)
	}

	s.logger.Info("chemical updated", zap.String("id", id))
	return c, nil
}

// PatchChemical applies a partial update to the record behind id.
func (s *Service) PatchChemical(ctx context.Context, id string, patch models.ChemicalPatch) (models.Chemical, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return models.Chemical{}, err
	}

	idx := findChemical(doc.Chemicals, id)
	if idx < 0 {
		return models.Chemical{}, fmt.Errorf("chemical %s: %w", id, ErrNotFound)
	}

	c := applyPatch(doc.Chemicals[idx], patch)
	if c.Name == "" {
		return models.Chemical{}, ErrNameRequired
	}
	c.LastUpdated = s.now().Format(time.RFC3339)
	c = models.Migrate(c)

	doc.Chemicals[idx] = c
	if err := s.store.Save(ctx, doc); err != nil {
		return models.Chemical{}, fmt.Errorf("save state: %w", err)
	}

	s.logger.Info("chemical patched", zap.String("id", id))
	return c, nil
}

// DeleteChemical removes the record behind id.
func (s *Service) DeleteChemical(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return err
	}

	idx := findChemical(doc.Chemicals, id)
	if idx < 0 {
		return fmt.Errorf("chemical %s: %w", id, ErrNotFound)
	}

	doc.Chemicals = append(doc.Chemicals[:idx], doc.Chemicals[idx+1:]...)
	if err := s.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	s.logger.Info("chemical deleted", zap.String("id", id))
	return nil
}

// ReorderChemicals rewrites the collection order to follow ids. Ids
// that do not exist are skipped, records missing from ids keep their
// relative order at the end, so a stale drag-and-drop request cannot
// drop inventory.
func (s *Service) ReorderChemicals(ctx context.Context, ids []string) ([]models.Chemical, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	ordered := make([]models.Chemical, 0, len(doc.Chemicals))
	taken := make(map[string]bool, len(ids))
	for _, id := range ids {
		if taken[id] {
			continue
		}
		if idx := findChemical(doc.Chemicals, id); idx >= 0 {
			ordered = append(ordered, doc.Chemicals[idx])
			taken[id] = true
		}
	}
	for _, c := range doc.Chemicals {
		if !taken[c.ID] {
			ordered = append(ordered, c)
		}
	}

	doc.Chemicals = ordered
	if err := s.store.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("save state: %w", err)
	}

	s.logger.Info("chemicals reordered", zap.Int("count", len(ordered)))
	return ordered, nil
}

// UpdateShifts replaces the plant shift configuration.
func (s *Service) UpdateShifts(ctx context.Context, shifts map[string]int) (models.PlantConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return models.PlantConfig{}, err
	}

	if shifts == nil {
		shifts = map[string]int{}
	}
	doc.Config.Shifts = shifts
	if err := s.store.Save(ctx, doc); err != nil {
		return models.PlantConfig{}, fmt.Errorf("save state: %w", err)
	}

	s.logger.Info("shifts updated", zap.Int("lines", len(shifts)))
	return doc.Config, nil
}

// Dashboard projects the current collection. A zero reference means
// "now".
func (s *Service) Dashboard(ctx context.Context, reference time.Time) (projection.Portfolio, error) {
	if reference.IsZero() {
		reference = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return projection.Portfolio{}, err
	}
	return projection.ProjectAll(doc.Chemicals, reference), nil
}

func (s *Service) load(ctx context.Context) (models.Document, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return models.Document{}, fmt.Errorf("load state: %w", err)
	}
	return normalize(doc), nil
}

// normalize migrates every chemical (snapshot contents included) and
// replaces nil collections so the document marshals with [] and {}
// instead of null.
func normalize(doc models.Document) models.Document {
	doc.Chemicals = models.MigrateAll(doc.Chemicals)
	if doc.Config.Shifts == nil {
		doc.Config.Shifts = map[string]int{}
	}

	snapshots := make([]models.Snapshot, 0, len(doc.Snapshots))
	for _, snap := range doc.Snapshots {
		snap.Chemicals = models.MigrateAll(snap.Chemicals)
		if snap.Config.Shifts == nil {
			snap.Config.Shifts = map[string]int{}
		}
		snapshots = append(snapshots, snap)
	}
	doc.Snapshots = snapshots
	return doc
}

func findChemical(chemicals []models.Chemical, id string) int {
	for i, c := range chemicals {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func applyPatch(c models.Chemical, p models.ChemicalPatch) models.Chemical {
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Category != nil {
		c.Category = *p.Category
	}
	if p.Unit != nil {
		c.Unit = *p.Unit
	}
	if p.FactoryStock != nil {
		c.FactoryStock = *p.FactoryStock
	}
	if p.LocalPurchase != nil {
		c.LocalPurchase = *p.LocalPurchase
	}
	if p.UsePerDay != nil {
		c.UsePerDay = *p.UsePerDay
	}
	if p.Imports != nil {
		c.Imports = *p.Imports
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	return c
}
