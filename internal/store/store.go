package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"atelier/internal/domain"
	"atelier/internal/repository"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var (
	// ErrSyncFailed wraps every failed remote write
	ErrSyncFailed = errors.New("cloud sync failed")
	// ErrReloadFailed reports a write that landed remotely but could not be read back
	ErrReloadFailed = errors.New("saved, but reloading the catalog failed")
)

// Store is the process-wide state cell shared by every handler
type Store struct {
	products repository.ProductRepository
	sections repository.HomepageConfigRepository
	logger   *zap.Logger
	tracer   trace.Tracer

	mu       sync.RWMutex
	catalog  []domain.Product
	homepage []domain.HomepageSection
	loaded   bool
	err      error

	sessionMu sync.Mutex
	sessions  map[string]*Session
}

// New creates an empty store. Call Refresh to load the remote tables.
func New(products repository.ProductRepository, sections repository.HomepageConfigRepository, logger *zap.Logger) *Store {
	return &Store{
		products: products,
		sections: sections,
		logger:   logger,
		tracer:   otel.Tracer("atelier/store"),
		catalog:  []domain.Product{},
		homepage: []domain.HomepageSection{},
		sessions: make(map[string]*Session),
	}
}

// Refresh reloads products and homepage sections from the remote tables and replaces the
// in-memory collections. On failure the previous collections are kept and the error is
// recorded for Err.
func (s *Store) Refresh(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "store.Refresh")
	defer span.End()

	productRows, err := s.products.List(ctx)
	if err != nil {
		return s.refreshFailed(span, err)
	}

	sectionRows, err := s.sections.List(ctx)
	if err != nil {
		return s.refreshFailed(span, err)
	}

	catalog := make([]domain.Product, 0, len(productRows))
	for _, row := range productRows {
		catalog = append(catalog, ProductFromRow(row))
	}

	homepage := make([]domain.HomepageSection, 0, len(sectionRows))
	for _, row := range sectionRows {
		homepage = append(homepage, SectionFromRow(row))
	}

	s.mu.Lock()
	s.catalog = catalog
	s.homepage = homepage
	s.loaded = true
	s.err = nil
	s.mu.Unlock()

	span.SetAttributes(
		attribute.Int("products", len(catalog)),
		attribute.Int("sections", len(homepage)),
	)
	s.logger.Debug("Store refreshed",
		zap.Int("products", len(catalog)),
		zap.Int("sections", len(homepage)),
	)

	return nil
}

func (s *Store) refreshFailed(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	s.mu.Lock()
	s.err = err
	s.mu.Unlock()

	s.logger.Error("Failed to refresh store", zap.Error(err))
	return fmt.Errorf("failed to refresh store: %w", err)
}

// UpdateHomepageConfig upserts sections by id. Local state changes only after the remote
// write succeeds; a failed write triggers Refresh and returns an error wrapping ErrSyncFailed.
func (s *Store) UpdateHomepageConfig(ctx context.Context, sections []domain.HomepageSection) error {
	ctx, span := s.tracer.Start(ctx, "store.UpdateHomepageConfig")
	defer span.End()

	rows := make([]repository.HomepageConfigRow, 0, len(sections))
	for _, section := range sections {
		rows = append(rows, SectionToRow(section))
	}

	if err := s.sections.Upsert(ctx, rows); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error("Failed to publish homepage config", zap.Error(err))

		if refreshErr := s.Refresh(ctx); refreshErr != nil {
			s.logger.Error("Rollback refresh failed", zap.Error(refreshErr))
		}
		return fmt.Errorf("%w: %w", ErrSyncFailed, err)
	}

	// Rows absent from sections stay in the table, so merge by id
	s.mu.Lock()
	committed := mergeSections(s.homepage, sections)
	s.homepage = committed
	s.mu.Unlock()

	s.logger.Info("Homepage config published", zap.Int("sections", len(committed)))
	return nil
}

// WriteProducts runs a product write and refreshes afterwards. The refresh runs whether the
// write succeeded or not; a failed write is returned wrapped in ErrSyncFailed. A successful
// write followed by a failed refresh returns an error wrapping ErrReloadFailed.
func (s *Store) WriteProducts(ctx context.Context, write func(ctx context.Context, repo repository.ProductRepository) error) error {
	ctx, span := s.tracer.Start(ctx, "store.WriteProducts")
	defer span.End()

	writeErr := write(ctx, s.products)
	if writeErr != nil {
		span.RecordError(writeErr)
		span.SetStatus(codes.Error, writeErr.Error())
		s.logger.Error("Product write failed", zap.Error(writeErr))
	}

	if err := s.Refresh(ctx); err != nil && writeErr == nil {
		return fmt.Errorf("%w: %w", ErrReloadFailed, err)
	}

	if writeErr != nil {
		return fmt.Errorf("%w: %w", ErrSyncFailed, writeErr)
	}
	return nil
}

// Products returns a copy of the catalog, newest first
func (s *Store) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, len(s.catalog))
	copy(out, s.catalog)
	return out
}

// Product looks a product up by id
func (s *Store) Product(id string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.catalog {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// HomepageConfig returns a copy of the sections ordered by display order
func (s *Store) HomepageConfig() []domain.HomepageSection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copySections(s.homepage)
}

// Err returns the error of the last failed refresh, or nil
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.err
}

// Loaded reports whether at least one refresh succeeded
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loaded
}

// NeedsInitialization reports a loaded store whose homepage has no sections
func (s *Store) NeedsInitialization() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loaded && len(s.homepage) == 0
}

// Session returns the shopper session for id. An empty or unknown id gets a fresh session
// under a new server-issued id, so clients cannot choose session ids.
func (s *Store) Session(id string) (string, *Session) {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	if sess, ok := s.sessions[id]; ok && id != "" {
		sess.touch()
		return id, sess
	}

	id = uuid.NewString()
	sess := newSession()
	s.sessions[id] = sess
	return id, sess
}

// LookupSession returns the session registered under id without creating one
func (s *Store) LookupSession(id string) (*Session, bool) {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	sess, ok := s.sessions[id]
	if ok {
		sess.touch()
	}
	return sess, ok
}

// SessionCount returns the number of registered sessions
func (s *Store) SessionCount() int {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()
	return len(s.sessions)
}

// PruneSessions drops sessions idle for longer than maxIdle and returns how many were dropped
func (s *Store) PruneSessions(maxIdle time.Duration) int {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	pruned := 0
	for id, sess := range s.sessions {
		if sess.lastSeen().Before(cutoff) {
			delete(s.sessions, id)
			pruned++
		}
	}
	return pruned
}

// mergeSections replaces current sections by id, appends new ones and orders the result
func mergeSections(current, updates []domain.HomepageSection) []domain.HomepageSection {
	merged := copySections(current)
	index := make(map[string]int, len(merged))
	for i, section := range merged {
		index[section.ID] = i
	}

	for _, section := range copySections(updates) {
		if i, ok := index[section.ID]; ok {
			merged[i] = section
			continue
		}
		index[section.ID] = len(merged)
		merged = append(merged, section)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Order < merged[j].Order
	})
	return merged
}

func copySections(sections []domain.HomepageSection) []domain.HomepageSection {
	out := make([]domain.HomepageSection, len(sections))
	for i, section := range sections {
		section.Subtitle = copyPtr(section.Subtitle)
		section.ImageURL = copyPtr(section.ImageURL)
		section.ButtonText = copyPtr(section.ButtonText)
		out[i] = section
	}
	return out
}
