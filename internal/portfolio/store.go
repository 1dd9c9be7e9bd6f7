package portfolio

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// UploadRecord tracks one (AMC, scheme) upload slot. One record per key; a
// re-upload reuses it.
type UploadRecord struct {
	ID         string
	AMCName    string
	SchemeID   string
	UploadedAt time.Time
}

// Store is the persistence collaborator for parsed results. ReplaceHoldings
// must be atomic: discard everything stored under the scheme, then insert
// the new set, with no window where a reader sees neither.
type Store interface {
	GetOrCreateUpload(ctx context.Context, amcName, schemeID string) (*UploadRecord, error)
	ReplaceHoldings(ctx context.Context, schemeID string, holdings []Holding) error
	SaveSummary(ctx context.Context, summary *Summary) error
	GetHoldings(ctx context.Context, schemeID string) ([]Holding, error)
	GetSummary(ctx context.Context, schemeID string) (*Summary, error)
}

// MemStore is the in-memory Store used by tests.
type MemStore struct {
	mu        sync.Mutex
	uploads   map[string]*UploadRecord
	holdings  map[string][]Holding
	summaries map[string]*Summary
}

func NewMemStore() *MemStore {
	return &MemStore{
		uploads:   make(map[string]*UploadRecord),
		holdings:  make(map[string][]Holding),
		summaries: make(map[string]*Summary),
	}
}

func (m *MemStore) GetOrCreateUpload(ctx context.Context, amcName, schemeID string) (*UploadRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := amcName + "|" + schemeID
	if rec, ok := m.uploads[key]; ok {
		return rec, nil
	}
	rec := &UploadRecord{
		ID:         uuid.New().String(),
		AMCName:    amcName,
		SchemeID:   schemeID,
		UploadedAt: time.Now(),
	}
	m.uploads[key] = rec
	return rec, nil
}

func (m *MemStore) ReplaceHoldings(ctx context.Context, schemeID string, holdings []Holding) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.holdings[schemeID] = append([]Holding(nil), holdings...)
	return nil
}

func (m *MemStore) SaveSummary(ctx context.Context, summary *Summary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *summary
	m.summaries[summary.SchemeID] = &cp
	return nil
}

func (m *MemStore) GetHoldings(ctx context.Context, schemeID string) ([]Holding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Holding(nil), m.holdings[schemeID]...), nil
}

func (m *MemStore) GetSummary(ctx context.Context, schemeID string) (*Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.summaries[schemeID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}
