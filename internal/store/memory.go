package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/amrit/lexiq/internal/proficiency"
)

type recordKey struct {
	studentID string
	level     proficiency.Level
	scopeKey  string
}

// MemoryRepo is an in-memory ProficiencyRepo. It backs tests and the
// ephemeral-fallback path callers use when storage is unavailable.
// Concurrent submissions for the same student serialize on a
// per-student mutex; transactions stage writes and commit all-or-nothing.
type MemoryRepo struct {
	cfg proficiency.Config

	mu       sync.Mutex
	records  map[recordKey]*proficiency.Record
	students map[string]*sync.Mutex
}

// NewMemoryRepo creates an empty in-memory repo.
func NewMemoryRepo(cfg proficiency.Config) *MemoryRepo {
	return &MemoryRepo{
		cfg:      cfg,
		records:  make(map[recordKey]*proficiency.Record),
		students: make(map[string]*sync.Mutex),
	}
}

func (m *MemoryRepo) studentLock(studentID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.students[studentID]; ok {
		return l
	}
	l := &sync.Mutex{}
	m.students[studentID] = l
	return l
}

func clone(rec *proficiency.Record) *proficiency.Record {
	c := *rec
	return &c
}

func (m *MemoryRepo) Get(_ context.Context, studentID string, level proficiency.Level, scopeKey string) (*proficiency.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.records[recordKey{studentID, level, scopeKey}]; ok {
		return clone(rec), nil
	}
	return nil, nil
}

func (m *MemoryRepo) GetOrCreate(ctx context.Context, studentID string, level proficiency.Level, scopeKey string) (*proficiency.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := recordKey{studentID, level, scopeKey}
	if rec, ok := m.records[key]; ok {
		return clone(rec), nil
	}
	fresh := proficiency.NewRecord(m.cfg, studentID, level, scopeKey)
	m.records[key] = clone(fresh)
	return fresh, nil
}

func (m *MemoryRepo) Save(_ context.Context, rec *proficiency.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[recordKey{rec.StudentID, rec.Level, rec.ScopeKey}] = clone(rec)
	return nil
}

func (m *MemoryRepo) BulkInitialize(ctx context.Context, studentID, moduleID, domain string, itemIDs []string) error {
	return m.InTx(ctx, studentID, func(tx Txn) error {
		if _, err := tx.GetOrCreate(ctx, studentID, proficiency.LevelDomain, domain); err != nil {
			return err
		}
		if _, err := tx.GetOrCreate(ctx, studentID, proficiency.LevelModule, moduleID); err != nil {
			return err
		}
		for _, itemID := range itemIDs {
			scope := proficiency.ItemScopeKey(moduleID, itemID)
			if _, err := tx.GetOrCreate(ctx, studentID, proficiency.LevelItem, scope); err != nil {
				return err
			}
		}
		return nil
	})
}

func (m *MemoryRepo) ItemsUnderModule(_ context.Context, studentID, moduleID string) ([]*proficiency.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var recs []*proficiency.Record
	prefix := moduleID + "/"
	for key, rec := range m.records {
		if key.studentID == studentID && key.level == proficiency.LevelItem && strings.HasPrefix(key.scopeKey, prefix) {
			recs = append(recs, clone(rec))
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].ScopeKey < recs[j].ScopeKey })
	return recs, nil
}

func (m *MemoryRepo) AllForStudent(_ context.Context, studentID string) ([]*proficiency.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var recs []*proficiency.Record
	for key, rec := range m.records {
		if key.studentID == studentID {
			recs = append(recs, clone(rec))
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Level != recs[j].Level {
			return recs[i].Level < recs[j].Level
		}
		return recs[i].ScopeKey < recs[j].ScopeKey
	})
	return recs, nil
}

func (m *MemoryRepo) Reset(_ context.Context, studentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, rec := range m.records {
		if key.studentID != studentID {
			continue
		}
		m.records[key] = proficiency.NewRecord(m.cfg, rec.StudentID, rec.Level, rec.ScopeKey)
	}
	return nil
}

func (m *MemoryRepo) InTx(_ context.Context, studentID string, fn func(tx Txn) error) error {
	lock := m.studentLock(studentID)
	lock.Lock()
	defer lock.Unlock()

	tx := &memTxn{repo: m, staged: make(map[recordKey]*proficiency.Record)}
	if err := fn(tx); err != nil {
		return err
	}

	// Commit: all staged writes land together.
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, rec := range tx.staged {
		m.records[key] = rec
	}
	return nil
}

// memTxn stages reads and writes against the base map; nothing is
// visible outside the transaction until commit.
type memTxn struct {
	repo   *MemoryRepo
	staged map[recordKey]*proficiency.Record
}

func (t *memTxn) GetOrCreate(_ context.Context, studentID string, level proficiency.Level, scopeKey string) (*proficiency.Record, error) {
	key := recordKey{studentID, level, scopeKey}
	if rec, ok := t.staged[key]; ok {
		return clone(rec), nil
	}

	t.repo.mu.Lock()
	rec, ok := t.repo.records[key]
	t.repo.mu.Unlock()
	if ok {
		return clone(rec), nil
	}

	fresh := proficiency.NewRecord(t.repo.cfg, studentID, level, scopeKey)
	t.staged[key] = clone(fresh)
	return fresh, nil
}

func (t *memTxn) Save(_ context.Context, rec *proficiency.Record) error {
	t.staged[recordKey{rec.StudentID, rec.Level, rec.ScopeKey}] = clone(rec)
	return nil
}
