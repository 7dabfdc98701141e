// Package testutil provides in-memory repositories and fakes for application tests.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/promptpilot/promptpilot/internal/domain/entitlement"
	"github.com/promptpilot/promptpilot/internal/domain/payment"
	"github.com/promptpilot/promptpilot/internal/domain/prompt"
	apperrors "github.com/promptpilot/promptpilot/internal/shared/errors"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
)

// MockEntitlementRepository is an in-memory entitlement.Repository with
// version checks matching the SQL implementation.
type MockEntitlementRepository struct {
	mu     sync.Mutex
	rows   map[string]*entitlement.Entitlement
	nextID uint

	// Error injection for testing
	getError error
	casError error

	// conflicts makes the next n CompareAndSwap calls lose the race.
	conflicts int
	casCalls  int
}

func NewMockEntitlementRepository() *MockEntitlementRepository {
	return &MockEntitlementRepository{rows: make(map[string]*entitlement.Entitlement)}
}

func (m *MockEntitlementRepository) SetGetError(err error) { m.mu.Lock(); m.getError = err; m.mu.Unlock() }
func (m *MockEntitlementRepository) SetCASError(err error) { m.mu.Lock(); m.casError = err; m.mu.Unlock() }

// ForceConflicts makes the next n compare-and-swap calls report a lost race.
func (m *MockEntitlementRepository) ForceConflicts(n int) {
	m.mu.Lock()
	m.conflicts = n
	m.mu.Unlock()
}

func (m *MockEntitlementRepository) CASCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.casCalls
}

// Put stores e as-is, replacing any existing row for the user.
func (m *MockEntitlementRepository) Put(e *entitlement.Entitlement) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID() == 0 {
		m.nextID++
		e.SetID(m.nextID)
	}
	m.rows[e.UserID()] = e.Clone()
}

// Stored returns a copy of the row for userID, or nil.
func (m *MockEntitlementRepository) Stored(userID string) *entitlement.Entitlement {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.rows[userID]; ok {
		return e.Clone()
	}
	return nil
}

func (m *MockEntitlementRepository) GetOrCreate(ctx context.Context, userID string, now time.Time) (*entitlement.Entitlement, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getError != nil {
		return nil, false, m.getError
	}
	if e, ok := m.rows[userID]; ok {
		return e.Clone(), false, nil
	}

	e, err := entitlement.NewEntitlement(userID, now)
	if err != nil {
		return nil, false, apperrors.NewValidationError(err.Error())
	}
	m.nextID++
	e.SetID(m.nextID)
	m.rows[userID] = e.Clone()
	return e, true, nil
}

func (m *MockEntitlementRepository) GetByUserID(ctx context.Context, userID string) (*entitlement.Entitlement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getError != nil {
		return nil, m.getError
	}
	e, ok := m.rows[userID]
	if !ok {
		return nil, apperrors.NewNotFoundError("subscription not found")
	}
	return e.Clone(), nil
}

func (m *MockEntitlementRepository) CompareAndSwap(ctx context.Context, next *entitlement.Entitlement, expectedVersion int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.casCalls++
	if m.casError != nil {
		return false, m.casError
	}
	if m.conflicts > 0 {
		m.conflicts--
		return false, nil
	}

	current, ok := m.rows[next.UserID()]
	if !ok || current.Version() != expectedVersion {
		return false, nil
	}
	next.SetVersion(expectedVersion + 1)
	m.rows[next.UserID()] = next.Clone()
	return true, nil
}

func (m *MockEntitlementRepository) Delete(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, userID)
	return nil
}

// MockPaymentRepository keeps payments keyed by order ID.
type MockPaymentRepository struct {
	mu       sync.Mutex
	rows     map[string]*payment.Payment
	nextID   uint
	upserts  int
	upsertEr error
}

func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{rows: make(map[string]*payment.Payment)}
}

func (m *MockPaymentRepository) SetUpsertError(err error) { m.mu.Lock(); m.upsertEr = err; m.mu.Unlock() }

func (m *MockPaymentRepository) Upserts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.upserts
}

func (m *MockPaymentRepository) Upsert(ctx context.Context, p *payment.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.upsertEr != nil {
		return m.upsertEr
	}
	m.upserts++
	if existing, ok := m.rows[p.OrderID()]; ok && p.ID() == 0 {
		p.SetID(existing.ID())
	}
	if p.ID() == 0 {
		m.nextID++
		p.SetID(m.nextID)
	}
	cp := *p
	m.rows[p.OrderID()] = &cp
	return nil
}

func (m *MockPaymentRepository) GetByOrderID(ctx context.Context, orderID string) (*payment.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.rows[orderID]
	if !ok {
		return nil, apperrors.NewNotFoundError("payment not found")
	}
	cp := *p
	return &cp, nil
}

func (m *MockPaymentRepository) ListByUserID(ctx context.Context, userID string) ([]*payment.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var list []*payment.Payment
	for _, p := range m.rows {
		if p.UserID() == userID {
			cp := *p
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID() > list[j].ID() })
	return list, nil
}

// MockPromptRepository keeps prompt records in insertion order.
type MockPromptRepository struct {
	mu          sync.Mutex
	records     []*prompt.Record
	createError error
}

func NewMockPromptRepository() *MockPromptRepository {
	return &MockPromptRepository{}
}

func (m *MockPromptRepository) SetCreateError(err error) { m.mu.Lock(); m.createError = err; m.mu.Unlock() }

func (m *MockPromptRepository) Records() []*prompt.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*prompt.Record(nil), m.records...)
}

func (m *MockPromptRepository) Create(ctx context.Context, rec *prompt.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createError != nil {
		return m.createError
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *MockPromptRepository) ListByUserID(ctx context.Context, userID string, page, pageSize int) ([]*prompt.Record, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var owned []*prompt.Record
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].UserID == userID {
			owned = append(owned, m.records[i])
		}
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	start := min((page-1)*pageSize, len(owned))
	end := min(start+pageSize, len(owned))
	return owned[start:end], int64(len(owned)), nil
}

func (m *MockPromptRepository) DeleteByUserID(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.records[:0]
	for _, r := range m.records {
		if r.UserID != userID {
			kept = append(kept, r)
		}
	}
	m.records = kept
	return nil
}

// PassthroughTx runs the unit of work without a database.
type PassthroughTx struct{}

func (PassthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// LogEntry is one call recorded by RecordingLogger.
type LogEntry struct {
	Level   string
	Message string
	Fields  []any
}

// RecordingLogger is a logger.Interface that keeps every entry in memory.
type RecordingLogger struct {
	mu      *sync.Mutex
	entries *[]LogEntry
	fields  []any
}

func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{mu: &sync.Mutex{}, entries: &[]LogEntry{}}
}

func (l *RecordingLogger) record(level, msg string, kv []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.entries = append(*l.entries, LogEntry{Level: level, Message: msg, Fields: append(append([]any{}, l.fields...), kv...)})
}

func (l *RecordingLogger) Debugw(msg string, kv ...any) { l.record("debug", msg, kv) }
func (l *RecordingLogger) Infow(msg string, kv ...any)  { l.record("info", msg, kv) }
func (l *RecordingLogger) Warnw(msg string, kv ...any)  { l.record("warn", msg, kv) }
func (l *RecordingLogger) Errorw(msg string, kv ...any) { l.record("error", msg, kv) }

func (l *RecordingLogger) With(args ...any) logger.Interface {
	return &RecordingLogger{mu: l.mu, entries: l.entries, fields: append(append([]any{}, l.fields...), args...)}
}

func (l *RecordingLogger) Named(name string) logger.Interface {
	return l.With("logger", name)
}

// Entries returns all entries at level, or every entry when level is empty.
func (l *RecordingLogger) Entries(level string) []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []LogEntry
	for _, e := range *l.entries {
		if level == "" || e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// HasMessage reports whether msg was logged at level.
func (l *RecordingLogger) HasMessage(level, msg string) bool {
	for _, e := range l.Entries(level) {
		if e.Message == msg {
			return true
		}
	}
	return false
}

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Day returns 06:30 UTC on the given day of March 2026, which is the same
// calendar day in UTC and Asia/Kolkata.
func Day(d int) time.Time {
	return time.Date(2026, 3, d, 6, 30, 0, 0, time.UTC)
}
