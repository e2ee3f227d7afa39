package testutil

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
	"vcheck/internal/models"
	"vcheck/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (e LogEntry) Message() string {
	return fmt.Sprintf(e.Format, e.Args...)
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Entries returns a snapshot of the recorded entries at level.
func (m *MockLogger) Entries(level string) []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []LogEntry
	for _, e := range m.Logs {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// StubClock returns a settable time. Safe for concurrent use.
type StubClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewStubClock(t time.Time) *StubClock {
	return &StubClock{now: t}
}

func (c *StubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *StubClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *StubClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// MockMetrics implements providers.MetricsProviderInterface with counters per call.
type MockMetrics struct {
	mu        sync.Mutex
	Enqueued  map[string]int
	Written   map[string]int
	Dropped   map[string]int
	Rotations map[string]int
	Failed    map[string]bool
	Archived  map[string]int
	Decisions map[string]int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Enqueued:  make(map[string]int),
		Written:   make(map[string]int),
		Dropped:   make(map[string]int),
		Rotations: make(map[string]int),
		Failed:    make(map[string]bool),
		Archived:  make(map[string]int),
		Decisions: make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}
func (m *MockMetrics) SetQueueDepth(_ string, _ int)                    {}
func (m *MockMetrics) ObserveArchiveDuration(_ time.Duration)           {}

func (m *MockMetrics) IncDecisions(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Decisions[status]++
}

func (m *MockMetrics) IncCheckinsEnqueued(channel string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Enqueued[channel]++
}

func (m *MockMetrics) IncCheckinsWritten(channel string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Written[channel]++
}

func (m *MockMetrics) AddCheckinsDropped(channel string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Dropped[channel] += count
}

func (m *MockMetrics) IncRotations(channel string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rotations[channel]++
}

func (m *MockMetrics) SetChannelFailed(channel string, failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Failed[channel] = failed
}

func (m *MockMetrics) IncArchived(channel string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Archived[channel]++
}

// WrittenCount is safe to poll from tests while consumers are running.
func (m *MockMetrics) WrittenCount(channel string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Written[channel]
}

// MockIngestion implements interfaces.IngestionInterface and records enqueued checkins.
type MockIngestion struct {
	mu       sync.Mutex
	Minor    []models.MinorCheckin
	Periodic []models.PeriodicCheckin
	Records  map[string][]models.CheckinRecord
	Statuses []models.ChannelStatus
	StartErr error
	Started  bool
	Stopped  bool
}

func (m *MockIngestion) Start(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Started = m.StartErr == nil
	return m.StartErr
}

func (m *MockIngestion) Stop(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Stopped = true
	return nil
}

func (m *MockIngestion) Enqueue(channel string, record models.CheckinRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Records == nil {
		m.Records = make(map[string][]models.CheckinRecord)
	}
	m.Records[channel] = append(m.Records[channel], record)
	return nil
}

func (m *MockIngestion) EnqueueMinor(checkin models.MinorCheckin) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Minor = append(m.Minor, checkin)
}

func (m *MockIngestion) EnqueuePeriodic(checkin models.PeriodicCheckin) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Periodic = append(m.Periodic, checkin)
}

func (m *MockIngestion) Status() []models.ChannelStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Statuses
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func(io.Writer, io.Reader) error
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) CompressStream(dst io.Writer, src io.Reader) error {
	if m.CompressFn != nil {
		return m.CompressFn(dst, src)
	}
	// Default: copy as-is (identity)
	_, err := io.Copy(dst, src)
	return err
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}
