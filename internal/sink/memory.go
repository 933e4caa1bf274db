// internal/sink/memory.go
package sink

import (
	"context"
	"sync"
)

// MemorySink keeps tables in process memory. It backs local runs without
// credentials and the tests of the layers above the sink.
type MemorySink struct {
	mu     sync.Mutex
	title  string
	tables map[string][][]interface{}
	order  []string

	// AppendErrors forces AppendRow to fail for the given tables.
	AppendErrors map[string]error
	// EnsureErr forces EnsureTablesExist to fail.
	EnsureErr error
	// ProbeErr forces Probe to fail.
	ProbeErr error

	EnsureCalls int
}

func NewMemorySink(title string) *MemorySink {
	return &MemorySink{
		title:        title,
		tables:       make(map[string][][]interface{}),
		AppendErrors: make(map[string]error),
	}
}

func (m *MemorySink) Name() string {
	return "memory"
}

func (m *MemorySink) Probe(_ context.Context) (*ProbeResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ProbeErr != nil {
		return nil, m.ProbeErr
	}
	return &ProbeResult{Title: m.title, Tables: append([]string{}, m.order...)}, nil
}

func (m *MemorySink) EnsureTablesExist(_ context.Context, tables []Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.EnsureCalls++
	if m.EnsureErr != nil {
		return m.EnsureErr
	}
	for _, t := range tables {
		rows, ok := m.tables[t.Name]
		if !ok {
			m.order = append(m.order, t.Name)
		}
		if len(rows) == 0 {
			rows = append(rows, t.Header)
		}
		m.tables[t.Name] = rows
	}
	return nil
}

func (m *MemorySink) AppendRow(_ context.Context, table string, row []interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.AppendErrors[table]; err != nil {
		return err
	}
	if _, ok := m.tables[table]; !ok {
		m.order = append(m.order, table)
	}
	m.tables[table] = append(m.tables[table], row)
	return nil
}

// Rows returns a copy of every row of table, header included.
func (m *MemorySink) Rows(table string) [][]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]interface{}{}, m.tables[table]...)
}
