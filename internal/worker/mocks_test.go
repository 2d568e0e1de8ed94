package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// MockClickHouseConn implements driver.Conn for testing
type MockClickHouseConn struct {
	driver.Conn

	mu         sync.Mutex
	PrepareErr error
	SendErr    error
	Batches    []*MockBatch
}

func (m *MockClickHouseConn) PrepareBatch(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PrepareErr != nil {
		return nil, m.PrepareErr
	}
	b := &MockBatch{Query: query, sendErr: m.SendErr}
	m.Batches = append(m.Batches, b)
	return b, nil
}

// SentRows counts rows across every successfully sent batch.
func (m *MockClickHouseConn) SentRows() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, b := range m.Batches {
		if b.IsSent() {
			n += b.Rows()
		}
	}
	return n
}

// MockBatch records appended rows.
type MockBatch struct {
	Query   string
	sendErr error

	mu   sync.Mutex
	rows [][]interface{}
	sent bool
}

func (m *MockBatch) IsSent() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent
}

func (m *MockBatch) Rows() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func (m *MockBatch) Append(v ...interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(v) != 13 {
		return errors.New("column count mismatch")
	}
	m.rows = append(m.rows, v)
	return nil
}

func (m *MockBatch) AppendStruct(v interface{}) error {
	return nil
}

func (m *MockBatch) Column(int) driver.BatchColumn {
	return nil
}

func (m *MockBatch) Send() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = true
	return nil
}

func (m *MockBatch) Flush() error {
	return nil
}

func (m *MockBatch) Abort() error {
	return nil
}
