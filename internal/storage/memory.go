package storage

import "errors"

// Memory is a map-backed Store. It backs tests and keeps the app usable
// for the session when the database cannot be opened at all.
type Memory struct {
	blobs map[string][]byte

	// FailWrites makes every Save return an error, for exercising the
	// degraded write path in tests.
	FailWrites bool
}

var errWriteFailed = errors.New("storage: write failed")

func NewMemoryStore() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

func (m *Memory) Load(key string) ([]byte, bool) {
	v, ok := m.blobs[key]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true
}

func (m *Memory) Save(key string, value []byte) error {
	if m.FailWrites {
		return errWriteFailed
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.blobs[key] = stored
	return nil
}

func (m *Memory) Close() error { return nil }
