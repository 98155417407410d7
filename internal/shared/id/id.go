// Package id provides ULID-based identifiers for requests, batches and
// streaming connections.
//
// IDs are prefixed by type (req_*, batch_*, conn_*) so log lines stay
// readable, and the ULID part keeps them sortable by creation time.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// RequestID identifies an API request
type RequestID string

// BatchID identifies a batch evaluation
type BatchID string

// ConnectionID identifies a WebSocket connection
type ConnectionID string

const (
	RequestPrefix    = "req"
	BatchPrefix      = "batch"
	ConnectionPrefix = "conn"
)

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by crypto/rand
func NewGenerator() *Generator {
	return &Generator{entropy: rand.Reader}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(RequestPrefix))
}

func NewBatchID() BatchID {
	return BatchID(Default().GenerateWithPrefix(BatchPrefix))
}

func NewConnectionID() ConnectionID {
	return ConnectionID(Default().GenerateWithPrefix(ConnectionPrefix))
}

func (id RequestID) String() string    { return string(id) }
func (id BatchID) String() string      { return string(id) }
func (id ConnectionID) String() string { return string(id) }

// IsValid reports whether s is a ULID, with or without a type prefix
func IsValid(s string) bool {
	if i := strings.LastIndexByte(s, '_'); i >= 0 {
		s = s[i+1:]
	}
	_, err := ulid.ParseStrict(s)
	return err == nil
}

// IsCorrelationID reports whether s may be adopted as a request ID from a
// caller: one of ours, or a UUID as issued by most proxies and gateways.
func IsCorrelationID(s string) bool {
	if IsValid(s) {
		return true
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// Timestamp extracts the creation time from a prefixed or bare ULID
func Timestamp(s string) (time.Time, error) {
	if i := strings.LastIndexByte(s, '_'); i >= 0 {
		s = s[i+1:]
	}
	parsed, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
