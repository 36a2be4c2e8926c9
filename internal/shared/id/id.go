// Package id generates folio's prefixed ULIDs.
//
// Search correlation tokens are lexicographically sortable, so a token
// comparison doubles as an issue-order comparison when debugging overlapping
// searches. Prefixes keep logs readable (srch_*, rdr_*).
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// SearchToken correlates a search command with its eventual onSearch result.
type SearchToken string

// ReaderID identifies a mounted reader instance.
type ReaderID string

const (
	searchPrefix = "srch"
	readerPrefix = "rdr"
)

// Generator generates ULIDs from an entropy source.
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the shared generator backed by crypto/rand.
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator(rand.Reader)
	})
	return defaultGenerator
}

// NewGenerator creates a generator with the given entropy source. Tests pass
// a deterministic reader.
func NewGenerator(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate creates a new ULID.
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateWithPrefix creates a prefixed ULID string.
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// NewSearchToken generates a search correlation token.
func NewSearchToken() SearchToken {
	return SearchToken(Default().GenerateWithPrefix(searchPrefix))
}

// NewReaderID generates a reader instance ID.
func NewReaderID() ReaderID {
	return ReaderID(Default().GenerateWithPrefix(readerPrefix))
}
