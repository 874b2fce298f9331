// Package docid generates stable, time-sortable document identifiers
// for every ingested document.
package docid

import (
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator produces document ids. It is not safe for concurrent use,
// and is meant to be driven from a single-threaded cooperative caller.
type Generator struct {
	entropy *rand.Rand
}

// NewGenerator creates a Generator seeded from the current time.
func NewGenerator() *Generator {
	return &Generator{entropy: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// New returns a new ULID string for a document ingested now.
func (g *Generator) New() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy).String()
}
