package model

import (
	"time"

	"github.com/google/uuid"
)

// IdentityGenerator mints the path segment used for new object IRIs.
type IdentityGenerator interface {
	Generate() string
}

// UUIDv7Generator produces time-sortable identifiers, so posted objects list
// in creation order when sorted by IRI.
//
// Thread-safety: stateless and safe for concurrent use.
type UUIDv7Generator struct{}

func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Clock supplies timestamps for dcterms:created and dcterms:modified.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
