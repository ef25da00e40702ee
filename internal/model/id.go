package model

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// NewLeadID generates a lexically sortable unique lead identifier. Leads
// created later sort after earlier ones, which keeps import batches in
// file order.
func NewLeadID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}
