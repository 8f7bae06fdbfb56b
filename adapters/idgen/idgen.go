// Package idgen provides transaction-id generation implementations.
package idgen

import (
	"strings"
	"sync/atomic"

	"github.com/artpar/hostedpay/ports"
	"github.com/google/uuid"
)

// txnIDMax is the gateway's limit on transaction-id length.
const txnIDMax = 16

// UUID generates transaction ids from UUID v4 values, compacted to fit the
// gateway's 16-character field.
type UUID struct{}

// New generates a new transaction id.
func (UUID) New() string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return id[:txnIDMax]
}

// Ensure interface compliance.
var _ ports.IDGenerator = UUID{}

// Sequential generates sequential ids (for testing).
type Sequential struct {
	prefix  string
	counter uint64
}

// NewSequential creates a sequential id generator.
func NewSequential(prefix string) *Sequential {
	return &Sequential{prefix: prefix}
}

// New generates the next sequential id.
func (s *Sequential) New() string {
	n := atomic.AddUint64(&s.counter, 1)
	return s.prefix + uitoa(n)
}

// Reset resets the counter (for testing).
func (s *Sequential) Reset() {
	atomic.StoreUint64(&s.counter, 0)
}

func uitoa(n uint64) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// Ensure interface compliance.
var _ ports.IDGenerator = (*Sequential)(nil)
