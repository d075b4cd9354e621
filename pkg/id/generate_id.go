// Package id issues loan record identifiers: millisecond-epoch tokens,
// bumped on collision so two creates in the same millisecond stay unique.
package id

import (
	"strconv"
	"sync"
	"time"
)

var (
	mu   sync.Mutex
	last int64
)

// NewToken returns a decimal millisecond timestamp, strictly increasing
// within this process.
func NewToken() string {
	mu.Lock()
	defer mu.Unlock()
	now := time.Now().UnixMilli()
	if now <= last {
		now = last + 1
	}
	last = now
	return strconv.FormatInt(now, 10)
}
