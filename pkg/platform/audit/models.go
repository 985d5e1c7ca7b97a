// Package audit records resolution decisions for migration observability.
// Every combined resolution emits one event saying what was answered and from
// where; during the legacy cut-over these events are the only way to see how
// often the fallback rules fire in production.
package audit

import (
	"context"
	"time"
)

// Event is one resolved recadastramento answer.
type Event struct {
	ID               string    `json:"id"`
	Timestamp        time.Time `json:"timestamp"`
	RequestID        string    `json:"request_id,omitempty"`
	Login            string    `json:"login,omitempty"`
	UserCode         *int      `json:"user_code,omitempty"`
	AnoBase          int       `json:"anobase"`
	InstitutionCount int       `json:"institution_count"`
	CacheHit         bool      `json:"cache_hit"`
}

// Publisher emits events best-effort. Implementations must never block the
// resolution path on delivery and must swallow transport failures; the
// resolution contract forbids surfacing them.
type Publisher interface {
	Emit(ctx context.Context, event Event)
}
