// Package events fans change notifications out to SSE subscribers so the UI
// can drop its view of the data the moment a referral lands or the cache is
// flushed.
package events

import (
	"encoding/json"
	"time"
)

// Event types published by the engine.
const (
	TypeReferralCreated  = "referral_created"
	TypeCacheInvalidated = "cache_invalidated"
	TypePing             = "ping"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// MakeEvent renders one wire-ready event envelope.
func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
