package rpc

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Request is one call from the gateway to a service. UserID is the caller
// taken from the verified bearer token, or uuid.Nil for anonymous calls.
type Request struct {
	Service string          `json:"service"`
	Pattern Pattern         `json:"pattern"`
	UserID  uuid.UUID       `json:"userId"`
	ID      string          `json:"id,omitempty"`
	SubID   string          `json:"subId,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
	ReplyTo string          `json:"replyTo,omitempty"`
}

// Reply carries either Data or Error.
type Reply struct {
	Data  json.RawMessage `json:"data,omitempty"`
	Error *Error          `json:"error,omitempty"`
}
