// Package gateway defines the boundary to the remote financial agent.
// The agent is opaque and non-deterministic; this package only knows how
// to deliver a message and hand back whatever envelope came out.
package gateway

import (
	"context"
	"encoding/json"
)

// Envelope is the success/failure wrapper every provider returns.
// Result is deliberately opaque: the agent may be a pipeline of
// sub-agents and its payload shape is not controlled by this client.
type Envelope struct {
	Success  bool     `json:"success"`
	Response *Payload `json:"response,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// Payload carries the agent's raw result.
type Payload struct {
	Result json.RawMessage `json:"result"`
}

// HasResult reports whether the envelope carries a usable payload.
func (e *Envelope) HasResult() bool {
	return e != nil && e.Success && e.Response != nil && len(e.Response.Result) > 0
}

// Gateway delivers one message to the named agent and returns its envelope.
// The session id travels unchanged with every call so the remote side can
// correlate turns; it has no meaning on this side.
type Gateway interface {
	Send(ctx context.Context, message string, agentID string, sessionID string) (*Envelope, error)
}

// TextEnvelope wraps a plain text response into a successful envelope.
// Used by providers whose SDKs return text rather than a wire envelope.
func TextEnvelope(text string) *Envelope {
	var raw json.RawMessage
	if body := []byte(text); json.Valid(body) {
		raw = body
	} else {
		encoded, err := json.Marshal(text)
		if err != nil {
			return &Envelope{Success: false, Error: "unencodable agent response"}
		}
		raw = encoded
	}
	return &Envelope{Success: true, Response: &Payload{Result: raw}}
}
