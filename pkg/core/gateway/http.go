package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPGateway talks to an agent runtime over plain JSON POST.
// This is the primary wire contract: the runtime answers with the
// success/failure envelope directly.
type HTTPGateway struct {
	endpoint   string
	httpClient *http.Client
}

var _ Gateway = (*HTTPGateway)(nil)

type sendRequest struct {
	Message string      `json:"message"`
	AgentID string      `json:"agent_id"`
	Context sendContext `json:"context"`
}

type sendContext struct {
	SessionID string `json:"session_id"`
}

func NewHTTPGateway(endpoint string) *HTTPGateway {
	return &HTTPGateway{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (g *HTTPGateway) Send(ctx context.Context, message, agentID, sessionID string) (*Envelope, error) {
	body, err := json.Marshal(sendRequest{
		Message: message,
		AgentID: agentID,
		Context: sendContext{SessionID: sessionID},
	})
	if err != nil {
		return nil, fmt.Errorf("GATEWAY_MARSHAL_ERROR: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("GATEWAY_REQ_CREATE_ERROR: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GATEWAY_CALL_ERROR: %v", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("GATEWAY_READ_BODY_ERROR: %v", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GATEWAY_HTTP_ERROR: status %d: %s", res.StatusCode, string(raw))
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("GATEWAY_ENVELOPE_ERROR: %v", err)
	}
	return &env, nil
}
