package gateway

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

// GeminiGateway runs the agent directly on Gemini through the official
// GenAI SDK, for deployments without a separate agent runtime. The model
// answer is wrapped into the standard envelope.
type GeminiGateway struct {
	Model string // e.g. "gemini-2.0-flash-exp"
}

var _ Gateway = (*GeminiGateway)(nil)

func (g *GeminiGateway) Send(ctx context.Context, message, agentID, sessionID string) (*Envelope, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	model := g.Model
	if model == "" {
		model = "gemini-2.0-flash-exp"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.1)),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: fmt.Sprintf("You are the %s agent. Conversation session: %s. "+
					"Answer analysis requests with a JSON financial report, follow-ups with plain text.", agentID, sessionID)},
			},
		},
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(message), config)
	if err != nil {
		return nil, fmt.Errorf("gemini generation failed: %w", err)
	}

	return TextEnvelope(result.Text()), nil
}
