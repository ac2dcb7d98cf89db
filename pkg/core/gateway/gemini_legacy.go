package gateway

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// LegacyGeminiGateway uses the older generative-ai-go SDK with a
// persistent client. Kept alongside GeminiGateway because the two SDK
// generations behave differently under grounding and some deployments
// are pinned to the legacy one.
type LegacyGeminiGateway struct {
	modelName string
	client    *genai.Client
}

var _ Gateway = (*LegacyGeminiGateway)(nil)

func NewLegacyGeminiGateway(ctx context.Context, modelName string) (*LegacyGeminiGateway, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}

	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	return &LegacyGeminiGateway{modelName: modelName, client: client}, nil
}

func (g *LegacyGeminiGateway) Close() error {
	return g.client.Close()
}

func (g *LegacyGeminiGateway) Send(ctx context.Context, message, agentID, sessionID string) (*Envelope, error) {
	model := g.client.GenerativeModel(g.modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(fmt.Sprintf(
			"You are the %s agent. Conversation session: %s.", agentID, sessionID))},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(message))
	if err != nil {
		return nil, fmt.Errorf("gemini generation failed: %v", err)
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}

	return TextEnvelope(sb.String()), nil
}
