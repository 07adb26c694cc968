package llm

import (
	"context"
	"fmt"
	"iter"

	"google.golang.org/genai"

	"github.com/takashim0101/car-insurance-recommendation-app---backend/internal/domain"
)

// GeminiProvider implements domain.ChatProvider on the Gemini API.
type GeminiProvider struct {
	client *genai.Client
}

func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	return &GeminiProvider{client: client}, nil
}

// CreateChatSession starts a Gemini chat primed with history.
func (g *GeminiProvider) CreateChatSession(
	ctx context.Context,
	cfg domain.ChatConfig,
	history []domain.Content,
) (domain.ChatSession, error) {
	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(cfg.SystemInstruction, genai.RoleUser),
		ResponseMIMEType:  cfg.Generation.ResponseMIMEType,
	}

	chat, err := g.client.Chats.Create(ctx, cfg.Model, genCfg, toGenaiContents(history))
	if err != nil {
		return nil, fmt.Errorf("creating chat session: %w", err)
	}

	return &geminiChatSession{chat: chat}, nil
}

type geminiChatSession struct {
	chat *genai.Chat
}

// SendMessageStream yields the text of each streamed response chunk.
func (s *geminiChatSession) SendMessageStream(ctx context.Context, text string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for resp, err := range s.chat.SendMessageStream(ctx, genai.Part{Text: text}) {
			if err != nil {
				yield("", fmt.Errorf("gemini stream: %w", err))
				return
			}
			if !yield(resp.Text(), nil) {
				return
			}
		}
	}
}

func toGenaiContents(history []domain.Content) []*genai.Content {
	out := make([]*genai.Content, 0, len(history))
	for _, c := range history {
		parts := make([]*genai.Part, 0, len(c.Parts))
		for _, p := range c.Parts {
			parts = append(parts, &genai.Part{Text: p.Text})
		}
		out = append(out, &genai.Content{
			Role:  toGenaiRole(c.Role),
			Parts: parts,
		})
	}
	return out
}

func toGenaiRole(r domain.Role) string {
	switch r {
	case domain.RoleModel:
		return string(genai.RoleModel)
	default:
		return string(genai.RoleUser)
	}
}
