package ai

import (
	"context"
	"errors"

	"google.golang.org/genai"
)

const geminiModel = "gemini-2.0-flash"

// Message is a single turn of a chat conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chatter produces a model reply for a conversation
type Chatter interface {
	Chat(ctx context.Context, history []Message, message string) (string, error)
}

// GeminiChatter relays conversations to the Gemini API
type GeminiChatter struct {
	client *genai.Client
}

// NewGeminiChatter creates a Gemini-backed chatter
func NewGeminiChatter(ctx context.Context, apiKey string) (*GeminiChatter, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiChatter{client: client}, nil
}

func (g *GeminiChatter) Chat(ctx context.Context, history []Message, message string) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, msg := range history {
		var role genai.Role = genai.RoleModel
		if msg.Role == "user" {
			role = genai.RoleUser
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, role))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	resp, err := g.client.Models.GenerateContent(ctx, geminiModel, contents, &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(0.7)),
		TopK:            genai.Ptr(float32(40)),
		TopP:            genai.Ptr(float32(0.95)),
		MaxOutputTokens: 1024,
	})
	if err != nil {
		return "", err
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("empty response from model")
	}
	return text, nil
}
