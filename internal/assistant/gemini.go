package assistant

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

type geminiConfig struct {
	APIKey string `json:"api_key"`
	Model  string `json:"model"`
}

// geminiResponder delegates replies to the Gemini API. It exists so a
// real language model can stand in for the rule table without touching
// the session store or orchestrator.
type geminiResponder struct {
	apiKey string
	model  string
}

func init() {
	Register("gemini", createGeminiResponder)
}

func createGeminiResponder(args interface{}) (Responder, error) {
	cfg := &geminiConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	return &geminiResponder{
		apiKey: strings.TrimSpace(cfg.APIKey),
		model:  cfg.Model,
	}, nil
}

func (r *geminiResponder) Respond(ctx context.Context, utterance string, paperContext string) (string, error) {
	if r.apiKey == "" {
		return "", ErrUnavailable
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  r.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", err
	}
	prompt := buildPrompt(utterance, paperContext)
	resp, err := client.Models.GenerateContent(
		ctx,
		r.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		nil,
	)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text()), nil
}

func buildPrompt(utterance string, paperContext string) string {
	var b strings.Builder
	b.WriteString("You are a research writing assistant helping the author of an academic paper.\n")
	b.WriteString("Answer concisely and concretely.\n\n")
	if paperContext != "" {
		fmt.Fprintf(&b, "Paper context (advisory):\n%s\n\n", paperContext)
	}
	fmt.Fprintf(&b, "User: %s", utterance)
	return b.String()
}
