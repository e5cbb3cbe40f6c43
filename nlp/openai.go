package nlp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const polarityPrompt = `Rate the following journalistic text on two axes and answer with a JSON object only, of the form {"polarity": <number from -1 to 1>, "subjectivity": <number from 0 to 1>}. Polarity is negative to positive opinion, subjectivity is fact (0) to opinion (1).

---
%s
---`

// OpenAIPolarity scores polarity and subjectivity with a chat completion model.
type OpenAIPolarity struct {
	client *openai.Client
	model  string
}

func NewOpenAIPolarity(client *openai.Client, model string) *OpenAIPolarity {
	return &OpenAIPolarity{client: client, model: model}
}

func (o *OpenAIPolarity) ScorePolarity(ctx context.Context, text string) (Polarity, error) {
	if strings.TrimSpace(text) == "" {
		return Polarity{}, nil
	}

	resp, err := o.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: o.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are an assistant that rates the tone of news articles.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: fmt.Sprintf(polarityPrompt, text),
				},
			},
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
			MaxTokens:   50,
			Temperature: 0,
		},
	)
	if err != nil {
		return Polarity{}, fmt.Errorf("openai chat completion error: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return Polarity{}, fmt.Errorf("openai returned empty response or choices")
	}

	var out Polarity
	if err := json.Unmarshal([]byte(strings.TrimSpace(resp.Choices[0].Message.Content)), &out); err != nil {
		return Polarity{}, fmt.Errorf("openai polarity response: %w", err)
	}
	out.Polarity = clamp(out.Polarity, -1, 1)
	out.Subjectivity = clamp(out.Subjectivity, 0, 1)
	return out, nil
}

// Probe lists models, which needs a valid key but costs no tokens.
func (o *OpenAIPolarity) Probe(ctx context.Context) error {
	if _, err := o.client.ListModels(ctx); err != nil {
		return fmt.Errorf("openai list models: %w", err)
	}
	return nil
}
