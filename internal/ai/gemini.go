package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider implements TripParser using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-2.0-flash")
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.2)

	return &GeminiProvider{
		client: client,
		model:  model,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

func (p *GeminiProvider) ParseTripQuery(ctx context.Context, query string, hints map[string]string) (*TripQuery, error) {
	fullPrompt := fmt.Sprintf("%s\n\nUser Message: %s", buildSystemPrompt(hints), query)

	resp, err := p.model.GenerateContent(ctx, genai.Text(fullPrompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response candidates from Gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}
	return decodeTripQuery(responseText.String())
}

func decodeTripQuery(raw string) (*TripQuery, error) {
	cleanJSON := cleanJSONString(raw)
	var q TripQuery
	if err := json.Unmarshal([]byte(cleanJSON), &q); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, cleanJSON)
	}
	q.normalize()
	return &q, nil
}

// buildSystemPrompt constructs the instructions for the model.
func buildSystemPrompt(hints map[string]string) string {
	currentTime := hints["current_time"]
	userLocation := hints["user_location"]
	if currentTime == "" {
		currentTime = "UNKNOWN_TIME"
	}
	if userLocation == "" {
		userLocation = "UNKNOWN_LOCATION"
	}

	return fmt.Sprintf(`Role: You turn ride requests into search fields for a fare comparison app in India (Uber, Ola, Rapido).
Context:
- Current Time: %s
- User Location: %s

RULES:
1. "from", "pickup", "starting at" mark the pickup. "to", "drop", "going to" mark the destination.
2. If no pickup is given, set "pickup" to null. Never copy the destination into pickup.
3. Places mentioned between pickup and destination ("via", "stop at") go to "stops" in order.
4. "bike", "auto", "sedan", "premium" set "ride_type". Otherwise null.
5. "cheapest" sets "sort": "price". "fastest", "quickest" set "sort": "time". "greenest", "eco" set "sort": "eco".
6. Keep place names as the user wrote them, with city or area when given.
7. "reply" is one short English sentence confirming what will be searched, or asking for the destination if missing.

Output JSON Schema:
{
  "pickup": "string or null",
  "destination": "string or null",
  "stops": ["string"],
  "ride_type": "string or null",
  "sort": "price" | "time" | "eco" | null,
  "reply": "string"
}
`, currentTime, userLocation)
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
