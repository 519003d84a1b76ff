package categorizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// KeywordSuggester asks the Gemini model for a category and keyword
// proposal for a description the keyword classifier left as "Other".
// It is advisory only: Classify never consults it, and suggestions are
// applied to the store only when the user accepts them explicitly.
type KeywordSuggester struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// Suggestion is a proposed category assignment for one description.
type Suggestion struct {
	Category string
	Keywords []string
}

// NewKeywordSuggester creates a suggester using the given API key and
// model name. The key comes from configuration (GEMINI_API_KEY).
func NewKeywordSuggester(ctx context.Context, apiKey, modelName string) (*KeywordSuggester, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &KeywordSuggester{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

// Close releases the underlying API client.
func (s *KeywordSuggester) Close() error {
	return s.client.Close()
}

// Suggest proposes a category name and lowercase keywords for the given
// product description. existing lists the category names already in the
// store so the model prefers reusing them over inventing new ones.
func (s *KeywordSuggester) Suggest(ctx context.Context, description string, existing []string) (Suggestion, error) {
	prompt := fmt.Sprintf(
		"You are classifying supermarket receipt items into spending categories.\n"+
			"Existing categories: %s\n"+
			"Item description: %q\n"+
			"Answer with exactly two lines:\n"+
			"category: <category name, reuse an existing one when it fits>\n"+
			"keywords: <comma-separated lowercase substrings of the description that identify this kind of item>",
		strings.Join(existing, ", "), description)

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return Suggestion{}, fmt.Errorf("Gemini request failed: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return Suggestion{}, fmt.Errorf("empty response from Gemini")
	}

	suggestion := parseSuggestion(text)
	if suggestion.Category == "" {
		return Suggestion{}, fmt.Errorf("could not parse suggestion from response: %q", text)
	}

	log.WithField("description", description).
		WithField("category", suggestion.Category).
		Debug("Received keyword suggestion")
	return suggestion, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}

// parseSuggestion reads the "category:" and "keywords:" lines of the
// model answer. Unknown lines are ignored.
func parseSuggestion(text string) Suggestion {
	var suggestion Suggestion
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(strings.ToLower(line), "category:"):
			suggestion.Category = strings.ToLower(strings.TrimSpace(line[len("category:"):]))
		case strings.HasPrefix(strings.ToLower(line), "keywords:"):
			raw := strings.TrimSpace(line[len("keywords:"):])
			for _, kw := range strings.Split(raw, ",") {
				kw = strings.ToLower(strings.TrimSpace(kw))
				if kw != "" {
					suggestion.Keywords = append(suggestion.Keywords, kw)
				}
			}
		}
	}
	return suggestion
}
