package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"

	"github.com/inletworks/capsule/capability"
)

// QuoteService fetches random quotes from a quotable-style endpoint.
type QuoteService struct {
	endpoint string
	client   *http.Client
}

// NewQuoteService creates a quote lookup against endpoint.
func NewQuoteService(client *http.Client, endpoint string) *QuoteService {
	if client == nil {
		client = http.DefaultClient
	}
	return &QuoteService{endpoint: endpoint, client: client}
}

// Random fetches one quote. An unreachable endpoint or server-side
// failure is a transient fault.
func (s *QuoteService) Random(ctx context.Context, args map[string]any) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building quote request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, capability.Transient(fmt.Errorf("quote endpoint unreachable: %w", err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, capability.Transientf("quote endpoint returned %s", resp.Status)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("quote lookup failed: %s", resp.Status)
	}

	var payload struct {
		Content string   `json:"content"`
		Author  string   `json:"author"`
		Tags    []string `json:"tags"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding quote response: %w", err)
	}

	return map[string]any{
		"quote":  payload.Content,
		"author": payload.Author,
		"tags":   payload.Tags,
	}, nil
}

var cannedQuotes = []struct {
	quote  string
	author string
}{
	{"The only way to do great work is to love what you do.", "Steve Jobs"},
	{"Innovation distinguishes between a leader and a follower.", "Steve Jobs"},
	{"Life is what happens to you while you're busy making other plans.", "John Lennon"},
}

func (s *QuoteService) demo(ctx context.Context, args map[string]any) (any, error) {
	selected := cannedQuotes[rand.IntN(len(cannedQuotes))]
	return map[string]any{
		"quote":  selected.quote,
		"author": selected.author,
	}, nil
}

// Capability returns the get_random_quote descriptor with the canned
// fallback wired in.
func (s *QuoteService) Capability() *capability.Descriptor {
	return &capability.Descriptor{
		Name:        "get_random_quote",
		Description: "Get a random inspirational quote",
		Handler:     s.Random,
		Fallback:    s.demo,
		Mode:        capability.ModeDetached,
	}
}
