package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/madisonhq/press-dossier/app/dossier"
)

const (
	apiVersion       = "2023-06-01"
	summarizeTokens  = 300
	bioTokens        = 300
	analyzeCSVTokens = 1024
)

// bioBylineLimit caps how many bylines go into the bio prompt.
const bioBylineLimit = 10

var _ dossier.Assistant = (*Client)(nil)

// Client talks to a messages-style text assistant endpoint. Callers treat any
// returned error as a degraded-but-recoverable condition; this client never
// needs to succeed for the rest of the system to work.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Summarize produces a one-sentence summary of an article plus a beat tag.
// Both come back from a single completion to keep latency and token spend down.
func (c *Client) Summarize(ctx context.Context, headline, outlet string) (string, string, error) {
	prompt := fmt.Sprintf(`Given this article headline from %s:

%q

Respond with a JSON object only, no other text:
{"summary": "<one sentence describing what the article covers>", "beat": "<one or two word coverage area, e.g. Legal, Finance, Technology>"}`, outlet, headline)

	text, err := c.complete(ctx, prompt, summarizeTokens)
	if err != nil {
		return "", "", err
	}

	var parsed struct {
		Summary string `json:"summary"`
		Beat    string `json:"beat"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &parsed); err != nil {
		return "", "", fmt.Errorf("failed to parse summary response: %w", err)
	}
	if parsed.Summary == "" {
		return "", "", fmt.Errorf("summary response missing summary text")
	}

	return parsed.Summary, strings.TrimSpace(parsed.Beat), nil
}

// ComposeBio writes a short reporter bio grounded only in the supplied
// bylines. The bio is presentation sugar; callers treat errors as "no bio".
func (c *Client) ComposeBio(ctx context.Context, reporterName string, articles []dossier.Article) (string, error) {
	var bylines strings.Builder
	limit := len(articles)
	if limit > bioBylineLimit {
		limit = bioBylineLimit
	}
	for _, a := range articles[:limit] {
		fmt.Fprintf(&bylines, "- %s (%s)\n", a.Headline, a.Outlet)
	}

	prompt := fmt.Sprintf(`Recent bylines for reporter %s:

%s
Respond with a JSON object only, no other text:
{"bio": "<two sentences describing what this reporter covers, grounded only in the bylines above>"}`, reporterName, bylines.String())

	text, err := c.complete(ctx, prompt, bioTokens)
	if err != nil {
		return "", err
	}

	var parsed struct {
		Bio string `json:"bio"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &parsed); err != nil {
		return "", fmt.Errorf("failed to parse bio response: %w", err)
	}
	if strings.TrimSpace(parsed.Bio) == "" {
		return "", fmt.Errorf("bio response missing bio text")
	}

	return strings.TrimSpace(parsed.Bio), nil
}

// AnalyzeCSV asks the assistant to map uploaded CSV columns onto reporter
// fields. Only the header row and a small sample of data rows are sent.
func (c *Client) AnalyzeCSV(ctx context.Context, headers []string, sampleRows [][]string) (Analysis, error) {
	var sample strings.Builder
	sample.WriteString(strings.Join(headers, ", "))
	for _, row := range sampleRows {
		sample.WriteString("\n")
		sample.WriteString(strings.Join(row, ", "))
	}

	prompt := fmt.Sprintf(`A CSV file of press contacts was uploaded. The first line below is the header row, the rest are sample data rows:

%s

Map the CSV columns onto these reporter fields: name, outlet, bio, twitter, linkedin.
Respond with a JSON object only, no other text:
{
  "column_mapping": {"name": "<csv column or null>", "outlet": "<csv column or null>", "bio": "<csv column or null>", "twitter": "<csv column or null>", "linkedin": "<csv column or null>"},
  "confidence": "<high|medium|low>",
  "issues": ["<anything ambiguous or suspicious>"],
  "normalizations": ["<transformations that will be applied, e.g. stripping @ from twitter handles>"]
}`, sample.String())

	text, err := c.complete(ctx, prompt, analyzeCSVTokens)
	if err != nil {
		return Analysis{}, err
	}

	var parsed struct {
		ColumnMapping  map[string]*string `json:"column_mapping"`
		Confidence     string             `json:"confidence"`
		Issues         []string           `json:"issues"`
		Normalizations []string           `json:"normalizations"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &parsed); err != nil {
		return Analysis{}, fmt.Errorf("failed to parse analysis response: %w", err)
	}

	analysis := Analysis{
		ColumnMapping:  map[string]string{},
		Confidence:     parsed.Confidence,
		Issues:         parsed.Issues,
		Normalizations: parsed.Normalizations,
	}
	for field, col := range parsed.ColumnMapping {
		if col != nil && *col != "" {
			analysis.ColumnMapping[field] = *col
		}
	}
	if analysis.Confidence == "" {
		analysis.Confidence = "low"
	}

	return analysis, nil
}

func (c *Client) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	payload, err := json.Marshal(messagesRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	var decoded messagesResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("malformed response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if decoded.Error != nil {
			return "", fmt.Errorf("API error %d: %s", resp.StatusCode, decoded.Error.Message)
		}
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	for _, block := range decoded.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, nil
		}
	}

	return "", fmt.Errorf("response contained no text content")
}

// stripCodeFence unwraps responses the assistant insists on fencing as
// ```json ... ``` despite instructions.
func stripCodeFence(text string) string {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```")
	if i := strings.Index(t, "\n"); i >= 0 {
		t = t[i+1:]
	}
	t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	return strings.TrimSpace(t)
}
