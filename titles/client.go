package titles

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/intelfusion/case-similarity-api/models"
)

const systemPrompt = `You are a case naming assistant for an incident reporting system. ` +
	`Given one incident report, produce a concise descriptive case title in English ` +
	`(at most 8 words) naming the incident type and the location. ` +
	`Respond with a JSON object of the form {"case_name": "..."} and nothing else.`

// Client names cases through an OpenAI-compatible chat completions
// endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate asks the model for a case title. The response must be the
// JSON object the system prompt demands; anything else is an error so
// the caller can refuse to persist an untitled record.
func (c *Client) Generate(ctx context.Context, reportType string, report models.Report) (string, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: formatReport(reportType, report)},
		},
		Temperature:    0,
		ResponseFormat: responseFormat{Type: "json_object"},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling title service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("title service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding title service response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("title service returned no choices")
	}

	var title struct {
		CaseName string `json:"case_name"`
	}
	content := parsed.Choices[0].Message.Content
	if err := json.Unmarshal([]byte(content), &title); err != nil {
		return "", fmt.Errorf("title service returned malformed content %q: %w", content, err)
	}
	if strings.TrimSpace(title.CaseName) == "" {
		return "", fmt.Errorf("title service returned an empty case name")
	}
	return strings.TrimSpace(title.CaseName), nil
}

// formatReport flattens the fields the model needs into a plain-text
// block, skipping anything empty.
func formatReport(reportType string, r models.Report) string {
	var b strings.Builder
	write := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "%s: %s\n", label, value)
	}
	write("Report type", reportType)
	write("Report", r.Input)
	write("Summary", r.Summary)
	write("Address", r.Address())
	if r.LocationDetails != nil {
		write("Subdistrict", r.LocationDetails.SubdistrictName)
		write("District", r.LocationDetails.DistrictName)
		write("City", r.LocationDetails.CityName)
		write("Province", r.LocationDetails.ProvinceName)
	}
	write("Reported at", r.CreatedAt)
	return b.String()
}
