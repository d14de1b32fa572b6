package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hafeezhmha/goodminton/config"
	"github.com/hafeezhmha/goodminton/types"
)

// ErrUnparseable means the model could not produce a usable
// {start_time, end_time, date} triple for the query
var ErrUnparseable = errors.New("could not parse time query")

// Client turns free-form queries like "tomorrow 8pm to 10pm" into a
// structured TimeQuery using Groq's OpenAI-compatible chat API
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func New(apiKey string) *Client {
	return &Client{
		BaseURL: config.GROQ_BASE_URL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const systemPromptTemplate = `You are a smart assistant that helps users find badminton courts.
Your task is to parse the user's query and extract the start time, end time, and a specific date.
The current date is %s.
- If the user does not specify a date, assume they mean today.
- Convert all times to 24-hour HH:MM format.
- Return the date in YYYY-MM-DD format.
- Your response MUST be ONLY a valid JSON object. Do not add any other text, commentary, or markdown formatting.

Example:
User query: "10pm to 11pm on wednesday"
JSON output: {"start_time": "22:00", "end_time": "23:00", "date": "2024-07-03"}`

// Parse asks the model for a structured time window. today anchors
// relative phrases ("tomorrow", "wednesday"). Any transport error,
// non-JSON content or missing field comes back as ErrUnparseable; the
// caller turns that into a "please be more specific" reply.
func (c *Client) Parse(query string, today time.Time) (*types.TimeQuery, error) {
	payload := chatRequest{
		Model: config.GROQ_MODEL,
		Messages: []chatMessage{
			{Role: "system", Content: fmt.Sprintf(systemPromptTemplate, today.Format("2006-01-02"))},
			{Role: "user", Content: query},
		},
		Temperature: 0.0,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", c.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: groq returned status %s", ErrUnparseable, resp.Status)
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty completion", ErrUnparseable)
	}

	var tq types.TimeQuery
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), &tq); err != nil {
		return nil, fmt.Errorf("%w: model returned non-JSON content", ErrUnparseable)
	}
	if tq.StartTime == "" || tq.EndTime == "" || tq.Date == "" {
		return nil, fmt.Errorf("%w: missing field in model output", ErrUnparseable)
	}

	return &tq, nil
}
