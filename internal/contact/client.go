package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"time"
)

// Client relays submissions to a form-collecting endpoint (a spreadsheet web app).
type Client struct {
	Endpoint string
	Client   *http.Client
}

// NewClient creates a relay client. A zero timeout means 15s.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		Endpoint: endpoint,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// RelayError is a failed submission.
type RelayError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *RelayError) Error() string {
	return e.Message
}

type relayResponse struct {
	Result  string `json:"result"`
	Message string `json:"message"`
}

// Submit posts s as multipart form data and expects {"result":"success"} back.
func (c *Client) Submit(ctx context.Context, s Submission) error {
	if c.Endpoint == "" {
		return &RelayError{Code: "NOT_CONFIGURED", Message: "contact endpoint is not configured"}
	}
	s = s.Normalize()
	if err := s.Validate(); err != nil {
		return &RelayError{Code: "INVALID_SUBMISSION", Message: err.Error()}
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range [][2]string{
		{"name", s.Name},
		{"place", s.Place},
		{"age", s.Age},
		{"phone", s.Phone},
		{"message", s.Message},
		{"pageSource", s.PageSource},
	} {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return fmt.Errorf("failed to encode form: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to encode form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, &body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	log.Printf("[Contact] Request: POST (page=%s)", s.PageSource)
	start := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(start)
	if err != nil {
		log.Printf("[Contact] Request failed: %v (duration: %v)", err, duration)
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("[Contact] Response: %d (duration: %v, page=%s)", resp.StatusCode, duration, s.PageSource)
	if resp.StatusCode != http.StatusOK {
		return &RelayError{
			StatusCode: resp.StatusCode,
			Code:       "RELAY_ERROR",
			Message:    fmt.Sprintf("relay returned status %d", resp.StatusCode),
		}
	}

	var result relayResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("[Contact] Error decoding response: %v", err)
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Result != "success" {
		msg := result.Message
		if msg == "" {
			msg = "submission failed"
		}
		return &RelayError{StatusCode: resp.StatusCode, Code: "REJECTED", Message: msg}
	}
	return nil
}
