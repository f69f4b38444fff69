package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

const slackAPIURL = "https://slack.com/api/chat.postMessage"

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// SlackSink posts messages to Slack. A bot token plus channel ID is
// preferred; an incoming webhook URL is the fallback.
type SlackSink struct {
	httpClient HTTPClient
	botToken   string
	channelID  string
	webhookURL string
}

func NewSlackSink(botToken, channelID, webhookURL string) *SlackSink {
	return &SlackSink{
		httpClient: &http.Client{},
		botToken:   botToken,
		channelID:  channelID,
		webhookURL: webhookURL,
	}
}

func (s *SlackSink) SetHTTPClient(client HTTPClient) {
	s.httpClient = client
}

func (s *SlackSink) Name() string {
	return "slack"
}

func (s *SlackSink) Configured() bool {
	return s.botToken != "" || s.webhookURL != ""
}

func (s *SlackSink) Dispatch(ctx context.Context, msg Message) error {
	if s.botToken != "" {
		return s.sendViaAPI(ctx, msg)
	}
	if s.webhookURL != "" {
		return s.sendViaWebhook(ctx, msg)
	}
	return errors.New("slack sink is not configured")
}

func (s *SlackSink) sendViaAPI(ctx context.Context, msg Message) error {
	payload := map[string]any{
		"channel": s.channelID,
		"blocks":  msg.Blocks,
		"text":    msg.Fallback,
	}

	body, err := s.post(ctx, slackAPIURL, payload, "Bearer "+s.botToken)
	if err != nil {
		return err
	}

	var apiResponse struct {
		Ok    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return errors.Wrap(err, "error decoding slack response")
	}
	if !apiResponse.Ok {
		return errors.Errorf("slack api error: %s", apiResponse.Error)
	}
	return nil
}

func (s *SlackSink) sendViaWebhook(ctx context.Context, msg Message) error {
	payload := map[string]any{
		"blocks": msg.Blocks,
		"text":   msg.Fallback,
	}
	_, err := s.post(ctx, s.webhookURL, payload, "")
	return err
}

func (s *SlackSink) post(ctx context.Context, url string, payload any, authorization string) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "error encoding payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return nil, errors.Wrap(err, "error creating request")
	}
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "error sending request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "error reading response body")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("request failed with status %v, body: %v", resp.StatusCode, string(body))
	}
	return body, nil
}
