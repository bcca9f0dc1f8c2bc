// Package gateway wraps the four external HTTP collaborators: spreadsheet
// upload, AI classification, bot-trigger approval and feedback submission.
// Every call is a blocking request/response; failures are returned as plain
// errors with no retry or recovery (the reviewer retries by clicking again).
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

type IGatewayClient interface {
	Upload(ctx context.Context, filename string, file io.Reader) (string, error)
	Classify(ctx context.Context, jobId string) ([]RawTicket, error)
	Approve(ctx context.Context, req ApproveRequest) error
	SubmitFeedback(ctx context.Context, req FeedbackRequest) error
}

// RawTicket is one classification result exactly as the external engine
// returns it. Optional fields are pointers; nil means absent.
type RawTicket struct {
	TicketId          *string  `json:"ticket_id"`
	PredictedCategory string   `json:"predicted_category"`
	Reasoning         string   `json:"reasoning"`
	Bot               *string  `json:"bot"`
	Confidence        *float64 `json:"confidence"`
}

// ApproveRequest uses the bot-trigger endpoint's camelCase contract.
type ApproveRequest struct {
	TicketId   string `json:"ticketId"`
	BotName    string `json:"botName"`
	ApprovedBy string `json:"approvedBy"`
}

// FeedbackRequest uses the feedback endpoint's snake_case contract.
type FeedbackRequest struct {
	TicketId        string   `json:"ticket_id"`
	CorrectCategory string   `json:"correct_category"`
	Keywords        []string `json:"keywords"`
	BotName         string   `json:"bot_name"`
}

type Endpoints struct {
	UploadURL   string
	ClassifyURL string
	ApproveURL  string
	FeedbackURL string
}

type gatewayClient struct {
	endpoints Endpoints
	http      *http.Client
}

func NewClient(endpoints Endpoints) IGatewayClient {
	return &gatewayClient{
		endpoints: endpoints,
		http:      http.DefaultClient,
	}
}

// NewClientWithHTTP allows tests to inject a custom transport.
func NewClientWithHTTP(endpoints Endpoints, httpClient *http.Client) IGatewayClient {
	return &gatewayClient{
		endpoints: endpoints,
		http:      httpClient,
	}
}

func (c *gatewayClient) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoints.UploadURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("upload service returned %s", resp.Status)
	}

	var result struct {
		JobId string `json:"job_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if result.JobId == "" {
		return "", fmt.Errorf("upload service returned no job_id")
	}

	return result.JobId, nil
}

func (c *gatewayClient) Classify(ctx context.Context, jobId string) ([]RawTicket, error) {
	params := url.Values{}
	params.Add("job_id", jobId)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoints.ClassifyURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("classify service returned %s", resp.Status)
	}

	var result struct {
		Results []RawTicket `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode classify response: %w", err)
	}

	return result.Results, nil
}

func (c *gatewayClient) Approve(ctx context.Context, approveReq ApproveRequest) error {
	return c.postJSON(ctx, c.endpoints.ApproveURL, approveReq, "approve")
}

func (c *gatewayClient) SubmitFeedback(ctx context.Context, feedbackReq FeedbackRequest) error {
	return c.postJSON(ctx, c.endpoints.FeedbackURL, feedbackReq, "feedback")
}

// postJSON posts a payload and ignores the ack body; only the status matters.
func (c *gatewayClient) postJSON(ctx context.Context, endpoint string, payload interface{}, name string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s service returned %s", name, resp.Status)
	}

	return nil
}
