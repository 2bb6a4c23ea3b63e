package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"researchai/internal/util"
	"researchai/pkg/domain"
)

// Client calls the ResearchAI backend over HTTP. Every operation is a
// single-shot request: no retries, no timeout override beyond the
// transport default.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a backend client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Progress is one poll of a summarization job.
type Progress struct {
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	Err      string `json:"error,omitempty"`
}

// Login authenticates and returns the backend user ID.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	payload := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/login", payload, &resp); err != nil {
		return "", err
	}
	return resp.UserID, nil
}

// Signup creates an account and returns the new user ID.
func (c *Client) Signup(ctx context.Context, name, email, password string) (string, error) {
	payload := map[string]string{"name": name, "email": email, "password": password}
	var resp authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/signup", payload, &resp); err != nil {
		return "", err
	}
	return resp.UserID, nil
}

// UpdateAccount changes the user's password.
func (c *Client) UpdateAccount(ctx context.Context, userID, currentPassword, newPassword string) error {
	payload := map[string]string{
		"user_id":          userID,
		"current_password": currentPassword,
		"new_password":     newPassword,
	}
	return c.doJSON(ctx, http.MethodPost, "/update-account", payload, nil)
}

// DeleteAccount removes the account and all its documents.
func (c *Client) DeleteAccount(ctx context.Context, userID string) error {
	payload := map[string]string{"user_id": userID}
	return c.doJSON(ctx, http.MethodDelete, "/delete-account", payload, nil)
}

// UploadDocument sends a document as multipart form data and returns the
// server-assigned document ID.
func (c *Client) UploadDocument(ctx context.Context, filename string, r io.Reader, userID string) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", err
	}
	if err := writer.WriteField("user_id", userID); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/summarize", body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var resp uploadResponse
	if err := c.do(req, &resp); err != nil {
		return "", err
	}
	return resp.DocID, nil
}

// GenerateSummary triggers summary generation and returns the result.
func (c *Client) GenerateSummary(ctx context.Context, docID string) (domain.Summary, error) {
	payload := map[string]string{"doc_id": docID}
	var sum domain.Summary
	if err := c.doJSON(ctx, http.MethodPost, "/generate_summary", payload, &sum); err != nil {
		return domain.Summary{}, err
	}
	return sum, nil
}

// PollProgress fetches the current status of a summarization job.
func (c *Client) PollProgress(ctx context.Context, docID string) (Progress, error) {
	path := fmt.Sprintf("/summary-progress/%s", url.PathEscape(docID))
	var p Progress
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &p); err != nil {
		return Progress{}, err
	}
	return p, nil
}

// Ask submits a question, optionally scoped to a document.
func (c *Client) Ask(ctx context.Context, question, docID string) (string, error) {
	payload := map[string]string{"question": question}
	if docID != "" {
		payload["doc_id"] = docID
	}
	var resp askResponse
	if err := c.doJSON(ctx, http.MethodPost, "/ask", payload, &resp); err != nil {
		return "", err
	}
	return resp.Answer, nil
}

// ListHistory returns the user's documents, most recent first.
func (c *Client) ListHistory(ctx context.Context, userID string) ([]domain.DocumentRecord, error) {
	path := "/history?user_id=" + url.QueryEscape(userID)
	var records []domain.DocumentRecord
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetDocument fetches a single document with its stored summary. userID may
// be empty for unscoped lookups.
func (c *Client) GetDocument(ctx context.Context, docID, userID string) (domain.DocumentRecord, error) {
	path := fmt.Sprintf("/document/%s", url.PathEscape(docID))
	if userID != "" {
		path += "?user_id=" + url.QueryEscape(userID)
	}
	var record domain.DocumentRecord
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &record); err != nil {
		return domain.DocumentRecord{}, err
	}
	return record, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("X-Request-ID", util.NewID())
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return networkError(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		msg := errResp.Error
		if msg == "" {
			msg = resp.Status
		}
		return &Error{Kind: kindForStatus(resp.StatusCode), Status: resp.StatusCode, Message: msg}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return err
	}
	return nil
}

type authResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

type uploadResponse struct {
	Message string `json:"message"`
	DocID   string `json:"doc_id"`
	Source  string `json:"source"`
}

type askResponse struct {
	Answer string `json:"answer"`
}
