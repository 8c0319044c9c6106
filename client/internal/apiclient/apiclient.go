package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	internal_errors "github.com/mathewgeejo/cinemabase/shared/errors"
	"github.com/mathewgeejo/cinemabase/shared/utils"
)

const defaultTimeout = 10 * time.Second

// APIClient struct handles all communication with the backend API.
// Calls that need a session take the token explicitly.
type APIClient struct {
	BaseURL    string
	HttpClient *http.Client
}

func New(baseURL string) *APIClient {
	return &APIClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HttpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// do is the single, unified helper for making API requests. Non-2xx answers
// are decoded into *errors.ErrorWithStatusCode; out may be nil.
func (c *APIClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		jsonBody, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create API request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var errResp utils.ErrorResponse
	if err := json.Unmarshal(bodyBytes, &errResp); err != nil || errResp.Message == "" {
		errResp.Message = strings.TrimSpace(string(bodyBytes))
		if errResp.Message == "" {
			errResp.Message = http.StatusText(resp.StatusCode)
		}
	}
	return &internal_errors.ErrorWithStatusCode{Message: errResp.Message, StatusCode: resp.StatusCode}
}
