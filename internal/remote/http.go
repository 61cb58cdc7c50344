package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"ojt-tracker/internal/errors"
	"ojt-tracker/internal/logging"
)

// HTTPStore talks to a PostgREST-style REST endpoint. Rows live at
// {baseURL}/{table} and are addressed with an id=eq.{id} filter.
type HTTPStore struct {
	baseURL string
	client  *http.Client
}

// NewHTTPStore creates a store for the given base URL, authenticating
// every request with the static bearer token.
func NewHTTPStore(baseURL, token string, timeout time.Duration) *HTTPStore {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := oauth2.NewClient(context.Background(), src)
	client.Timeout = timeout

	return &HTTPStore{
		baseURL: baseURL,
		client:  client,
	}
}

// NewHTTPStoreWithClient creates a store using the supplied HTTP client.
// Used by tests to point at a local server without token handling.
func NewHTTPStoreWithClient(baseURL string, client *http.Client) *HTTPStore {
	return &HTTPStore{
		baseURL: baseURL,
		client:  client,
	}
}

// Insert creates a new row and returns the identifier assigned by the store.
func (s *HTTPStore) Insert(ctx context.Context, table string, payload []byte) (string, error) {
	endpoint := fmt.Sprintf("%s/%s", s.baseURL, url.PathEscape(table))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", errors.NewTransportError("insert "+table, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	body, err := s.do(req, "insert "+table, http.StatusCreated, http.StatusOK)
	if err != nil {
		return "", err
	}

	return extractID(body)
}

// Update applies a partial update to the row with the given ID.
func (s *HTTPStore) Update(ctx context.Context, table, id string, patch []byte) error {
	endpoint := s.rowEndpoint(table, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(patch))
	if err != nil {
		return errors.NewTransportError("update "+table, err)
	}
	req.Header.Set("Content-Type", "application/json")

	_, err = s.do(req, "update "+table, http.StatusOK, http.StatusNoContent)
	return err
}

// Delete removes the row with the given ID.
func (s *HTTPStore) Delete(ctx context.Context, table, id string) error {
	endpoint := s.rowEndpoint(table, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return errors.NewTransportError("delete "+table, err)
	}

	_, err = s.do(req, "delete "+table, http.StatusOK, http.StatusNoContent)
	return err
}

func (s *HTTPStore) rowEndpoint(table, id string) string {
	return fmt.Sprintf("%s/%s?id=eq.%s", s.baseURL, url.PathEscape(table), url.QueryEscape(id))
}

// do executes the request and returns the response body when the status
// is one of the accepted codes. Any other outcome is a transport error.
func (s *HTTPStore) do(req *http.Request, operation string, acceptedStatus ...int) ([]byte, error) {
	logging.Debugf("remote: %s %s", req.Method, req.URL)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.NewTransportError(operation, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewTransportError(operation, err)
	}

	for _, status := range acceptedStatus {
		if resp.StatusCode == status {
			return body, nil
		}
	}

	return nil, errors.NewTransportError(operation,
		fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body)))
}

// extractID pulls the id field out of a representation response. PostgREST
// returns the inserted rows as a JSON array.
func extractID(body []byte) (string, error) {
	var rows []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &rows); err == nil && len(rows) > 0 {
		return rows[0].ID, nil
	}

	var row struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &row); err == nil && row.ID != "" {
		return row.ID, nil
	}

	return "", errors.NewTransportError("parse insert response",
		fmt.Errorf("no id in response: %s", string(body)))
}
