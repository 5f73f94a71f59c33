package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	perrors "github.com/jrsteele09/restaurant-panel/internal/errors"
)

const maxErrorBody = 4096

// StatusError is a non-success response surfaced by DecodeJSON.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s returned %d", e.Method, e.Path, e.StatusCode)
}

// Unwrap maps well known statuses onto the shared error taxonomy.
func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusForbidden, http.StatusUnauthorized:
		return perrors.ErrPersistentAuthorizationFailure
	case http.StatusNotFound:
		return perrors.ErrNotFound
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return perrors.ErrInvalidRequest
	}
	if e.StatusCode >= 500 {
		return perrors.ErrInternal
	}
	return nil
}

// DecodeJSON closes the response, returns a *StatusError for non-2xx statuses
// and otherwise decodes the body into v. A nil v or an empty body decodes nothing.
func DecodeJSON(resp *http.Response, v any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		statusErr := &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
		if resp.Request != nil {
			statusErr.Method = resp.Request.Method
			statusErr.Path = resp.Request.URL.Path
		}
		return statusErr
	}
	if v == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	resp.Body.Close()
}
