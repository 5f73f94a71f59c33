// Package request sends authenticated calls to the panel API, refreshing the
// access credential and resending once when the API rejects it.
package request

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	perrors "github.com/jrsteele09/restaurant-panel/internal/errors"
	"github.com/jrsteele09/restaurant-panel/internal/metrics"
	"github.com/jrsteele09/restaurant-panel/panelapi"
)

const defaultCSRFHeader = "X-CSRF-TOKEN"

// Authenticator supplies and renews the bearer credential.
type Authenticator interface {
	AccessToken() string
	RefreshAccessToken(ctx context.Context) (string, error)
}

// CSRFSource reads the current anti-forgery token.
type CSRFSource interface {
	CSRFToken() string
}

type PipelineOption func(*Pipeline)

// WithCSRF attaches the anti-forgery token from source to mutating requests.
func WithCSRF(source CSRFSource, header string) PipelineOption {
	return func(p *Pipeline) {
		p.csrf = source
		if header != "" {
			p.csrfHeader = header
		}
	}
}

// WithRateLimiter waits on limiter before every attempt, retries included.
func WithRateLimiter(limiter *rate.Limiter) PipelineOption {
	return func(p *Pipeline) {
		p.limiter = limiter
	}
}

func WithRecorder(recorder metrics.Recorder) PipelineOption {
	return func(p *Pipeline) {
		p.recorder = recorder
	}
}

// WithRefreshStatuses replaces the statuses that trigger a refresh. Defaults to 403.
func WithRefreshStatuses(statuses ...int) PipelineOption {
	return func(p *Pipeline) {
		p.refreshOn = make(map[int]struct{}, len(statuses))
		for _, s := range statuses {
			p.refreshOn[s] = struct{}{}
		}
	}
}

// Executor is what the resource clients need from a Pipeline.
type Executor interface {
	Execute(ctx context.Context, d Descriptor) (*http.Response, error)
}

var _ Executor = (*Pipeline)(nil)

// Pipeline is the single path every resource call goes through.
type Pipeline struct {
	baseURL    string
	client     *http.Client
	auth       Authenticator
	csrf       CSRFSource
	csrfHeader string
	limiter    *rate.Limiter
	recorder   metrics.Recorder
	refreshOn  map[int]struct{}
}

func New(baseURL string, client *http.Client, auth Authenticator, options ...PipelineOption) *Pipeline {
	if client == nil {
		client = http.DefaultClient
	}
	p := &Pipeline{
		baseURL:    strings.TrimRight(baseURL, "/"),
		client:     client,
		auth:       auth,
		csrfHeader: defaultCSRFHeader,
		recorder:   metrics.Nop{},
		refreshOn:  map[int]struct{}{http.StatusForbidden: {}},
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Execute sends d with the current credential. If the response is a refresh
// status and d allows it, the credential is refreshed once and d is resent
// once with the new one; that second response is returned whatever its status.
// A failed refresh is returned as an error in place of the rejected response.
// Network errors are returned without any retry.
func (p *Pipeline) Execute(ctx context.Context, d Descriptor) (*http.Response, error) {
	body, err := d.encodeBody()
	if err != nil {
		return nil, err
	}

	resp, err := p.attempt(ctx, d, body, p.auth.AccessToken())
	if err != nil {
		return nil, err
	}
	if d.SkipAuthRefresh || !p.shouldRefresh(resp.StatusCode) {
		return resp, nil
	}
	drain(resp)

	log.Info().Str("method", d.method()).Str("path", d.Path).Int("status", resp.StatusCode).Msg("request: credential rejected, refreshing")
	token, err := p.auth.RefreshAccessToken(ctx)
	if err != nil {
		return nil, perrors.Join(perrors.ErrAuthorizationExpired, err)
	}

	p.recorder.RecordRetry()
	return p.attempt(ctx, d, body, token)
}

func (p *Pipeline) Get(ctx context.Context, path string) (*http.Response, error) {
	return p.Execute(ctx, Descriptor{Method: http.MethodGet, Path: path})
}

func (p *Pipeline) Post(ctx context.Context, path string, body any) (*http.Response, error) {
	return p.Execute(ctx, Descriptor{Method: http.MethodPost, Path: path, Body: body})
}

func (p *Pipeline) Put(ctx context.Context, path string, body any) (*http.Response, error) {
	return p.Execute(ctx, Descriptor{Method: http.MethodPut, Path: path, Body: body})
}

func (p *Pipeline) Delete(ctx context.Context, path string) (*http.Response, error) {
	return p.Execute(ctx, Descriptor{Method: http.MethodDelete, Path: path})
}

func (p *Pipeline) shouldRefresh(status int) bool {
	_, ok := p.refreshOn[status]
	return ok
}

func (p *Pipeline) attempt(ctx context.Context, d Descriptor, body []byte, token string) (*http.Response, error) {
	method := d.method()
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait for %s %s: %w", method, d.Path, err)
		}
	}

	req, err := p.newRequest(ctx, method, d, body, token)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.recorder.RecordRequestError(method)
		log.Warn().Err(err).Str("method", method).Str("path", d.Path).Msg("request: transport failure")
		return nil, fmt.Errorf("%s %s: %w", method, d.Path, err)
	}
	p.recorder.RecordRequest(method, resp.StatusCode)
	log.Debug().Str("method", method).Str("path", d.Path).Int("status", resp.StatusCode).Msg("request: sent")
	return resp, nil
}

func (p *Pipeline) newRequest(ctx context.Context, method string, d Descriptor, body []byte, token string) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+d.Path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s %s request: %w", method, d.Path, err)
	}

	for name, values := range d.Header {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if p.csrf != nil && panelapi.IsMutating(method) {
		if csrf := p.csrf.CSRFToken(); csrf != "" {
			req.Header.Set(p.csrfHeader, csrf)
		}
	}
	return req, nil
}

// Call executes d and decodes a success response into out, which may be nil.
func Call(ctx context.Context, e Executor, d Descriptor, out any) error {
	resp, err := e.Execute(ctx, d)
	if err != nil {
		return err
	}
	return DecodeJSON(resp, out)
}
