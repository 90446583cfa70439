package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go-sweet-storefront/internal/pkg/apperror"
	"go-sweet-storefront/internal/session"

	"go.uber.org/zap"
)

const (
	defaultTimeout = 30 * time.Second
	retryDelay     = 500 * time.Millisecond
)

// Client wraps every backend call: it injects the bearer token, maps
// response statuses to tagged errors, and invalidates the session on
// authentication failures. Authorization failures (403) pass through
// untouched.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Store
	logger  *zap.Logger
}

type Deps struct {
	BaseURL string
	Session *session.Store
	Logger  *zap.Logger
	Timeout time.Duration
}

func New(deps Deps) *Client {
	if deps.Session == nil {
		panic("session store cannot be nil")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Timeout == 0 {
		deps.Timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(deps.BaseURL, "/"),
		http:    &http.Client{Timeout: deps.Timeout},
		session: deps.Session,
		logger:  deps.Logger,
	}
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	// idempotent GETs get a single fixed-delay retry on a stalled call;
	// nothing else is ever retried automatically
	err := c.do(ctx, http.MethodGet, path, nil, out)
	if err != nil && isTimeout(err) {
		c.logger.Warn("GET stalled, retrying once", zap.String("path", path))
		time.Sleep(retryDelay)
		err = c.do(ctx, http.MethodGet, path, nil, out)
	}
	return err
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// PostMultipart uploads a single file under the given form field.
func (c *Client) PostMultipart(ctx context.Context, path, field, filename string, r io.Reader, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return apperror.New(apperror.CodeInternalError, err.Error(), 0)
	}
	if _, err := io.Copy(part, r); err != nil {
		return apperror.New(apperror.CodeInternalError, err.Error(), 0)
	}
	if err := w.Close(); err != nil {
		return apperror.New(apperror.CodeInternalError, err.Error(), 0)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return apperror.New(apperror.CodeInternalError, err.Error(), 0)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.send(req, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return apperror.New(apperror.CodeInternalError, err.Error(), 0)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperror.New(apperror.CodeInternalError, err.Error(), 0)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("api request",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return wrapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.handleErrorResponse(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.New(apperror.CodeInternalError,
			fmt.Sprintf("decoding response: %v", err), resp.StatusCode)
	}
	return nil
}

func (c *Client) handleErrorResponse(resp *http.Response) error {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	msg := payload.Message
	if msg == "" {
		msg = payload.Error
	}

	appErr := apperror.FromStatus(resp.StatusCode, msg)

	c.logger.Warn("api error",
		zap.Int("status", resp.StatusCode),
		zap.String("path", resp.Request.URL.Path),
		zap.String("code", appErr.Code),
	)

	// token invalid or expired: clear session and send to login;
	// 403 is insufficient privilege and leaves the session intact
	if appErr.Code == apperror.CodeUnauthorized {
		c.session.Invalidate()
	}
	return appErr
}

func wrapTransportError(err error) *apperror.AppError {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return apperror.New(apperror.CodeNetwork, "request timed out", 0)
	}
	return apperror.New(apperror.CodeNetwork, err.Error(), 0)
}

func isTimeout(err error) bool {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Code == apperror.CodeNetwork && appErr.HTTPStatus == 0 &&
			appErr.Message == "request timed out"
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
