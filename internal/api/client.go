package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Leochin1206/GeraApp/internal/models"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const pageSize = 100

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// APIError is a non-2xx answer from the backend. Detail carries the backend's
// own message when it sent one.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status code: %d: %s", e.StatusCode, e.Detail)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		token:   token,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Login(ctx context.Context, email, password string) (*Token, error) {
	form := url.Values{
		"username": {email},
		"password": {password},
	}

	var token Token
	if err := c.do(ctx, http.MethodPost, "/login", form, &token); err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("login response carried no access token")
	}
	return &token, nil
}

func (c *Client) Register(ctx context.Context, in NewUser) (*models.User, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid user: %w", err)
	}

	var user models.User
	if err := c.do(ctx, http.MethodPost, "/users/", in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FetchAll loads both collections concurrently. Either failure fails the call.
func (c *Client) FetchAll(ctx context.Context) ([]models.Generator, []models.Event, error) {
	var generators []models.Generator
	var events []models.Event

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		generators, err = c.ListGenerators(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = c.ListEvents(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return generators, events, nil
}

// listAll pages through a backend collection using its skip/limit parameters.
func listAll[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	all := []T{}
	for skip := 0; ; skip += pageSize {
		q := url.Values{
			"skip":  {strconv.Itoa(skip)},
			"limit": {strconv.Itoa(pageSize)},
		}

		var page []T
		if err := c.do(ctx, http.MethodGet, path+"?"+q.Encode(), nil, &page); err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	endpoint := c.baseURL + path

	var reader io.Reader
	contentType := ""
	switch b := body.(type) {
	case nil:
	case url.Values:
		reader = strings.NewReader(b.Encode())
		contentType = "application/x-www-form-urlencoded"
	default:
		payload, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(payload)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// readDetail extracts FastAPI's "detail" field, which is either a plain message
// or a list of field validation errors.
func readDetail(r io.Reader) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 64<<10)).Decode(&body); err != nil || len(body.Detail) == 0 {
		return ""
	}

	var msg string
	if err := json.Unmarshal(body.Detail, &msg); err == nil {
		return msg
	}

	var fieldErrs []struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(body.Detail, &fieldErrs); err != nil || len(fieldErrs) == 0 {
		return string(body.Detail)
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if len(fe.Loc) > 0 {
			parts = append(parts, fmt.Sprintf("%v: %s", fe.Loc[len(fe.Loc)-1], fe.Msg))
		} else {
			parts = append(parts, fe.Msg)
		}
	}
	return strings.Join(parts, "; ")
}
