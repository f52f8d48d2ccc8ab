package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"habit_tracker/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTimeout = 10 * time.Second

// Client talks to the habit tracker REST API. It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

type Option func(*Client)

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session is what signup and login hand back.
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// CreateHabitInput is the body of a habit creation. Empty color means the server default.
type CreateHabitInput struct {
	Name        string  `json:"name"`
	Color       string  `json:"color,omitempty"`
	Description *string `json:"description,omitempty"`
	Frequency   *string `json:"frequency,omitempty"`
}

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}

func (c *Client) Token() string { return c.token }

func (c *Client) SetToken(token string) { c.token = token }

// Register creates an account and keeps the returned token.
func (c *Client) Register(ctx context.Context, username, password string) (Session, error) {
	return c.authenticate(ctx, "/auth/signup", username, password)
}

// Login keeps the returned token on success.
func (c *Client) Login(ctx context.Context, username, password string) (Session, error) {
	return c.authenticate(ctx, "/auth/login", username, password)
}

func (c *Client) authenticate(ctx context.Context, path, username, password string) (Session, error) {
	var s Session
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, path, body, &s); err != nil {
		return Session{}, err
	}
	c.token = s.Token
	return s, nil
}

// CurrentUser decodes the held token's claims without verifying the signature;
// the server is the one that checks it.
func (c *Client) CurrentUser() (models.Principal, error) {
	if c.token == "" {
		return models.Principal{}, ErrNoToken
	}
	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(c.token, &claims); err != nil {
		return models.Principal{}, fmt.Errorf("decode token: %w", err)
	}
	return models.Principal{UserID: claims.UserID, Username: claims.Username}, nil
}

func (c *Client) ListHabits(ctx context.Context) ([]models.Habit, error) {
	var habits []models.Habit
	if err := c.do(ctx, http.MethodGet, "/habits", nil, &habits); err != nil {
		return nil, err
	}
	if habits == nil {
		habits = []models.Habit{}
	}
	return habits, nil
}

func (c *Client) GetHabit(ctx context.Context, id int) (models.Habit, error) {
	var h models.Habit
	err := c.do(ctx, http.MethodGet, habitPath(id), nil, &h)
	return h, err
}

func (c *Client) CreateHabit(ctx context.Context, in CreateHabitInput) (models.Habit, error) {
	var h models.Habit
	err := c.do(ctx, http.MethodPost, "/habits", in, &h)
	return h, err
}

func (c *Client) UpdateHabitColor(ctx context.Context, id int, color string) error {
	return c.do(ctx, http.MethodPatch, habitPath(id)+"/color", map[string]string{"color": color}, nil)
}

func (c *Client) DeleteHabit(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, habitPath(id), nil, nil)
}

// ListCompletions returns the habit's completed dates, optionally bounded
// by inclusive from/to (empty means unbounded).
func (c *Client) ListCompletions(ctx context.Context, habitID int, from, to string) ([]string, error) {
	q := url.Values{}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	path := habitPath(habitID) + "/logs"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var dates []string
	if err := c.do(ctx, http.MethodGet, path, nil, &dates); err != nil {
		return nil, err
	}
	if dates == nil {
		dates = []string{}
	}
	return dates, nil
}

// AddCompletion marks the date done. Adding twice is not an error.
func (c *Client) AddCompletion(ctx context.Context, habitID int, date string) error {
	return c.do(ctx, http.MethodPut, habitPath(habitID)+"/logs", logBody{Date: date}, nil)
}

// RemoveCompletion clears the date. Removing an absent date is not an error.
func (c *Client) RemoveCompletion(ctx context.Context, habitID int, date string) error {
	return c.do(ctx, http.MethodDelete, habitPath(habitID)+"/logs", logBody{Date: date}, nil)
}

// ToggleCompletion flips the date on the server and reports the new state.
func (c *Client) ToggleCompletion(ctx context.Context, habitID int, date string) (bool, error) {
	var out struct {
		Completed bool `json:"completed"`
	}
	if err := c.do(ctx, http.MethodPost, habitPath(habitID)+"/logs", logBody{Date: date}, &out); err != nil {
		return false, err
	}
	return out.Completed, nil
}

type logBody struct {
	Date string `json:"date"`
}

func habitPath(id int) string {
	return "/habits/" + strconv.Itoa(id)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var payload struct {
		Error string `json:"error"`
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if json.Unmarshal(b, &payload) == nil && payload.Error != "" {
		apiErr.Message = payload.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(b))
	}
	return apiErr
}
