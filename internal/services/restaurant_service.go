package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/eatery/internal/config"
	"github.com/example/eatery/internal/models"
	"github.com/example/eatery/internal/wire"
)

const tokenRefreshLeeway = 30 * time.Second

// ErrNotFound reports that the upstream service has no entity for the
// request (a merchant without a restaurant yet).
var ErrNotFound = errors.New("upstream entity not found")

// APIError is a non-2xx upstream response. It stays a transport-level error
// end to end; it is never reinterpreted as a field error.
type APIError struct {
	Status int
	Body   []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.Status, string(e.Body))
}

type authRequest struct {
	SecretToken string `json:"secret_token"`
}

type authResponse struct {
	Data struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	} `json:"data"`
	Error any `json:"error,omitempty"`
}

// RestaurantService is the client for the upstream restaurant data service.
// It authenticates with a service secret, caches the issued bearer token
// behind a mutex, and retries a request once after a 401 with a fresh token.
type RestaurantService struct {
	baseURL string
	authURL string
	secret  string
	client  *http.Client

	tokenMu     sync.RWMutex
	token       string
	tokenExpiry time.Time
}

// NewRestaurantService constructs the client from configuration.
func NewRestaurantService(cfg *config.Config) *RestaurantService {
	return &RestaurantService{
		baseURL: strings.TrimRight(cfg.UpstreamBaseURL, "/"),
		authURL: strings.TrimRight(cfg.UpstreamAuthURL, "/"),
		secret:  cfg.UpstreamSecret,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Token returns a cached upstream access token, fetching a new one if needed.
func (s *RestaurantService) Token(ctx context.Context) (string, error) {
	return s.getToken(ctx, false)
}

// RefreshToken forces retrieval of a fresh upstream access token.
func (s *RestaurantService) RefreshToken(ctx context.Context) (string, error) {
	return s.getToken(ctx, true)
}

func (s *RestaurantService) getToken(ctx context.Context, force bool) (string, error) {
	if !force {
		s.tokenMu.RLock()
		token := s.currentTokenLocked()
		s.tokenMu.RUnlock()
		if token != "" {
			return token, nil
		}
	}

	s.tokenMu.Lock()
	defer s.tokenMu.Unlock()

	// Check again in case another goroutine refreshed while we waited for the lock.
	if !force {
		if token := s.currentTokenLocked(); token != "" {
			return token, nil
		}
	}

	if s.secret == "" {
		return "", errors.New("UPSTREAM_API_SECRET_KEY is not configured")
	}

	body, err := json.Marshal(authRequest{SecretToken: s.secret})
	if err != nil {
		return "", fmt.Errorf("marshal auth payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.authURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute auth request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read auth response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("auth request failed: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var authResp authResponse
	if err := json.Unmarshal(respBody, &authResp); err != nil {
		return "", fmt.Errorf("unmarshal auth response: %w", err)
	}

	if authResp.Data.AccessToken == "" {
		return "", errors.New("auth response missing access_token")
	}

	s.token = authResp.Data.AccessToken
	if authResp.Data.ExpiresIn > 0 {
		s.tokenExpiry = time.Now().Add(time.Duration(authResp.Data.ExpiresIn) * time.Second)
	} else {
		// Fallback to a short lifetime when expiry is not provided.
		s.tokenExpiry = time.Now().Add(5 * time.Minute)
	}

	return s.token, nil
}

func (s *RestaurantService) currentTokenLocked() string {
	if s.token == "" {
		return ""
	}
	if s.tokenExpiry.IsZero() {
		return s.token
	}
	if time.Now().Add(tokenRefreshLeeway).After(s.tokenExpiry) {
		return ""
	}
	return s.token
}

// FetchMyRestaurant returns the restaurant owned by the given account, or
// ErrNotFound when the merchant has none yet.
func (s *RestaurantService) FetchMyRestaurant(ctx context.Context, accountID uuid.UUID) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := s.doJSON(ctx, http.MethodGet, "/restaurants/my", accountID.String(), nil, &restaurant); err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// FetchRestaurant returns a restaurant by its public ID.
func (s *RestaurantService) FetchRestaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := s.doJSON(ctx, http.MethodGet, "/restaurants/"+id, "", nil, &restaurant); err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// SaveRestaurant submits a canonical outbound payload as multipart form
// data. update selects PUT over POST; the field order of the payload is
// preserved in the body.
func (s *RestaurantService) SaveRestaurant(ctx context.Context, accountID uuid.UUID, payload wire.Payload, update bool) (*models.Restaurant, error) {
	method := http.MethodPost
	if update {
		method = http.MethodPut
	}

	body, contentType, err := encodeMultipart(payload)
	if err != nil {
		return nil, err
	}

	var restaurant models.Restaurant
	if err := s.do(ctx, method, "/restaurants/my", accountID.String(), body, contentType, &restaurant); err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// Saver returns a session.Saver bound to one account and verb.
func (s *RestaurantService) Saver(accountID uuid.UUID, update bool) BoundSaver {
	return BoundSaver{svc: s, accountID: accountID, update: update}
}

// BoundSaver adapts the service to the session's Saver contract.
type BoundSaver struct {
	svc       *RestaurantService
	accountID uuid.UUID
	update    bool
}

// Save pushes the payload for the bound account.
func (b BoundSaver) Save(ctx context.Context, payload wire.Payload) (*models.Restaurant, error) {
	return b.svc.SaveRestaurant(ctx, b.accountID, payload, b.update)
}

// FetchMyUser returns the account profile, or ErrNotFound for a first visit.
func (s *RestaurantService) FetchMyUser(ctx context.Context, accountID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.doJSON(ctx, http.MethodGet, "/users/my", accountID.String(), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateMyUser registers the account profile after first sign-in.
func (s *RestaurantService) CreateMyUser(ctx context.Context, accountID uuid.UUID, authID, email string) (*models.User, error) {
	body := map[string]string{"authId": authID, "email": email}
	var user models.User
	if err := s.doJSON(ctx, http.MethodPost, "/users/my", accountID.String(), body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMyUser saves validated profile fields.
func (s *RestaurantService) UpdateMyUser(ctx context.Context, accountID uuid.UUID, update models.UserUpdate) (*models.User, error) {
	var user models.User
	if err := s.doJSON(ctx, http.MethodPut, "/users/my", accountID.String(), update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *RestaurantService) doJSON(ctx context.Context, method, path, accountID string, in, out any) error {
	var body []byte
	contentType := ""
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		body = payload
		contentType = "application/json"
	}
	return s.do(ctx, method, path, accountID, body, contentType, out)
}

// do executes one upstream request with the cached bearer token, refreshing
// and retrying exactly once on 401.
func (s *RestaurantService) do(ctx context.Context, method, path, accountID string, body []byte, contentType string, out any) error {
	token, err := s.Token(ctx)
	if err != nil {
		return err
	}

	resp, err := s.execute(ctx, method, path, accountID, body, contentType, token)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		token, err = s.RefreshToken(ctx)
		if err != nil {
			return err
		}
		resp, err = s.execute(ctx, method, path, accountID, body, contentType, token)
		if err != nil {
			return err
		}
	}

	respBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Body: respBody}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

func (s *RestaurantService) execute(ctx context.Context, method, path, accountID string, body []byte, contentType, token string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if accountID != "" {
		req.Header.Set("X-Account-ID", accountID)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	return resp, nil
}

// encodeMultipart writes the payload's text fields in order, then the
// optional image part. The indexed field names are the wire contract the
// upstream parser reconstructs lists from.
func encodeMultipart(payload wire.Payload) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range payload.Fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.Name, err)
		}
	}

	if payload.Image != nil {
		part, err := w.CreateFormFile(payload.Image.FieldName, payload.Image.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}
		if _, err := part.Write(payload.Image.Content); err != nil {
			return nil, "", fmt.Errorf("write image part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finish multipart body: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
