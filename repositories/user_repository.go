package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"urban-canvas/models"
)

// UserRepository stores accounts in the collaborator's /users collection.
type UserRepository struct {
	baseURL string
	client  *http.Client
}

func NewUserRepository(baseURL string) *UserRepository {
	return &UserRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// userRecord carries the stored password hash, which models.User hides from
// JSON responses.
type userRecord struct {
	ID       any    `json:"id,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName,omitempty"`
}

func (r userRecord) user() *models.User {
	return &models.User{
		ID:       models.FormatID(r.ID),
		Email:    r.Email,
		Password: r.Password,
		FullName: r.FullName,
	}
}

// FindByEmail uses json-server's filter query (?email=...). Returns
// ErrNotFound when no account matches.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	endpoint := r.baseURL + "/users?email=" + url.QueryEscape(email)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnreachable, resp.StatusCode)
	}

	var records []userRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: decoding users: %v", ErrUnreachable, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, email)
	}
	return records[0].user(), nil
}

// Create persists a new account. Only HTTP 201 counts as success.
func (r *UserRepository) Create(ctx context.Context, email, encodedPassword, fullName string) (*models.User, error) {
	body, err := json.Marshal(userRecord{
		Email:    email,
		Password: encodedPassword,
		FullName: fullName,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/users", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}

	var created userRecord
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("%w: decoding created user: %v", ErrUnreachable, err)
	}
	return created.user(), nil
}
