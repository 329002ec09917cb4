//go:generate go run go.uber.org/mock/mockgen -source=client.go -destination=../mocks/mock_api.go -package=mocks
// Package api is the HTTP client for the collaborator boundary: auth
// endpoints, profile reads/writes and the swap gateway calls. It classifies
// every failure into the local error taxonomy and never retries; retry policy
// belongs to the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"swapmeet/domain"
	"swapmeet/errors"
)

// TokenSource supplies the current bearer token, or "" when unauthenticated.
// The session store owns the token; the client only injects it.
type TokenSource func() string

type AuthResult struct {
	Token    string
	Identity domain.Identity
}

// ProfilePatch carries only the fields the caller wants changed.
type ProfilePatch struct {
	DisplayName *string `json:"display_name,omitempty"`
	City        *string `json:"city,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

type IAuthAPI interface {
	Login(ctx context.Context, email, password string) (AuthResult, error)
	Register(ctx context.Context, displayName, email, password, city string) (AuthResult, error)
	Me(ctx context.Context) (domain.Identity, error)
	UpdateProfile(ctx context.Context, patch ProfilePatch) (domain.Identity, error)
}

// ISwapGateway confirms swap lifecycle actions with the collaborator. The
// negotiation service validates transitions locally before calling it.
type ISwapGateway interface {
	CreateSwapRequest(ctx context.Context, wantedItemID, offeredItemID uuid.UUID) (domain.SwapRequest, error)
	AcceptSwap(ctx context.Context, id uuid.UUID, meetup domain.Meetup) (domain.SwapRequest, error)
	DeclineSwap(ctx context.Context, id uuid.UUID, reason string) (domain.SwapRequest, error)
	CancelSwap(ctx context.Context, id uuid.UUID, reason string) (domain.SwapRequest, error)
	CompleteSwap(ctx context.Context, id uuid.UUID) (domain.SwapRequest, error)
}

type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
	log     *slog.Logger
}

func NewClient(log *slog.Logger, baseURL string, timeout time.Duration, token TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		token:   token,
		log:     log,
	}
}

type wireIdentity struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	City        string `json:"city"`
	AvatarURL   string `json:"avatar_url"`
}

type wireAuthResponse struct {
	Token    string       `json:"token"`
	Identity wireIdentity `json:"identity"`
}

type wireSwap struct {
	ID              uuid.UUID      `json:"id"`
	InitiatorID     string         `json:"initiator_id"`
	RecipientID     string         `json:"recipient_id"`
	InitiatorItemID uuid.UUID      `json:"initiator_item_id"`
	RecipientItemID uuid.UUID      `json:"recipient_item_id"`
	Status          string         `json:"status"`
	Meetup          *domain.Meetup `json:"meetup,omitempty"`
	TerminalReason  string         `json:"terminal_reason,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var resp wireAuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: resp.Token, Identity: toIdentity(resp.Identity)}, nil
}

func (c *Client) Register(ctx context.Context, displayName, email, password, city string) (AuthResult, error) {
	body := map[string]string{
		"display_name": displayName,
		"email":        email,
		"password":     password,
		"city":         city,
	}
	var resp wireAuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &resp); err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: resp.Token, Identity: toIdentity(resp.Identity)}, nil
}

func (c *Client) Me(ctx context.Context) (domain.Identity, error) {
	var resp struct {
		Identity wireIdentity `json:"identity"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return domain.Identity{}, err
	}
	return toIdentity(resp.Identity), nil
}

func (c *Client) UpdateProfile(ctx context.Context, patch ProfilePatch) (domain.Identity, error) {
	var resp struct {
		Identity wireIdentity `json:"identity"`
	}
	if err := c.do(ctx, http.MethodPut, "/auth/me", patch, &resp); err != nil {
		return domain.Identity{}, err
	}
	return toIdentity(resp.Identity), nil
}

// CreateSwapRequest declares interest in an item, offering one of our own.
func (c *Client) CreateSwapRequest(ctx context.Context, wantedItemID, offeredItemID uuid.UUID) (domain.SwapRequest, error) {
	body := map[string]string{"offered_item_id": offeredItemID.String()}
	var resp wireSwap
	path := fmt.Sprintf("/items/%s/interest", wantedItemID)
	if err := c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return domain.SwapRequest{}, err
	}
	return toSwap(resp), nil
}

func (c *Client) AcceptSwap(ctx context.Context, id uuid.UUID, meetup domain.Meetup) (domain.SwapRequest, error) {
	return c.swapAction(ctx, id, "accept", map[string]any{"meetup": meetup})
}

func (c *Client) DeclineSwap(ctx context.Context, id uuid.UUID, reason string) (domain.SwapRequest, error) {
	return c.swapAction(ctx, id, "decline", map[string]any{"reason": reason})
}

func (c *Client) CancelSwap(ctx context.Context, id uuid.UUID, reason string) (domain.SwapRequest, error) {
	return c.swapAction(ctx, id, "cancel", map[string]any{"reason": reason})
}

func (c *Client) CompleteSwap(ctx context.Context, id uuid.UUID) (domain.SwapRequest, error) {
	return c.swapAction(ctx, id, "complete", nil)
}

func (c *Client) swapAction(ctx context.Context, id uuid.UUID, action string, body any) (domain.SwapRequest, error) {
	var resp wireSwap
	path := fmt.Sprintf("/swaps/%s/%s", id, action)
	if err := c.do(ctx, http.MethodPut, path, body, &resp); err != nil {
		return domain.SwapRequest{}, err
	}
	return toSwap(resp), nil
}

// do performs one request/response cycle. Transport failures become
// ErrUnreachable, non-2xx statuses go through errors.FromHTTP.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	if token := c.token(); token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := c.http.Do(request)
	if err != nil {
		c.log.Warn("Collaborator unreachable", "method", method, "path", path, "err", err)
		return fmt.Errorf("%w: %v", errors.ErrUnreachable, err)
	}
	defer func() { _ = response.Body.Close() }()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrUnreachable, err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return errors.FromHTTP(response.StatusCode, payload)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func toIdentity(w wireIdentity) domain.Identity {
	return domain.Identity{
		ID:          w.ID,
		DisplayName: w.DisplayName,
		Email:       w.Email,
		City:        w.City,
		AvatarURL:   w.AvatarURL,
	}
}

func toSwap(w wireSwap) domain.SwapRequest {
	return domain.SwapRequest{
		ID:              w.ID,
		InitiatorID:     w.InitiatorID,
		RecipientID:     w.RecipientID,
		InitiatorItemID: w.InitiatorItemID,
		RecipientItemID: w.RecipientItemID,
		Status:          domain.SwapStatus(w.Status),
		Meetup:          w.Meetup,
		TerminalReason:  w.TerminalReason,
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
	}
}
