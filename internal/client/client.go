// Package client is a typed Go client for the taskboard REST API. It is the
// network half of the drag-and-drop front end: the boardstate package computes
// optimistic updates and hands this client the reconciling calls.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TokenProvider supplies the bearer credential attached to every request.
// Injecting it keeps token storage out of the client itself.
type TokenProvider interface {
	Token() string
}

// StaticToken is a TokenProvider for a fixed credential.
type StaticToken string

func (s StaticToken) Token() string { return string(s) }

type Board struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerID     uuid.UUID `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type List struct {
	ID        uuid.UUID `json:"id"`
	BoardID   uuid.UUID `json:"board_id"`
	Title     string    `json:"title"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	Cards     []Card    `json:"cards,omitempty"`
}

type Card struct {
	ID          uuid.UUID `json:"id"`
	ListID      uuid.UUID `json:"list_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AuthUser struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

type AuthResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

// CardUpdate carries a partial card update; nil fields are omitted.
type CardUpdate struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	ListID      *uuid.UUID `json:"list_id,omitempty"`
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenProvider

	// Reorder calls racing out of order would let an older request's result
	// land after a newer one's, so calls are serialized per scope.
	mu     sync.Mutex
	scopes map[uuid.UUID]*sync.Mutex
}

func New(baseURL string, tokens TokenProvider) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		tokens:  tokens,
		scopes:  make(map[uuid.UUID]*sync.Mutex),
	}
}

func (c *Client) scopeLock(id uuid.UUID) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	lock, ok := c.scopes[id]
	if !ok {
		lock = &sync.Mutex{}
		c.scopes[id] = lock
	}
	return lock
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{Status: resp.StatusCode, Message: apiErr.Error}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Boards(ctx context.Context) ([]Board, error) {
	var boards []Board
	err := c.do(ctx, http.MethodGet, "/boards", nil, &boards)
	return boards, err
}

func (c *Client) CreateBoard(ctx context.Context, title, description string) (*Board, error) {
	var board Board
	err := c.do(ctx, http.MethodPost, "/boards", map[string]string{
		"title":       title,
		"description": description,
	}, &board)
	if err != nil {
		return nil, err
	}
	return &board, nil
}

func (c *Client) DeleteBoard(ctx context.Context, boardID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/boards/"+boardID.String(), nil, nil)
}

// BoardLists is the hydration read: lists in position order, cards nested in
// position order.
func (c *Client) BoardLists(ctx context.Context, boardID uuid.UUID) ([]List, error) {
	var lists []List
	err := c.do(ctx, http.MethodGet, "/boards/"+boardID.String()+"/lists", nil, &lists)
	return lists, err
}

func (c *Client) CreateList(ctx context.Context, boardID uuid.UUID, title string) (*List, error) {
	var list List
	err := c.do(ctx, http.MethodPost, "/boards/"+boardID.String()+"/lists", map[string]string{
		"title": title,
	}, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) UpdateList(ctx context.Context, listID uuid.UUID, title string) (*List, error) {
	var list List
	err := c.do(ctx, http.MethodPatch, "/lists/"+listID.String(), map[string]string{
		"title": title,
	}, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) DeleteList(ctx context.Context, listID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/lists/"+listID.String(), nil, nil)
}

// ReorderLists rewrites the positions of a board's lists to the supplied full
// id sequence.
func (c *Client) ReorderLists(ctx context.Context, boardID uuid.UUID, ordered []uuid.UUID) error {
	lock := c.scopeLock(boardID)
	lock.Lock()
	defer lock.Unlock()

	return c.do(ctx, http.MethodPost, "/boards/"+boardID.String()+"/lists/reorder", reorderBody(ordered), nil)
}

func (c *Client) CreateCard(ctx context.Context, listID uuid.UUID, title, description string) (*Card, error) {
	var card Card
	err := c.do(ctx, http.MethodPost, "/lists/"+listID.String()+"/cards", map[string]string{
		"title":       title,
		"description": description,
	}, &card)
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *Client) UpdateCard(ctx context.Context, cardID uuid.UUID, update CardUpdate) (*Card, error) {
	var card Card
	err := c.do(ctx, http.MethodPatch, "/cards/"+cardID.String(), update, &card)
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *Client) DeleteCard(ctx context.Context, cardID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/cards/"+cardID.String(), nil, nil)
}

// ReorderCards rewrites the positions of a list's cards to the supplied full
// id sequence.
func (c *Client) ReorderCards(ctx context.Context, listID uuid.UUID, ordered []uuid.UUID) error {
	lock := c.scopeLock(listID)
	lock.Lock()
	defer lock.Unlock()

	return c.do(ctx, http.MethodPost, "/lists/"+listID.String()+"/cards/reorder", reorderBody(ordered), nil)
}

func reorderBody(ordered []uuid.UUID) map[string][]string {
	ids := make([]string, len(ordered))
	for i, id := range ordered {
		ids[i] = id.String()
	}
	return map[string][]string{"ordered": ids}
}
