// Package api implements the HTTP client for the ItemKeeper REST API.
// It keeps the bearer token obtained at login and attaches it to every
// authenticated request.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/client/config"
)

// User mirrors the user object returned by the API.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Item mirrors the item object returned by the API.
type Item struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:    cfg.ServerEndpointAddr,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
	}
}

// IsLoggedIn reports whether the client holds a session token.
func (c *Client) IsLoggedIn() bool {
	return c.token != ""
}

// Logout drops the stored session token.
func (c *Client) Logout() {
	c.token = ""
}

// doJSON performs a request with an optional JSON body and decodes the JSON
// response into out (if out is non-nil). Non-2xx responses are returned as
// *APIError carrying the server's message.
func (c *Client) doJSON(ctx context.Context, method, path string, reqBody any, out any) error {
	var body io.Reader
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Message == "" {
			e.Message = resp.Status
		}
		return &APIError{StatusCode: resp.StatusCode, Message: e.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return err
		}
	}
	return nil
}

type authResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// Register creates an account and stores the returned session token.
func (c *Client) Register(ctx context.Context, name, email, password string) (*User, error) {
	var resp authResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp.User, nil
}

// Login authenticates and stores the returned session token.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var resp authResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp.User, nil
}

// Me returns the profile of the currently authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListItems returns all items owned by the authenticated user.
func (c *Client) ListItems(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := c.doJSON(ctx, http.MethodGet, "/api/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateItem creates a new item.
func (c *Client) CreateItem(ctx context.Context, title, description string) (*Item, error) {
	var item Item
	err := c.doJSON(ctx, http.MethodPost, "/api/items", map[string]string{
		"title":       title,
		"description": description,
	}, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItem fetches a single item by id.
func (c *Client) GetItem(ctx context.Context, id string) (*Item, error) {
	var item Item
	if err := c.doJSON(ctx, http.MethodGet, "/api/items/"+id, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem replaces an item's title and description.
func (c *Client) UpdateItem(ctx context.Context, id, title, description string) (*Item, error) {
	var item Item
	err := c.doJSON(ctx, http.MethodPut, "/api/items/"+id, map[string]string{
		"title":       title,
		"description": description,
	}, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes an item.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/items/"+id, nil, nil)
}

// GetPresignedPutURL asks the server for a one-time upload URL for the
// item's attachment. It returns the storage key and the URL.
func (c *Client) GetPresignedPutURL(ctx context.Context, itemID string) (string, string, error) {
	var resp struct {
		Key string `json:"key"`
		URL string `json:"url"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/items/"+itemID+"/attachment", nil, &resp); err != nil {
		return "", "", err
	}
	return resp.Key, resp.URL, nil
}

// GetPresignedGetURL asks the server for a one-time download URL for the
// item's attachment.
func (c *Client) GetPresignedGetURL(ctx context.Context, itemID string) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/items/"+itemID+"/attachment", nil, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// UploadFile PUTs the file at path to a presigned URL.
func (c *Client) UploadFile(ctx context.Context, url, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, f)
	if err != nil {
		return err
	}
	req.ContentLength = fi.Size()
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("upload failed: %s: %s", resp.Status, string(b))
	}
	return nil
}
