// Package sharepoint downloads the published dashboard documents from a
// SharePoint drive through the Microsoft Graph API.
//
// The client performs the client-credentials flow, memoizes the resolved
// site and drive identifiers, and keeps the access token for slightly less
// than its lifetime. There is deliberately no retry or backoff here: a
// failed download surfaces immediately and the caller decides what to do
// with its stale snapshot.
package sharepoint

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Token lifetime handling: Graph tokens last an hour, cache for fifty
// minutes to stay clear of the edge.
const tokenCacheDuration = 50 * time.Minute

const (
	defaultAuthBase  = "https://login.microsoftonline.com"
	defaultGraphBase = "https://graph.microsoft.com/v1.0"
	graphScope       = "https://graph.microsoft.com/.default"
)

// Settings carries the connection coordinates for one drive folder.
type Settings struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	Host         string // e.g. "example.sharepoint.com"
	SitePath     string // e.g. "/sites/Studio"
	FolderPath   string // e.g. "/Dashboard"
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithAuthBase overrides the token endpoint base URL.
func WithAuthBase(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.authBase = strings.TrimSuffix(base, "/")
		}
	}
}

// WithGraphBase overrides the Graph API base URL.
func WithGraphBase(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.graphBase = strings.TrimSuffix(base, "/")
		}
	}
}

// WithClock sets the time source used for token expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// Client fetches files from one SharePoint drive folder.
type Client struct {
	settings  Settings
	authBase  string
	graphBase string

	httpClient *http.Client
	now        func() time.Time

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
	siteID      string
	driveID     string
}

// New constructs a Client for the given drive coordinates.
func New(settings Settings, opts ...Option) *Client {
	c := &Client{
		settings:   settings,
		authBase:   defaultAuthBase,
		graphBase:  defaultGraphBase,
		httpClient: http.DefaultClient,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch downloads one file from the configured folder.
func (c *Client) Fetch(ctx context.Context, name string) ([]byte, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	siteID, driveID, err := c.driveCoordinates(ctx, token)
	if err != nil {
		return nil, err
	}

	path := c.settings.FolderPath + "/" + name
	u := fmt.Sprintf("%s/sites/%s/drives/%s/root:%s:/content",
		c.graphBase, siteID, driveID, escapeDrivePath(path))

	body, err := c.get(ctx, u, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDownload, name, err)
	}
	return body, nil
}

// accessToken returns a cached token or runs the client-credentials flow.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.token != "" && c.now().Before(c.tokenExpiry) {
		token := c.token
		c.mu.Unlock()
		return token, nil
	}
	c.mu.Unlock()

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.settings.ClientID},
		"client_secret": {c.settings.ClientSecret},
		"scope":         {graphScope},
	}
	u := fmt.Sprintf("%s/%s/oauth2/v2.0/token", c.authBase, c.settings.TenantID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrToken, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrToken, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrToken, resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: %w", ErrToken, err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrToken)
	}

	c.mu.Lock()
	c.token = payload.AccessToken
	c.tokenExpiry = c.now().Add(tokenCacheDuration)
	c.mu.Unlock()
	return payload.AccessToken, nil
}

// driveCoordinates resolves and memoizes the site and drive identifiers.
func (c *Client) driveCoordinates(ctx context.Context, token string) (siteID, driveID string, err error) {
	c.mu.Lock()
	if c.siteID != "" && c.driveID != "" {
		siteID, driveID = c.siteID, c.driveID
		c.mu.Unlock()
		return siteID, driveID, nil
	}
	c.mu.Unlock()

	siteURL := fmt.Sprintf("%s/sites/%s:%s", c.graphBase, c.settings.Host, c.settings.SitePath)
	body, err := c.get(ctx, siteURL, token)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrSite, err)
	}
	var site struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &site); err != nil || site.ID == "" {
		return "", "", fmt.Errorf("%w: malformed site response", ErrSite)
	}

	driveURL := fmt.Sprintf("%s/sites/%s/drive", c.graphBase, site.ID)
	body, err = c.get(ctx, driveURL, token)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrDrive, err)
	}
	var drive struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &drive); err != nil || drive.ID == "" {
		return "", "", fmt.Errorf("%w: malformed drive response", ErrDrive)
	}

	c.mu.Lock()
	c.siteID, c.driveID = site.ID, drive.ID
	c.mu.Unlock()
	return site.ID, drive.ID, nil
}

func (c *Client) get(ctx context.Context, u, token string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// escapeDrivePath escapes each path segment while keeping separators.
func escapeDrivePath(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
