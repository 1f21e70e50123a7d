// Package graph is the Microsoft Graph client for the benchmark document
// library: client-credentials token exchange, site/drive resolution, folder
// listing with a root-listing fallback, and file upload/replace.
package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/oauth2/microsoft"
)

const defaultBaseURL = "https://graph.microsoft.com/v1.0"

var (
	ErrUnauthorized = errors.New("graph: authentication failed")
	ErrNotFound     = errors.New("graph: item not found")
)

type Config struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	// SiteHost and SitePath identify the site, e.g.
	// "contoso.sharepoint.com" and "sites/TeamHQ".
	SiteHost string
	SitePath string
	// FolderName is the library folder holding the benchmark documents.
	FolderName string

	// BaseURL and TokenURL are overridable for tests.
	BaseURL  string
	TokenURL string
}

type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = microsoft.AzureADEndpoint(cfg.TenantID).TokenURL
	}
	return &Client{
		cfg:        cfg,
		httpClient: http.DefaultClient,
	}
}

// Drive is one document library of the site.
type Drive struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DriveItem is a file or folder in a library.
type DriveItem struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Folder               json.RawMessage `json:"folder,omitempty"`
	LastModifiedDateTime string          `json:"lastModifiedDateTime"`
	CreatedBy            struct {
		User struct {
			DisplayName string `json:"displayName"`
		} `json:"user"`
	} `json:"createdBy"`
}

// IsFolder reports whether the item carries the Graph folder facet.
func (i DriveItem) IsFolder() bool {
	return len(i.Folder) > 0
}

// AcquireToken performs the client-credentials exchange and returns the
// bearer token for subsequent calls.
func (c *Client) AcquireToken(ctx context.Context) (string, error) {
	cc := clientcredentials.Config{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		TokenURL:     c.cfg.TokenURL,
		Scopes:       []string{"https://graph.microsoft.com/.default"},
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := cc.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return token.AccessToken, nil
}

// ResolveSite returns the Graph site id for the configured host and path.
func (c *Client) ResolveSite(ctx context.Context, token string) (string, error) {
	u := fmt.Sprintf("%s/sites/%s:/%s", c.cfg.BaseURL, c.cfg.SiteHost, c.cfg.SitePath)
	var site struct {
		ID string `json:"id"`
	}
	if err := c.getJSON(ctx, token, u, &site); err != nil {
		return "", err
	}
	if site.ID == "" {
		return "", ErrNotFound
	}
	return site.ID, nil
}

// ListDrives returns the document libraries of a site.
func (c *Client) ListDrives(ctx context.Context, token, siteID string) ([]Drive, error) {
	u := fmt.Sprintf("%s/sites/%s/drives", c.cfg.BaseURL, siteID)
	var result struct {
		Value []Drive `json:"value"`
	}
	if err := c.getJSON(ctx, token, u, &result); err != nil {
		return nil, err
	}
	return result.Value, nil
}

// ResolveDocumentDrive picks the library whose name contains "document",
// matching how the benchmark library has always been located.
func (c *Client) ResolveDocumentDrive(ctx context.Context, token, siteID string) (string, error) {
	drives, err := c.ListDrives(ctx, token, siteID)
	if err != nil {
		return "", err
	}
	for _, d := range drives {
		if strings.Contains(strings.ToLower(d.Name), "document") {
			return d.ID, nil
		}
	}
	return "", ErrNotFound
}

// ListFolderChildren lists the files of the benchmark folder. When the
// folder-scoped path fails it retries against the root listing and locates
// the folder by name.
func (c *Client) ListFolderChildren(ctx context.Context, token, driveID string) ([]DriveItem, error) {
	u := fmt.Sprintf("%s/drives/%s/root:/%s:/children", c.cfg.BaseURL, driveID, url.PathEscape(c.cfg.FolderName))
	var result struct {
		Value []DriveItem `json:"value"`
	}
	if err := c.getJSON(ctx, token, u, &result); err == nil {
		return result.Value, nil
	}

	folder, err := c.findRootFolder(ctx, token, driveID)
	if err != nil {
		return nil, err
	}
	u = fmt.Sprintf("%s/drives/%s/items/%s/children", c.cfg.BaseURL, driveID, folder.ID)
	result.Value = nil
	if err := c.getJSON(ctx, token, u, &result); err != nil {
		return nil, err
	}
	return result.Value, nil
}

// GetFileItem fetches one file's metadata by name, falling back to a folder
// listing scan when the direct path lookup fails.
func (c *Client) GetFileItem(ctx context.Context, token, driveID, name string) (*DriveItem, error) {
	u := fmt.Sprintf("%s/drives/%s/root:/%s/%s", c.cfg.BaseURL, driveID,
		url.PathEscape(c.cfg.FolderName), url.PathEscape(name))
	var item DriveItem
	if err := c.getJSON(ctx, token, u, &item); err == nil && item.ID != "" {
		return &item, nil
	}

	items, err := c.ListFolderChildren(ctx, token, driveID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Name == name {
			return &items[i], nil
		}
	}
	return nil, ErrNotFound
}

// Upload stores content under name in the benchmark folder, replacing the
// existing file when one is already there. When the path-addressed upload
// fails it falls back to locating (or creating) the folder via the root
// listing.
func (c *Client) Upload(ctx context.Context, token, siteID, name string, content []byte) error {
	driveID, err := c.ResolveDocumentDrive(ctx, token, siteID)
	if err != nil {
		return err
	}

	if existing, err := c.GetFileItem(ctx, token, driveID, name); err == nil && existing.ID != "" {
		u := fmt.Sprintf("%s/drives/%s/items/%s/content", c.cfg.BaseURL, driveID, existing.ID)
		return c.putContent(ctx, token, u, content)
	}

	u := fmt.Sprintf("%s/drives/%s/root:/%s/%s:/content", c.cfg.BaseURL, driveID,
		url.PathEscape(c.cfg.FolderName), url.PathEscape(name))
	if err := c.putContent(ctx, token, u, content); err == nil {
		return nil
	}

	folder, err := c.findRootFolder(ctx, token, driveID)
	if errors.Is(err, ErrNotFound) {
		folder, err = c.createRootFolder(ctx, token, driveID)
	}
	if err != nil {
		return err
	}
	u = fmt.Sprintf("%s/drives/%s/items/%s:/%s:/content", c.cfg.BaseURL, driveID,
		folder.ID, url.PathEscape(name))
	return c.putContent(ctx, token, u, content)
}

func (c *Client) findRootFolder(ctx context.Context, token, driveID string) (*DriveItem, error) {
	u := fmt.Sprintf("%s/drives/%s/root/children", c.cfg.BaseURL, driveID)
	var result struct {
		Value []DriveItem `json:"value"`
	}
	if err := c.getJSON(ctx, token, u, &result); err != nil {
		return nil, err
	}
	for i := range result.Value {
		if result.Value[i].Name == c.cfg.FolderName && result.Value[i].IsFolder() {
			return &result.Value[i], nil
		}
	}
	return nil, ErrNotFound
}

func (c *Client) createRootFolder(ctx context.Context, token, driveID string) (*DriveItem, error) {
	u := fmt.Sprintf("%s/drives/%s/root/children", c.cfg.BaseURL, driveID)
	body, _ := json.Marshal(map[string]interface{}{
		"name":                              c.cfg.FolderName,
		"folder":                            map[string]interface{}{},
		"@microsoft.graph.conflictBehavior": "rename",
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph: %w", err)
	}
	defer resp.Body.Close()
	if err := statusError(resp.StatusCode); err != nil {
		return nil, err
	}

	var folder DriveItem
	if err := json.NewDecoder(resp.Body).Decode(&folder); err != nil {
		return nil, fmt.Errorf("graph: decode create folder response: %w", err)
	}
	return &folder, nil
}

func (c *Client) getJSON(ctx context.Context, token, u string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("graph: %w", err)
	}
	defer resp.Body.Close()
	if err := statusError(resp.StatusCode); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("graph: decode response: %w", err)
	}
	return nil
}

func (c *Client) putContent(ctx context.Context, token, u string, content []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader(content))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("graph: %w", err)
	}
	defer resp.Body.Close()
	return statusError(resp.StatusCode)
}

func statusError(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ErrUnauthorized
	case code == http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("graph: unexpected status %d", code)
	}
}
