package graph

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewClient(Config{
		TenantID:     "tenant-1",
		ClientID:     "client-1",
		ClientSecret: "secret",
		SiteHost:     "contoso.sharepoint.com",
		SitePath:     "sites/TeamHQ",
		FolderName:   "Eval Benchmark",
		BaseURL:      ts.URL,
		TokenURL:     ts.URL + "/token",
	})
}

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestAcquireToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/token", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		assert.Contains(t, r.Form.Get("scope"), "graph.microsoft.com/.default")
		writeJSON(t, w, map[string]interface{}{
			"access_token": "tok-123",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})

	token, err := c.AcquireToken(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
}

func TestAcquireTokenRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.AcquireToken(context.Background())

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestResolveSite(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/sites/contoso.sharepoint.com:/sites/TeamHQ", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(t, w, map[string]string{"id": "site-1"})
	})

	siteID, err := c.ResolveSite(context.Background(), "tok")

	require.NoError(t, err)
	assert.Equal(t, "site-1", siteID)
}

func TestResolveSiteUnauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := c.ResolveSite(context.Background(), "tok")

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestResolveDocumentDrive(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/sites/site-1/drives", r.URL.Path)
		writeJSON(t, w, map[string]interface{}{"value": []Drive{
			{ID: "d-wiki", Name: "Teams Wiki Data"},
			{ID: "d-docs", Name: "Documents"},
		}})
	})

	driveID, err := c.ResolveDocumentDrive(context.Background(), "tok", "site-1")

	require.NoError(t, err)
	assert.Equal(t, "d-docs", driveID)
}

func TestResolveDocumentDriveNoMatch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]interface{}{"value": []Drive{
			{ID: "d-wiki", Name: "Teams Wiki Data"},
		}})
	})

	_, err := c.ResolveDocumentDrive(context.Background(), "tok", "site-1")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListFolderChildren(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/drives/d1/root:/Eval Benchmark:/children", r.URL.Path)
		writeJSON(t, w, map[string]interface{}{"value": []DriveItem{
			{ID: "i1", Name: "report.pdf"},
			{ID: "i2", Name: "data.csv"},
		}})
	})

	items, err := c.ListFolderChildren(context.Background(), "tok", "d1")

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "report.pdf", items[0].Name)
}

func TestListFolderChildrenRootFallback(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/drives/d1/root:/Eval Benchmark:/children":
			w.WriteHeader(http.StatusNotFound)
		case "/drives/d1/root/children":
			writeJSON(t, w, map[string]interface{}{"value": []json.RawMessage{
				json.RawMessage(`{"id":"f1","name":"Eval Benchmark","folder":{}}`),
				json.RawMessage(`{"id":"x1","name":"stray.txt"}`),
			}})
		case "/drives/d1/items/f1/children":
			writeJSON(t, w, map[string]interface{}{"value": []DriveItem{
				{ID: "i1", Name: "report.pdf"},
			}})
		default:
			t.Errorf("unexpected request %s", r.URL.Path)
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	items, err := c.ListFolderChildren(context.Background(), "tok", "d1")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "report.pdf", items[0].Name)
}

func TestListFolderChildrenFallbackFolderMissing(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/drives/d1/root/children":
			writeJSON(t, w, map[string]interface{}{"value": []DriveItem{}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	_, err := c.ListFolderChildren(context.Background(), "tok", "d1")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetFileItemByListingScan(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/drives/d1/root:/Eval Benchmark/report.pdf":
			w.WriteHeader(http.StatusNotFound)
		case "/drives/d1/root:/Eval Benchmark:/children":
			writeJSON(t, w, map[string]interface{}{"value": []DriveItem{
				{ID: "i1", Name: "other.pdf"},
				{ID: "i2", Name: "report.pdf"},
			}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	item, err := c.GetFileItem(context.Background(), "tok", "d1", "report.pdf")

	require.NoError(t, err)
	assert.Equal(t, "i2", item.ID)
}

func TestUploadReplacesExistingFile(t *testing.T) {
	var replaced []byte
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sites/site-1/drives":
			writeJSON(t, w, map[string]interface{}{"value": []Drive{{ID: "d1", Name: "Documents"}}})
		case "/drives/d1/root:/Eval Benchmark/report.pdf":
			writeJSON(t, w, DriveItem{ID: "file-9", Name: "report.pdf"})
		case "/drives/d1/items/file-9/content":
			require.Equal(t, http.MethodPut, r.Method)
			replaced, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	err := c.Upload(context.Background(), "tok", "site-1", "report.pdf", []byte("v2"))

	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), replaced)
}

func TestUploadNewFile(t *testing.T) {
	var uploaded []byte
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/sites/site-1/drives":
			writeJSON(t, w, map[string]interface{}{"value": []Drive{{ID: "d1", Name: "Documents"}}})
		case r.URL.Path == "/drives/d1/root:/Eval Benchmark/report.pdf":
			w.WriteHeader(http.StatusNotFound)
		case r.URL.Path == "/drives/d1/root:/Eval Benchmark:/children":
			writeJSON(t, w, map[string]interface{}{"value": []DriveItem{}})
		case r.URL.Path == "/drives/d1/root:/Eval Benchmark/report.pdf:/content" && r.Method == http.MethodPut:
			uploaded, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusCreated)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	err := c.Upload(context.Background(), "tok", "site-1", "report.pdf", []byte("fresh"))

	require.NoError(t, err)
	assert.Equal(t, []byte("fresh"), uploaded)
}

func TestUploadCreatesMissingFolder(t *testing.T) {
	var uploaded []byte
	var createBody map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/sites/site-1/drives":
			writeJSON(t, w, map[string]interface{}{"value": []Drive{{ID: "d1", Name: "Documents"}}})
		case r.URL.Path == "/drives/d1/root/children" && r.Method == http.MethodGet:
			writeJSON(t, w, map[string]interface{}{"value": []DriveItem{}})
		case r.URL.Path == "/drives/d1/root/children" && r.Method == http.MethodPost:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&createBody))
			writeJSON(t, w, DriveItem{ID: "new-folder", Name: "Eval Benchmark"})
		case r.URL.Path == "/drives/d1/items/new-folder:/report.pdf:/content" && r.Method == http.MethodPut:
			uploaded, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusCreated)
		default:
			// Every folder-path route is missing until the folder exists.
			w.WriteHeader(http.StatusNotFound)
		}
	})

	err := c.Upload(context.Background(), "tok", "site-1", "report.pdf", []byte("data"))

	require.NoError(t, err)
	assert.Equal(t, []byte("data"), uploaded)
	assert.Equal(t, "Eval Benchmark", createBody["name"])
	assert.Equal(t, "rename", createBody["@microsoft.graph.conflictBehavior"])
}
