package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"filegrip/internal/domain"
	"filegrip/internal/server/storage"
)

func newTestServer(t *testing.T, records ...domain.FileRecord) (*httptest.Server, *storage.Store) {
	t.Helper()

	store, err := storage.New(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	if len(records) > 0 {
		require.NoError(t, store.InsertBatch(context.Background(), records))
	}

	srv := NewServer(store, zap.NewNop(), "https://t.me/testbot?start=file_")
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts, store
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

type page struct {
	Page    int                 `json:"page"`
	PerPage int                 `json:"per_page"`
	Items   []domain.FileRecord `json:"items"`
}

func TestSearchEndpoint(t *testing.T) {
	ts, _ := newTestServer(t,
		domain.FileRecord{FileName: "annual-report.pdf", Year: 2023},
		domain.FileRecord{FileName: "talk.mp4", Year: 2023},
		domain.FileRecord{FileName: "notes.pdf", Year: 2021},
	)

	var body page
	status := getJSON(t, ts.URL+"/api/search?q=report", &body)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body.Items, 1)
	require.Equal(t, "annual-report.pdf", body.Items[0].FileName)
	require.Equal(t, 1, body.Page)
	require.Equal(t, 20, body.PerPage)
}

func TestSearchEndpointFilters(t *testing.T) {
	ts, _ := newTestServer(t,
		domain.FileRecord{FileName: "a.pdf", Year: 2022},
		domain.FileRecord{FileName: "b.pdf", Year: 2023},
		domain.FileRecord{FileName: "c.mp4", Year: 2023},
	)

	var body page
	status := getJSON(t, ts.URL+"/api/search?year=2023&type=pdf", &body)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body.Items, 1)
	require.Equal(t, "b.pdf", body.Items[0].FileName)
}

func TestSearchEndpointEmptyResultIsArray(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/search?q=nothing")
	require.NoError(t, err)
	defer resp.Body.Close()

	var raw map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	require.JSONEq(t, "[]", string(raw["items"]), "items must be [] rather than null")
}

func TestSearchEndpointBadYear(t *testing.T) {
	ts, _ := newTestServer(t)

	var body map[string]string
	status := getJSON(t, ts.URL+"/api/search?year=abc", &body)
	require.Equal(t, http.StatusBadRequest, status)
	require.NotEmpty(t, body["error"])
}

func TestSearchEndpointBadSort(t *testing.T) {
	ts, _ := newTestServer(t)

	var body map[string]string
	status := getJSON(t, ts.URL+"/api/search?sort=sideways", &body)
	require.Equal(t, http.StatusBadRequest, status)
}

func TestLatestEndpoint(t *testing.T) {
	ts, _ := newTestServer(t,
		domain.FileRecord{FileName: "older.pdf"},
		domain.FileRecord{FileName: "newer.pdf"},
	)

	var body page
	status := getJSON(t, ts.URL+"/api/latest", &body)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body.Items, 2)
	require.Equal(t, "newer.pdf", body.Items[0].FileName, "latest serves newest first")
}

func TestSendLinkEndpoint(t *testing.T) {
	ts, store := newTestServer(t)
	rec, err := store.Insert(context.Background(), domain.FileRecord{FileName: "report.pdf"})
	require.NoError(t, err)

	var body map[string]string
	status := getJSON(t, ts.URL+"/api/send_link/"+rec.ID, &body)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "https://t.me/testbot?start=file_"+rec.ID, body["link"])
}

func TestSendLinkNotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	var body map[string]string
	status := getJSON(t, ts.URL+"/api/send_link/does-not-exist", &body)
	require.Equal(t, http.StatusNotFound, status)
}

func TestHealthEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	var body map[string]string
	status := getJSON(t, ts.URL+"/health", &body)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "ok", body["status"])
}

func TestCORSHeaders(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/latest")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
