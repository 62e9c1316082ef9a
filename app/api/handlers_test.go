package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madisonhq/press-dossier/app/database"
	"github.com/madisonhq/press-dossier/app/dossier"
	"github.com/madisonhq/press-dossier/app/importer"
	"github.com/madisonhq/press-dossier/app/source"
)

type fakeDossiers struct {
	dossier *dossier.Dossier
	err     error
	gotName string
	refresh bool
}

func (f *fakeDossiers) GetDossier(ctx context.Context, reporterName string, forceRefresh bool) (*dossier.Dossier, error) {
	f.gotName = reporterName
	f.refresh = forceRefresh
	return f.dossier, f.err
}

type fakeTopics struct {
	matches []source.TopicMatch
	err     error
}

func (f *fakeTopics) TopicReporters(ctx context.Context, topic string, limit int) ([]source.TopicMatch, error) {
	return f.matches, f.err
}

type fakeImports struct {
	analyzeResult *importer.AnalyzeResult
	analyzeErr    error
	confirmResult *importer.Result
	confirmErr    error
}

func (f *fakeImports) Analyze(ctx context.Context, filename string, contents []byte) (*importer.AnalyzeResult, error) {
	return f.analyzeResult, f.analyzeErr
}

func (f *fakeImports) Confirm(ctx context.Context, sessionID string, mapping map[string]string, skipDuplicates bool) (*importer.Result, error) {
	return f.confirmResult, f.confirmErr
}

type fakeReporters struct{ count int }

func (f *fakeReporters) GetByName(name string) (*database.Reporter, error) { return nil, nil }
func (f *fakeReporters) Save(rep database.Reporter) error                  { return nil }
func (f *fakeReporters) Count() (int, error)                               { return f.count, nil }

type fakeCache struct{ count int }

func (f *fakeCache) Count() (int, error) { return f.count, nil }

func newTestServer(dossiers DossierService, topics TopicSearcher, imports ImportService) http.Handler {
	handler := NewHandler(dossiers, topics, imports,
		&fakeReporters{count: 3}, &fakeCache{count: 2},
		importer.NewSessionStore(time.Minute), 2<<20)
	return NewServer(handler, "")
}

func doRequest(t *testing.T, server http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func TestGetReporterDossier(t *testing.T) {
	beats := make([]dossier.BeatEntry, 12)
	for i := range beats {
		beats[i] = dossier.BeatEntry{Beat: fmt.Sprintf("Beat %02d", i), Count: 12 - i}
	}
	fake := &fakeDossiers{dossier: &dossier.Dossier{
		ReporterName: "Jane Doe",
		BeatHistory:  beats,
	}}
	server := newTestServer(fake, &fakeTopics{}, &fakeImports{})

	w := doRequest(t, server, httptest.NewRequest("GET", "/api/reporters/Jane%20Doe?refresh=true", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Jane Doe", fake.gotName)
	assert.True(t, fake.refresh)

	var resp dossier.Dossier
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// Beat list is truncated for display.
	assert.Len(t, resp.BeatHistory, 8)
	assert.Equal(t, "Beat 00", resp.BeatHistory[0].Beat)
}

func TestGetReporterDossierErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{dossier.ErrInvalidName, http.StatusBadRequest},
		{fmt.Errorf("fetch: %w", dossier.ErrSourceUnavailable), http.StatusServiceUnavailable},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		server := newTestServer(&fakeDossiers{err: tt.err}, &fakeTopics{}, &fakeImports{})
		w := doRequest(t, server, httptest.NewRequest("GET", "/api/reporters/Jane", nil))
		assert.Equal(t, tt.code, w.Code, "error: %v", tt.err)
	}
}

func TestGetTopicReporters(t *testing.T) {
	topics := &fakeTopics{matches: []source.TopicMatch{{Name: "Jane Doe", ArticleCount: 5}}}
	server := newTestServer(&fakeDossiers{}, topics, &fakeImports{})

	w := doRequest(t, server, httptest.NewRequest("GET", "/api/topics/legal/reporters", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Jane Doe")

	w = doRequest(t, server, httptest.NewRequest("GET", "/api/topics/legal/reporters?limit=500", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func multipartUpload(t *testing.T, filename, contents string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(contents))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestAnalyzeImport(t *testing.T) {
	imports := &fakeImports{analyzeResult: &importer.AnalyzeResult{SessionID: "s-1", TotalRows: 2}}
	server := newTestServer(&fakeDossiers{}, &fakeTopics{}, imports)

	body, contentType := multipartUpload(t, "contacts.csv", "Name\nJane\n")
	req := httptest.NewRequest("POST", "/api/import/analyze", body)
	req.Header.Set("Content-Type", contentType)

	w := doRequest(t, server, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "s-1")
}

func TestAnalyzeImportRejectsNonCSV(t *testing.T) {
	server := newTestServer(&fakeDossiers{}, &fakeTopics{}, &fakeImports{})

	body, contentType := multipartUpload(t, "contacts.xlsx", "data")
	req := httptest.NewRequest("POST", "/api/import/analyze", body)
	req.Header.Set("Content-Type", contentType)

	w := doRequest(t, server, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeImportMalformed(t *testing.T) {
	imports := &fakeImports{analyzeErr: fmt.Errorf("%w: no data rows", importer.ErrMalformedInput)}
	server := newTestServer(&fakeDossiers{}, &fakeTopics{}, imports)

	body, contentType := multipartUpload(t, "contacts.csv", "Name\n")
	req := httptest.NewRequest("POST", "/api/import/analyze", body)
	req.Header.Set("Content-Type", contentType)

	w := doRequest(t, server, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfirmImport(t *testing.T) {
	imports := &fakeImports{confirmResult: &importer.Result{TotalRows: 2, Imported: 2}}
	server := newTestServer(&fakeDossiers{}, &fakeTopics{}, imports)

	payload := `{"session_id": "s-1", "column_mapping": {"name": "Name"}, "skip_duplicates": true}`
	req := httptest.NewRequest("POST", "/api/import/confirm", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := doRequest(t, server, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"imported":2`)
}

func TestConfirmImportErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: s-1", importer.ErrSessionNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: name required", importer.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		server := newTestServer(&fakeDossiers{}, &fakeTopics{}, &fakeImports{confirmErr: tt.err})
		payload := `{"session_id": "s-1", "column_mapping": {"name": "Name"}}`
		req := httptest.NewRequest("POST", "/api/import/confirm", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")

		w := doRequest(t, server, req)
		assert.Equal(t, tt.code, w.Code, "error: %v", tt.err)
	}
}

func TestConfirmImportRejectsBadPayload(t *testing.T) {
	server := newTestServer(&fakeDossiers{}, &fakeTopics{}, &fakeImports{})

	req := httptest.NewRequest("POST", "/api/import/confirm", strings.NewReader(`{"column_mapping": {}}`))
	req.Header.Set("Content-Type", "application/json")

	w := doRequest(t, server, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(&fakeDossiers{}, &fakeTopics{}, &fakeImports{})

	w := doRequest(t, server, httptest.NewRequest("GET", "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var health map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.EqualValues(t, 3, health["reporters"])
	assert.EqualValues(t, 2, health["cached_dossiers"])
}

func TestAuthMiddleware(t *testing.T) {
	handler := NewHandler(&fakeDossiers{dossier: &dossier.Dossier{}}, &fakeTopics{}, &fakeImports{},
		&fakeReporters{}, &fakeCache{}, importer.NewSessionStore(time.Minute), 2<<20)
	server := NewServer(handler, "secret")

	w := doRequest(t, server, httptest.NewRequest("GET", "/api/reporters/Jane", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest("GET", "/api/reporters/Jane", nil)
	req.Header.Set("X-API-Key", "wrong")
	w = doRequest(t, server, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest("GET", "/api/reporters/Jane", nil)
	req.Header.Set("X-API-Key", "secret")
	w = doRequest(t, server, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest("GET", "/api/reporters/Jane", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w = doRequest(t, server, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Health stays public.
	w = doRequest(t, server, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
