package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	chem "github.com/rmera/molmod"
	"github.com/rmera/molmod/chemjson"
	"github.com/rmera/molmod/groups"
	"github.com/rmera/molmod/internal/config"
	"github.com/rmera/molmod/internal/logging"
	"github.com/rmera/molmod/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const water = "3\nwater-like\nO 0.0 0.0 0.0\nH 0.9 0.0 0.0\nH -0.2 0.9 0.0\n"

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Server.Mode = "test"
	return cfg
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(testConfig(), logging.Nop(), metrics.New())
}

//upload builds a multipart request with the given file and extra form fields.
func upload(t *testing.T, path, file string, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if file != "" {
		fw, err := w.CreateFormFile(FileField, "molecule.xyz")
		require.NoError(t, err)
		_, err = fw.Write([]byte(file))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) chemjson.Error {
	t.Helper()
	var jerr chemjson.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &jerr), rec.Body.String())
	return jerr
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = serve(s, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestListGroups(t *testing.T) {
	s := newTestServer(t)
	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/v1/groups", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var cats []groups.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cats))
	require.Len(t, cats, 6)
	assert.Equal(t, "Alkyl Groups", cats[0].Name)
	assert.Equal(t, "Methyl (-CH3)", cats[0].Groups[0].Name)
	assert.Equal(t, []string{"C", "H", "H", "H"}, cats[0].Groups[0].Symbols)
}

func TestParse(t *testing.T) {
	s := newTestServer(t)
	rec := serve(s, upload(t, "/api/v1/molecules/parse", water, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var jm chemjson.Molecule
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &jm))
	assert.Equal(t, "water-like", jm.Comment)
	assert.Equal(t, "H2O", jm.Formula)
	require.Len(t, jm.Atoms, 3)
	for i, at := range jm.Atoms {
		assert.Equal(t, i+1, at.Label)
	}
	assert.Equal(t, [3]float64{0.9, 0, 0}, jm.Atoms[1].Coords)
}

func TestParseErrors(t *testing.T) {
	s := newTestServer(t)

	rec := serve(s, upload(t, "/api/v1/molecules/parse", "3\nbroken\nO 0 0 0\nH 1 0\nH 0 1 0\n", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	jerr := decodeError(t, rec)
	assert.Equal(t, chemjson.KindFormat, jerr.Kind)
	assert.Equal(t, 4, jerr.Line)

	rec = serve(s, upload(t, "/api/v1/molecules/parse", "", map[string]string{"other": "x"}))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, chemjson.KindRequest, decodeError(t, rec).Kind)
}

func TestModify(t *testing.T) {
	s := newTestServer(t)
	ops := `[{"type":"substitution","atom":2,"group":"Fluoro"},{"type":"deletion","atom":3}]`
	rec := serve(s, upload(t, "/api/v1/molecules/modify", water, map[string]string{OperationsField: ops}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `filename="modified_molecule.xyz"`)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))
	mol, err := chem.XYZRead(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, []string{"O", "F"}, mol.Symbols())
	assert.Equal(t, "water-like", mol.Comment)
}

func TestModifyAddition(t *testing.T) {
	s := newTestServer(t)
	ops := `[{"type":"addition","atom":1,"category":"Alkyl Groups","group":"Methyl (-CH3)"}]`
	rec := serve(s, upload(t, "/api/v1/molecules/modify", water, map[string]string{OperationsField: ops}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	mol, err := chem.XYZRead(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, []string{"O", "H", "H", "C", "H", "H", "H"}, mol.Symbols())
	assert.InDelta(t, 0.0, mol.Coords.At(0, 0), 1e-6)
}

func TestModifyErrors(t *testing.T) {
	s := newTestServer(t)
	cases := []struct {
		name string
		ops  string
		kind string
		atom int
	}{
		{"out of range", `[{"type":"deletion","atom":10}]`, chemjson.KindIndex, 10},
		{"unknown group", `[{"type":"addition","atom":1,"group":"Unobtainium"}]`, chemjson.KindGroup, 0},
		{"bad json", `[{"type":`, chemjson.KindRequest, 0},
		{"bad type", `[{"type":"rotation","atom":1}]`, chemjson.KindRequest, 0},
		{"zero atom", `[{"type":"deletion","atom":0}]`, chemjson.KindRequest, 0},
		{"missing", ``, chemjson.KindRequest, 0},
		{"empty result", `[{"type":"deletion","atom":1},{"type":"deletion","atom":2},{"type":"deletion","atom":3}]`, chemjson.KindRequest, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := serve(s, upload(t, "/api/v1/molecules/modify", water, map[string]string{OperationsField: c.ops}))
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			jerr := decodeError(t, rec)
			assert.Equal(t, c.kind, jerr.Kind)
			assert.Equal(t, c.atom, jerr.Atom)
			assert.NotEmpty(t, jerr.Message)
		})
	}
}

func TestPreview(t *testing.T) {
	s := newTestServer(t)
	rec := serve(s, upload(t, "/api/v1/molecules/preview", water, map[string]string{PlaneField: "xy"}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	rec = serve(s, upload(t, "/api/v1/molecules/preview", water, map[string]string{PlaneField: "diagonal"}))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))
	serve(s, upload(t, "/api/v1/molecules/parse", "zero\n", nil))
	rec := serve(s, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "molmod_http_requests_total")
	assert.Contains(t, body, `route="/health"`)
	assert.Contains(t, body, "molmod_parse_failures_total 1")

	cfg := testConfig()
	cfg.Metrics.Enabled = false
	s = New(cfg, logging.Nop(), metrics.New())
	rec = serve(s, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBodyLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Server.MaxUploadBytes = 64
	s := New(cfg, logging.Nop(), nil)
	rec := serve(s, upload(t, "/api/v1/molecules/parse", water+strings.Repeat("\n", 256), nil))
	assert.GreaterOrEqual(t, rec.Code, http.StatusBadRequest)
	assert.Less(t, rec.Code, http.StatusInternalServerError)
}

func TestServeShutdown(t *testing.T) {
	cfg := testConfig()
	cfg.Server.ShutdownTimeout = time.Second
	s := New(cfg, logging.Nop(), nil)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
