package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fanchart/pkg/cache"
	"github.com/matzehuels/fanchart/pkg/chart"
	"github.com/matzehuels/fanchart/pkg/errors"
	"github.com/matzehuels/fanchart/pkg/pipeline"
)

const family = `0 HEAD
1 CHAR UTF-8
0 @I1@ INDI
1 NAME Jean /Martin/
1 SEX M
1 BIRT
2 DATE 14 JUL 1900
0 @I2@ INDI
1 NAME Pierre /Martin/
1 SEX M
1 BIRT
2 DATE 1870
0 @I3@ INDI
1 NAME Marie /Durand/
1 SEX F
0 @F1@ FAM
1 HUSB @I2@
1 WIFE @I3@
1 CHIL @I1@
1 MARR
2 DATE 1898
0 TRLR
`

func newTestServer(t *testing.T, maxUpload int64) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := pipeline.NewRunner(fc, nil, logger)
	srv := New(runner, pipeline.Options{ShowMissing: true}, maxUpload, logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "text/plain", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorResponse {
	t.Helper()
	var e errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return e
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, 0)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("response should carry a request id")
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestRequestIDIsPropagated(t *testing.T) {
	ts := newTestServer(t, 0)
	const id = "6f1c1d7e-51e4-4f6a-9d0b-3b8a2f9e0c11"
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Errorf("request id = %q, want %q", got, id)
	}
}

func TestChart(t *testing.T) {
	ts := newTestServer(t, 0)
	url := ts.URL + "/v1/charts?root=@I1@&generations=3&show_marriages&time_weights=true&reference_year=2024"

	resp := post(t, url, family)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %+v", resp.StatusCode, decodeError(t, resp))
	}
	if got := resp.Header.Get("X-Cache"); got != "MISS" {
		t.Errorf("X-Cache = %q, want MISS", got)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	c, err := chart.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	// Root, two parents, four placeholder grandparents.
	if len(c.Sectors) != 7 {
		t.Errorf("len(Sectors) = %d, want 7", len(c.Sectors))
	}
	if c.Policy != "time" {
		t.Errorf("Policy = %q, want time", c.Policy)
	}

	again := post(t, url, family)
	if got := again.Header.Get("X-Cache"); got != "HIT" {
		t.Errorf("second X-Cache = %q, want HIT", got)
	}
}

func TestChartErrors(t *testing.T) {
	ts := newTestServer(t, 512)
	tests := []struct {
		name   string
		query  string
		body   string
		status int
		code   errors.Code
	}{
		{"missing root", "", family, http.StatusBadRequest, errors.ErrCodeInvalidXref},
		{"bad generations", "root=@I1@&generations=x", family, http.StatusBadRequest, errors.ErrCodeInvalidConfig},
		{"bad bool", "root=@I1@&time_weights=maybe", family, http.StatusBadRequest, errors.ErrCodeInvalidConfig},
		{"bad weights", "root=@I1@&weights=1,a,1,1", family, http.StatusBadRequest, errors.ErrCodeInvalidConfig},
		{"empty body", "root=@I1@", "", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"too large", "root=@I1@", strings.Repeat("0 NOTE x\n", 100), http.StatusRequestEntityTooLarge, errors.ErrCodeTooLarge},
		{"malformed", "root=@I1@", "0 HEAD\nnonsense\n", http.StatusBadRequest, errors.ErrCodeInvalidGEDCOM},
		{"root not found", "root=@I9@", family, http.StatusNotFound, errors.ErrCodeRootNotFound},
		{"no individuals", "root=@I1@", "0 HEAD\n0 TRLR\n", http.StatusUnprocessableEntity, errors.ErrCodeNoIndividuals},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/v1/charts?"+tt.query, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			e := decodeError(t, resp)
			if e.Code != tt.code {
				t.Errorf("code = %q, want %q (%s)", e.Code, tt.code, e.Error)
			}
			if e.RequestID == "" {
				t.Error("error should carry the request id")
			}
		})
	}
}

func TestIndividuals(t *testing.T) {
	ts := newTestServer(t, 0)
	resp := post(t, ts.URL+"/v1/individuals", family)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body struct {
		Count       int `json:"count"`
		Individuals []struct {
			ID         string `json:"id"`
			FamilyName string `json:"family_name"`
		} `json:"individuals"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Count != 3 || len(body.Individuals) != 3 {
		t.Fatalf("count = %d, want 3", body.Count)
	}
	if body.Individuals[1].ID != "@I2@" {
		t.Errorf("Individuals[1].ID = %q, want @I2@", body.Individuals[1].ID)
	}
}

func TestTree(t *testing.T) {
	ts := newTestServer(t, 0)

	resp := post(t, ts.URL+"/v1/tree?root=@I1@&generations=2", family)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	data, _ := io.ReadAll(resp.Body)
	if !bytes.HasPrefix(data, []byte("digraph")) {
		t.Errorf("body = %q, want DOT", data)
	}

	resp = post(t, ts.URL+"/v1/tree?root=@I1@&format=pdf", family)
	if resp.StatusCode != http.StatusNotImplemented {
		t.Errorf("pdf status = %d, want 501", resp.StatusCode)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.ErrCodeInvalidGEDCOM, http.StatusBadRequest},
		{errors.ErrCodeTooLarge, http.StatusRequestEntityTooLarge},
		{errors.ErrCodeRootNotFound, http.StatusNotFound},
		{errors.ErrCodeNoIndividuals, http.StatusUnprocessableEntity},
		{errors.ErrCodeUnsupported, http.StatusNotImplemented},
		{errors.ErrCodeInternal, http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.code); got != tt.want {
			t.Errorf("statusFor(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
