package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/pgn-endings-go/internal/classify"
	"github.com/lgbarn/pgn-endings-go/internal/config"
	"github.com/lgbarn/pgn-endings-go/internal/testutil"
)

func newTestServer() *Server {
	cfg := config.NewConfigBuilder().WithWorkers(2).WithMaxPlies(400).Build()
	return New(cfg, nil)
}

func do(t *testing.T, s *Server, method, path, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, data
}

func TestHealth(t *testing.T) {
	status, body := do(t, newTestServer(), http.MethodGet, "/healthz", "")
	if status != http.StatusOK || !strings.Contains(string(body), `"status":"ok"`) {
		t.Errorf("GET /healthz = %d %s", status, body)
	}
}

func TestEndCodes(t *testing.T) {
	status, body := do(t, newTestServer(), http.MethodGet, "/v1/end-codes", "")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	var got []EndCodeInfo
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != int(classify.NumEndCodes) {
		t.Fatalf("got %d codes; want %d", len(got), classify.NumEndCodes)
	}
	if got[6] != (EndCodeInfo{Code: 6, Reason: "threefold_repetition"}) {
		t.Errorf("code 6 = %+v", got[6])
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   classify.EndCode
		detail string
	}{
		{
			name:   "movetext with mate",
			body:   `{"id":"g1","moves":"1. f3 e5 2. g4 Qh4#","result":"0-1","termination":"Normal"}`,
			status: http.StatusOK,
			code:   classify.Checkmate,
		},
		{
			name:   "token list",
			body:   `{"id":"g2","moves":["e4","e5","Nf3"],"result":"1-0","termination":"Time forfeit"}`,
			status: http.StatusOK,
			code:   classify.TimeoutWin,
		},
		{
			name:   "mated hint contradicts board",
			body:   `{"id":"g3","moves":"1. e4 e5","result":"1-0","termination":"Normal","mated":true}`,
			status: http.StatusOK,
			code:   classify.Unknown,
			detail: "truncated",
		},
		{
			name:   "repetition",
			body:   `{"id":"g4","moves":"1. Nf3 Nf6 2. Ng1 Ng8 3. Nf3 Nf6 4. Ng1 Ng8","result":"1/2-1/2","termination":"Normal"}`,
			status: http.StatusOK,
			code:   classify.ThreefoldRepetition,
		},
		{
			name:   "unparseable move",
			body:   `{"id":"g5","moves":"1. e4 e5 2. Qxh7","result":"1-0","termination":"Normal"}`,
			status: http.StatusOK,
			code:   classify.Unknown,
			detail: "parse failure",
		},
		{
			name:   "bad result",
			body:   `{"id":"g6","moves":"1. e4","result":"*"}`,
			status: http.StatusBadRequest,
			detail: "result must be one of",
		},
		{
			name:   "missing id",
			body:   `{"moves":"1. e4","result":"1-0"}`,
			status: http.StatusBadRequest,
			detail: "id is required",
		},
		{
			name:   "moves wrong type",
			body:   `{"id":"g7","moves":42,"result":"1-0"}`,
			status: http.StatusBadRequest,
			detail: "moves must be",
		},
	}
	s := newTestServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, s, http.MethodPost, "/v1/classify", tt.body)
			if status != tt.status {
				t.Fatalf("status = %d; want %d (%s)", status, tt.status, body)
			}
			if status != http.StatusOK {
				var e ErrorResponse
				if err := json.Unmarshal(body, &e); err != nil {
					t.Fatal(err)
				}
				testutil.AssertContains(t, e.Details, tt.detail, "error details")
				return
			}
			var res classify.Result
			if err := json.Unmarshal(body, &res); err != nil {
				t.Fatal(err)
			}
			if res.EndCode != tt.code || res.EndReason != tt.code.Reason() {
				t.Errorf("result = %+v; want code %d", res, tt.code)
			}
			testutil.AssertContains(t, res.Detail, tt.detail, "result detail")
		})
	}
}

func TestClassifyBatch(t *testing.T) {
	body := `{"games":[
		{"id":"a","moves":"1. f3 e5 2. g4 Qh4#","result":"0-1","termination":"Normal"},
		{"id":"b","moves":"1. e4 e5","result":"1/2-1/2","termination":"Normal"},
		{"id":"c","moves":"1. d4","result":"1-0","termination":"Time forfeit"}
	]}`
	status, data := do(t, newTestServer(), http.MethodPost, "/v1/classify/batch", body)
	if status != http.StatusOK {
		t.Fatalf("status = %d (%s)", status, data)
	}
	var resp BatchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatal(err)
	}
	sort.Slice(resp.Results, func(i, j int) bool { return resp.Results[i].ID < resp.Results[j].ID })
	var got []classify.EndCode
	for _, r := range resp.Results {
		got = append(got, r.EndCode)
	}
	if diff := cmp.Diff([]classify.EndCode{classify.Checkmate, classify.AgreementDraw, classify.TimeoutWin}, got); diff != "" {
		t.Errorf("codes mismatch (-want +got):\n%s", diff)
	}
	if resp.RunID == "" || resp.ByCode["checkmate"] != 1 {
		t.Errorf("response = %+v", resp)
	}
}

func TestClassifyBatch_RepeatedIDs(t *testing.T) {
	body := `{"games":[
		{"id":"x","moves":"1. f3 e5 2. g4 Qh4#","result":"0-1","termination":"Normal"},
		{"id":"x","moves":"1. e4 e5","result":"1/2-1/2","termination":"Normal"}
	]}`
	status, data := do(t, newTestServer(), http.MethodPost, "/v1/classify/batch", body)
	if status != http.StatusOK {
		t.Fatalf("status = %d (%s)", status, data)
	}
	var resp BatchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 2 || resp.ByCode["checkmate"] != 1 || resp.ByCode["agreement_draw"] != 1 {
		t.Errorf("response = %+v; want one result per game", resp)
	}
}

func TestClassifyBatch_Empty(t *testing.T) {
	status, _ := do(t, newTestServer(), http.MethodPost, "/v1/classify/batch", `{"games":[]}`)
	if status != http.StatusBadRequest {
		t.Errorf("status = %d; want 400", status)
	}
}

func TestNotFound(t *testing.T) {
	status, body := do(t, newTestServer(), http.MethodGet, "/v1/nope", "")
	if status != http.StatusNotFound || !strings.Contains(string(body), "error") {
		t.Errorf("GET /v1/nope = %d %s", status, body)
	}
}
