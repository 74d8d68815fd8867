package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hgdb/internal/config"
	"hgdb/internal/domain"
	"hgdb/internal/repository/sqlite"
	"hgdb/internal/service"
)

// setupTestServer wires the full API over an in-memory database
func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.Open(ctx, ":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	stores, err := service.OpenStores(ctx, db, config.DefaultConfig().Keyspaces, nil)
	require.NoError(t, err)

	bus := service.NewEventBus()
	h := NewHypergraphHandler(service.NewEdgeService(stores, bus, nil), service.NewDualService(stores, bus, nil), nil)

	ts := httptest.NewServer(Router(h, nil))
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, ts *httptest.Server, method, path, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

const friendshipJSON = `{
	"id": "e1",
	"name": "Friendship",
	"main_properties": [{"key": "type", "value": ["linked"]}],
	"traversable": true,
	"directed": true,
	"head_hyper_nodes": ["v1", "v2"],
	"tail_hyper_nodes": ["v3"]
}`

func TestHealth(t *testing.T) {
	ts := setupTestServer(t)

	resp := do(t, ts, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decodeBody[map[string]string](t, resp)["status"])
}

func TestEdgeDualFlow(t *testing.T) {
	ts := setupTestServer(t)

	resp := do(t, ts, http.MethodPut, "/api/edges/e1", friendshipJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, ts, http.MethodGet, "/api/edges/e1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	edge := decodeBody[domain.SimpleHyperEdge](t, resp)
	assert.Equal(t, "Friendship", edge.Name)

	resp = do(t, ts, http.MethodPost, "/api/edges/e1/dual", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	synthesis := decodeBody[struct {
		Dual      domain.DualHyperEdge `json:"dual"`
		Nodes     []string             `json:"nodes"`
		Incidence struct {
			Rows   int      `json:"rows"`
			Cols   int      `json:"cols"`
			Matrix [][]bool `json:"matrix"`
		} `json:"incidence"`
	}](t, resp)
	assert.Equal(t, "dual_e1", synthesis.Dual.ID)
	assert.Equal(t, []string{"v1", "v2", "v3"}, synthesis.Nodes)
	assert.Equal(t, 3, synthesis.Incidence.Rows)
	assert.Equal(t, 1, synthesis.Incidence.Cols)

	resp = do(t, ts, http.MethodGet, "/api/duals/dual_e1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	dual := decodeBody[domain.DualHyperEdge](t, resp)
	assert.Equal(t, "Dual of Friendship", dual.Name)
	assert.Equal(t, []string{"v1", "v2"}, dual.HeadHyperNodes)
	require.NotNil(t, dual.TailHyperNodes)
	assert.Equal(t, []string{"v3"}, *dual.TailHyperNodes)

	resp = do(t, ts, http.MethodGet, "/api/duals", "")
	assert.Len(t, decodeBody[[]domain.DualHyperEdge](t, resp), 1)
}

func TestDualMissingSource(t *testing.T) {
	ts := setupTestServer(t)

	resp := do(t, ts, http.MethodPost, "/api/edges/ghost/dual", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeBody[ErrorResponse](t, resp)
	assert.Equal(t, "not_found", body.Kind)
	assert.Equal(t, "ghost", body.Key)

	resp = do(t, ts, http.MethodGet, "/api/duals/dual_ghost", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEdgeErrors(t *testing.T) {
	ts := setupTestServer(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"invalid json", http.MethodPut, "/api/edges/e1", `{invalid`, http.StatusBadRequest},
		{"unknown field", http.MethodPut, "/api/edges/e1", `{"id":"e1","colour":"red"}`, http.StatusBadRequest},
		{"second json value", http.MethodPut, "/api/edges/e1", friendshipJSON + ` {"id":"evil"}`, http.StatusBadRequest},
		{"trailing garbage", http.MethodPut, "/api/edges/e1", friendshipJSON + `xyz`, http.StatusBadRequest},
		{"trailing value on incidence", http.MethodPost, "/api/incidence", `{"edge_ids":[]} []`, http.StatusBadRequest},
		{"directed without tail", http.MethodPut, "/api/edges/e1", `{"id":"e1","name":"x","directed":true,"head_hyper_nodes":["a"]}`, http.StatusUnprocessableEntity},
		{"key mismatch", http.MethodPut, "/api/edges/other", friendshipJSON, http.StatusUnprocessableEntity},
		{"missing edge", http.MethodGet, "/api/edges/nope", "", http.StatusNotFound},
		{"missing light edge", http.MethodGet, "/api/light-edges/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, ts, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}

	// rejected bodies write nothing
	assert.Equal(t, http.StatusNotFound, do(t, ts, http.MethodGet, "/api/edges/e1", "").StatusCode)
}

func TestPutEdgeTrailingWhitespaceAccepted(t *testing.T) {
	ts := setupTestServer(t)

	resp := do(t, ts, http.MethodPut, "/api/edges/e1", friendshipJSON+"\n\n")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateEdgeGeneratesID(t *testing.T) {
	ts := setupTestServer(t)

	resp := do(t, ts, http.MethodPost, "/api/edges", `{"name":"anon","head_hyper_nodes":["a","b"]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[domain.SimpleHyperEdge](t, resp)
	require.NotEmpty(t, created.ID)

	resp = do(t, ts, http.MethodGet, "/api/edges/"+created.ID, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDeleteEdgeIsIdempotent(t *testing.T) {
	ts := setupTestServer(t)
	do(t, ts, http.MethodPut, "/api/edges/e1", friendshipJSON)

	assert.Equal(t, http.StatusNoContent, do(t, ts, http.MethodDelete, "/api/edges/e1", "").StatusCode)
	assert.Equal(t, http.StatusNoContent, do(t, ts, http.MethodDelete, "/api/edges/e1", "").StatusCode)
	assert.Equal(t, http.StatusNotFound, do(t, ts, http.MethodGet, "/api/edges/e1", "").StatusCode)
}

func TestLightEdges(t *testing.T) {
	ts := setupTestServer(t)

	body := `{
		"id": "l1",
		"simple_hyper_edge": ` + friendshipJSON + `,
		"structural_properties": [{"address": ["dc1", "rack4"]}],
		"relationship": {"node_1": "v1", "node_2": "v3", "edge_properties": ["type"], "directed": true},
		"traverse": {"path": []}
	}`

	resp := do(t, ts, http.MethodPut, "/api/light-edges/l1", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, ts, http.MethodGet, "/api/light-edges/l1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	light := decodeBody[domain.LightHyperEdge](t, resp)
	assert.Equal(t, "v3", light.Relationship.Node2)

	resp = do(t, ts, http.MethodGet, "/api/light-edges", "")
	assert.Len(t, decodeBody[[]domain.LightHyperEdge](t, resp), 1)

	assert.Equal(t, http.StatusNoContent, do(t, ts, http.MethodDelete, "/api/light-edges/l1", "").StatusCode)
}

func TestIncidenceAndDualHypergraph(t *testing.T) {
	ts := setupTestServer(t)
	do(t, ts, http.MethodPut, "/api/edges/e1", friendshipJSON)
	do(t, ts, http.MethodPut, "/api/edges/e2", `{"id":"e2","name":"g","head_hyper_nodes":["v3","v4"]}`)

	resp := do(t, ts, http.MethodPost, "/api/incidence", `{"nodes":["v1","v4"],"edge_ids":["e1","e2"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	incidence := decodeBody[struct {
		Incidence struct {
			Matrix [][]bool `json:"matrix"`
		} `json:"incidence"`
		Transposed struct {
			Matrix [][]bool `json:"matrix"`
		} `json:"transposed"`
	}](t, resp)
	assert.Equal(t, [][]bool{{true, false}, {false, true}}, incidence.Incidence.Matrix)
	assert.Equal(t, [][]bool{{true, false}, {false, true}}, incidence.Transposed.Matrix)

	resp = do(t, ts, http.MethodPost, "/api/incidence", `{"edge_ids":["missing"]}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, ts, http.MethodPost, "/api/dual-hypergraph", `{"edge_ids":["e1","e2"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	dual := decodeBody[struct {
		Duals []domain.NodeDual `json:"duals"`
	}](t, resp)
	require.Len(t, dual.Duals, 4)
	assert.Equal(t, domain.NodeDual{Node: "v3", Edges: []string{"e1", "e2"}}, dual.Duals[2])
}

func TestImportExport(t *testing.T) {
	ts := setupTestServer(t)

	doc := `
name: social
hyperedges:
  - id: e1
    name: Friendship
    directed: true
    head_hyper_nodes: [v1, v2]
    tail_hyper_nodes: [v3]
  - id: e2
    name: Group
    head_hyper_nodes: [v4]
`
	resp := do(t, ts, http.MethodPost, "/api/import?format=yaml", doc)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decodeBody[service.ImportResult](t, resp)
	assert.Equal(t, 2, result.Created)

	resp = do(t, ts, http.MethodGet, "/api/export?name=social", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	graph := decodeBody[domain.Hypergraph](t, resp)
	assert.Equal(t, "social", graph.Name)
	assert.Len(t, graph.Edges, 2)

	resp = do(t, ts, http.MethodGet, "/api/export?format=yaml", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/x-yaml", resp.Header.Get("Content-Type"))
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "id: e1")

	resp = do(t, ts, http.MethodPost, "/api/import?format=yaml", "hyperedges: [unterminated")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, ts, http.MethodGet, "/api/export?format=xml", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
