package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"hgdb/internal/apperror"
	"hgdb/internal/codec"
	"hgdb/internal/domain"
	"hgdb/internal/service"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 8 << 20

// HypergraphHandler handles hyperedge, dual and incidence API requests
type HypergraphHandler struct {
	edges  *service.EdgeService
	duals  *service.DualService
	logger *zap.Logger
}

// NewHypergraphHandler creates a new hypergraph handler
func NewHypergraphHandler(edges *service.EdgeService, duals *service.DualService, logger *zap.Logger) *HypergraphHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HypergraphHandler{
		edges:  edges,
		duals:  duals,
		logger: logger.Named("handler"),
	}
}

// Error response structure
type ErrorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind,omitempty"`
	Key     string `json:"key,omitempty"`
	Details string `json:"details,omitempty"`
}

// Health reports liveness
func (h *HypergraphHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// ListEdges returns all simple hyperedges
func (h *HypergraphHandler) ListEdges(w http.ResponseWriter, r *http.Request) {
	edges, err := h.edges.ListEdges(r.Context())
	if err != nil {
		h.fail(w, "Failed to list hyperedges", err)
		return
	}
	h.writeJSON(w, edges, http.StatusOK)
}

// GetEdge returns a single simple hyperedge
func (h *HypergraphHandler) GetEdge(w http.ResponseWriter, r *http.Request) {
	edge, err := h.edges.GetEdge(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		h.fail(w, "Failed to get hyperedge", err)
		return
	}
	h.writeJSON(w, edge, http.StatusOK)
}

// CreateEdge creates a hyperedge keyed by its id
func (h *HypergraphHandler) CreateEdge(w http.ResponseWriter, r *http.Request) {
	var edge domain.SimpleHyperEdge
	if !h.decode(w, r, &edge) {
		return
	}

	if err := h.edges.CreateEdge(r.Context(), &edge); err != nil {
		h.fail(w, "Failed to create hyperedge", err)
		return
	}
	h.writeJSON(w, edge, http.StatusCreated)
}

// PutEdge creates or fully replaces the hyperedge under the path key
func (h *HypergraphHandler) PutEdge(w http.ResponseWriter, r *http.Request) {
	var edge domain.SimpleHyperEdge
	if !h.decode(w, r, &edge) {
		return
	}

	if err := h.edges.PutEdge(r.Context(), chi.URLParam(r, "key"), &edge); err != nil {
		h.fail(w, "Failed to store hyperedge", err)
		return
	}
	h.writeJSON(w, edge, http.StatusOK)
}

// DeleteEdge deletes a hyperedge
func (h *HypergraphHandler) DeleteEdge(w http.ResponseWriter, r *http.Request) {
	if err := h.edges.DeleteEdge(r.Context(), chi.URLParam(r, "key")); err != nil {
		h.fail(w, "Failed to delete hyperedge", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateDual synthesizes and stores the dual of a hyperedge
func (h *HypergraphHandler) CreateDual(w http.ResponseWriter, r *http.Request) {
	synthesis, err := h.duals.CreateDual(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		h.fail(w, "Failed to synthesize dual", err)
		return
	}
	h.writeJSON(w, synthesis, http.StatusCreated)
}

// ListDuals returns all dual records
func (h *HypergraphHandler) ListDuals(w http.ResponseWriter, r *http.Request) {
	duals, err := h.duals.ListDuals(r.Context())
	if err != nil {
		h.fail(w, "Failed to list duals", err)
		return
	}
	h.writeJSON(w, duals, http.StatusOK)
}

// GetDual returns a dual record by its own key
func (h *HypergraphHandler) GetDual(w http.ResponseWriter, r *http.Request) {
	dual, err := h.duals.GetDual(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		h.fail(w, "Failed to get dual", err)
		return
	}
	h.writeJSON(w, dual, http.StatusOK)
}

// DeleteDual deletes a dual record
func (h *HypergraphHandler) DeleteDual(w http.ResponseWriter, r *http.Request) {
	if err := h.duals.DeleteDual(r.Context(), chi.URLParam(r, "key")); err != nil {
		h.fail(w, "Failed to delete dual", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListLightEdges returns all light hyperedges
func (h *HypergraphHandler) ListLightEdges(w http.ResponseWriter, r *http.Request) {
	lights, err := h.edges.ListLightEdges(r.Context())
	if err != nil {
		h.fail(w, "Failed to list light hyperedges", err)
		return
	}
	h.writeJSON(w, lights, http.StatusOK)
}

// GetLightEdge returns a single light hyperedge
func (h *HypergraphHandler) GetLightEdge(w http.ResponseWriter, r *http.Request) {
	light, err := h.edges.GetLightEdge(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		h.fail(w, "Failed to get light hyperedge", err)
		return
	}
	h.writeJSON(w, light, http.StatusOK)
}

// PutLightEdge creates or fully replaces a light hyperedge
func (h *HypergraphHandler) PutLightEdge(w http.ResponseWriter, r *http.Request) {
	var light domain.LightHyperEdge
	if !h.decode(w, r, &light) {
		return
	}

	if err := h.edges.PutLightEdge(r.Context(), chi.URLParam(r, "key"), &light); err != nil {
		h.fail(w, "Failed to store light hyperedge", err)
		return
	}
	h.writeJSON(w, light, http.StatusOK)
}

// DeleteLightEdge deletes a light hyperedge
func (h *HypergraphHandler) DeleteLightEdge(w http.ResponseWriter, r *http.Request) {
	if err := h.edges.DeleteLightEdge(r.Context(), chi.URLParam(r, "key")); err != nil {
		h.fail(w, "Failed to delete light hyperedge", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// IncidenceRequest selects the axes of an incidence matrix
type IncidenceRequest struct {
	Nodes   []string `json:"nodes"`
	EdgeIDs []string `json:"edge_ids"`
}

// Incidence builds the node×hyperedge matrix over stored edges
func (h *HypergraphHandler) Incidence(w http.ResponseWriter, r *http.Request) {
	var req IncidenceRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.duals.Incidence(r.Context(), req.Nodes, req.EdgeIDs)
	if err != nil {
		h.fail(w, "Failed to build incidence matrix", err)
		return
	}
	h.writeJSON(w, result, http.StatusOK)
}

// DualHypergraphRequest selects the edges of a node-centric dual
type DualHypergraphRequest struct {
	EdgeIDs []string `json:"edge_ids"`
}

// DualHypergraph derives the node-centric dual over stored edges
func (h *HypergraphHandler) DualHypergraph(w http.ResponseWriter, r *http.Request) {
	var req DualHypergraphRequest
	if !h.decode(w, r, &req) {
		return
	}

	dual, err := h.duals.DualHypergraph(r.Context(), req.EdgeIDs)
	if err != nil {
		h.fail(w, "Failed to derive dual hypergraph", err)
		return
	}
	h.writeJSON(w, dual, http.StatusOK)
}

// Import imports a hypergraph document. The format and strategy query
// parameters default to yaml and merge.
func (h *HypergraphHandler) Import(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "yaml"
	}

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	result, err := h.edges.ImportFrom(r.Context(), format, body, r.URL.Query().Get("strategy"))
	if apperror.KindOf(err) == apperror.KindDeserialization {
		h.writeError(w, "Invalid hypergraph document", err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.fail(w, "Failed to import hypergraph", err)
		return
	}
	h.writeJSON(w, result, http.StatusOK)
}

// Export writes every hyperedge as a json (default) or yaml document
func (h *HypergraphHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	graph, err := h.edges.Export(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		h.fail(w, "Failed to export hypergraph", err)
		return
	}

	switch format {
	case "json":
		h.writeJSON(w, graph, http.StatusOK)
	case "yaml", "yml":
		w.Header().Set("Content-Type", "application/x-yaml")
		w.Header().Set("Content-Disposition", "attachment; filename=hypergraph.yaml")
		if err := codec.NewYAMLCodec().Export(graph, w); err != nil {
			h.logger.Error("failed to export yaml", zap.Error(err))
			// Can't write error response as we already set headers
		}
	default:
		h.writeError(w, "Unsupported format", format, http.StatusBadRequest)
	}
}

// Helper methods

// decode reads a JSON body into v, writing a 400 response on failure
func (h *HypergraphHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	err := decoder.Decode(v)
	if errors.Is(err, io.EOF) {
		return true
	}
	if err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return false
	}

	// The body must hold exactly one JSON value
	var extra json.RawMessage
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		h.writeError(w, "Invalid request body", "unexpected data after JSON value", http.StatusBadRequest)
		return false
	}
	return true
}

// fail maps an error to its status code and writes it
func (h *HypergraphHandler) fail(w http.ResponseWriter, message string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(message, zap.Error(err))
	}

	resp := ErrorResponse{Error: message, Details: err.Error()}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		resp.Kind = string(appErr.Kind)
		resp.Key = appErr.Key
	}
	h.writeResponse(w, resp, status)
}

// statusFor maps an error kind to an HTTP status
func statusFor(err error) int {
	switch apperror.KindOf(err) {
	case apperror.KindValidation:
		return http.StatusUnprocessableEntity
	case apperror.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *HypergraphHandler) writeJSON(w http.ResponseWriter, data any, statusCode int) {
	h.writeResponse(w, data, statusCode)
}

func (h *HypergraphHandler) writeError(w http.ResponseWriter, error, details string, statusCode int) {
	h.writeResponse(w, ErrorResponse{Error: error, Details: details}, statusCode)
}

func (h *HypergraphHandler) writeResponse(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON", zap.Error(err))
	}
}
