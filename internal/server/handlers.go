package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/RomainClaret/pubgraph/pkg/build"
	perrors "github.com/RomainClaret/pubgraph/pkg/errors"
	"github.com/RomainClaret/pubgraph/pkg/graph"
	"github.com/RomainClaret/pubgraph/pkg/pipeline"
)

// graphResponse is the envelope returned by the graph endpoints.
type graphResponse struct {
	RunID     string              `json:"run_id,omitempty"`
	GraphHash string              `json:"graph_hash,omitempty"`
	Graph     graph.JSON          `json:"graph"`
	Stats     *statsJSON          `json:"stats,omitempty"`
	Cache     *pipeline.CacheInfo `json:"cache,omitempty"`
}

// statsJSON serializes pipeline statistics with millisecond timings.
type statsJSON struct {
	Nodes    int   `json:"nodes"`
	Edges    int   `json:"edges"`
	BuildMS  int64 `json:"build_ms"`
	LayoutMS int64 `json:"layout_ms"`
	ExportMS int64 `json:"export_ms"`
}

// errorResponse is the envelope for error replies.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGraph builds a graph from the posted publication records.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}

	g, err := s.runner.Build(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, graphResponse{Graph: g.Export()})
}

// handleLayout builds a graph and computes its layout.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}

	g, err := s.runner.Build(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.runner.ComputeLayout(r.Context(), g, opts); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, graphResponse{Graph: g.Export()})
}

// handleFilter runs the full pipeline with the posted filter spec.
func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}
	if opts.Filter == nil {
		s.writeError(w, perrors.New(perrors.ErrCodeInvalidFilter, "filter spec is required"))
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, graphResponse{
		RunID:     result.RunID,
		GraphHash: result.GraphHash,
		Graph:     result.Graph.Export(),
		Stats: &statsJSON{
			Nodes:    result.Stats.NodeCount,
			Edges:    result.Stats.EdgeCount,
			BuildMS:  result.Stats.BuildTime.Milliseconds(),
			LayoutMS: result.Stats.LayoutTime.Milliseconds(),
			ExportMS: result.Stats.ExportTime.Milliseconds(),
		},
		Cache: &result.CacheInfo,
	})
}

// handleTopics returns the topic taxonomy in classification order.
func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]build.Topic{"topics": build.DefaultTopics})
}

// decodeOptions parses pipeline options from the request body. A false
// return means an error response was already written.
func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, bool) {
	var opts pipeline.Options
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		s.writeError(w, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "decode request body"))
		return pipeline.Options{}, false
	}
	return opts, true
}

// writeError maps structured error codes onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := perrors.GetCode(err)
	status := http.StatusInternalServerError
	switch {
	case strings.HasPrefix(string(code), "INVALID_"):
		status = http.StatusBadRequest
	case code == perrors.ErrCodeNotFound, code == perrors.ErrCodeFileNotFound, code == perrors.ErrCodeNodeNotFound:
		status = http.StatusNotFound
	case code == "":
		code = perrors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(code),
		Message: perrors.UserMessage(err),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
