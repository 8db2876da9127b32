// Package httpadapter exposes ingestion and query operations over
// HTTP/JSON.
package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jkatiyar/ai-enterprise-search/internal/config"
	"github.com/jkatiyar/ai-enterprise-search/internal/core/domain"
	"github.com/jkatiyar/ai-enterprise-search/internal/core/ports"
	"github.com/jkatiyar/ai-enterprise-search/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	cfg     config.Config
	ingest  ports.DocumentIngestor
	docs    ports.DocumentReader
	edue    ports.EDUEQueryService
	hybrid  ports.HybridQueryService
	rag     ports.RAGQueryService
	metrics *metrics.HTTPServerMetrics
}

func NewRouter(
	cfg config.Config,
	ingest ports.DocumentIngestor,
	docs ports.DocumentReader,
	edue ports.EDUEQueryService,
	hybrid ports.HybridQueryService,
	rag ports.RAGQueryService,
) *Router {
	return &Router{
		cfg:    cfg,
		ingest: ingest,
		docs:   docs,
		edue:   edue,
		hybrid: hybrid,
		rag:    rag,
	}
}

// WithMetrics attaches the Prometheus registry; without it the router
// serves requests but records nothing.
func (rt *Router) WithMetrics(m *metrics.HTTPServerMetrics) *Router {
	rt.metrics = m
	return rt
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/documents", rt.uploadDocument)
	mux.HandleFunc("/v1/documents/", rt.getDocumentByID)
	mux.HandleFunc("/v1/edue/query", rt.queryEDUE)
	mux.HandleFunc("/v1/edue/hybrid/query", rt.queryHybrid)
	mux.HandleFunc("/v1/rag/query", rt.queryRAG)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.cfg.APIMaxConcurrent > 0 {
		queueTimeout := time.Duration(rt.cfg.APIQueueTimeoutMS) * time.Millisecond
		handler = backpressureMiddleware(handler, rt.cfg.APIMaxConcurrent, queueTimeout)
	}
	if rt.cfg.APIRateLimitRPS > 0 {
		handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	}
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if rt.cfg.APIMaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, rt.cfg.APIMaxUploadBytes)
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	doc, err := rt.ingest.Upload(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		rt.writeError(w, r, "upload document", err)
		return
	}

	writeJSON(w, http.StatusAccepted, doc)
}

func (rt *Router) getDocumentByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document id is required"})
		return
	}

	doc, err := rt.docs.GetByID(r.Context(), id)
	if err != nil {
		rt.writeError(w, r, "get document", err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

type documentQueryRequest struct {
	DocumentID string `json:"document_id"`
	Question   string `json:"question"`
}

func decodeDocumentQuery(w http.ResponseWriter, r *http.Request) (documentQueryRequest, bool) {
	var req documentQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return req, false
	}
	if strings.TrimSpace(req.DocumentID) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document_id is required"})
		return req, false
	}
	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "question is required"})
		return req, false
	}
	return req, true
}

func (rt *Router) queryEDUE(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	req, ok := decodeDocumentQuery(w, r)
	if !ok {
		return
	}

	start := time.Now()
	result, err := rt.edue.Query(r.Context(), req.DocumentID, req.Question)
	if err != nil {
		rt.writeError(w, r, "edue query", err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordQuery(serviceName, "/v1/edue/query", result.Engine, time.Since(start))
		if result.Result.IsNoAnswer() {
			rt.metrics.RecordNoAnswer(serviceName, "/v1/edue/query")
		}
	}
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) queryHybrid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	req, ok := decodeDocumentQuery(w, r)
	if !ok {
		return
	}

	start := time.Now()
	result, err := rt.hybrid.Query(r.Context(), req.DocumentID, req.Question)
	if err != nil {
		rt.writeError(w, r, "hybrid query", err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordQuery(serviceName, "/v1/edue/hybrid/query", result.PrimaryEngine, time.Since(start))
		rt.metrics.RecordConfidenceBand(serviceName, result.Confidence.Band)
		switch {
		case !result.SecondaryConsulted:
			rt.metrics.RecordSecondarySkipped(serviceName)
		case result.SecondaryFailed:
			rt.metrics.RecordSecondaryFailed(serviceName)
		}
	}
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) queryRAG(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Question   string `json:"question"`
		Limit      int    `json:"limit"`
		DocumentID string `json:"document_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "question is required"})
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = rt.cfg.RAGTopK
	}

	start := time.Now()
	answer, err := rt.rag.Answer(r.Context(), req.Question, limit, domain.SearchFilter{
		DocumentID: req.DocumentID,
	})
	if err != nil {
		rt.writeError(w, r, "rag query", err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordQuery(serviceName, "/v1/rag/query", domain.EngineRAG, time.Since(start))
		rt.metrics.RecordRetrievedChunks(serviceName, "/v1/rag/query", len(answer.Sources))
		if answer.Answer == domain.NoAnswerText {
			rt.metrics.RecordNoAnswer(serviceName, "/v1/rag/query")
		}
	}

	writeJSON(w, http.StatusOK, answer)
}

func (rt *Router) writeError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	status := mapErrorToHTTPStatus(err)
	if status >= 500 {
		slog.Error("request_failed",
			"request_id", requestIDFromContext(r.Context()),
			"operation", operation,
			"error", err,
		)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
