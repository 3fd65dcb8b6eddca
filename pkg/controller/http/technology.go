package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/m-mizutani/appacc/pkg/domain/interfaces"
	"github.com/m-mizutani/appacc/pkg/domain/model"
	"github.com/m-mizutani/appacc/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// maxRequestBodySize bounds the download request body
const maxRequestBodySize = 64 * 1024

// TechnologyHandler serves technology list and download URL endpoints
type TechnologyHandler struct {
	downloadUC interfaces.DownloadUseCase
}

// NewTechnologyHandler creates a new TechnologyHandler
func NewTechnologyHandler(downloadUC interfaces.DownloadUseCase) *TechnologyHandler {
	return &TechnologyHandler{
		downloadUC: downloadUC,
	}
}

// DownloadResponse is the body returned by the download endpoint
type DownloadResponse struct {
	URL string `json:"url"`
}

// List returns technologies offered by the starter backend
func (h *TechnologyHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	techs, err := h.downloadUC.ListTechnologies(ctx)
	if err != nil {
		logger.Error("Failed to list technologies", "error", err)
		writeError(w, err, statusOf(err))
		return
	}

	writeJSON(w, r, techs)
}

// Download builds the download URL for the requested technologies
func (h *TechnologyHandler) Download(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err != nil {
		logger.Error("Failed to read request body", "error", err)
		writeError(w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}

	var req model.DownloadRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, goerr.Wrap(err, "invalid JSON payload", goerr.T(types.ErrTagInvalidRequest)), http.StatusBadRequest)
		return
	}

	u, err := h.downloadUC.PrepareDownload(ctx, &req)
	if err != nil {
		logger.Warn("Failed to prepare download", "error", err)
		writeError(w, err, statusOf(err))
		return
	}

	writeJSON(w, r, &DownloadResponse{URL: u})
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}
