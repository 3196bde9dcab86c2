package api

import (
	"context"
	"net/http"

	"github.com/mycelian/tool-catalog/internal/api/respond"
	"github.com/mycelian/tool-catalog/internal/catalog"
	"github.com/rs/zerolog/hlog"
)

// ToolDataErrorMessage is the only failure detail callers ever see.
const ToolDataErrorMessage = "Error loading tool data"

// ToolsHandler serves the tool record document.
type ToolsHandler struct {
	src catalog.Source
}

// NewToolsHandler creates a handler reading from src on every request.
func NewToolsHandler(src catalog.Source) *ToolsHandler {
	return &ToolsHandler{src: src}
}

// ListTools handles GET /api/tools
func (h *ToolsHandler) ListTools(w http.ResponseWriter, r *http.Request) {
	log := hlog.FromRequest(r)
	log.Info().Msg("Received a request at /api/tools")

	// A client hanging up does not abort the read.
	doc, err := h.src.Load(context.WithoutCancel(r.Context()))
	if err != nil {
		log.Error().Stack().Err(err).Msg("Failed to read tool data")
		respond.WriteInternalError(w, ToolDataErrorMessage)
		return
	}

	log.Debug().Int("records", catalog.Count(doc)).Msg("Serving tool data")
	respond.WriteRawJSON(w, http.StatusOK, doc)
}
