package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"treelink-backend/internal/cache"
	"treelink-backend/internal/store"
	"treelink-backend/internal/utils"
)

// PublicProfileHandler is the read-only resolver behind shareable profile
// URLs. No authentication: any caller may read any public profile.
type PublicProfileHandler struct {
	store  store.ProfileStore
	cache  cache.ProfileCache // nil when REDIS_ADDR is not configured
	logger *zap.Logger
}

// NewPublicProfileHandler creates a new PublicProfileHandler instance
func NewPublicProfileHandler(st store.ProfileStore, pc cache.ProfileCache, logger *zap.Logger) *PublicProfileHandler {
	return &PublicProfileHandler{store: st, cache: pc, logger: logger}
}

// Resolve godoc
// @Summary      Resolve a public profile by handle
// @Description  Returns the visible link list and image for a public handle. Unknown handles resolve to an empty profile.
// @Tags         public
// @Produce      json
// @Param        handle  path      string  true  "Public handle"
// @Success      200  {object}  dto.ProfileResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/u/{handle} [get]
func (h *PublicProfileHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteErrorResponse(w, http.StatusMethodNotAllowed, "Method Not Allowed", "only GET is allowed")
		return
	}

	handle := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/u/"), "/")
	if handle == "" || strings.Contains(handle, "/") {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request", "handle is required")
		return
	}

	if h.cache != nil {
		cached, err := h.cache.Get(r.Context(), handle)
		if err != nil {
			h.logger.Warn("profile cache read", zap.String("handle", handle), zap.Error(err))
		} else if cached != nil {
			utils.WriteJSONResponse(w, http.StatusOK, profileResponse(cached))
			return
		}
	}

	profile, err := h.store.FindByHandle(r.Context(), handle)
	if err != nil {
		h.logger.Error("resolve profile", zap.String("handle", handle), zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	if h.cache != nil && profile != nil {
		if err := h.cache.Set(r.Context(), handle, profile); err != nil {
			h.logger.Warn("profile cache write", zap.String("handle", handle), zap.Error(err))
		}
	}

	utils.WriteJSONResponse(w, http.StatusOK, profileResponse(profile))
}
