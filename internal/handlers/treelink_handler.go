package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"treelink-backend/internal/cache"
	"treelink-backend/internal/dto"
	"treelink-backend/internal/events"
	"treelink-backend/internal/models"
	"treelink-backend/internal/store"
	"treelink-backend/internal/utils"
)

// TreelinkHandler exposes the link-collection operations: fetch a profile,
// append a link, remove links by url, change the public handle, and set the
// profile image. All operations key on the client-supplied email; the
// identity provider that vouched for it is out of band.
type TreelinkHandler struct {
	store     store.ProfileStore
	cache     cache.ProfileCache // nil when REDIS_ADDR is not configured
	publisher events.EventPublisher
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewTreelinkHandler creates a new TreelinkHandler instance
func NewTreelinkHandler(st store.ProfileStore, pc cache.ProfileCache, pub events.EventPublisher, logger *zap.Logger) *TreelinkHandler {
	return &TreelinkHandler{
		store:     st,
		cache:     pc,
		publisher: pub,
		validate:  validator.New(),
		logger:    logger,
	}
}

// Handle dispatches /api/treelink by method.
func (h *TreelinkHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.GetProfile(w, r)
	case http.MethodPost:
		h.AddLink(w, r)
	case http.MethodDelete:
		h.DeleteLink(w, r)
	case http.MethodPut:
		h.SetHandle(w, r)
	default:
		utils.WriteErrorResponse(w, http.StatusMethodNotAllowed, "Method Not Allowed", "only GET, POST, PUT, DELETE are allowed")
	}
}

// GetProfile godoc
// @Summary      Fetch a link profile
// @Description  Looks up a profile by accountId (public handle) or email. A missing profile is an empty result, not an error.
// @Tags         treelink
// @Produce      json
// @Param        accountId  query     string  false  "Public handle"
// @Param        email      query     string  false  "Owner email"
// @Success      200  {object}  dto.ProfileResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/treelink [get]
func (h *TreelinkHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("accountId")
	email := r.URL.Query().Get("email")

	if accountID == "" && email == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request", "accountId or email is required")
		return
	}

	var (
		profile *models.LinkProfile
		err     error
	)
	if accountID != "" {
		profile, err = h.store.FindByHandle(r.Context(), accountID)
	} else {
		profile, err = h.store.FindByEmail(r.Context(), email)
	}
	if err != nil {
		h.logger.Error("fetch profile", zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, profileResponse(profile))
}

// AddLink godoc
// @Summary      Add a link
// @Description  Appends one link to the profile's collection, creating the profile on first use. No dedup and no url validation.
// @Tags         treelink
// @Accept       json
// @Produce      json
// @Param        payload  body      dto.AddLinkRequest  true  "Link payload"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/treelink [post]
func (h *TreelinkHandler) AddLink(w http.ResponseWriter, r *http.Request) {
	var req dto.AddLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "accountId, email, title and url are required")
		return
	}

	item := models.LinkItem{Title: req.Title, URL: req.URL}
	ownerHandle, err := h.store.AppendLink(r.Context(), req.Email, req.AccountID, req.ProfileImage, item)
	if err != nil {
		if errors.Is(err, store.ErrHandleTaken) {
			utils.WriteErrorResponse(w, http.StatusConflict, "Conflict", "Handle already exists. Please choose another.")
			return
		}
		h.logger.Error("add link", zap.String("email", req.Email), zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	h.invalidateCache(r.Context(), ownerHandle)
	if err := h.publisher.PublishLinkAdded(req.Email, item); err != nil {
		h.logger.Warn("publish link added", zap.Error(err))
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Link added successfully!"})
}

// DeleteLink godoc
// @Summary      Delete links by url
// @Description  Removes every link whose url matches. Idempotent: zero matches is still a success.
// @Tags         treelink
// @Produce      json
// @Param        email  query     string  true  "Owner email"
// @Param        url    query     string  true  "Link url to remove"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/treelink [delete]
func (h *TreelinkHandler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	url := r.URL.Query().Get("url")

	if email == "" || url == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request", "email and url are required")
		return
	}

	ownerHandle, err := h.store.RemoveLinksByURL(r.Context(), email, url)
	if err != nil {
		h.logger.Error("delete link", zap.String("email", email), zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	h.invalidateCache(r.Context(), ownerHandle)
	if err := h.publisher.PublishLinkRemoved(email, url); err != nil {
		h.logger.Warn("publish link removed", zap.Error(err))
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Link deleted"})
}

// SetHandle godoc
// @Summary      Change the public handle
// @Description  Claims a new public handle for the profile. The handle is unique across all profiles; a taken handle is a 409.
// @Tags         treelink
// @Accept       json
// @Produce      json
// @Param        payload  body      dto.SetHandleRequest  true  "New handle"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/treelink [put]
func (h *TreelinkHandler) SetHandle(w http.ResponseWriter, r *http.Request) {
	var req dto.SetHandleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "email and newHandle are required")
		return
	}

	// The old handle must stop resolving as soon as the write lands, so look
	// it up before the update for cache invalidation.
	var oldHandle string
	if h.cache != nil {
		if current, err := h.store.FindByEmail(r.Context(), req.Email); err == nil && current != nil {
			oldHandle = current.HandleOrEmpty()
		}
	}

	if err := h.store.SetHandle(r.Context(), req.Email, req.NewHandle); err != nil {
		if errors.Is(err, store.ErrHandleTaken) {
			utils.WriteErrorResponse(w, http.StatusConflict, "Conflict", "Handle already exists. Please choose another.")
			return
		}
		h.logger.Error("set handle", zap.String("email", req.Email), zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	h.invalidateCache(r.Context(), oldHandle, req.NewHandle)
	if err := h.publisher.PublishHandleChanged(req.Email, req.NewHandle); err != nil {
		h.logger.Warn("publish handle changed", zap.Error(err))
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Handle updated successfully!"})
}

// SetImage godoc
// @Summary      Set the profile image
// @Description  Upserts the profile image by email. The value is opaque: a URL or an inline-encoded payload, stored verbatim.
// @Tags         treelink
// @Accept       json
// @Produce      json
// @Param        payload  body      dto.SetImageRequest  true  "Image payload"
// @Success      200  {object}  dto.SetImageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/treelink/photo [put]
func (h *TreelinkHandler) SetImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.WriteErrorResponse(w, http.StatusMethodNotAllowed, "Method Not Allowed", "only PUT is allowed")
		return
	}

	var req dto.SetImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "email and profileImage are required")
		return
	}

	profile, err := h.store.SetImage(r.Context(), req.Email, req.ProfileImage)
	if err != nil {
		h.logger.Error("set image", zap.String("email", req.Email), zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Update failed", err.Error())
		return
	}

	h.invalidateCache(r.Context(), profile.HandleOrEmpty())
	if err := h.publisher.PublishImageUpdated(req.Email); err != nil {
		h.logger.Warn("publish image updated", zap.Error(err))
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.SetImageResponse{Message: "Profile updated", Profile: profile})
}

func (h *TreelinkHandler) invalidateCache(ctx context.Context, handles ...string) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Invalidate(ctx, handles...); err != nil {
		h.logger.Warn("invalidate profile cache", zap.Strings("handles", handles), zap.Error(err))
	}
}

// profileResponse flattens a possibly-missing profile into the wire shape.
// Absence yields empty links and blank fields so clients can tell "no profile
// yet" apart from a transport error.
func profileResponse(p *models.LinkProfile) dto.ProfileResponse {
	resp := dto.ProfileResponse{Links: models.LinkList{}}
	if p == nil {
		return resp
	}
	if p.Links != nil {
		resp.Links = p.Links
	}
	resp.AccountID = p.HandleOrEmpty()
	resp.ProfileImage = p.ImageOrEmpty()
	return resp
}
