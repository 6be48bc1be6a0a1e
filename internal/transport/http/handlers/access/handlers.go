package accesshandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"crewsite/internal/domain/access"
	"crewsite/internal/transport/http/api"
	"crewsite/internal/transport/http/middleware"
	"crewsite/internal/transport/http/shared"
)

type Handler struct {
	Store   *access.Store
	Service *access.Service
}

func NewHandler(store *access.Store, service *access.Service) *Handler {
	return &Handler{Store: store, Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/access/me", h.handleMe)
	r.Get("/access/registry", h.handleRegistry)
	r.Get("/access/templates", h.handleTemplates)

	r.Post("/access/preview", h.handleStartPreview)
	r.Delete("/access/preview", h.handleStopPreview)

	r.Route("/access/roles", func(r chi.Router) {
		r.With(middleware.RequirePermission(access.PermSettingsView, h.Service)).Get("/", h.handleListGrants)
		r.With(middleware.RequirePermission(access.PermSettingsManageRoles, h.Service)).Post("/", h.handleCreateGrant)
		r.Route("/{grantID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(access.PermSettingsView, h.Service)).Get("/", h.handleGetGrant)
			r.With(middleware.RequirePermission(access.PermSettingsManageRoles, h.Service)).Put("/", h.handleUpdateGrant)
			r.With(middleware.RequirePermission(access.PermSettingsManageRoles, h.Service)).Delete("/", h.handleDeleteGrant)
		})
	})
}

// handleMe reports the caller's effective permission set, including any
// active preview, so the client can render navigation without guessing.
func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	res := h.Service.Resolve(r.Context(), access.Identity{UserID: user.UserID, Email: user.Email})
	api.Success(w, map[string]any{
		"effectiveRole": res.EffectiveRole,
		"realRole":      res.RealRole,
		"previewing":    res.Previewing,
		"loading":       res.Loading,
		"permissions":   res.Permissions(),
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRegistry(w http.ResponseWriter, r *http.Request) {
	api.Success(w, access.Registry, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleTemplates(w http.ResponseWriter, r *http.Request) {
	api.Success(w, access.Templates, middleware.GetRequestID(r.Context()))
}

type previewRequest struct {
	Role string `json:"role"`
}

func (h *Handler) handleStartPreview(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid preview payload", middleware.GetRequestID(r.Context()))
		return
	}
	req.Role = strings.TrimSpace(req.Role)
	if req.Role == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "role is required", middleware.GetRequestID(r.Context()))
		return
	}

	// Gate on the caller's real role, not the currently effective one, so
	// an active preview cannot lock its owner out of switching or stopping.
	res := h.Service.Resolve(r.Context(), access.Identity{UserID: user.UserID, Email: user.Email})
	if err := h.Service.Preview.Start(user.UserID, res.RealRole, req.Role); err != nil {
		if errors.Is(err, access.ErrPreviewNotAllowed) {
			api.Fail(w, http.StatusForbidden, "preview_not_allowed", "role preview requires admin access", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "preview_failed", "failed to start preview", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]string{"previewing": req.Role}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleStopPreview(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	h.Service.Preview.Stop(user.UserID)
	api.Success(w, map[string]string{"previewing": ""}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListGrants(w http.ResponseWriter, r *http.Request) {
	grants, err := h.Store.ListGrants(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list role grants", middleware.GetRequestID(r.Context()))
		return
	}
	if grants == nil {
		grants = []access.RoleGrant{}
	}
	api.Success(w, grants, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetGrant(w http.ResponseWriter, r *http.Request) {
	grant, err := h.Store.GetGrant(r.Context(), chi.URLParam(r, "grantID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "role grant not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, grant, middleware.GetRequestID(r.Context()))
}

type grantRequest struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	Description string   `json:"description"`
}

func (h *Handler) validateGrant(req grantRequest) *shared.Validator {
	v := shared.NewValidator()
	v.Required("role", req.Role, "role is required")
	known := map[string]bool{}
	for _, key := range access.AllPermissions() {
		known[key] = true
	}
	for _, key := range req.Permissions {
		if !known[key] {
			v.Add("permissions", "unknown permission key: "+key)
		}
	}
	return v
}

func (h *Handler) handleCreateGrant(w http.ResponseWriter, r *http.Request) {
	var req grantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid role grant payload", middleware.GetRequestID(r.Context()))
		return
	}
	if v := h.validateGrant(req); v.HasIssues() {
		v.Reject(w, middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Store.CreateGrant(r.Context(), access.RoleGrant{
		Role:        strings.TrimSpace(req.Role),
		Permissions: req.Permissions,
		Description: req.Description,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to create role grant", middleware.GetRequestID(r.Context()))
		return
	}
	h.Service.Invalidate()
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateGrant(w http.ResponseWriter, r *http.Request) {
	var req grantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid role grant payload", middleware.GetRequestID(r.Context()))
		return
	}
	if v := h.validateGrant(req); v.HasIssues() {
		v.Reject(w, middleware.GetRequestID(r.Context()))
		return
	}

	err := h.Store.UpdateGrant(r.Context(), access.RoleGrant{
		ID:          chi.URLParam(r, "grantID"),
		Role:        strings.TrimSpace(req.Role),
		Permissions: req.Permissions,
		Description: req.Description,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to update role grant", middleware.GetRequestID(r.Context()))
		return
	}
	h.Service.Invalidate()
	api.Success(w, map[string]string{"status": "updated"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteGrant(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteGrant(r.Context(), chi.URLParam(r, "grantID")); err != nil {
		api.Fail(w, http.StatusInternalServerError, "delete_failed", "failed to delete role grant", middleware.GetRequestID(r.Context()))
		return
	}
	h.Service.Invalidate()
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}
