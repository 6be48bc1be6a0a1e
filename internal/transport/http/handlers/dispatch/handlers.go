package dispatchhandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"crewsite/internal/domain/access"
	"crewsite/internal/domain/dispatch"
	"crewsite/internal/transport/http/api"
	"crewsite/internal/transport/http/middleware"
	"crewsite/internal/transport/http/shared"
)

type Handler struct {
	Store  *dispatch.Store
	Access *access.Service
}

func NewHandler(store *dispatch.Store, accessService *access.Service) *Handler {
	return &Handler{Store: store, Access: accessService}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/dispatch", func(r chi.Router) {
		r.With(middleware.RequirePermission(access.PermDispatchView, h.Access)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(access.PermDispatchView, h.Access)).Get("/board", h.handleBoard)
		r.With(middleware.RequirePermission(access.PermDispatchEdit, h.Access)).Post("/", h.handleCreate)
		r.Route("/{assignmentID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(access.PermDispatchView, h.Access)).Get("/", h.handleGet)
			r.With(middleware.RequirePermission(access.PermDispatchEdit, h.Access)).Put("/", h.handleUpdate)
			r.With(middleware.RequirePermission(access.PermDispatchEdit, h.Access)).Delete("/", h.handleDelete)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.Store.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list assignments", middleware.GetRequestID(r.Context()))
		return
	}
	if assignments == nil {
		assignments = []dispatch.Assignment{}
	}
	api.Success(w, assignments, middleware.GetRequestID(r.Context()))
}

// handleBoard returns the assignments active on a single day, the view the
// dispatch board renders. Defaults to today.
func (h *Handler) handleBoard(w http.ResponseWriter, r *http.Request) {
	day := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := shared.ParseDate(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD", middleware.GetRequestID(r.Context()))
			return
		}
		day = parsed
	}

	assignments, err := h.Store.ListActiveOn(r.Context(), day)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to load dispatch board", middleware.GetRequestID(r.Context()))
		return
	}
	if assignments == nil {
		assignments = []dispatch.Assignment{}
	}
	api.Success(w, map[string]any{
		"date":        day.Format("2006-01-02"),
		"assignments": assignments,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	assignment, err := h.Store.Get(r.Context(), chi.URLParam(r, "assignmentID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "assignment not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, assignment, middleware.GetRequestID(r.Context()))
}

type assignmentRequest struct {
	ProjectID   string `json:"projectId"`
	EmployeeID  string `json:"employeeId"`
	EquipmentID string `json:"equipmentId"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Shift       string `json:"shift"`
	Notes       string `json:"notes"`
	Force       bool   `json:"force"`
}

func (h *Handler) decodeAssignment(w http.ResponseWriter, r *http.Request) (dispatch.Assignment, bool, bool) {
	var req assignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid assignment payload", middleware.GetRequestID(r.Context()))
		return dispatch.Assignment{}, false, false
	}

	v := shared.NewValidator()
	v.Required("projectId", req.ProjectID, "project is required")
	if req.EmployeeID == "" && req.EquipmentID == "" {
		v.Add("employeeId", "an employee or a piece of equipment is required")
	}
	start, _ := v.Date("startDate", req.StartDate)
	end, _ := v.Date("endDate", req.EndDate)
	v.DateOrder("startDate", start, "endDate", end)
	if v.HasIssues() {
		v.Reject(w, middleware.GetRequestID(r.Context()))
		return dispatch.Assignment{}, false, false
	}

	return dispatch.Assignment{
		ProjectID:   req.ProjectID,
		EmployeeID:  req.EmployeeID,
		EquipmentID: req.EquipmentID,
		StartDate:   start,
		EndDate:     end,
		Shift:       req.Shift,
		Notes:       req.Notes,
	}, req.Force, true
}

// rejectConflicts blocks a double-booking unless the caller forced it.
func (h *Handler) rejectConflicts(w http.ResponseWriter, r *http.Request, candidate dispatch.Assignment, force bool) bool {
	if force {
		return false
	}
	existing, err := h.Store.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to check for conflicts", middleware.GetRequestID(r.Context()))
		return true
	}
	conflicts := dispatch.FindConflicts(existing, candidate)
	if len(conflicts) > 0 {
		api.FailWithDetails(w, http.StatusConflict, "dispatch_conflict", "assignment overlaps an existing booking", conflicts, middleware.GetRequestID(r.Context()))
		return true
	}
	return false
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	assignment, force, ok := h.decodeAssignment(w, r)
	if !ok {
		return
	}
	if h.rejectConflicts(w, r, assignment, force) {
		return
	}

	id, err := h.Store.Create(r.Context(), assignment)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to create assignment", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	assignment, force, ok := h.decodeAssignment(w, r)
	if !ok {
		return
	}
	assignment.ID = chi.URLParam(r, "assignmentID")
	if h.rejectConflicts(w, r, assignment, force) {
		return
	}

	if err := h.Store.Update(r.Context(), assignment); err != nil {
		api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to update assignment", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "updated"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Delete(r.Context(), chi.URLParam(r, "assignmentID")); err != nil {
		api.Fail(w, http.StatusInternalServerError, "delete_failed", "failed to delete assignment", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}
