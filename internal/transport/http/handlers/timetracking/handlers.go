package timetrackinghandler

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"crewsite/internal/domain/access"
	"crewsite/internal/domain/core"
	"crewsite/internal/domain/payperiod"
	"crewsite/internal/domain/timetracking"
	"crewsite/internal/transport/http/api"
	"crewsite/internal/transport/http/middleware"
	"crewsite/internal/transport/http/shared"
)

type Handler struct {
	Store  *timetracking.Store
	Core   *core.Store
	Access *access.Service
}

func NewHandler(store *timetracking.Store, coreStore *core.Store, accessService *access.Service) *Handler {
	return &Handler{Store: store, Core: coreStore, Access: accessService}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/time-entries", func(r chi.Router) {
		r.With(middleware.RequirePermission(access.PermTimeTrackingView, h.Access)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(access.PermTimeTrackingEdit, h.Access)).Post("/", h.handleCreate)
		r.Route("/{entryID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(access.PermTimeTrackingView, h.Access)).Get("/", h.handleGet)
			r.With(middleware.RequirePermission(access.PermTimeTrackingEdit, h.Access)).Put("/", h.handleUpdate)
			r.With(middleware.RequirePermission(access.PermTimeTrackingEdit, h.Access)).Delete("/", h.handleDelete)
			r.With(middleware.RequirePermission(access.PermTimeTrackingApprove, h.Access)).Post("/approve", h.handleApprove)
			r.With(middleware.RequirePermission(access.PermTimeTrackingApprove, h.Access)).Post("/unapprove", h.handleUnapprove)
		})
	})

	r.Route("/payroll/register", func(r chi.Router) {
		r.With(middleware.RequirePermission(access.PermTimeTrackingView, h.Access)).Get("/", h.handleRegister)
		r.With(middleware.RequirePermission(access.PermTimeTrackingExport, h.Access)).Get("/export.csv", h.handleExportCSV)
		r.With(middleware.RequirePermission(access.PermTimeTrackingExport, h.Access)).Get("/export.pdf", h.handleExportPDF)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	period, ok := h.resolvePeriod(w, r)
	if !ok {
		return
	}

	var entries []timetracking.TimeEntry
	var err error
	if employeeID := r.URL.Query().Get("employeeId"); employeeID != "" {
		entries, err = h.Store.ListByEmployee(r.Context(), employeeID, period.Start, period.End)
	} else {
		entries, err = h.Store.ListRange(r.Context(), period.Start, period.End)
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list time entries", middleware.GetRequestID(r.Context()))
		return
	}
	if entries == nil {
		entries = []timetracking.TimeEntry{}
	}

	api.Success(w, map[string]any{
		"period":  period,
		"label":   period.Label(),
		"entries": entries,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	entry, err := h.Store.Get(r.Context(), chi.URLParam(r, "entryID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "time entry not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, entry, middleware.GetRequestID(r.Context()))
}

type entryRequest struct {
	EmployeeID string  `json:"employeeId"`
	ProjectID  string  `json:"projectId"`
	Date       string  `json:"date"`
	Hours      float64 `json:"hours"`
	CostCode   string  `json:"costCode"`
	Notes      string  `json:"notes"`
}

func (h *Handler) decodeEntry(w http.ResponseWriter, r *http.Request) (timetracking.TimeEntry, bool) {
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid time entry payload", middleware.GetRequestID(r.Context()))
		return timetracking.TimeEntry{}, false
	}

	v := shared.NewValidator()
	v.Required("employeeId", req.EmployeeID, "employee is required")
	v.Positive("hours", req.Hours, "hours must be greater than zero")
	if req.Hours > 24 {
		v.Add("hours", "hours cannot exceed 24 for a single day")
	}
	date, _ := v.Date("date", req.Date)
	if v.HasIssues() {
		v.Reject(w, middleware.GetRequestID(r.Context()))
		return timetracking.TimeEntry{}, false
	}

	return timetracking.TimeEntry{
		EmployeeID: req.EmployeeID,
		ProjectID:  req.ProjectID,
		Date:       date,
		Hours:      req.Hours,
		CostCode:   req.CostCode,
		Notes:      req.Notes,
	}, true
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.decodeEntry(w, r)
	if !ok {
		return
	}
	id, err := h.Store.Create(r.Context(), entry)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to create time entry", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.decodeEntry(w, r)
	if !ok {
		return
	}
	entry.ID = chi.URLParam(r, "entryID")

	// Approved entries are frozen; they must be unapproved before editing.
	existing, err := h.Store.Get(r.Context(), entry.ID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "time entry not found", middleware.GetRequestID(r.Context()))
		return
	}
	if existing.Approved {
		api.Fail(w, http.StatusConflict, "entry_approved", "approved entries cannot be edited", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Store.Update(r.Context(), entry); err != nil {
		api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to update time entry", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "updated"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "entryID")
	existing, err := h.Store.Get(r.Context(), id)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "time entry not found", middleware.GetRequestID(r.Context()))
		return
	}
	if existing.Approved {
		api.Fail(w, http.StatusConflict, "entry_approved", "approved entries cannot be deleted", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Store.Delete(r.Context(), id); err != nil {
		api.Fail(w, http.StatusInternalServerError, "delete_failed", "failed to delete time entry", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.setApproved(w, r, true)
}

func (h *Handler) handleUnapprove(w http.ResponseWriter, r *http.Request) {
	h.setApproved(w, r, false)
}

func (h *Handler) setApproved(w http.ResponseWriter, r *http.Request, approved bool) {
	if err := h.Store.SetApproved(r.Context(), chi.URLParam(r, "entryID"), approved); err != nil {
		api.Fail(w, http.StatusInternalServerError, "approve_failed", "failed to change approval state", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"approved": approved}, middleware.GetRequestID(r.Context()))
}

// resolvePeriod picks the pay period for a request. With no "date" query
// parameter it is the current period under the company's cadence; clients
// page with Next/Previous by passing any date inside the wanted period.
func (h *Handler) resolvePeriod(w http.ResponseWriter, r *http.Request) (payperiod.Period, bool) {
	profile, err := h.Core.GetCompanyProfile(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "load_failed", "failed to load company profile", middleware.GetRequestID(r.Context()))
		return payperiod.Period{}, false
	}

	ref := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := shared.ParseDate(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD", middleware.GetRequestID(r.Context()))
			return payperiod.Period{}, false
		}
		ref = parsed
	}

	return payperiod.Compute(ref, payperiod.Type(profile.PayPeriodType), profile.AnchorDate), true
}

func (h *Handler) buildRegister(w http.ResponseWriter, r *http.Request) (payperiod.Period, []timetracking.RegisterRow, bool) {
	period, ok := h.resolvePeriod(w, r)
	if !ok {
		return payperiod.Period{}, nil, false
	}

	entries, err := h.Store.ListRange(r.Context(), period.Start, period.End)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list time entries", middleware.GetRequestID(r.Context()))
		return payperiod.Period{}, nil, false
	}
	employees, err := h.Core.ListEmployees(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return payperiod.Period{}, nil, false
	}

	return period, timetracking.BuildRegister(entries, employees), true
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	period, rows, ok := h.buildRegister(w, r)
	if !ok {
		return
	}
	if rows == nil {
		rows = []timetracking.RegisterRow{}
	}
	api.Success(w, map[string]any{
		"period":  period,
		"label":   period.Label(),
		"rows":    rows,
		"summary": timetracking.Summarize(rows),
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	period, rows, ok := h.buildRegister(w, r)
	if !ok {
		return
	}

	filename := fmt.Sprintf("payroll-%s.csv", period.Start.Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"Employee", "Regular Hours", "Overtime Hours", "Total Hours", "Rate", "Pay"})
	for _, row := range rows {
		_ = cw.Write([]string{
			row.LastName + ", " + row.FirstName,
			fmt.Sprintf("%.2f", row.RegularHours),
			fmt.Sprintf("%.2f", row.OvertimeHours),
			fmt.Sprintf("%.2f", row.TotalHours),
			fmt.Sprintf("%.2f", row.HourlyRate),
			fmt.Sprintf("%.2f", row.Pay),
		})
	}
	summary := timetracking.Summarize(rows)
	_ = cw.Write([]string{
		"Total",
		fmt.Sprintf("%.2f", summary.RegularHours),
		fmt.Sprintf("%.2f", summary.OvertimeHours),
		fmt.Sprintf("%.2f", summary.RegularHours+summary.OvertimeHours),
		"",
		fmt.Sprintf("%.2f", summary.TotalPay),
	})
	cw.Flush()
}

func (h *Handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	period, rows, ok := h.buildRegister(w, r)
	if !ok {
		return
	}

	profile, err := h.Core.GetCompanyProfile(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "load_failed", "failed to load company profile", middleware.GetRequestID(r.Context()))
		return
	}

	filename := fmt.Sprintf("payroll-%s.pdf", period.Start.Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := timetracking.WriteRegisterPDF(w, profile.CompanyName, period, rows); err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to render payroll register", middleware.GetRequestID(r.Context()))
	}
}
