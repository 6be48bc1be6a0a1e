package sitereporthandler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"crewsite/internal/domain/access"
	"crewsite/internal/domain/core"
	"crewsite/internal/domain/sitereport"
	"crewsite/internal/transport/http/api"
	"crewsite/internal/transport/http/middleware"
	"crewsite/internal/transport/http/shared"
)

type Handler struct {
	Store  *sitereport.Store
	Core   *core.Store
	Access *access.Service
}

func NewHandler(store *sitereport.Store, coreStore *core.Store, accessService *access.Service) *Handler {
	return &Handler{Store: store, Core: coreStore, Access: accessService}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/site-reports", func(r chi.Router) {
		r.With(middleware.RequirePermission(access.PermSiteReportsView, h.Access)).Get("/", h.handleListReports)
		r.With(middleware.RequirePermission(access.PermSiteReportsEdit, h.Access)).Post("/", h.handleCreateReport)
		r.Route("/{reportID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(access.PermSiteReportsView, h.Access)).Get("/", h.handleGetReport)
			r.With(middleware.RequirePermission(access.PermSiteReportsView, h.Access)).Get("/export.pdf", h.handleReportPDF)
			r.With(middleware.RequirePermission(access.PermSiteReportsEdit, h.Access)).Put("/", h.handleUpdateReport)
			r.With(middleware.RequirePermission(access.PermSiteReportsEdit, h.Access)).Delete("/", h.handleDeleteReport)
		})
	})

	r.Route("/flha", func(r chi.Router) {
		r.With(middleware.RequirePermission(access.PermFLHAView, h.Access)).Get("/", h.handleListFLHA)
		r.With(middleware.RequirePermission(access.PermFLHAEdit, h.Access)).Post("/", h.handleCreateFLHA)
		r.Route("/{formID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(access.PermFLHAView, h.Access)).Get("/", h.handleGetFLHA)
			r.With(middleware.RequirePermission(access.PermFLHAView, h.Access)).Get("/export.pdf", h.handleFLHAPDF)
			r.With(middleware.RequirePermission(access.PermFLHAEdit, h.Access)).Post("/review", h.handleReviewFLHA)
			r.With(middleware.RequirePermission(access.PermFLHAEdit, h.Access)).Delete("/", h.handleDeleteFLHA)
		})
	})
}

func (h *Handler) handleListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.Store.ListReports(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list site reports", middleware.GetRequestID(r.Context()))
		return
	}
	if reports == nil {
		reports = []sitereport.SiteReport{}
	}
	api.Success(w, reports, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.Store.GetReport(r.Context(), chi.URLParam(r, "reportID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "site report not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, report, middleware.GetRequestID(r.Context()))
}

type reportRequest struct {
	ProjectID     string `json:"projectId"`
	Date          string `json:"date"`
	Weather       string `json:"weather"`
	CrewCount     int    `json:"crewCount"`
	WorkCompleted string `json:"workCompleted"`
	Delays        string `json:"delays"`
	Visitors      string `json:"visitors"`
}

func (h *Handler) decodeReport(w http.ResponseWriter, r *http.Request) (sitereport.SiteReport, bool) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid site report payload", middleware.GetRequestID(r.Context()))
		return sitereport.SiteReport{}, false
	}

	v := shared.NewValidator()
	v.Required("projectId", req.ProjectID, "project is required")
	v.Required("workCompleted", req.WorkCompleted, "work completed is required")
	date, _ := v.Date("date", req.Date)
	if req.CrewCount < 0 {
		v.Add("crewCount", "crew count cannot be negative")
	}
	if v.HasIssues() {
		v.Reject(w, middleware.GetRequestID(r.Context()))
		return sitereport.SiteReport{}, false
	}

	return sitereport.SiteReport{
		ProjectID:     req.ProjectID,
		Date:          date,
		Weather:       req.Weather,
		CrewCount:     req.CrewCount,
		WorkCompleted: req.WorkCompleted,
		Delays:        req.Delays,
		Visitors:      req.Visitors,
	}, true
}

func (h *Handler) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	report, ok := h.decodeReport(w, r)
	if !ok {
		return
	}
	if user, ok := middleware.GetUser(r.Context()); ok {
		report.SubmittedBy = user.Email
	}

	id, err := h.Store.CreateReport(r.Context(), report)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to create site report", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateReport(w http.ResponseWriter, r *http.Request) {
	report, ok := h.decodeReport(w, r)
	if !ok {
		return
	}
	report.ID = chi.URLParam(r, "reportID")

	existing, err := h.Store.GetReport(r.Context(), report.ID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "site report not found", middleware.GetRequestID(r.Context()))
		return
	}
	report.SubmittedBy = existing.SubmittedBy

	if err := h.Store.UpdateReport(r.Context(), report); err != nil {
		api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to update site report", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "updated"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteReport(r.Context(), chi.URLParam(r, "reportID")); err != nil {
		api.Fail(w, http.StatusInternalServerError, "delete_failed", "failed to delete site report", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	report, err := h.Store.GetReport(r.Context(), chi.URLParam(r, "reportID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "site report not found", middleware.GetRequestID(r.Context()))
		return
	}

	projectName := h.projectName(r, report.ProjectID)
	filename := fmt.Sprintf("site-report-%s.pdf", report.Date.Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := sitereport.WriteReportPDF(w, projectName, *report); err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to render site report", middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) handleListFLHA(w http.ResponseWriter, r *http.Request) {
	forms, err := h.Store.ListFLHA(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list hazard assessments", middleware.GetRequestID(r.Context()))
		return
	}
	if forms == nil {
		forms = []sitereport.FLHA{}
	}
	api.Success(w, forms, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetFLHA(w http.ResponseWriter, r *http.Request) {
	form, err := h.Store.GetFLHA(r.Context(), chi.URLParam(r, "formID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "hazard assessment not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, form, middleware.GetRequestID(r.Context()))
}

type flhaRequest struct {
	ProjectID  string                  `json:"projectId"`
	EmployeeID string                  `json:"employeeId"`
	Date       string                  `json:"date"`
	Task       string                  `json:"task"`
	Hazards    []sitereport.HazardItem `json:"hazards"`
}

func (h *Handler) handleCreateFLHA(w http.ResponseWriter, r *http.Request) {
	var req flhaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid hazard assessment payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("projectId", req.ProjectID, "project is required")
	v.Required("employeeId", req.EmployeeID, "employee is required")
	v.Required("task", req.Task, "task is required")
	date, _ := v.Date("date", req.Date)
	for i, hazard := range req.Hazards {
		if hazard.Hazard == "" {
			v.Add(fmt.Sprintf("hazards[%d]", i), "hazard description is required")
		}
	}
	if v.HasIssues() {
		v.Reject(w, middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Store.CreateFLHA(r.Context(), sitereport.FLHA{
		ProjectID:  req.ProjectID,
		EmployeeID: req.EmployeeID,
		Date:       date,
		Task:       req.Task,
		Hazards:    req.Hazards,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to create hazard assessment", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

type reviewRequest struct {
	Reviewed bool `json:"reviewed"`
}

func (h *Handler) handleReviewFLHA(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid review payload", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Store.SetFLHAReviewed(r.Context(), chi.URLParam(r, "formID"), req.Reviewed); err != nil {
		api.Fail(w, http.StatusInternalServerError, "review_failed", "failed to update review state", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"reviewed": req.Reviewed}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteFLHA(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteFLHA(r.Context(), chi.URLParam(r, "formID")); err != nil {
		api.Fail(w, http.StatusInternalServerError, "delete_failed", "failed to delete hazard assessment", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleFLHAPDF(w http.ResponseWriter, r *http.Request) {
	form, err := h.Store.GetFLHA(r.Context(), chi.URLParam(r, "formID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "hazard assessment not found", middleware.GetRequestID(r.Context()))
		return
	}

	projectName := h.projectName(r, form.ProjectID)
	employeeName := ""
	if emp, err := h.Core.GetEmployee(r.Context(), form.EmployeeID); err == nil {
		employeeName = emp.FirstName + " " + emp.LastName
	}

	filename := fmt.Sprintf("flha-%s.pdf", form.Date.Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := sitereport.WriteFLHAPDF(w, projectName, employeeName, *form); err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to render hazard assessment", middleware.GetRequestID(r.Context()))
	}
}

// projectName is best effort; exports still render with a blank header when
// the project row is gone.
func (h *Handler) projectName(r *http.Request, projectID string) string {
	if projectID == "" {
		return ""
	}
	project, err := h.Core.GetProject(r.Context(), projectID)
	if err != nil {
		return ""
	}
	return project.Name
}
