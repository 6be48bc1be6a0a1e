package corehandler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"crewsite/internal/domain/access"
	"crewsite/internal/domain/core"
	"crewsite/internal/domain/payperiod"
	"crewsite/internal/transport/http/api"
	"crewsite/internal/transport/http/middleware"
	"crewsite/internal/transport/http/shared"
)

type Handler struct {
	Store  *core.Store
	Access *access.Service
}

func NewHandler(store *core.Store, accessService *access.Service) *Handler {
	return &Handler{Store: store, Access: accessService}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequirePermission(access.PermEmployeesView, h.Access)).Get("/", h.handleListEmployees)
		r.With(middleware.RequirePermission(access.PermEmployeesEdit, h.Access)).Post("/", h.handleCreateEmployee)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(access.PermEmployeesView, h.Access)).Get("/", h.handleGetEmployee)
			r.With(middleware.RequirePermission(access.PermEmployeesEdit, h.Access)).Put("/", h.handleUpdateEmployee)
			r.With(middleware.RequirePermission(access.PermEmployeesEdit, h.Access)).Delete("/", h.handleDeleteEmployee)
		})
	})

	r.Route("/equipment", func(r chi.Router) {
		r.With(middleware.RequirePermission(access.PermEquipmentView, h.Access)).Get("/", h.handleListEquipment)
		r.With(middleware.RequirePermission(access.PermEquipmentEdit, h.Access)).Post("/", h.handleCreateEquipment)
		r.Route("/{equipmentID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(access.PermEquipmentEdit, h.Access)).Put("/", h.handleUpdateEquipment)
			r.With(middleware.RequirePermission(access.PermEquipmentEdit, h.Access)).Delete("/", h.handleDeleteEquipment)
		})
	})

	r.Route("/vendors", func(r chi.Router) {
		r.With(middleware.RequirePermission(access.PermVendorsView, h.Access)).Get("/", h.handleListVendors)
		r.With(middleware.RequirePermission(access.PermVendorsEdit, h.Access)).Post("/", h.handleCreateVendor)
		r.Route("/{vendorID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(access.PermVendorsEdit, h.Access)).Put("/", h.handleUpdateVendor)
			r.With(middleware.RequirePermission(access.PermVendorsEdit, h.Access)).Delete("/", h.handleDeleteVendor)
		})
	})

	r.Route("/projects", func(r chi.Router) {
		r.With(middleware.RequirePermission(access.PermProjectsView, h.Access)).Get("/", h.handleListProjects)
		r.With(middleware.RequirePermission(access.PermProjectsEdit, h.Access)).Post("/", h.handleCreateProject)
		r.Route("/{projectID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(access.PermProjectsView, h.Access)).Get("/", h.handleGetProject)
			r.With(middleware.RequirePermission(access.PermProjectsEdit, h.Access)).Put("/", h.handleUpdateProject)
			r.With(middleware.RequirePermission(access.PermProjectsEdit, h.Access)).Delete("/", h.handleDeleteProject)
		})
	})

	r.Route("/company-profile", func(r chi.Router) {
		r.With(middleware.RequirePermission(access.PermSettingsView, h.Access)).Get("/", h.handleGetCompanyProfile)
		r.With(middleware.RequirePermission(access.PermSettingsView, h.Access)).Put("/", h.handleUpdateCompanyProfile)
	})
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	if employees == nil {
		employees = []core.Employee{}
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Store.GetEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func validateEmployee(emp core.Employee) *shared.Validator {
	v := shared.NewValidator()
	v.Required("firstName", emp.FirstName, "first name is required")
	v.Required("lastName", emp.LastName, "last name is required")
	v.Required("email", emp.Email, "email is required")
	if emp.HourlyRate < 0 {
		v.Add("hourlyRate", "hourly rate cannot be negative")
	}
	if emp.Status != "" {
		v.Enum("status", emp.Status, []string{core.StatusActive, core.StatusInactive}, "status must be active or inactive")
	}
	return v
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var emp core.Employee
	if err := json.NewDecoder(r.Body).Decode(&emp); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid employee payload", middleware.GetRequestID(r.Context()))
		return
	}
	emp.Email = strings.TrimSpace(emp.Email)
	if v := validateEmployee(emp); v.HasIssues() {
		v.Reject(w, middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Store.CreateEmployee(r.Context(), emp)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to create employee", middleware.GetRequestID(r.Context()))
		return
	}
	h.Access.Invalidate()
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var emp core.Employee
	if err := json.NewDecoder(r.Body).Decode(&emp); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid employee payload", middleware.GetRequestID(r.Context()))
		return
	}
	emp.ID = chi.URLParam(r, "employeeID")
	emp.Email = strings.TrimSpace(emp.Email)
	if v := validateEmployee(emp); v.HasIssues() {
		v.Reject(w, middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Store.UpdateEmployee(r.Context(), emp); err != nil {
		api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to update employee", middleware.GetRequestID(r.Context()))
		return
	}
	h.Access.Invalidate()
	api.Success(w, map[string]string{"status": "updated"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteEmployee(r.Context(), chi.URLParam(r, "employeeID")); err != nil {
		api.Fail(w, http.StatusInternalServerError, "delete_failed", "failed to delete employee", middleware.GetRequestID(r.Context()))
		return
	}
	h.Access.Invalidate()
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListEquipment(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.ListEquipment(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list equipment", middleware.GetRequestID(r.Context()))
		return
	}
	if items == nil {
		items = []core.Equipment{}
	}
	api.Success(w, items, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateEquipment(w http.ResponseWriter, r *http.Request) {
	var eq core.Equipment
	if err := json.NewDecoder(r.Body).Decode(&eq); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid equipment payload", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("name", eq.Name, "name is required")
	if v.HasIssues() {
		v.Reject(w, middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Store.CreateEquipment(r.Context(), eq)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to create equipment", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateEquipment(w http.ResponseWriter, r *http.Request) {
	var eq core.Equipment
	if err := json.NewDecoder(r.Body).Decode(&eq); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid equipment payload", middleware.GetRequestID(r.Context()))
		return
	}
	eq.ID = chi.URLParam(r, "equipmentID")
	if err := h.Store.UpdateEquipment(r.Context(), eq); err != nil {
		api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to update equipment", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "updated"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteEquipment(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteEquipment(r.Context(), chi.URLParam(r, "equipmentID")); err != nil {
		api.Fail(w, http.StatusInternalServerError, "delete_failed", "failed to delete equipment", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.Store.ListVendors(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list vendors", middleware.GetRequestID(r.Context()))
		return
	}
	if vendors == nil {
		vendors = []core.Vendor{}
	}
	api.Success(w, vendors, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateVendor(w http.ResponseWriter, r *http.Request) {
	var vendor core.Vendor
	if err := json.NewDecoder(r.Body).Decode(&vendor); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid vendor payload", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("name", vendor.Name, "name is required")
	if v.HasIssues() {
		v.Reject(w, middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Store.CreateVendor(r.Context(), vendor)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to create vendor", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateVendor(w http.ResponseWriter, r *http.Request) {
	var vendor core.Vendor
	if err := json.NewDecoder(r.Body).Decode(&vendor); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid vendor payload", middleware.GetRequestID(r.Context()))
		return
	}
	vendor.ID = chi.URLParam(r, "vendorID")
	if err := h.Store.UpdateVendor(r.Context(), vendor); err != nil {
		api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to update vendor", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "updated"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteVendor(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteVendor(r.Context(), chi.URLParam(r, "vendorID")); err != nil {
		api.Fail(w, http.StatusInternalServerError, "delete_failed", "failed to delete vendor", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Store.ListProjects(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list projects", middleware.GetRequestID(r.Context()))
		return
	}
	if projects == nil {
		projects = []core.Project{}
	}
	api.Success(w, projects, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.Store.GetProject(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "project not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, project, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var project core.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid project payload", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("name", project.Name, "name is required")
	if v.HasIssues() {
		v.Reject(w, middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Store.CreateProject(r.Context(), project)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to create project", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var project core.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid project payload", middleware.GetRequestID(r.Context()))
		return
	}
	project.ID = chi.URLParam(r, "projectID")
	if err := h.Store.UpdateProject(r.Context(), project); err != nil {
		api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to update project", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "updated"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteProject(r.Context(), chi.URLParam(r, "projectID")); err != nil {
		api.Fail(w, http.StatusInternalServerError, "delete_failed", "failed to delete project", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetCompanyProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Store.GetCompanyProfile(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "load_failed", "failed to load company profile", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, profile, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateCompanyProfile(w http.ResponseWriter, r *http.Request) {
	var profile core.CompanyProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid company profile payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("companyName", profile.CompanyName, "company name is required")
	v.Enum("payPeriodType", profile.PayPeriodType, []string{
		string(payperiod.Weekly), string(payperiod.BiWeekly),
		string(payperiod.SemiMonthly), string(payperiod.Monthly),
	}, "unknown pay period type")
	// A malformed anchor is tolerated at calculation time, but reject it at
	// the door so settings edits surface the mistake immediately.
	if profile.AnchorDate != "" {
		if _, err := shared.ParseDate(profile.AnchorDate); err != nil {
			v.Add("anchorDate", "anchor date must be YYYY-MM-DD")
		}
	}
	if v.HasIssues() {
		v.Reject(w, middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Store.UpdateCompanyProfile(r.Context(), profile); err != nil {
		api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to update company profile", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "updated"}, middleware.GetRequestID(r.Context()))
}
