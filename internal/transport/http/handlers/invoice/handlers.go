package invoicehandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"crewsite/internal/domain/access"
	"crewsite/internal/domain/invoice"
	"crewsite/internal/transport/http/api"
	"crewsite/internal/transport/http/middleware"
	"crewsite/internal/transport/http/shared"
)

type Handler struct {
	Store  *invoice.Store
	Access *access.Service
}

func NewHandler(store *invoice.Store, accessService *access.Service) *Handler {
	return &Handler{Store: store, Access: accessService}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/invoices", func(r chi.Router) {
		r.With(middleware.RequirePermission(access.PermInvoicesView, h.Access)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(access.PermInvoicesEdit, h.Access)).Post("/", h.handleCreate)
		r.Route("/{invoiceID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(access.PermInvoicesView, h.Access)).Get("/", h.handleGet)
			r.With(middleware.RequirePermission(access.PermInvoicesEdit, h.Access)).Put("/", h.handleUpdate)
			r.With(middleware.RequirePermission(access.PermInvoicesEdit, h.Access)).Delete("/", h.handleDelete)
			r.With(middleware.RequirePermission(access.PermInvoicesEdit, h.Access)).Post("/submit", h.transitionTo(invoice.StatusSubmitted))
			r.With(middleware.RequirePermission(access.PermInvoicesApprove, h.Access)).Post("/approve", h.transitionTo(invoice.StatusApproved))
			r.With(middleware.RequirePermission(access.PermInvoicesApprove, h.Access)).Post("/reject", h.transitionTo(invoice.StatusDraft))
			r.With(middleware.RequirePermission(access.PermInvoicesApprove, h.Access)).Post("/pay", h.transitionTo(invoice.StatusPaid))
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.Store.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list invoices", middleware.GetRequestID(r.Context()))
		return
	}
	if invoices == nil {
		invoices = []invoice.Invoice{}
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filtered := invoices[:0]
		for _, inv := range invoices {
			if inv.Status == status {
				filtered = append(filtered, inv)
			}
		}
		invoices = filtered
	}
	api.Success(w, invoices, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Store.Get(r.Context(), chi.URLParam(r, "invoiceID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "invoice not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, inv, middleware.GetRequestID(r.Context()))
}

type invoiceRequest struct {
	VendorID  string         `json:"vendorId"`
	ProjectID string         `json:"projectId"`
	Number    string         `json:"number"`
	Date      string         `json:"date"`
	DueDate   string         `json:"dueDate"`
	Lines     []invoice.Line `json:"lines"`
}

func (h *Handler) decodeInvoice(w http.ResponseWriter, r *http.Request) (invoice.Invoice, bool) {
	var req invoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid invoice payload", middleware.GetRequestID(r.Context()))
		return invoice.Invoice{}, false
	}

	v := shared.NewValidator()
	v.Required("vendorId", req.VendorID, "vendor is required")
	v.Required("number", req.Number, "invoice number is required")
	date, _ := v.Date("date", req.Date)
	if len(req.Lines) == 0 {
		v.Add("lines", "at least one line item is required")
	}
	for i, line := range req.Lines {
		if line.Description == "" {
			v.Add("lines", fmt.Sprintf("line %d needs a description", i+1))
		}
		if line.Quantity <= 0 {
			v.Add("lines", "line quantities must be greater than zero")
		}
		if line.UnitPrice < 0 {
			v.Add("lines", "line prices cannot be negative")
		}
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := shared.ParseDate(req.DueDate)
		if err != nil {
			v.Add("dueDate", "due date must be YYYY-MM-DD")
		} else {
			dueDate = &parsed
		}
	}
	if v.HasIssues() {
		v.Reject(w, middleware.GetRequestID(r.Context()))
		return invoice.Invoice{}, false
	}

	subtotal, tax, total := invoice.Totals(req.Lines, invoice.DefaultTaxRate)
	return invoice.Invoice{
		VendorID:  req.VendorID,
		ProjectID: req.ProjectID,
		Number:    req.Number,
		Date:      date,
		DueDate:   dueDate,
		Lines:     req.Lines,
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     total,
	}, true
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.decodeInvoice(w, r)
	if !ok {
		return
	}
	id, err := h.Store.Create(r.Context(), inv)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to create invoice", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.decodeInvoice(w, r)
	if !ok {
		return
	}
	inv.ID = chi.URLParam(r, "invoiceID")

	// Only drafts are editable; later statuses change through transitions.
	existing, err := h.Store.Get(r.Context(), inv.ID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "invoice not found", middleware.GetRequestID(r.Context()))
		return
	}
	if existing.Status != invoice.StatusDraft {
		api.Fail(w, http.StatusConflict, "not_draft", "only draft invoices can be edited", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Store.Update(r.Context(), inv); err != nil {
		api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to update invoice", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "updated"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	existing, err := h.Store.Get(r.Context(), chi.URLParam(r, "invoiceID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "invoice not found", middleware.GetRequestID(r.Context()))
		return
	}
	if existing.Status != invoice.StatusDraft {
		api.Fail(w, http.StatusConflict, "not_draft", "only draft invoices can be deleted", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Store.Delete(r.Context(), existing.ID); err != nil {
		api.Fail(w, http.StatusInternalServerError, "delete_failed", "failed to delete invoice", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) transitionTo(target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inv, err := h.Store.Get(r.Context(), chi.URLParam(r, "invoiceID"))
		if err != nil {
			api.Fail(w, http.StatusNotFound, "not_found", "invoice not found", middleware.GetRequestID(r.Context()))
			return
		}

		if err := invoice.ValidateTransition(inv.Status, target); err != nil {
			if errors.Is(err, invoice.ErrInvalidTransition) {
				api.Fail(w, http.StatusConflict, "invalid_transition",
					"cannot move invoice from "+inv.Status+" to "+target, middleware.GetRequestID(r.Context()))
				return
			}
			api.Fail(w, http.StatusInternalServerError, "transition_failed", "failed to change invoice status", middleware.GetRequestID(r.Context()))
			return
		}

		if err := h.Store.SetStatus(r.Context(), inv.ID, target); err != nil {
			api.Fail(w, http.StatusInternalServerError, "transition_failed", "failed to change invoice status", middleware.GetRequestID(r.Context()))
			return
		}
		api.Success(w, map[string]string{"status": target}, middleware.GetRequestID(r.Context()))
	}
}
