package payperiodhandler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"crewsite/internal/domain/access"
	"crewsite/internal/domain/core"
	"crewsite/internal/domain/payperiod"
	"crewsite/internal/transport/http/api"
	"crewsite/internal/transport/http/middleware"
	"crewsite/internal/transport/http/shared"
)

type Handler struct {
	Core   *core.Store
	Access *access.Service
}

func NewHandler(coreStore *core.Store, accessService *access.Service) *Handler {
	return &Handler{Core: coreStore, Access: accessService}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/pay-periods", func(r chi.Router) {
		r.With(middleware.RequirePermission(access.PermTimeTrackingView, h.Access)).Get("/current", h.handleCurrent)
		r.With(middleware.RequirePermission(access.PermTimeTrackingView, h.Access)).Get("/next", h.handleNext)
		r.With(middleware.RequirePermission(access.PermTimeTrackingView, h.Access)).Get("/previous", h.handlePrevious)
	})
}

func (h *Handler) handleCurrent(w http.ResponseWriter, r *http.Request) {
	period, _, _, ok := h.compute(w, r)
	if !ok {
		return
	}
	h.respond(w, r, period)
}

func (h *Handler) handleNext(w http.ResponseWriter, r *http.Request) {
	period, cadence, anchor, ok := h.compute(w, r)
	if !ok {
		return
	}
	h.respond(w, r, payperiod.Next(period, cadence, anchor))
}

func (h *Handler) handlePrevious(w http.ResponseWriter, r *http.Request) {
	period, cadence, anchor, ok := h.compute(w, r)
	if !ok {
		return
	}
	h.respond(w, r, payperiod.Previous(period, cadence, anchor))
}

// compute resolves the period containing the reference date under the
// company cadence. Relative endpoints step from that period, so a client
// can walk the calendar by feeding back any date from the previous result.
func (h *Handler) compute(w http.ResponseWriter, r *http.Request) (payperiod.Period, payperiod.Type, string, bool) {
	profile, err := h.Core.GetCompanyProfile(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "load_failed", "failed to load company profile", middleware.GetRequestID(r.Context()))
		return payperiod.Period{}, "", "", false
	}

	ref := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := shared.ParseDate(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD", middleware.GetRequestID(r.Context()))
			return payperiod.Period{}, "", "", false
		}
		ref = parsed
	}

	cadence := payperiod.Type(profile.PayPeriodType)
	return payperiod.Compute(ref, cadence, profile.AnchorDate), cadence, profile.AnchorDate, true
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, period payperiod.Period) {
	api.Success(w, map[string]any{
		"start": period.Start.Format("2006-01-02"),
		"end":   period.End.Format("2006-01-02"),
		"label": period.Label(),
		"month": period.MonthLabel(),
	}, middleware.GetRequestID(r.Context()))
}
