package handlers

import (
	"net/http"
	"strconv"

	"github.com/satheeshds/invoicer/report"
)

// maxDashboardMonths bounds the revenue series a request may ask for.
const maxDashboardMonths = 36

// GetDashboard retrieves dashboard summary statistics
// @Summary      Get dashboard
// @Description  Revenue this month and overall, outstanding amount, month over month trend, revenue per month and recent invoices.
// @Tags         dashboard
// @Produce      json
// @Param        X-Owner-ID  header    string  true   "Owner"
// @Param        months      query     int     false  "Revenue series length (default 6)"
// @Success      200         {object}  Response{data=report.Dashboard}
// @Failure      400         {object}  Response{error=string}
// @Router       /dashboard [get]
// @Security     BasicAuth
func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	months := report.DefaultSeriesMonths
	if m := r.URL.Query().Get("months"); m != "" {
		n, err := strconv.Atoi(m)
		if err != nil || n < 1 || n > maxDashboardMonths {
			writeError(w, http.StatusBadRequest, "months must be between 1 and "+strconv.Itoa(maxDashboardMonths))
			return
		}
		months = n
	}

	owner := ownerID(r)
	invs, err := s.Invoices.List(r.Context(), owner)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	clients, err := s.Clients.ListClients(r.Context(), owner, "")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, report.BuildDashboard(invs, len(clients), s.now(), months))
}

// GetQuota reports usage against the monthly cap
// @Summary      Get quota
// @Description  Paid and pending total in the current cap window against the configured monthly cap.
// @Tags         dashboard
// @Produce      json
// @Param        X-Owner-ID  header    string  true  "Owner"
// @Success      200         {object}  Response{data=invoicing.QuotaStatus}
// @Router       /quota [get]
// @Security     BasicAuth
func (s *Server) GetQuota(w http.ResponseWriter, r *http.Request) {
	q, err := s.Invoices.Quota(r.Context(), ownerID(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}
