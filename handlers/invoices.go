package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/satheeshds/invoicer/invoicing"
	"github.com/satheeshds/invoicer/models"
	"github.com/satheeshds/invoicer/report"
)

// InvoiceList is a filtered listing with its summary.
type InvoiceList struct {
	Invoices []models.Invoice `json:"invoices"`
	Stats    report.Stats     `json:"stats"`
}

// InvoiceDetail is an invoice with the statuses it may move to next.
type InvoiceDetail struct {
	*models.Invoice
	NextStatuses []models.Status `json:"next_statuses"`
}

// StatusInput is the body of a status change.
type StatusInput struct {
	Status models.Status `json:"status"`
}

func (s *Server) filteredInvoices(r *http.Request) ([]models.Invoice, error) {
	q := r.URL.Query()
	f, err := report.ParseFilter(q.Get("period"), q.Get("status"), q.Get("search"), q.Get("sort"), q.Get("dir"))
	if err != nil {
		return nil, &invoicing.ValidationError{Field: "query", Reason: err.Error()}
	}
	invs, err := s.Invoices.List(r.Context(), ownerID(r))
	if err != nil {
		return nil, err
	}
	return report.Apply(invs, f, s.now()), nil
}

// ListInvoices lists the owner's invoices
// @Summary      List invoices
// @Description  Get invoices filtered by period, status and search, with count and amount stats.
// @Tags         invoices
// @Produce      json
// @Param        X-Owner-ID  header    string  true   "Owner"
// @Param        period      query     string  false  "all, month or year"
// @Param        status      query     string  false  "draft, pending, paid, overdue, cancelled or all"
// @Param        search      query     string  false  "Search by client name or invoice number"
// @Param        sort        query     string  false  "date, amount or number"
// @Param        dir         query     string  false  "asc or desc"
// @Success      200         {object}  Response{data=InvoiceList}
// @Failure      400         {object}  Response{error=string}
// @Router       /invoices [get]
// @Security     BasicAuth
func (s *Server) ListInvoices(w http.ResponseWriter, r *http.Request) {
	invs, err := s.filteredInvoices(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, InvoiceList{Invoices: invs, Stats: report.ComputeStats(invs)})
}

// ExportInvoices writes the filtered listing as CSV
// @Summary      Export invoices
// @Description  Download the filtered listing as CSV in the owner's currency.
// @Tags         invoices
// @Produce      text/csv
// @Param        X-Owner-ID  header    string  true   "Owner"
// @Param        period      query     string  false  "all, month or year"
// @Param        status      query     string  false  "Status filter"
// @Param        search      query     string  false  "Search by client name or invoice number"
// @Param        sort        query     string  false  "date, amount or number"
// @Param        dir         query     string  false  "asc or desc"
// @Success      200         {string}  string
// @Router       /invoices/export.csv [get]
// @Security     BasicAuth
func (s *Server) ExportInvoices(w http.ResponseWriter, r *http.Request) {
	invs, err := s.filteredInvoices(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	st, err := s.Settings.GetOrCreate(r.Context(), ownerID(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="invoices_%s.csv"`, s.now().Format(models.DateLayout)))
	if err := report.WriteCSV(w, invs, st.Currency); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("writing csv export")
	}
}

// GetInvoice retrieves a single invoice by ID
// @Summary      Get invoice
// @Description  Get an invoice with the statuses it may move to next.
// @Tags         invoices
// @Produce      json
// @Param        X-Owner-ID  header    string  true  "Owner"
// @Param        id          path      string  true  "Invoice ID"
// @Success      200         {object}  Response{data=InvoiceDetail}
// @Failure      404         {object}  Response{error=string}
// @Router       /invoices/{id} [get]
// @Security     BasicAuth
func (s *Server) GetInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := s.Invoices.Get(r.Context(), ownerID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, InvoiceDetail{Invoice: inv, NextStatuses: invoicing.NextStatuses(inv.Status)})
}

// CreateInvoice creates a new invoice
// @Summary      Create invoice
// @Description  Compute totals, allocate the next number and store the invoice. The quota position is returned alongside.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        X-Owner-ID  header    string               true  "Owner"
// @Param        invoice     body      models.InvoiceInput  true  "Invoice contents"
// @Success      201         {object}  Response{data=invoicing.CreateResult}
// @Failure      400         {object}  Response{error=string}
// @Failure      409         {object}  Response{error=string}
// @Failure      422         {object}  Response{error=string}
// @Router       /invoices [post]
// @Security     BasicAuth
func (s *Server) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var input models.InvoiceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	res, err := s.Invoices.Create(r.Context(), ownerID(r), input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// UpdateInvoice edits the mutable fields of an invoice
// @Summary      Update invoice
// @Description  Change client snapshot, notes, due date or status. Items, discount, number, date and amounts are rejected.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        X-Owner-ID  header    string               true  "Owner"
// @Param        id          path      string               true  "Invoice ID"
// @Param        invoice     body      models.InvoicePatch  true  "Fields to change"
// @Success      200         {object}  Response{data=models.Invoice}
// @Failure      400         {object}  Response{error=string}
// @Failure      404         {object}  Response{error=string}
// @Failure      409         {object}  Response{error=string}
// @Router       /invoices/{id} [put]
// @Security     BasicAuth
func (s *Server) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	for _, field := range models.ImmutableInvoiceFields {
		if _, ok := raw[field]; ok {
			writeDomainError(w, r, &invoicing.ValidationError{Field: field, Reason: "cannot be changed after creation"})
			return
		}
	}

	var patch models.InvoicePatch
	if err := json.Unmarshal(body, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	inv, err := s.Invoices.Update(r.Context(), ownerID(r), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// UpdateInvoiceStatus moves an invoice along its lifecycle
// @Summary      Change invoice status
// @Description  Allowed: draft to pending; pending to paid, overdue or cancelled; paid to cancelled; overdue to paid or cancelled.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        X-Owner-ID  header    string       true  "Owner"
// @Param        id          path      string       true  "Invoice ID"
// @Param        status      body      StatusInput  true  "New status"
// @Success      200         {object}  Response{data=models.Invoice}
// @Failure      400         {object}  Response{error=string}
// @Failure      404         {object}  Response{error=string}
// @Failure      409         {object}  Response{error=string}
// @Router       /invoices/{id}/status [put]
// @Security     BasicAuth
func (s *Server) UpdateInvoiceStatus(w http.ResponseWriter, r *http.Request) {
	var input StatusInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	inv, err := s.Invoices.UpdateStatus(r.Context(), ownerID(r), chi.URLParam(r, "id"), input.Status)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// DuplicateInvoice returns a creation input copied from an invoice
// @Summary      Duplicate invoice
// @Description  Get a draft input with the client, items, discount and notes of an invoice. Number, dates and status are not copied.
// @Tags         invoices
// @Produce      json
// @Param        X-Owner-ID  header    string  true  "Owner"
// @Param        id          path      string  true  "Invoice ID"
// @Success      200         {object}  Response{data=models.InvoiceInput}
// @Failure      404         {object}  Response{error=string}
// @Router       /invoices/{id}/duplicate [get]
// @Security     BasicAuth
func (s *Server) DuplicateInvoice(w http.ResponseWriter, r *http.Request) {
	in, err := s.Invoices.Duplicate(r.Context(), ownerID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, in)
}

// DeleteInvoice deletes an invoice
// @Summary      Delete invoice
// @Description  Remove an invoice permanently.
// @Tags         invoices
// @Produce      json
// @Param        X-Owner-ID  header    string  true  "Owner"
// @Param        id          path      string  true  "Invoice ID"
// @Success      200         {object}  Response{data=map[string]string}
// @Failure      404         {object}  Response{error=string}
// @Router       /invoices/{id} [delete]
// @Security     BasicAuth
func (s *Server) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	if err := s.Invoices.Delete(r.Context(), ownerID(r), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
