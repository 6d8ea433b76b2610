package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/satheeshds/invoicer/models"
)

// ListClients lists the owner's clients
// @Summary      List clients
// @Description  Get the client directory, ordered by name.
// @Tags         clients
// @Produce      json
// @Param        X-Owner-ID  header    string  true   "Owner"
// @Param        search      query     string  false  "Search by name, address or tax id"
// @Success      200         {object}  Response{data=[]models.Client}
// @Router       /clients [get]
// @Security     BasicAuth
func (s *Server) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := s.Clients.ListClients(r.Context(), ownerID(r), r.URL.Query().Get("search"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

// GetClient retrieves a single client by ID
// @Summary      Get client
// @Tags         clients
// @Produce      json
// @Param        X-Owner-ID  header    string  true  "Owner"
// @Param        id          path      string  true  "Client ID"
// @Success      200         {object}  Response{data=models.Client}
// @Failure      404         {object}  Response{error=string}
// @Router       /clients/{id} [get]
// @Security     BasicAuth
func (s *Server) GetClient(w http.ResponseWriter, r *http.Request) {
	c, err := s.Clients.FindClient(r.Context(), ownerID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// CreateClient creates a new client
// @Summary      Create client
// @Description  Add a client to the directory. Invoices copy its fields when created from it.
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        X-Owner-ID  header    string              true  "Owner"
// @Param        client      body      models.ClientInput  true  "Client contents"
// @Success      201         {object}  Response{data=models.Client}
// @Failure      400         {object}  Response{error=string}
// @Router       /clients [post]
// @Security     BasicAuth
func (s *Server) CreateClient(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeClientInput(w, r)
	if !ok {
		return
	}

	now := s.now()
	c := models.Client{
		ID:        uuid.NewString(),
		OwnerID:   ownerID(r),
		Name:      input.Name,
		Address:   input.Address,
		TaxID:     input.TaxID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Clients.SaveClient(r.Context(), &c); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// UpdateClient updates an existing client
// @Summary      Update client
// @Description  Update a directory entry. Invoices already issued keep their snapshot.
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        X-Owner-ID  header    string              true  "Owner"
// @Param        id          path      string              true  "Client ID"
// @Param        client      body      models.ClientInput  true  "Updated client contents"
// @Success      200         {object}  Response{data=models.Client}
// @Failure      400         {object}  Response{error=string}
// @Failure      404         {object}  Response{error=string}
// @Router       /clients/{id} [put]
// @Security     BasicAuth
func (s *Server) UpdateClient(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeClientInput(w, r)
	if !ok {
		return
	}

	c, err := s.Clients.FindClient(r.Context(), ownerID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	c.Name, c.Address, c.TaxID = input.Name, input.Address, input.TaxID
	c.UpdatedAt = s.now()
	if err := s.Clients.SaveClient(r.Context(), c); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// DeleteClient deletes a client
// @Summary      Delete client
// @Tags         clients
// @Produce      json
// @Param        X-Owner-ID  header    string  true  "Owner"
// @Param        id          path      string  true  "Client ID"
// @Success      200         {object}  Response{data=map[string]string}
// @Failure      404         {object}  Response{error=string}
// @Router       /clients/{id} [delete]
// @Security     BasicAuth
func (s *Server) DeleteClient(w http.ResponseWriter, r *http.Request) {
	if err := s.Clients.DeleteClient(r.Context(), ownerID(r), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func decodeClientInput(w http.ResponseWriter, r *http.Request) (models.ClientInput, bool) {
	var input models.ClientInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return input, false
	}
	input.Name = strings.TrimSpace(input.Name)
	input.Address = strings.TrimSpace(input.Address)
	input.TaxID = strings.TrimSpace(input.TaxID)
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return input, false
	}
	return input, true
}
