package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"contact-manager/internal/middleware"
	"contact-manager/internal/model"
	"contact-manager/internal/service"
	"contact-manager/internal/validation"
	"contact-manager/pkg/apierror"
)

type ContactHandler struct {
	service *service.ContactService
}

func NewContactHandler(service *service.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	if err := validation.Struct(payload); err != nil {
		writeError(w, err)
		return
	}

	contact, err := h.service.Create(r.Context(), payload, actorFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, model.ContactResponse{
		Message: "contact created successfully",
		Contact: contact,
	})
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	params := model.ListParams{
		Page:  parseIntParam(query.Get("page")),
		Limit: parseIntParam(query.Get("limit")),
		Sort:  query.Get("sort"),
		Order: query.Get("order"),
	}

	page, err := h.service.List(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	contact, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contact)
}

func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	if err := validation.Struct(payload); err != nil {
		writeError(w, err)
		return
	}

	contact, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), payload, actorFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.ContactResponse{
		Message: "contact updated successfully",
		Contact: contact,
	})
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), actorFromRequest(r)); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "contact deleted"})
}

func (h *ContactHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	contact, err := h.service.Search(r.Context(), query.Get("email"), query.Get("phone"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contact)
}

// actorFromRequest returns the authenticated claims, or zero claims if the
// route somehow ran without RequireAuth; the audit trail tolerates that.
func actorFromRequest(r *http.Request) model.AuthClaims {
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		return *claims
	}
	return model.AuthClaims{}
}

func parseIntParam(raw string) int {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}
