package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/face-attendance-backend-go/internal/domain/identity"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type IdentityHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Verify(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type identityHandlerImpl struct {
	identityService identity.IdentityService
}

func NewIdentityHandler(identityService identity.IdentityService) IdentityHandler {
	return &identityHandlerImpl{
		identityService: identityService,
	}
}

// Register implements IdentityHandler.
func (h *identityHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var req identity.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.identityService.Register(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Identity enrolled", resp)
}

// Verify implements IdentityHandler.
func (h *identityHandlerImpl) Verify(w http.ResponseWriter, r *http.Request) {
	var req identity.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.identityService.Verify(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// List implements IdentityHandler.
func (h *identityHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := identity.ListFilter{
		Page:  1,
		Limit: 20,
	}

	q := r.URL.Query()
	if v := q.Get("search"); v != "" {
		filter.Search = &v
	}
	if v := q.Get("role"); v != "" {
		filter.Role = &v
	}
	if v := q.Get("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil && page > 0 {
			filter.Page = page
		}
	}
	if v := q.Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}

	resp, err := h.identityService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, resp.Identities, &response.Meta{
		Page:       resp.Page,
		Limit:      resp.Limit,
		TotalItems: resp.TotalCount,
		TotalPages: resp.TotalPages,
	})
}

// Update implements IdentityHandler.
func (h *identityHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req identity.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	resp, err := h.identityService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Identity updated", resp)
}
