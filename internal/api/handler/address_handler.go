package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"stylemart/internal/api/middleware"
	"stylemart/internal/app/service"
	"stylemart/internal/common"
)

type AddressHandler struct {
	addressService *service.AddressService
}

func NewAddressHandler(addressService *service.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

func (h *AddressHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator) // All address routes are user-scoped
	r.Post("/", h.createAddress)
	r.Get("/", h.listAddresses)
	r.Put("/{addressID}", h.updateAddress)
	r.Delete("/{addressID}", h.deleteAddress)
}

func (h *AddressHandler) createAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.AddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	address, err := h.addressService.Create(r.Context(), userID, req)
	if err != nil {
		common.RespondWithStatusError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, address)
}

func (h *AddressHandler) listAddresses(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	addresses, err := h.addressService.List(r.Context(), userID)
	if err != nil {
		common.RespondWithStatusError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, addresses)
}

func (h *AddressHandler) updateAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.AddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	address, err := h.addressService.Update(r.Context(), userID, chi.URLParam(r, "addressID"), req)
	if err != nil {
		common.RespondWithStatusError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, address)
}

func (h *AddressHandler) deleteAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	if err := h.addressService.Delete(r.Context(), userID, chi.URLParam(r, "addressID")); err != nil {
		common.RespondWithStatusError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "address deleted"})
}
