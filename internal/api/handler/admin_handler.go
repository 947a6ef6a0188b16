package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"stylemart/internal/api/middleware"
	"stylemart/internal/app/service"
	"stylemart/internal/common"
)

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Use(middleware.AdminOnly)
	r.Get("/users", h.listUsers)              // GET /api/v1/admin/users
	r.Delete("/users/{userID}", h.deleteUser) // DELETE /api/v1/admin/users/{userID}
}

func (h *AdminHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		common.RespondWithStatusError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, users)
}

func (h *AdminHandler) deleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	// Deleting a missing user answers 200 with a null body, same as a
	// repeated delete. The operation is idempotent.
	user, err := h.adminService.DeleteUser(r.Context(), userID)
	if err != nil {
		common.RespondWithStatusError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}
