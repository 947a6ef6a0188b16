package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"stylemart/internal/api/middleware"
	"stylemart/internal/app/service"
	"stylemart/internal/common"
	"stylemart/internal/domain/model"
)

type ProductHandler struct {
	productService *service.ProductService
}

func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listProducts)            // GET /api/v1/products
	r.Get("/{productSlug}", h.getProduct) // GET /api/v1/products/basic-tee

	r.Group(func(adminRouter chi.Router) {
		adminRouter.Use(middleware.Authenticator)
		adminRouter.Use(middleware.AdminOnly)
		adminRouter.Post("/", h.createProduct)
		adminRouter.Put("/{productID}", h.updateProduct)
		adminRouter.Delete("/{productID}", h.deleteProduct)
	})
}

func (h *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	category := model.ProductCategory(r.URL.Query().Get("category"))
	search := r.URL.Query().Get("q")

	result, err := h.productService.List(r.Context(), page, pageSize, category, search)
	if err != nil {
		common.RespondWithStatusError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, result)
}

func (h *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.productService.GetBySlug(r.Context(), chi.URLParam(r, "productSlug"))
	if err != nil {
		common.RespondWithStatusError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req service.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	product, err := h.productService.Create(r.Context(), req)
	if err != nil {
		common.RespondWithStatusError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req service.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	product, err := h.productService.Update(r.Context(), chi.URLParam(r, "productID"), req)
	if err != nil {
		common.RespondWithStatusError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.productService.Delete(r.Context(), chi.URLParam(r, "productID")); err != nil {
		common.RespondWithStatusError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}
