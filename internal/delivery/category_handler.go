package delivery

import (
	"fmt"
	"net/http"

	"catalog_service/internal/domain"
	"catalog_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CategoryHandler struct {
	useCase usecase.CategoryUseCase
	log     *logrus.Logger
}

func NewCategoryHandler(uc usecase.CategoryUseCase, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *CategoryHandler) RegisterRoutes(router gin.IRouter) {
	categories := router.Group("/categorias")
	{
		categories.GET("", h.ListCategories)
		categories.GET("/", h.ListCategories)
		categories.GET("/:id", h.GetCategoryByID)
		categories.GET("/:id/produtos", h.ListCategoryProducts)
		categories.POST("", h.CreateCategory)
		categories.POST("/", h.CreateCategory)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.useCase.ListCategories(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to list categories: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "Falha ao listar categorias.")
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	category, err := h.useCase.GetCategoryByID(c.Request.Context(), id)
	if err != nil {
		h.log.Warnf("Failed to get category by ID %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), safeMessage(err, "Falha ao buscar categoria."))
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) ListCategoryProducts(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	products, err := h.useCase.ListCategoryProducts(c.Request.Context(), id)
	if err != nil {
		h.log.Warnf("Failed to list products of category %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), safeMessage(err, "Falha ao listar produtos da categoria."))
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Failed to bind JSON for create category: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	created, err := h.useCase.CreateCategory(c.Request.Context(), &domain.Category{Name: req.Name})
	if err != nil {
		h.log.Errorf("Failed to create category '%s': %v", req.Name, err)
		ErrorResponse(c, mapErrorToStatus(err), safeMessage(err, "Falha ao criar categoria."))
		return
	}

	c.Header("Location", fmt.Sprintf("/categorias/%d", created.ID))
	c.JSON(http.StatusCreated, created)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Failed to bind JSON for update category ID %d: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	updated, err := h.useCase.UpdateCategory(c.Request.Context(), &domain.Category{ID: id, Name: req.Name})
	if err != nil {
		h.log.Warnf("Failed to update category ID %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), safeMessage(err, "Falha ao atualizar categoria."))
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.useCase.DeleteCategory(c.Request.Context(), id); err != nil {
		h.log.Warnf("Failed to delete category ID %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), safeMessage(err, "Falha ao remover categoria."))
		return
	}
	c.Status(http.StatusNoContent)
}
