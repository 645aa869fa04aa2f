package delivery

import (
	"errors"
	"fmt"
	"net/http"

	"catalog_service/internal/domain"
	"catalog_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	invalidCategoryOnCreate = "CategoriaId inválida. O produto deve pertencer a uma categoria existente."
	invalidCategoryOnUpdate = "CategoriaId inválida."
)

type ProductHandler struct {
	useCase usecase.ProductUseCase
	log     *logrus.Logger
}

func NewProductHandler(uc usecase.ProductUseCase, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *ProductHandler) RegisterRoutes(router gin.IRouter) {
	products := router.Group("/produtos")
	{
		products.GET("", h.ListProducts)
		products.GET("/", h.ListProducts)
		products.GET("/:id", h.GetProductByID)
		products.POST("", h.CreateProduct)
		products.POST("/", h.CreateProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
}

func (req productRequest) toDomain(id int) *domain.Product {
	return &domain.Product{
		ID:         id,
		Name:       req.Name,
		Price:      req.Price,
		Stock:      req.Stock,
		CategoryID: req.CategoryID,
	}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.useCase.ListProducts(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to list products: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "Falha ao listar produtos.")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := h.useCase.GetProductByID(c.Request.Context(), id)
	if err != nil {
		h.log.Warnf("Failed to get product by ID %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), safeMessage(err, "Falha ao buscar produto."))
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Failed to bind JSON for create product: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	created, err := h.useCase.CreateProduct(c.Request.Context(), req.toDomain(0))
	if err != nil {
		h.log.Warnf("Failed to create product '%s': %v", req.Name, err)
		message := "Falha ao criar produto."
		if errors.Is(err, domain.ErrInvalidCategory) {
			message = invalidCategoryOnCreate
		}
		ErrorResponse(c, mapErrorToStatus(err), safeMessage(err, message))
		return
	}

	c.Header("Location", fmt.Sprintf("/produtos/%d", created.ID))
	c.JSON(http.StatusCreated, created)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Failed to bind JSON for update product ID %d: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	updated, err := h.useCase.UpdateProduct(c.Request.Context(), req.toDomain(id))
	if err != nil {
		h.log.Warnf("Failed to update product ID %d: %v", id, err)
		message := "Falha ao atualizar produto."
		if errors.Is(err, domain.ErrInvalidCategory) {
			message = invalidCategoryOnUpdate
		}
		ErrorResponse(c, mapErrorToStatus(err), safeMessage(err, message))
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.useCase.DeleteProduct(c.Request.Context(), id); err != nil {
		h.log.Warnf("Failed to delete product ID %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), safeMessage(err, "Falha ao remover produto."))
		return
	}
	c.Status(http.StatusNoContent)
}
