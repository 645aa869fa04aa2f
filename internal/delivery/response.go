package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"catalog_service/internal/domain"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status  string `json:"Status"`
	Message string `json:"Message"`
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Status:  "Fail",
		Message: message,
	})
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidCategory), errors.Is(err, domain.ErrInvalidProduct):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrCategoryInUse):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// safeMessage keeps store details out of 500 responses.
func safeMessage(err error, fallback string) string {
	switch {
	case errors.Is(err, domain.ErrCategoryNotFound):
		return "Categoria não encontrada."
	case errors.Is(err, domain.ErrProductNotFound):
		return "Produto não encontrado."
	case errors.Is(err, domain.ErrInvalidProduct):
		return "Dados do produto inválidos."
	case errors.Is(err, domain.ErrCategoryInUse):
		return "Categoria possui produtos associados e não pode ser removida."
	default:
		return fallback
	}
}

func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Id inválido: "+c.Param("id"))
		return 0, false
	}
	return id, true
}
