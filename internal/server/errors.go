package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/matiasroldan/cuchilleria/internal/catalog"
	"github.com/matiasroldan/cuchilleria/internal/order"
	"github.com/matiasroldan/cuchilleria/internal/store"
)

// writeError maps a domain error onto the HTTP taxonomy: validation and
// duplicate errors are 400, missing entities 404, ownership failures 403,
// anything else is a persistence failure and surfaces as 500. Callers see
// {"error": <message>}; internals are not leaked on 500.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrUnknownStatus),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, catalog.ErrInvalidProduct),
		errors.Is(err, store.ErrDuplicate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, order.ErrProductNotFound),
		errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, order.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno del servidor"})
	}
}

// bindError turns gin binding failures into a readable 400. Field-level
// validator errors name the first offending field.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "campo inválido: " + verrs[0].Field(),
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo de la petición inválido"})
}
