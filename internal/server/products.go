package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/matiasroldan/cuchilleria/internal/catalog"
	"github.com/matiasroldan/cuchilleria/internal/store"
	"github.com/shopspring/decimal"
)

func (s *Server) listProducts(c *gin.Context) {
	filter := store.ProductFilter{
		Category: c.Query("category"),
		Material: c.Query("material"),
		Type:     c.Query("type"),
	}

	products, err := s.catalog.ListProducts(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (s *Server) getProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	product, err := s.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

type productRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Image1      string          `json:"image1" binding:"required"`
	Image2      string          `json:"image2"`
	Category    string          `json:"category" binding:"required"`
	Material    string          `json:"material"`
	Type        string          `json:"type"`
}

func (r *productRequest) toInput() catalog.ProductInput {
	return catalog.ProductInput{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Image1:      r.Image1,
		Image2:      r.Image2,
		Category:    r.Category,
		Material:    r.Material,
		Type:        r.Type,
	}
}

func (s *Server) createProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	product, err := s.catalog.CreateProduct(c.Request.Context(), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (s *Server) updateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	product, err := s.catalog.UpdateProduct(c.Request.Context(), id, req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) deleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "producto eliminado"})
}

// pathID parses the :id path parameter, writing a 400 on failure.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "identificador inválido"})
		return 0, false
	}
	return id, true
}
