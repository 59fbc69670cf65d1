package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/matiasroldan/cuchilleria/internal/auth"
	"github.com/matiasroldan/cuchilleria/internal/models"
	"github.com/matiasroldan/cuchilleria/internal/order"
)

// placeOrderRequest deliberately has no price field: the server re-derives
// every price from the catalog and ignores anything else the client sends.
type placeOrderRequest struct {
	Items []struct {
		ProductID int64 `json:"productId" binding:"required"`
		Quantity  int   `json:"quantity" binding:"required"`
	} `json:"items" binding:"required"`
}

func (s *Server) placeOrder(c *gin.Context) {
	claims := auth.ClaimsFrom(c)

	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	lines := make([]order.LineRequest, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, order.LineRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	placed, err := s.orders.PlaceOrder(c.Request.Context(), claims.UserID, lines)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"orderId":     placed.OrderID,
		"totalAmount": placed.TotalAmount,
	})
}

func (s *Server) listOrders(c *gin.Context) {
	claims := auth.ClaimsFrom(c)

	orders, err := s.orders.ListOrders(c.Request.Context(), claims.UserID, claims.Role == models.RoleAdmin)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (s *Server) getOrder(c *gin.Context) {
	claims := auth.ClaimsFrom(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	o, err := s.orders.GetOrder(c.Request.Context(), id, claims.UserID, claims.Role == models.RoleAdmin)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := s.orders.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "estado actualizado", "status": req.Status})
}
