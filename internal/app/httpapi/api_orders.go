package httpapi

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/pethaven/pethaven-api/internal/domains/orders/adapters/http/mapper"
	ordersports "github.com/pethaven/pethaven-api/internal/domains/orders/ports"
	"github.com/pethaven/pethaven-api/internal/shared/pagination"
)

type ordersHandler struct {
	svc ordersports.Service
}

func (h ordersHandler) checkoutCOD(c *gin.Context) {
	h.checkout(c, h.svc.CheckoutCOD)
}

func (h ordersHandler) checkoutGateway(c *gin.Context) {
	h.checkout(c, h.svc.CheckoutGateway)
}

func (h ordersHandler) checkout(c *gin.Context, call func(ctx context.Context, input ordersports.CheckoutInput) (*ordersports.OrderProjection, error)) {
	identity, _ := identityFrom(c)
	var payload mapper.Checkout
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := call(c.Request.Context(), payload.ToCheckoutInput(identity.UserID))
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, mapper.FromProjection(result))
}

func (h ordersHandler) confirmPayment(c *gin.Context) {
	var payload mapper.ConfirmPayment
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := h.svc.ConfirmPayment(c.Request.Context(), payload.ToConfirmInput())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromProjection(result))
}

func (h ordersHandler) cancel(c *gin.Context) {
	identity, _ := identityFrom(c)
	id, err := pathID(c, "id")
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := h.svc.Cancel(c.Request.Context(), id, identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromProjection(result))
}

func (h ordersHandler) updateStatus(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	var payload mapper.UpdateStatus
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := h.svc.UpdateStatus(c.Request.Context(), id, payload.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromProjection(result))
}

func (h ordersHandler) markDelivered(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := h.svc.MarkDelivered(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromProjection(result))
}

func (h ordersHandler) get(c *gin.Context) {
	identity, _ := identityFrom(c)
	id, err := pathID(c, "id")
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := h.svc.GetByID(c.Request.Context(), id, identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromProjection(result))
}

func (h ordersHandler) listMine(c *gin.Context) {
	identity, _ := identityFrom(c)
	result, err := h.svc.ListByUser(c.Request.Context(), identity.UserID, pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, pagedOrders(result))
}

func (h ordersHandler) listAll(c *gin.Context) {
	result, err := h.svc.ListAll(c.Request.Context(), pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, pagedOrders(result))
}

func pagedOrders(page pagination.Page[*ordersports.OrderProjection]) gin.H {
	return gin.H{
		"items":      mapper.FromProjections(page.Items),
		"page":       page.Page,
		"size":       page.Size,
		"totalItems": page.TotalItems,
		"totalPages": page.TotalPages,
	}
}
