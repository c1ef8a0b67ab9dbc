package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/pethaven/pethaven-api/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/pethaven/pethaven-api/internal/domains/catalog/ports"
)

type cartHandler struct {
	svc catalogports.CartService
}

func (h cartHandler) items(c *gin.Context) {
	identity, _ := identityFrom(c)
	entries, err := h.svc.Items(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromCartEntries(entries))
}

func (h cartHandler) add(c *gin.Context) {
	identity, _ := identityFrom(c)
	var payload mapper.CartLinePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	entry, err := h.svc.Add(c.Request.Context(), identity.UserID, payload.ProductID, payload.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, mapper.FromCartEntry(entry))
}

func (h cartHandler) updateQuantity(c *gin.Context) {
	identity, _ := identityFrom(c)
	lineID, err := pathID(c, "lineId")
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	var payload mapper.CartLinePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	entry, err := h.svc.UpdateQuantity(c.Request.Context(), identity.UserID, lineID, payload.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromCartEntry(entry))
}

func (h cartHandler) remove(c *gin.Context) {
	identity, _ := identityFrom(c)
	lineID, err := pathID(c, "lineId")
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := h.svc.Remove(c.Request.Context(), identity.UserID, lineID); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "cart line removed")
}

func (h cartHandler) clear(c *gin.Context) {
	identity, _ := identityFrom(c)
	if err := h.svc.Clear(c.Request.Context(), identity.UserID); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "cart cleared")
}

func (h cartHandler) count(c *gin.Context) {
	identity, _ := identityFrom(c)
	count, err := h.svc.Count(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"count": count})
}

func (h cartHandler) summary(c *gin.Context) {
	identity, _ := identityFrom(c)
	summary, err := h.svc.Summary(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromCartSummary(summary))
}
