package httpapi

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/pethaven/pethaven-api/internal/domains/adoptions/adapters/http/mapper"
	adoptionsports "github.com/pethaven/pethaven-api/internal/domains/adoptions/ports"
)

type adoptionsHandler struct {
	svc adoptionsports.Service
}

func (h adoptionsHandler) create(c *gin.Context) {
	identity, _ := identityFrom(c)
	var payload mapper.CreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := h.svc.Create(c.Request.Context(), payload.ToCreateInput(identity.UserID))
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, mapper.FromProjection(result))
}

func (h adoptionsHandler) get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromProjection(result))
}

func (h adoptionsHandler) approve(c *gin.Context) {
	h.review(c, h.svc.Approve)
}

func (h adoptionsHandler) reject(c *gin.Context) {
	h.review(c, h.svc.Reject)
}

func (h adoptionsHandler) review(c *gin.Context, call func(ctx context.Context, input adoptionsports.ReviewInput) (*adoptionsports.RequestProjection, error)) {
	identity, _ := identityFrom(c)
	id, err := pathID(c, "id")
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := call(c.Request.Context(), adoptionsports.ReviewInput{
		RequestID: id,
		ActorID:   identity.UserID,
		Notes:     c.Query("notes"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromProjection(result))
}

func (h adoptionsHandler) markAdopted(c *gin.Context) {
	h.transition(c, h.svc.MarkAdopted)
}

func (h adoptionsHandler) cancel(c *gin.Context) {
	h.transition(c, h.svc.Cancel)
}

func (h adoptionsHandler) withdraw(c *gin.Context) {
	h.transition(c, h.svc.Withdraw)
}

func (h adoptionsHandler) transition(c *gin.Context, call func(ctx context.Context, requestID, actorID int64) (*adoptionsports.RequestProjection, error)) {
	identity, _ := identityFrom(c)
	id, err := pathID(c, "id")
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := call(c.Request.Context(), id, identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromProjection(result))
}

func (h adoptionsHandler) remove(c *gin.Context) {
	identity, _ := identityFrom(c)
	id, err := pathID(c, "id")
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id, identity.UserID); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "adoption request deleted")
}

func (h adoptionsHandler) listMine(c *gin.Context) {
	identity, _ := identityFrom(c)
	result, err := h.svc.ListByRequester(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromProjections(result))
}

func (h adoptionsHandler) listReceived(c *gin.Context) {
	identity, _ := identityFrom(c)
	result, err := h.svc.ListForOwner(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromProjections(result))
}

func (h adoptionsHandler) listByPet(c *gin.Context) {
	petID, err := pathID(c, "petId")
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := h.svc.ListByPet(c.Request.Context(), petID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromProjections(result))
}

func (h adoptionsHandler) listAll(c *gin.Context) {
	result, err := h.svc.ListAll(c.Request.Context(), pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{
		"items":      mapper.FromProjections(result.Items),
		"page":       result.Page,
		"size":       result.Size,
		"totalItems": result.TotalItems,
		"totalPages": result.TotalPages,
	})
}

func (h adoptionsHandler) stats(c *gin.Context) {
	counts, err := h.svc.CountByStatus(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make(map[string]int64, len(counts))
	for status, count := range counts {
		out[string(status)] = count
	}
	respondOK(c, out)
}
