package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/pethaven/pethaven-api/internal/domains/users/adapters/http/mapper"
	usersports "github.com/pethaven/pethaven-api/internal/domains/users/ports"
	"github.com/pethaven/pethaven-api/internal/shared/pagination"
)

type usersHandler struct {
	svc usersports.Service
}

func (h usersHandler) register(c *gin.Context) {
	var payload mapper.CreateUser
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := h.svc.Create(c.Request.Context(), payload.ToCreateInput())
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, mapper.FromProjection(result))
}

func (h usersHandler) me(c *gin.Context) {
	identity, _ := identityFrom(c)
	result, err := h.svc.GetByID(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromProjection(result))
}

func (h usersHandler) updateMe(c *gin.Context) {
	identity, _ := identityFrom(c)
	var payload mapper.UpdateUser
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := h.svc.Update(c.Request.Context(), payload.ToUpdateInput(identity.UserID))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromProjection(result))
}

func (h usersHandler) list(c *gin.Context) {
	result, err := h.svc.ListAll(c.Request.Context(), pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, pagedUsers(result))
}

func (h usersHandler) setRole(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	var payload mapper.SetRole
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := h.svc.SetRole(c.Request.Context(), id, payload.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromProjection(result))
}

func (h usersHandler) deactivate(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := h.svc.Deactivate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromProjection(result))
}

func (h usersHandler) remove(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "user deleted")
}

func pagedUsers(page pagination.Page[*usersports.UserProjection]) gin.H {
	return gin.H{
		"items":      mapper.FromProjections(page.Items),
		"page":       page.Page,
		"size":       page.Size,
		"totalItems": page.TotalItems,
		"totalPages": page.TotalPages,
	}
}
