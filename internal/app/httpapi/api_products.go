package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/pethaven/pethaven-api/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/pethaven/pethaven-api/internal/domains/catalog/ports"
	"github.com/pethaven/pethaven-api/internal/shared/pagination"
)

type productsHandler struct {
	svc catalogports.ProductService
}

func (h productsHandler) listActive(c *gin.Context) {
	result, err := h.svc.ListActive(c.Request.Context(), pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, pagedProducts(result))
}

func (h productsHandler) listAll(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context(), pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, pagedProducts(result))
}

func (h productsHandler) get(c *gin.Context) {
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

func (h productsHandler) create(c *gin.Context) {
	identity, _ := identityFrom(c)
	var payload mapper.CreateProduct
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

func (h productsHandler) update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	var payload mapper.UpdateProduct
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := h.svc.Update(c.Request.Context(), payload.ToUpdateInput(id))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromProjection(result))
}

func (h productsHandler) remove(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "product deleted")
}

func (h productsHandler) createCategory(c *gin.Context) {
	var payload mapper.CreateCategory
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	category, err := h.svc.CreateCategory(c.Request.Context(), payload.Name, payload.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, mapper.FromCategory(category))
}

func (h productsHandler) listCategories(c *gin.Context) {
	categories, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromCategories(categories))
}

func pagedProducts(page pagination.Page[*catalogports.ProductProjection]) gin.H {
	return gin.H{
		"items":      mapper.FromProjections(page.Items),
		"page":       page.Page,
		"size":       page.Size,
		"totalItems": page.TotalItems,
		"totalPages": page.TotalPages,
	}
}
