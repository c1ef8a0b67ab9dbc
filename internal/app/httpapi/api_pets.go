package httpapi

import (
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pethaven/pethaven-api/internal/domains/pets/adapters/http/mapper"
	petsports "github.com/pethaven/pethaven-api/internal/domains/pets/ports"
)

type petsHandler struct {
	svc petsports.Service
}

func (h petsHandler) list(c *gin.Context) {
	if raw := strings.TrimSpace(c.Query("ownerId")); raw != "" {
		ownerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || ownerID <= 0 {
			respondBadRequest(c, errInvalidQuery("ownerId"))
			return
		}
		result, err := h.svc.FindByOwner(c.Request.Context(), ownerID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, mapper.FromProjections(result))
		return
	}

	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		result, err := h.svc.FindByStatus(c.Request.Context(), strings.Split(raw, ","))
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, mapper.FromProjections(result))
		return
	}

	result, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromProjections(result))
}

func (h petsHandler) get(c *gin.Context) {
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

func (h petsHandler) create(c *gin.Context) {
	identity, _ := identityFrom(c)
	var payload mapper.CreatePet
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

func (h petsHandler) update(c *gin.Context) {
	identity, _ := identityFrom(c)
	id, err := pathID(c, "id")
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	var payload mapper.UpdatePet
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := h.svc.Update(c.Request.Context(), payload.ToUpdateInput(id, identity.UserID))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromProjection(result))
}

func (h petsHandler) remove(c *gin.Context) {
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
	respondMessage(c, "pet deleted")
}

func (h petsHandler) uploadPhoto(c *gin.Context) {
	identity, _ := identityFrom(c)
	id, err := pathID(c, "id")
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.svc.UploadPhoto(c.Request.Context(), petsports.UploadPhotoInput{
		PetID:    id,
		ActorID:  identity.UserID,
		Filename: fileHeader.Filename,
		Content:  content,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromProjection(result))
}
