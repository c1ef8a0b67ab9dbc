package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/pethaven/pethaven-api/internal/domains/assistant/adapters/http/mapper"
	assistantports "github.com/pethaven/pethaven-api/internal/domains/assistant/ports"
)

type assistantHandler struct {
	svc assistantports.Service
}

func (h assistantHandler) chat(c *gin.Context) {
	identity, _ := identityFrom(c)
	var payload mapper.Chat
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := h.svc.Chat(c.Request.Context(), payload.ToChatInput(identity.UserID))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromResult(result))
}
