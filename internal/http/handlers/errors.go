package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stagehire/catalog-backend/internal/http/response"
	"github.com/stagehire/catalog-backend/internal/platform/apierr"
)

func statusOf(err error) int {
	return apierr.From(err, "").Status
}

var errInvalidID = errors.New("invalid id")

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", errInvalidID)
		return uuid.Nil, false
	}
	return id, true
}
