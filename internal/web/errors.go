package web

import (
	"errors"
	"net/http"

	applog "extras-cli/internal/log"
	"extras-cli/internal/model"
	"extras-cli/internal/store"

	"github.com/gin-gonic/gin"
)

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func respondError(c *gin.Context, err error) {
	var ve *model.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, errorBody{Error: ve.Error(), Field: ve.Field})
	default:
		applog.Error("http handler failed", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorBody{Error: err.Error()})
}
