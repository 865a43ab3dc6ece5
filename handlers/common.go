package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"albumapi/apperr"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Error string `json:"error"`
}

// fail maps a failure to its HTTP class. Validation and not-found bodies
// enumerate the offending values; internal errors are logged with detail and
// reported generically.
func fail(c *gin.Context, err error) {
	var v *apperr.ValidationError
	switch {
	case errors.As(err, &v):
		c.JSON(http.StatusBadRequest, gin.H{"error": v.Error(), "values": v.Values})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, Response{err.Error()})
	case errors.Is(err, apperr.ErrForbidden):
		c.JSON(http.StatusForbidden, Response{err.Error()})
	case errors.Is(err, apperr.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, Response{"access denied"})
	case errors.Is(err, apperr.ErrUpstream):
		log.Printf("upstream failure: %v", err)
		c.JSON(http.StatusBadGateway, Response{"upstream service failed, try again"})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, Response{"internal server error"})
	}
}

func paramID(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperr.NotFound(name)
	}
	return id, nil
}
