package serializer

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pagecraft-io/pagecraft/internal/modules/service"
)

// Response
type Response struct {
	Code  int         `json:"code"`
	Data  interface{} `json:"data,omitempty"`
	Msg   string      `json:"msg"`
	Error string      `json:"error,omitempty"`
}

// ConflictResponse carries the extra hint the frontend needs to offer an
// "unpublish first" action on a blocked delete.
type ConflictResponse struct {
	Response
	HasPublications  bool  `json:"hasPublications,omitempty"`
	PublicationCount int64 `json:"publicationCount,omitempty"`
}

// Err
func Err(errCode int, msg string, err error) Response {
	res := Response{
		Code: errCode,
		Msg:  msg,
	}
	// development mode, show error detail
	if err != nil && gin.Mode() != gin.ReleaseMode {
		res.Error = fmt.Sprintf("%+v", err)
	}
	return res
}

// DBErr
func DBErr(msg string, err error) Response {
	if msg == "" {
		msg = "database error"
	}
	return Err(http.StatusInternalServerError, msg, err)
}

// ParamErr
func ParamErr(msg string, err error) Response {
	if msg == "" {
		msg = "parameter error"
	}
	return Err(http.StatusBadRequest, msg, err)
}

// AuthErr
func AuthErr(msg string) Response {
	if msg == "" {
		msg = "authentication error"
	}
	return Err(http.StatusUnauthorized, msg, nil)
}

// NotFoundErr
func NotFoundErr(msg string) Response {
	if msg == "" {
		msg = "resource not found"
	}
	return Err(http.StatusNotFound, msg, nil)
}

// ForbiddenErr
func ForbiddenErr(msg string) Response {
	if msg == "" {
		msg = "forbidden"
	}
	return Err(http.StatusForbidden, msg, nil)
}

// SvcErr maps a service-layer error onto the HTTP status and body the
// client sees, and writes it. Handlers call this for anything that is not
// a binding failure.
func SvcErr(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	var conflictErr *service.ConflictError
	var constraintErr *service.ConstraintError

	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, NotFoundErr(""))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, ForbiddenErr(""))
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, ParamErr(validationErr.Msg, nil))
	case errors.As(err, &conflictErr):
		// Conflicts are reported as 400, not 409, so the frontend's single
		// bad-request path can surface the hint fields.
		c.JSON(http.StatusBadRequest, ConflictResponse{
			Response:         Err(http.StatusBadRequest, conflictErr.Msg, nil),
			HasPublications:  conflictErr.HasPublications,
			PublicationCount: conflictErr.PublicationCount,
		})
	case errors.As(err, &constraintErr):
		c.JSON(http.StatusBadRequest, ParamErr(constraintErr.Error(), nil))
	default:
		c.JSON(http.StatusInternalServerError, DBErr("", err))
	}
}
