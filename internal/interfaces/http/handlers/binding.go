package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainerrors "campus-challenge.backend/internal/domain/errors"
	"campus-challenge.backend/internal/interfaces/http/response"
)

const (
	msgBadRequestBody   = "请求数据格式错误"
	msgPayloadTooLarge  = "请求数据过大"
	codePayloadTooLarge = "payload_too_large"
)

// bindJSON decodes the body into dst and writes the error response when it
// cannot. An empty body leaves dst zero-valued so field validation reports
// what is missing.
func bindJSON(c *gin.Context, dst interface{}) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		response.ErrorWithError(c, http.StatusRequestEntityTooLarge, codePayloadTooLarge, msgPayloadTooLarge)
		return false
	}
	response.Error(c, domainerrors.Validation(msgBadRequestBody))
	return false
}

// parseID reads a positive numeric path parameter
func parseID(c *gin.Context, name, message string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, domainerrors.Validation(message))
		return 0, false
	}
	return uint(id), true
}
