package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"careerhub/internal/httperr"
)

func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

func AbortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

func Unauthorized(c *gin.Context)           { Error(c, http.StatusUnauthorized, "unauthorized") }
func BadRequest(c *gin.Context, msg string) { Error(c, http.StatusBadRequest, msg) }
func Forbidden(c *gin.Context, msg string)  { Error(c, http.StatusForbidden, msg) }
func NotFound(c *gin.Context, msg string)   { Error(c, http.StatusNotFound, msg) }
func Conflict(c *gin.Context, msg string)   { Error(c, http.StatusConflict, msg) }
func Internal(c *gin.Context, msg string)   { Error(c, http.StatusInternalServerError, msg) }

// RespondError 把分类过的业务错误落到对应状态码；
// 未分类的错误一律按服务端错误收口，不向外透出细节。
func RespondError(c *gin.Context, err error) {
	kind := httperr.KindOf(err)
	if kind == httperr.KindTransient {
		Internal(c, "server error")
		return
	}
	Error(c, httperr.StatusCode(kind), err.Error())
}
