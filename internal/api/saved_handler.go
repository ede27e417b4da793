package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"careerhub/internal/api/middleware"
	"careerhub/internal/httperr"
	"careerhub/internal/saved"
)

// SavedHandler 暴露收藏开关服务。
type SavedHandler struct {
	service *saved.Service
}

// NewSavedHandler 构造 SavedHandler。
func NewSavedHandler(service *saved.Service) *SavedHandler {
	return &SavedHandler{service: service}
}

func (h *SavedHandler) kindFromPath(c *gin.Context) (saved.Kind, bool) {
	kind, ok := saved.ParseKind(c.Param("kind"))
	if !ok {
		NotFound(c, "unknown catalog kind")
		return "", false
	}
	return kind, true
}

// ListSaved 列出调用方的全部收藏，按收藏时间倒序。
func (h *SavedHandler) ListSaved(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		Unauthorized(c)
		return
	}
	kind, ok := h.kindFromPath(c)
	if !ok {
		return
	}

	entries, err := h.service.ListSaved(c.Request.Context(), kind, identity.UserID)
	if err != nil {
		h.respondError(c, err, "list saved failed")
		return
	}
	c.JSON(http.StatusOK, newSavedResponses(entries))
}

// Save 收藏一条记录。重复收藏返回 409，目标不存在返回 404。
func (h *SavedHandler) Save(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		Unauthorized(c)
		return
	}
	kind, ok := h.kindFromPath(c)
	if !ok {
		return
	}

	entry, err := h.service.Save(c.Request.Context(), kind, identity.UserID, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "save failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"savedId": entry.SavedID,
		"savedAt": entry.SavedAt,
	})
}

// Unsave 取消收藏。记录不存在（含重复取消）返回 404。
func (h *SavedHandler) Unsave(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		Unauthorized(c)
		return
	}
	kind, ok := h.kindFromPath(c)
	if !ok {
		return
	}

	if err := h.service.Unsave(c.Request.Context(), kind, identity.UserID, c.Param("id")); err != nil {
		h.respondError(c, err, "unsave failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// CheckSaved 回答“是否已收藏”，无副作用。
func (h *SavedHandler) CheckSaved(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		Unauthorized(c)
		return
	}
	kind, ok := h.kindFromPath(c)
	if !ok {
		return
	}

	isSaved, err := h.service.IsSaved(c.Request.Context(), kind, identity.UserID, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "check saved failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"isSaved": isSaved})
}

func (h *SavedHandler) respondError(c *gin.Context, err error, msg string) {
	if httperr.KindOf(err) == httperr.KindTransient {
		middleware.LoggerFromContext(c).Error(msg, slog.Any("error", err))
	}
	RespondError(c, err)
}
