package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"careerhub/internal/api/middleware"
	"careerhub/internal/authz"
	"careerhub/internal/catalog"
	"careerhub/internal/database"
)

// ExperienceHandler 负责经验分享目录的查询与增删改。
type ExperienceHandler struct {
	db *gorm.DB
}

// NewExperienceHandler 构造 ExperienceHandler。
func NewExperienceHandler(db *gorm.DB) *ExperienceHandler {
	return &ExperienceHandler{db: db}
}

var errInvalidExperienceID = errors.New("invalid experience id")

type createExperienceRequest struct {
	Title    string  `json:"title"`
	Company  string  `json:"company"`
	Type     string  `json:"type"`
	Content  string  `json:"content"`
	Duration *string `json:"duration"`
	Rating   *int    `json:"rating"`
}

// ListExperiences 返回按条件过滤的经验分享列表，默认按创建时间倒序。
func (h *ExperienceHandler) ListExperiences(c *gin.Context) {
	filter := catalog.ExperienceFilter{
		Search:         c.Query("search"),
		ExperienceType: c.Query("type"),
	}

	ctx := c.Request.Context()
	var exps []database.Experience
	tx := filter.Apply(h.db.WithContext(ctx).Preload("PostedBy"))
	if err := tx.Order("created_at DESC").Find(&exps).Error; err != nil {
		middleware.LoggerFromContext(c).Error("list experiences failed", slog.Any("error", err))
		Internal(c, "server error")
		return
	}

	exps = catalog.SortExperiences(exps, catalog.ParseStrategy(c.Query("sort")))

	items := make([]experienceResponse, 0, len(exps))
	for _, exp := range exps {
		items = append(items, newExperienceResponse(exp))
	}
	c.JSON(http.StatusOK, items)
}

// GetExperience 返回单条经验分享；id 非法与不存在同样返回 404。
func (h *ExperienceHandler) GetExperience(c *gin.Context) {
	exp, err := h.loadExperience(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, errInvalidExperienceID), errors.Is(err, gorm.ErrRecordNotFound):
			NotFound(c, "experience not found")
		default:
			middleware.LoggerFromContext(c).Error("load experience failed", slog.Any("error", err))
			Internal(c, "server error")
		}
		return
	}
	c.JSON(http.StatusOK, newExperienceResponse(*exp))
}

// MyExperiences 返回调用方发布的全部经验分享。
func (h *ExperienceHandler) MyExperiences(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		Unauthorized(c)
		return
	}

	var exps []database.Experience
	if err := h.db.WithContext(c.Request.Context()).
		Preload("PostedBy").
		Where("posted_by_id = ?", identity.UserID).
		Order("created_at DESC").
		Find(&exps).Error; err != nil {
		middleware.LoggerFromContext(c).Error("list my experiences failed", slog.Any("error", err))
		Internal(c, "server error")
		return
	}

	items := make([]experienceResponse, 0, len(exps))
	for _, exp := range exps {
		items = append(items, newExperienceResponse(exp))
	}
	c.JSON(http.StatusOK, items)
}

// CreateExperience 创建经验分享，发布者即调用方。
func (h *ExperienceHandler) CreateExperience(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		Unauthorized(c)
		return
	}

	var req createExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, bindingErrorMessage(err))
		return
	}

	exp := database.Experience{
		Title:          req.Title,
		Company:        req.Company,
		ExperienceType: req.Type,
		Content:        req.Content,
		Duration:       req.Duration,
		Rating:         req.Rating,
		PostedByID:     identity.UserID,
	}

	if err := catalog.ValidateExperience(&exp); err != nil {
		RespondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Create(&exp).Error; err != nil {
		middleware.LoggerFromContext(c).Error("create experience failed", slog.Any("error", err))
		Internal(c, "server error")
		return
	}

	if err := h.db.WithContext(ctx).Preload("PostedBy").First(&exp, exp.ID).Error; err != nil {
		middleware.LoggerFromContext(c).Error("reload experience failed", slog.Any("error", err))
		Internal(c, "server error")
		return
	}

	c.JSON(http.StatusCreated, newExperienceResponse(exp))
}

// UpdateExperience 部分更新经验分享；仅 owner 或 admin 可操作。
func (h *ExperienceHandler) UpdateExperience(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		Unauthorized(c)
		return
	}

	var update catalog.ExperienceUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	exp, err := h.loadExperience(ctx, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, errInvalidExperienceID), errors.Is(err, gorm.ErrRecordNotFound):
			NotFound(c, "experience not found")
		default:
			middleware.LoggerFromContext(c).Error("load experience failed", slog.Any("error", err))
			Internal(c, "server error")
		}
		return
	}

	if err := authz.Authorize(identity.UserID, identity.Role, exp.PostedByID); err != nil {
		RespondError(c, err)
		return
	}

	if err := update.Validate(); err != nil {
		RespondError(c, err)
		return
	}

	if changes := update.Changes(); len(changes) > 0 {
		if err := h.db.WithContext(ctx).Model(exp).Updates(changes).Error; err != nil {
			middleware.LoggerFromContext(c).Error("update experience failed", slog.Any("error", err))
			Internal(c, "server error")
			return
		}
	}

	if err := h.db.WithContext(ctx).Preload("PostedBy").First(exp, exp.ID).Error; err != nil {
		middleware.LoggerFromContext(c).Error("reload experience failed", slog.Any("error", err))
		Internal(c, "server error")
		return
	}

	c.JSON(http.StatusOK, newExperienceResponse(*exp))
}

// DeleteExperience 删除经验分享；仅 owner 或 admin 可操作。
func (h *ExperienceHandler) DeleteExperience(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		Unauthorized(c)
		return
	}

	ctx := c.Request.Context()
	exp, err := h.loadExperience(ctx, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, errInvalidExperienceID), errors.Is(err, gorm.ErrRecordNotFound):
			NotFound(c, "experience not found")
		default:
			middleware.LoggerFromContext(c).Error("load experience failed", slog.Any("error", err))
			Internal(c, "server error")
		}
		return
	}

	if err := authz.Authorize(identity.UserID, identity.Role, exp.PostedByID); err != nil {
		RespondError(c, err)
		return
	}

	if err := h.db.WithContext(ctx).Delete(&database.Experience{}, exp.ID).Error; err != nil {
		middleware.LoggerFromContext(c).Error("delete experience failed", slog.Any("error", err))
		Internal(c, "server error")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ExperienceHandler) loadExperience(ctx context.Context, idParam string) (*database.Experience, error) {
	expID, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil {
		return nil, errInvalidExperienceID
	}

	var exp database.Experience
	if err := h.db.WithContext(ctx).Preload("PostedBy").First(&exp, uint(expID)).Error; err != nil {
		return nil, err
	}
	return &exp, nil
}
