package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"careerhub/internal/api/middleware"
	"careerhub/internal/authz"
	"careerhub/internal/catalog"
	"careerhub/internal/database"
)

// JobHandler 负责职位目录的查询与增删改。
type JobHandler struct {
	db *gorm.DB
}

// NewJobHandler 构造 JobHandler。
func NewJobHandler(db *gorm.DB) *JobHandler {
	return &JobHandler{db: db}
}

var errInvalidJobID = errors.New("invalid job id")

type createJobRequest struct {
	Title            string     `json:"title"`
	Company          string     `json:"company"`
	Location         string     `json:"location"`
	JobType          string     `json:"jobType"`
	SalaryMin        *int64     `json:"salaryMin"`
	SalaryMax        *int64     `json:"salaryMax"`
	Description      string     `json:"description"`
	Responsibilities *string    `json:"responsibilities"`
	Qualifications   *string    `json:"qualifications"`
	Skills           *string    `json:"skills"`
	Deadline         *time.Time `json:"deadline"`
	Link             *string    `json:"link"`
}

// ListJobs 返回按条件过滤的职位列表，默认按创建时间倒序，
// sort 参数可切换排序策略。公开端点，无需登录。
func (h *JobHandler) ListJobs(c *gin.Context) {
	filter := catalog.JobFilter{
		Search:   c.Query("search"),
		JobType:  c.Query("jobType"),
		Location: c.Query("location"),
		Skills:   c.Query("skills"),
	}

	ctx := c.Request.Context()
	var jobs []database.Job
	tx := filter.Apply(h.db.WithContext(ctx).Preload("PostedBy"))
	if err := tx.Order("created_at DESC").Find(&jobs).Error; err != nil {
		middleware.LoggerFromContext(c).Error("list jobs failed", slog.Any("error", err))
		Internal(c, "server error")
		return
	}

	jobs = catalog.SortJobs(jobs, catalog.ParseStrategy(c.Query("sort")))

	items := make([]jobResponse, 0, len(jobs))
	for _, job := range jobs {
		items = append(items, newJobResponse(job))
	}
	c.JSON(http.StatusOK, items)
}

// GetJob 返回单条职位；id 非法与记录不存在同样返回 404。
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.loadJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, errInvalidJobID), errors.Is(err, gorm.ErrRecordNotFound):
			NotFound(c, "job not found")
		default:
			middleware.LoggerFromContext(c).Error("load job failed", slog.Any("error", err))
			Internal(c, "server error")
		}
		return
	}
	c.JSON(http.StatusOK, newJobResponse(*job))
}

// MyJobs 返回调用方发布的全部职位。
func (h *JobHandler) MyJobs(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		Unauthorized(c)
		return
	}

	var jobs []database.Job
	if err := h.db.WithContext(c.Request.Context()).
		Preload("PostedBy").
		Where("posted_by_id = ?", identity.UserID).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		middleware.LoggerFromContext(c).Error("list my jobs failed", slog.Any("error", err))
		Internal(c, "server error")
		return
	}

	items := make([]jobResponse, 0, len(jobs))
	for _, job := range jobs {
		items = append(items, newJobResponse(job))
	}
	c.JSON(http.StatusOK, items)
}

// CreateJob 创建职位，发布者即调用方。
func (h *JobHandler) CreateJob(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		Unauthorized(c)
		return
	}

	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, bindingErrorMessage(err))
		return
	}

	job := database.Job{
		Title:            req.Title,
		Company:          req.Company,
		Location:         req.Location,
		JobType:          req.JobType,
		SalaryMin:        req.SalaryMin,
		SalaryMax:        req.SalaryMax,
		Description:      req.Description,
		Responsibilities: req.Responsibilities,
		Qualifications:   req.Qualifications,
		Skills:           req.Skills,
		Deadline:         req.Deadline,
		Link:             req.Link,
		PostedByID:       identity.UserID,
	}

	if err := catalog.ValidateJob(&job); err != nil {
		RespondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Create(&job).Error; err != nil {
		middleware.LoggerFromContext(c).Error("create job failed", slog.Any("error", err))
		Internal(c, "server error")
		return
	}

	if err := h.db.WithContext(ctx).Preload("PostedBy").First(&job, job.ID).Error; err != nil {
		middleware.LoggerFromContext(c).Error("reload job failed", slog.Any("error", err))
		Internal(c, "server error")
		return
	}

	c.JSON(http.StatusCreated, newJobResponse(job))
}

// UpdateJob 部分更新职位。载荷里缺席的字段保持原值，
// 显式 null 清除可选字段；仅 owner 或 admin 可操作。
func (h *JobHandler) UpdateJob(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		Unauthorized(c)
		return
	}

	var update catalog.JobUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	job, err := h.loadJob(ctx, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, errInvalidJobID), errors.Is(err, gorm.ErrRecordNotFound):
			NotFound(c, "job not found")
		default:
			middleware.LoggerFromContext(c).Error("load job failed", slog.Any("error", err))
			Internal(c, "server error")
		}
		return
	}

	if err := authz.Authorize(identity.UserID, identity.Role, job.PostedByID); err != nil {
		RespondError(c, err)
		return
	}

	if err := update.Validate(); err != nil {
		RespondError(c, err)
		return
	}

	if changes := update.Changes(); len(changes) > 0 {
		if err := h.db.WithContext(ctx).Model(job).Updates(changes).Error; err != nil {
			middleware.LoggerFromContext(c).Error("update job failed", slog.Any("error", err))
			Internal(c, "server error")
			return
		}
	}

	if err := h.db.WithContext(ctx).Preload("PostedBy").First(job, job.ID).Error; err != nil {
		middleware.LoggerFromContext(c).Error("reload job failed", slog.Any("error", err))
		Internal(c, "server error")
		return
	}

	c.JSON(http.StatusOK, newJobResponse(*job))
}

// DeleteJob 删除职位；仅 owner 或 admin 可操作。
// 指向它的收藏记录保持原样，由展示层决定悬挂引用的去留。
func (h *JobHandler) DeleteJob(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		Unauthorized(c)
		return
	}

	ctx := c.Request.Context()
	job, err := h.loadJob(ctx, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, errInvalidJobID), errors.Is(err, gorm.ErrRecordNotFound):
			NotFound(c, "job not found")
		default:
			middleware.LoggerFromContext(c).Error("load job failed", slog.Any("error", err))
			Internal(c, "server error")
		}
		return
	}

	if err := authz.Authorize(identity.UserID, identity.Role, job.PostedByID); err != nil {
		RespondError(c, err)
		return
	}

	if err := h.db.WithContext(ctx).Delete(&database.Job{}, job.ID).Error; err != nil {
		middleware.LoggerFromContext(c).Error("delete job failed", slog.Any("error", err))
		Internal(c, "server error")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *JobHandler) loadJob(ctx context.Context, idParam string) (*database.Job, error) {
	jobID, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil {
		return nil, errInvalidJobID
	}

	var job database.Job
	if err := h.db.WithContext(ctx).Preload("PostedBy").First(&job, uint(jobID)).Error; err != nil {
		return nil, err
	}
	return &job, nil
}
