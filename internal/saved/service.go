// Package saved 实现“稍后再看”收藏的开关服务。
// 去重的正确性由存储层 (user, item) 唯一索引兜底，应用层检查只是快速失败。
package saved

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"careerhub/internal/database"
	"careerhub/internal/httperr"
)

// Kind 选择收藏目标所属的目录。
type Kind string

const (
	KindJob        Kind = "jobs"
	KindExperience Kind = "experiences"
)

// ParseKind 解析路径里的目录名。
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindJob, KindExperience:
		return Kind(s), true
	default:
		return "", false
	}
}

// Service 提供收藏的增删查。所有操作都以调用方账号为作用域。
type Service struct {
	db *gorm.DB
}

// NewService 构造收藏服务。
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Entry 是一条收藏记录与其目标当前状态（不是收藏时的快照）的联接。
// Job / Experience 按 kind 二选一。
type Entry struct {
	SavedID    uint
	SavedAt    time.Time
	Job        *database.Job
	Experience *database.Experience
}

// parseItemID 解析目标 id。格式非法与记录不存在同样以 not found 收场，
// 不给调用方枚举标识符的机会。
func parseItemID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// Save 收藏一条记录。目标不存在返回 not found，已收藏返回冲突。
// 并发的重复收藏最多成功一次：唯一索引冲突被翻译成同样的“已收藏”结果。
func (s *Service) Save(ctx context.Context, kind Kind, userID uint, rawItemID string) (*Entry, error) {
	switch kind {
	case KindJob:
		return s.saveJob(ctx, userID, rawItemID)
	case KindExperience:
		return s.saveExperience(ctx, userID, rawItemID)
	default:
		return nil, httperr.NotFound("unknown catalog kind")
	}
}

func (s *Service) saveJob(ctx context.Context, userID uint, rawItemID string) (*Entry, error) {
	jobID, ok := parseItemID(rawItemID)
	if !ok {
		return nil, httperr.NotFound("job not found")
	}

	var job database.Job
	if err := s.db.WithContext(ctx).First(&job, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("job not found")
		}
		return nil, fmt.Errorf("load job: %w", err)
	}

	// 快速路径：已存在直接拒绝，省一次必然失败的写入。
	var count int64
	if err := s.db.WithContext(ctx).Model(&database.SavedJob{}).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check saved job: %w", err)
	}
	if count > 0 {
		return nil, httperr.Conflict("job already saved")
	}

	record := database.SavedJob{UserID: userID, JobID: jobID}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		// 竞态中输掉快速检查的一方落到这里。
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, httperr.Conflict("job already saved")
		}
		return nil, fmt.Errorf("create saved job: %w", err)
	}

	return &Entry{SavedID: record.ID, SavedAt: record.SavedAt, Job: &job}, nil
}

func (s *Service) saveExperience(ctx context.Context, userID uint, rawItemID string) (*Entry, error) {
	expID, ok := parseItemID(rawItemID)
	if !ok {
		return nil, httperr.NotFound("experience not found")
	}

	var exp database.Experience
	if err := s.db.WithContext(ctx).First(&exp, expID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("experience not found")
		}
		return nil, fmt.Errorf("load experience: %w", err)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&database.SavedExperience{}).
		Where("user_id = ? AND experience_id = ?", userID, expID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check saved experience: %w", err)
	}
	if count > 0 {
		return nil, httperr.Conflict("experience already saved")
	}

	record := database.SavedExperience{UserID: userID, ExperienceID: expID}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, httperr.Conflict("experience already saved")
		}
		return nil, fmt.Errorf("create saved experience: %w", err)
	}

	return &Entry{SavedID: record.ID, SavedAt: record.SavedAt, Experience: &exp}, nil
}

// Unsave 取消收藏。不存在返回 not found，重复取消第二次即如此收场，
// 调用方不应对它重试。
func (s *Service) Unsave(ctx context.Context, kind Kind, userID uint, rawItemID string) error {
	itemID, ok := parseItemID(rawItemID)
	if !ok {
		return s.unsaveNotFound(kind)
	}

	var result *gorm.DB
	switch kind {
	case KindJob:
		result = s.db.WithContext(ctx).
			Where("user_id = ? AND job_id = ?", userID, itemID).
			Delete(&database.SavedJob{})
	case KindExperience:
		result = s.db.WithContext(ctx).
			Where("user_id = ? AND experience_id = ?", userID, itemID).
			Delete(&database.SavedExperience{})
	default:
		return httperr.NotFound("unknown catalog kind")
	}

	if result.Error != nil {
		return fmt.Errorf("delete saved record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return s.unsaveNotFound(kind)
	}
	return nil
}

func (s *Service) unsaveNotFound(kind Kind) error {
	if kind == KindExperience {
		return httperr.NotFound("saved experience not found")
	}
	return httperr.NotFound("saved job not found")
}

// IsSaved 是无副作用的成员查询。标识符非法等同于未收藏。
func (s *Service) IsSaved(ctx context.Context, kind Kind, userID uint, rawItemID string) (bool, error) {
	itemID, ok := parseItemID(rawItemID)
	if !ok {
		return false, nil
	}

	var count int64
	var err error
	switch kind {
	case KindJob:
		err = s.db.WithContext(ctx).Model(&database.SavedJob{}).
			Where("user_id = ? AND job_id = ?", userID, itemID).
			Count(&count).Error
	case KindExperience:
		err = s.db.WithContext(ctx).Model(&database.SavedExperience{}).
			Where("user_id = ? AND experience_id = ?", userID, itemID).
			Count(&count).Error
	default:
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("count saved records: %w", err)
	}
	return count > 0, nil
}

// ListSaved 返回账号的全部收藏，按收藏时间倒序，并联上目标的当前状态。
// 目标已被删除的收藏（悬挂引用）不出现在结果里，但收藏记录本身不动。
func (s *Service) ListSaved(ctx context.Context, kind Kind, userID uint) ([]Entry, error) {
	switch kind {
	case KindJob:
		var records []database.SavedJob
		if err := s.db.WithContext(ctx).
			Preload("Job").Preload("Job.PostedBy").
			Where("user_id = ?", userID).
			Order("saved_at DESC").
			Find(&records).Error; err != nil {
			return nil, fmt.Errorf("list saved jobs: %w", err)
		}
		entries := make([]Entry, 0, len(records))
		for i := range records {
			if records[i].Job.ID == 0 {
				continue // 目标已删除
			}
			entries = append(entries, Entry{
				SavedID: records[i].ID,
				SavedAt: records[i].SavedAt,
				Job:     &records[i].Job,
			})
		}
		return entries, nil
	case KindExperience:
		var records []database.SavedExperience
		if err := s.db.WithContext(ctx).
			Preload("Experience").Preload("Experience.PostedBy").
			Where("user_id = ?", userID).
			Order("saved_at DESC").
			Find(&records).Error; err != nil {
			return nil, fmt.Errorf("list saved experiences: %w", err)
		}
		entries := make([]Entry, 0, len(records))
		for i := range records {
			if records[i].Experience.ID == 0 {
				continue
			}
			entries = append(entries, Entry{
				SavedID:    records[i].ID,
				SavedAt:    records[i].SavedAt,
				Experience: &records[i].Experience,
			})
		}
		return entries, nil
	default:
		return nil, httperr.NotFound("unknown catalog kind")
	}
}
