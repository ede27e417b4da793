package database

import (
	"time"

	"gorm.io/gorm"
)

// 账号角色。角色只在建号/后台脚本写入，API 不提供修改入口。
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User 表示系统中的账号信息。
type User struct {
	gorm.Model
	Name               string `gorm:"size:64"`
	Email              string `gorm:"uniqueIndex;size:255"`
	PasswordHash       string `gorm:"size:255"`
	Role               string `gorm:"size:16;default:user"`
	MustChangePassword bool
}

// Job 表示一条职位信息。可选字段使用指针：NULL 即“未填写/已清除”。
type Job struct {
	gorm.Model
	Title            string `gorm:"size:255"`
	Company          string `gorm:"size:255"`
	Location         string `gorm:"size:255"`
	JobType          string `gorm:"size:32"`
	SalaryMin        *int64
	SalaryMax        *int64
	Description      string     `gorm:"type:text"`
	Responsibilities *string    `gorm:"type:text"`
	Qualifications   *string    `gorm:"type:text"`
	Skills           *string    `gorm:"size:500"` // 逗号拼接的技能串
	Deadline         *time.Time `gorm:"index"`
	Link             *string    `gorm:"size:2000"`
	PostedByID       uint       `gorm:"index"`
	PostedBy         User
}

// Experience 表示一条求职/实习经验分享。
type Experience struct {
	gorm.Model
	Title          string  `gorm:"size:255"`
	Company        string  `gorm:"size:255"`
	ExperienceType string  `gorm:"size:32"`
	Content        string  `gorm:"type:text"`
	Duration       *string `gorm:"size:100"`
	Rating         *int
	PostedByID     uint `gorm:"index"`
	PostedBy       User
}

// SavedJob 表示账号收藏的职位。
// (user_id, job_id) 的联合唯一索引是防止重复收藏的最终保证，
// 应用层的存在性检查只是快速失败路径。
type SavedJob struct {
	ID      uint `gorm:"primaryKey"`
	UserID  uint `gorm:"index;uniqueIndex:idx_saved_job_user_job"`
	JobID   uint `gorm:"uniqueIndex:idx_saved_job_user_job"`
	Job     Job
	SavedAt time.Time `gorm:"autoCreateTime;index"`
}

// SavedExperience 表示账号收藏的经验分享。
type SavedExperience struct {
	ID           uint `gorm:"primaryKey"`
	UserID       uint `gorm:"index;uniqueIndex:idx_saved_exp_user_exp"`
	ExperienceID uint `gorm:"uniqueIndex:idx_saved_exp_user_exp"`
	Experience   Experience
	SavedAt      time.Time `gorm:"autoCreateTime;index"`
}
