package catalog

import (
	"encoding/json"
	"time"
)

// Optional 区分 JSON 更新载荷里一个字段的三种状态：
// 键不存在（保持原值）、显式 null（清除）、显式值（覆盖）。
type Optional[T any] struct {
	Present bool
	Value   *T // nil 表示显式 null
}

// UnmarshalJSON 只在键出现时被调用，含字面量 null。
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// Clear 报告该字段是否为显式 null。
func (o Optional[T]) Clear() bool { return o.Present && o.Value == nil }

// JobUpdate 是职位的部分更新载荷。
// 必填字段传 null 会作为校验错误被拒绝；可选字段传 null 即清除。
type JobUpdate struct {
	Title            Optional[string]    `json:"title"`
	Company          Optional[string]    `json:"company"`
	Location         Optional[string]    `json:"location"`
	JobType          Optional[string]    `json:"jobType"`
	Description      Optional[string]    `json:"description"`
	SalaryMin        Optional[int64]     `json:"salaryMin"`
	SalaryMax        Optional[int64]     `json:"salaryMax"`
	Responsibilities Optional[string]    `json:"responsibilities"`
	Qualifications   Optional[string]    `json:"qualifications"`
	Skills           Optional[string]    `json:"skills"`
	Deadline         Optional[time.Time] `json:"deadline"`
	Link             Optional[string]    `json:"link"`
}

// Changes 把载荷翻译成列更新。显式 null 翻译成 nil，由存储层落为 NULL。
// 调用方必须先通过 Validate。
func (u JobUpdate) Changes() map[string]any {
	changes := map[string]any{}
	putString(changes, "title", u.Title, true)
	putString(changes, "company", u.Company, true)
	putString(changes, "location", u.Location, true)
	putString(changes, "job_type", u.JobType, false)
	putString(changes, "description", u.Description, false)
	put(changes, "salary_min", u.SalaryMin)
	put(changes, "salary_max", u.SalaryMax)
	put(changes, "responsibilities", u.Responsibilities)
	put(changes, "qualifications", u.Qualifications)
	put(changes, "skills", u.Skills)
	put(changes, "deadline", u.Deadline)
	put(changes, "link", u.Link)
	return changes
}

// ExperienceUpdate 是经验分享的部分更新载荷。
type ExperienceUpdate struct {
	Title          Optional[string] `json:"title"`
	Company        Optional[string] `json:"company"`
	ExperienceType Optional[string] `json:"type"`
	Content        Optional[string] `json:"content"`
	Duration       Optional[string] `json:"duration"`
	Rating         Optional[int]    `json:"rating"`
}

// Changes 同 JobUpdate.Changes。
func (u ExperienceUpdate) Changes() map[string]any {
	changes := map[string]any{}
	putString(changes, "title", u.Title, true)
	putString(changes, "company", u.Company, true)
	putString(changes, "experience_type", u.ExperienceType, false)
	putString(changes, "content", u.Content, false)
	put(changes, "duration", u.Duration)
	put(changes, "rating", u.Rating)
	return changes
}

func put[T any](changes map[string]any, column string, field Optional[T]) {
	if !field.Present {
		return
	}
	if field.Value == nil {
		changes[column] = nil
		return
	}
	changes[column] = *field.Value
}

// putString 额外处理字符串修剪。trim 为 true 的列存修剪后的值。
func putString(changes map[string]any, column string, field Optional[string], trim bool) {
	if !field.Present {
		return
	}
	if field.Value == nil {
		changes[column] = nil
		return
	}
	value := *field.Value
	if trim {
		value = trimmed(value)
	}
	changes[column] = value
}
