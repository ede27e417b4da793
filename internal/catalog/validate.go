package catalog

import (
	"strings"

	"careerhub/internal/database"
	"careerhub/internal/httperr"
)

// 字段级校验消息全部收集后一次性拼接返回，不逐条报告。

const (
	maxTitleLen    = 255
	maxCompanyLen  = 255
	maxLocationLen = 255
	maxSkillsLen   = 500
	maxLinkLen     = 2000
	maxDurationLen = 100
)

func trimmed(s string) string { return strings.TrimSpace(s) }

func joinOrNil(msgs []string) error {
	if len(msgs) == 0 {
		return nil
	}
	return httperr.Validation(strings.Join(msgs, ", "))
}

// ValidateJob 校验一条待保存的职位，并顺手修剪文本字段。
func ValidateJob(job *database.Job) error {
	var msgs []string

	job.Title = trimmed(job.Title)
	job.Company = trimmed(job.Company)
	job.Location = trimmed(job.Location)

	if job.Title == "" {
		msgs = append(msgs, "job title is required")
	} else if len(job.Title) > maxTitleLen {
		msgs = append(msgs, "title cannot exceed 255 characters")
	}
	if job.Company == "" {
		msgs = append(msgs, "company name is required")
	} else if len(job.Company) > maxCompanyLen {
		msgs = append(msgs, "company name cannot exceed 255 characters")
	}
	if job.Location == "" {
		msgs = append(msgs, "location is required")
	} else if len(job.Location) > maxLocationLen {
		msgs = append(msgs, "location cannot exceed 255 characters")
	}
	if job.JobType == "" {
		msgs = append(msgs, "job type is required")
	} else if !isOneOf(job.JobType, JobTypes) {
		msgs = append(msgs, "job type must be one of "+strings.Join(JobTypes, ", "))
	}
	if job.Description == "" {
		msgs = append(msgs, "job description is required")
	}
	if job.SalaryMin != nil && *job.SalaryMin < 0 {
		msgs = append(msgs, "salary cannot be negative")
	}
	if job.SalaryMax != nil && *job.SalaryMax < 0 {
		msgs = append(msgs, "salary cannot be negative")
	}
	if job.Skills != nil && len(*job.Skills) > maxSkillsLen {
		msgs = append(msgs, "skills cannot exceed 500 characters")
	}
	if job.Link != nil && len(*job.Link) > maxLinkLen {
		msgs = append(msgs, "link cannot exceed 2000 characters")
	}

	return joinOrNil(msgs)
}

// ValidateExperience 校验一条待保存的经验分享。
func ValidateExperience(exp *database.Experience) error {
	var msgs []string

	exp.Title = trimmed(exp.Title)
	exp.Company = trimmed(exp.Company)

	if exp.Title == "" {
		msgs = append(msgs, "experience title is required")
	} else if len(exp.Title) > maxTitleLen {
		msgs = append(msgs, "title cannot exceed 255 characters")
	}
	if exp.Company == "" {
		msgs = append(msgs, "company name is required")
	} else if len(exp.Company) > maxCompanyLen {
		msgs = append(msgs, "company name cannot exceed 255 characters")
	}
	if exp.ExperienceType == "" {
		msgs = append(msgs, "experience type is required")
	} else if !isOneOf(exp.ExperienceType, ExperienceTypes) {
		msgs = append(msgs, "experience type must be one of "+strings.Join(ExperienceTypes, ", "))
	}
	if exp.Content == "" {
		msgs = append(msgs, "experience content is required")
	}
	if exp.Duration != nil && len(*exp.Duration) > maxDurationLen {
		msgs = append(msgs, "duration cannot exceed 100 characters")
	}
	if exp.Rating != nil {
		if *exp.Rating < 1 {
			msgs = append(msgs, "rating must be at least 1")
		} else if *exp.Rating > 5 {
			msgs = append(msgs, "rating cannot exceed 5")
		}
	}

	return joinOrNil(msgs)
}

// Validate 校验部分更新载荷。必填字段显式传 null 按缺失处理。
func (u JobUpdate) Validate() error {
	var msgs []string

	msgs = appendRequiredString(msgs, u.Title, maxTitleLen,
		"job title is required", "title cannot exceed 255 characters")
	msgs = appendRequiredString(msgs, u.Company, maxCompanyLen,
		"company name is required", "company name cannot exceed 255 characters")
	msgs = appendRequiredString(msgs, u.Location, maxLocationLen,
		"location is required", "location cannot exceed 255 characters")

	if u.JobType.Present {
		if u.JobType.Value == nil || *u.JobType.Value == "" {
			msgs = append(msgs, "job type is required")
		} else if !isOneOf(*u.JobType.Value, JobTypes) {
			msgs = append(msgs, "job type must be one of "+strings.Join(JobTypes, ", "))
		}
	}
	if u.Description.Present && (u.Description.Value == nil || *u.Description.Value == "") {
		msgs = append(msgs, "job description is required")
	}
	if u.SalaryMin.Present && u.SalaryMin.Value != nil && *u.SalaryMin.Value < 0 {
		msgs = append(msgs, "salary cannot be negative")
	}
	if u.SalaryMax.Present && u.SalaryMax.Value != nil && *u.SalaryMax.Value < 0 {
		msgs = append(msgs, "salary cannot be negative")
	}
	if u.Skills.Present && u.Skills.Value != nil && len(*u.Skills.Value) > maxSkillsLen {
		msgs = append(msgs, "skills cannot exceed 500 characters")
	}
	if u.Link.Present && u.Link.Value != nil && len(*u.Link.Value) > maxLinkLen {
		msgs = append(msgs, "link cannot exceed 2000 characters")
	}

	return joinOrNil(msgs)
}

// Validate 校验经验分享的部分更新载荷。
func (u ExperienceUpdate) Validate() error {
	var msgs []string

	msgs = appendRequiredString(msgs, u.Title, maxTitleLen,
		"experience title is required", "title cannot exceed 255 characters")
	msgs = appendRequiredString(msgs, u.Company, maxCompanyLen,
		"company name is required", "company name cannot exceed 255 characters")

	if u.ExperienceType.Present {
		if u.ExperienceType.Value == nil || *u.ExperienceType.Value == "" {
			msgs = append(msgs, "experience type is required")
		} else if !isOneOf(*u.ExperienceType.Value, ExperienceTypes) {
			msgs = append(msgs, "experience type must be one of "+strings.Join(ExperienceTypes, ", "))
		}
	}
	if u.Content.Present && (u.Content.Value == nil || *u.Content.Value == "") {
		msgs = append(msgs, "experience content is required")
	}
	if u.Duration.Present && u.Duration.Value != nil && len(*u.Duration.Value) > maxDurationLen {
		msgs = append(msgs, "duration cannot exceed 100 characters")
	}
	if u.Rating.Present && u.Rating.Value != nil {
		if *u.Rating.Value < 1 {
			msgs = append(msgs, "rating must be at least 1")
		} else if *u.Rating.Value > 5 {
			msgs = append(msgs, "rating cannot exceed 5")
		}
	}

	return joinOrNil(msgs)
}

// appendRequiredString 处理“必填文本字段出现在更新载荷中”的公共规则：
// 显式 null 或修剪后为空都按缺失报告。
func appendRequiredString(msgs []string, field Optional[string], maxLen int, requiredMsg, lengthMsg string) []string {
	if !field.Present {
		return msgs
	}
	if field.Value == nil || trimmed(*field.Value) == "" {
		return append(msgs, requiredMsg)
	}
	if len(trimmed(*field.Value)) > maxLen {
		return append(msgs, lengthMsg)
	}
	return msgs
}
