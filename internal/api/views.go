package api

import (
	"time"

	"careerhub/internal/database"
	"careerhub/internal/saved"
)

// ownerView 是发布者的最小展示视图，凭证相关字段永不出层。
type ownerView struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func newOwnerView(u database.User) ownerView {
	return ownerView{Name: u.Name, Email: u.Email}
}

type jobResponse struct {
	ID               uint       `json:"id"`
	Title            string     `json:"title"`
	Company          string     `json:"company"`
	Location         string     `json:"location"`
	JobType          string     `json:"jobType"`
	SalaryMin        *int64     `json:"salaryMin,omitempty"`
	SalaryMax        *int64     `json:"salaryMax,omitempty"`
	Description      string     `json:"description"`
	Responsibilities *string    `json:"responsibilities,omitempty"`
	Qualifications   *string    `json:"qualifications,omitempty"`
	Skills           *string    `json:"skills,omitempty"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	Link             *string    `json:"link,omitempty"`
	PostedBy         ownerView  `json:"postedBy"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func newJobResponse(job database.Job) jobResponse {
	return jobResponse{
		ID:               job.ID,
		Title:            job.Title,
		Company:          job.Company,
		Location:         job.Location,
		JobType:          job.JobType,
		SalaryMin:        job.SalaryMin,
		SalaryMax:        job.SalaryMax,
		Description:      job.Description,
		Responsibilities: job.Responsibilities,
		Qualifications:   job.Qualifications,
		Skills:           job.Skills,
		Deadline:         job.Deadline,
		Link:             job.Link,
		PostedBy:         newOwnerView(job.PostedBy),
		CreatedAt:        job.CreatedAt,
		UpdatedAt:        job.UpdatedAt,
	}
}

type experienceResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Company   string    `json:"company"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Duration  *string   `json:"duration,omitempty"`
	Rating    *int      `json:"rating,omitempty"`
	PostedBy  ownerView `json:"postedBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newExperienceResponse(exp database.Experience) experienceResponse {
	return experienceResponse{
		ID:        exp.ID,
		Title:     exp.Title,
		Company:   exp.Company,
		Type:      exp.ExperienceType,
		Content:   exp.Content,
		Duration:  exp.Duration,
		Rating:    exp.Rating,
		PostedBy:  newOwnerView(exp.PostedBy),
		CreatedAt: exp.CreatedAt,
		UpdatedAt: exp.UpdatedAt,
	}
}

// savedJobResponse 在职位视图上附带收藏记录自身的信息。
type savedJobResponse struct {
	jobResponse
	SavedID uint      `json:"savedId"`
	SavedAt time.Time `json:"savedAt"`
}

type savedExperienceResponse struct {
	experienceResponse
	SavedID uint      `json:"savedId"`
	SavedAt time.Time `json:"savedAt"`
}

func newSavedResponses(entries []saved.Entry) []any {
	out := make([]any, 0, len(entries))
	for _, e := range entries {
		switch {
		case e.Job != nil:
			out = append(out, savedJobResponse{
				jobResponse: newJobResponse(*e.Job),
				SavedID:     e.SavedID,
				SavedAt:     e.SavedAt,
			})
		case e.Experience != nil:
			out = append(out, savedExperienceResponse{
				experienceResponse: newExperienceResponse(*e.Experience),
				SavedID:            e.SavedID,
				SavedAt:            e.SavedAt,
			})
		}
	}
	return out
}
