package catalog

import (
	"strings"
	"testing"

	"careerhub/internal/database"
	"careerhub/internal/httperr"
)

func TestValidateJobJoinsAllMessages(t *testing.T) {
	job := database.Job{JobType: "Freelance"}
	err := ValidateJob(&job)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if httperr.KindOf(err) != httperr.KindValidation {
		t.Fatalf("expected validation kind, got %v", httperr.KindOf(err))
	}

	msg := err.Error()
	for _, want := range []string{
		"job title is required",
		"company name is required",
		"location is required",
		"job type must be one of",
		"job description is required",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message %q missing from %q", want, msg)
		}
	}
	if !strings.Contains(msg, ", ") {
		t.Fatalf("messages must be joined, got %q", msg)
	}
}

func TestValidateJobTrimsBeforeRequiredCheck(t *testing.T) {
	job := database.Job{
		Title:       "   ",
		Company:     "  Acme  ",
		Location:    "Berlin",
		JobType:     "Full-time",
		Description: "desc",
	}
	err := ValidateJob(&job)
	if err == nil || !strings.Contains(err.Error(), "job title is required") {
		t.Fatalf("whitespace-only title must be rejected, got %v", err)
	}
	if job.Company != "Acme" {
		t.Fatalf("company must be trimmed, got %q", job.Company)
	}
}

func TestValidateJobSalaryBounds(t *testing.T) {
	neg := int64(-1)
	job := database.Job{
		Title:       "T",
		Company:     "C",
		Location:    "L",
		JobType:     "Contract",
		Description: "d",
		SalaryMin:   &neg,
	}
	err := ValidateJob(&job)
	if err == nil || !strings.Contains(err.Error(), "salary cannot be negative") {
		t.Fatalf("expected salary message, got %v", err)
	}

	// min > max 不校验，两个边界各自非负即可。
	min, max := int64(90000), int64(50000)
	ok := database.Job{
		Title:       "T",
		Company:     "C",
		Location:    "L",
		JobType:     "Contract",
		Description: "d",
		SalaryMin:   &min,
		SalaryMax:   &max,
	}
	if err := ValidateJob(&ok); err != nil {
		t.Fatalf("inverted bounds must pass: %v", err)
	}
}

func TestValidateExperience(t *testing.T) {
	exp := database.Experience{ExperienceType: "Gig"}
	err := ValidateExperience(&exp)
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{
		"experience title is required",
		"company name is required",
		"experience type must be one of",
		"experience content is required",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message %q missing from %q", want, msg)
		}
	}

	rating := 3
	good := database.Experience{
		Title:          "Internship at Acme",
		Company:        "Acme",
		ExperienceType: "Intern",
		Content:        "great team",
		Rating:         &rating,
	}
	if err := ValidateExperience(&good); err != nil {
		t.Fatalf("valid experience rejected: %v", err)
	}
}
