package catalog

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestOptionalDistinguishesAbsentNullAndValue(t *testing.T) {
	var u JobUpdate
	payload := `{"skills": null, "location": "Berlin"}`
	if err := json.Unmarshal([]byte(payload), &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !u.Skills.Present || !u.Skills.Clear() {
		t.Fatalf("skills: expected explicit null")
	}
	if !u.Location.Present || u.Location.Value == nil || *u.Location.Value != "Berlin" {
		t.Fatalf("location: expected explicit value")
	}
	if u.Title.Present {
		t.Fatalf("title: expected absent field")
	}
}

func TestJobUpdateChangesTranslatesNullToUnset(t *testing.T) {
	var u JobUpdate
	payload := `{"skills": null, "salaryMin": 50000}`
	if err := json.Unmarshal([]byte(payload), &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := u.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	changes := u.Changes()
	if v, ok := changes["skills"]; !ok || v != nil {
		t.Fatalf("skills must map to nil (NULL), got %v present=%v", v, ok)
	}
	if v, ok := changes["salary_min"]; !ok || v != int64(50000) {
		t.Fatalf("salary_min must map to value, got %v present=%v", v, ok)
	}
	if _, ok := changes["title"]; ok {
		t.Fatalf("absent field must not appear in changes")
	}
}

func TestJobUpdateRejectsNullOnRequiredField(t *testing.T) {
	var u JobUpdate
	if err := json.Unmarshal([]byte(`{"title": null}`), &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	err := u.Validate()
	if err == nil {
		t.Fatal("expected validation error for null title")
	}
	if !strings.Contains(err.Error(), "job title is required") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestJobUpdateCollectsAllFieldMessages(t *testing.T) {
	var u JobUpdate
	payload := `{"title": "", "company": null, "jobType": "Freelance"}`
	if err := json.Unmarshal([]byte(payload), &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	err := u.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"job title is required", "company name is required", "job type must be one of"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message %q missing from %q", want, msg)
		}
	}
}

func TestExperienceUpdateRatingBounds(t *testing.T) {
	var u ExperienceUpdate
	if err := json.Unmarshal([]byte(`{"rating": 6}`), &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := u.Validate(); err == nil || !strings.Contains(err.Error(), "rating cannot exceed 5") {
		t.Fatalf("expected upper bound message, got %v", err)
	}

	var low ExperienceUpdate
	if err := json.Unmarshal([]byte(`{"rating": 0}`), &low); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := low.Validate(); err == nil || !strings.Contains(err.Error(), "rating must be at least 1") {
		t.Fatalf("expected lower bound message, got %v", err)
	}

	var clear ExperienceUpdate
	if err := json.Unmarshal([]byte(`{"rating": null}`), &clear); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := clear.Validate(); err != nil {
		t.Fatalf("clearing rating must be allowed: %v", err)
	}
	if v, ok := clear.Changes()["rating"]; !ok || v != nil {
		t.Fatalf("cleared rating must map to NULL")
	}
}
