package saved

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"careerhub/internal/database"
	"careerhub/internal/httperr"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:saved_%d?mode=memory&cache=shared&_busy_timeout=5000", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUserAndJob(t *testing.T, db *gorm.DB) (database.User, database.Job) {
	t.Helper()
	user := database.User{Name: "Poster", Email: "poster@example.com", Role: database.RoleUser}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	job := database.Job{
		Title:       "Backend Engineer",
		Company:     "Acme",
		Location:    "Berlin",
		JobType:     "Full-time",
		Description: "d",
		PostedByID:  user.ID,
	}
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return user, job
}

func TestSaveThenSaveAgainConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	_, job := seedUserAndJob(t, db)
	jobID := fmt.Sprint(job.ID)

	entry, err := svc.Save(ctx, KindJob, 42, jobID)
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	if entry.SavedID == 0 || entry.Job == nil || entry.Job.ID != job.ID {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	if _, err := svc.Save(ctx, KindJob, 42, jobID); httperr.KindOf(err) != httperr.KindConflict {
		t.Fatalf("second save: expected conflict, got %v", err)
	}

	// 失败的第二次 save 不影响成员状态。
	saved, err := svc.IsSaved(ctx, KindJob, 42, jobID)
	if err != nil || !saved {
		t.Fatalf("isSaved after failed save: got %v err=%v", saved, err)
	}

	var count int64
	if err := db.Model(&database.SavedJob{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one bookmark row, got %d", count)
	}
}

func TestSaveMissingTargetIsNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	if _, err := svc.Save(ctx, KindJob, 1, "9999"); httperr.KindOf(err) != httperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	// 非法 id 与不存在的 id 不可区分。
	if _, err := svc.Save(ctx, KindJob, 1, "not-a-number"); httperr.KindOf(err) != httperr.KindNotFound {
		t.Fatalf("malformed id: expected not found, got %v", err)
	}
}

func TestUnsaveTwice(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	_, job := seedUserAndJob(t, db)
	jobID := fmt.Sprint(job.ID)

	if _, err := svc.Save(ctx, KindJob, 7, jobID); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := svc.Unsave(ctx, KindJob, 7, jobID); err != nil {
		t.Fatalf("first unsave: %v", err)
	}
	if err := svc.Unsave(ctx, KindJob, 7, jobID); httperr.KindOf(err) != httperr.KindNotFound {
		t.Fatalf("second unsave: expected not found, got %v", err)
	}

	saved, err := svc.IsSaved(ctx, KindJob, 7, jobID)
	if err != nil || saved {
		t.Fatalf("isSaved after unsave: got %v err=%v", saved, err)
	}
}

func TestIsSavedMalformedIDIsFalse(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	saved, err := svc.IsSaved(context.Background(), KindJob, 1, "zzz")
	if err != nil {
		t.Fatalf("isSaved must not fail on malformed id: %v", err)
	}
	if saved {
		t.Fatal("malformed id cannot be saved")
	}
}

// 并发重复收藏：唯一索引兜底，恰好一次成功，其余报已收藏。
func TestConcurrentSaveYieldsSingleBookmark(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	_, job := seedUserAndJob(t, db)
	jobID := fmt.Sprint(job.ID)

	const attempts = 4
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Save(ctx, KindJob, 99, jobID)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case httperr.KindOf(err) == httperr.KindConflict:
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly one success, got %d", successes)
	}

	var count int64
	if err := db.Model(&database.SavedJob{}).Where("user_id = ?", 99).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one row, got %d", count)
	}
}

func TestListSavedOrdersBySavedAtAndJoinsOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	owner, first := seedUserAndJob(t, db)

	second := database.Job{
		Title:       "SRE",
		Company:     "Initech",
		Location:    "Remote",
		JobType:     "Contract",
		Description: "d",
		PostedByID:  owner.ID,
	}
	if err := db.Create(&second).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := svc.Save(ctx, KindJob, 5, fmt.Sprint(first.ID)); err != nil {
		t.Fatalf("save first: %v", err)
	}
	// 保证 saved_at 有可区分的先后。
	if err := db.Model(&database.SavedJob{}).
		Where("job_id = ?", first.ID).
		Update("saved_at", time.Now().Add(-time.Hour)).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}
	if _, err := svc.Save(ctx, KindJob, 5, fmt.Sprint(second.ID)); err != nil {
		t.Fatalf("save second: %v", err)
	}

	entries, err := svc.ListSaved(ctx, KindJob, 5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Job.ID != second.ID {
		t.Fatalf("expected newest save first, got job %d", entries[0].Job.ID)
	}
	if entries[0].Job.PostedBy.Email != owner.Email {
		t.Fatalf("owner must be joined, got %q", entries[0].Job.PostedBy.Email)
	}
	if entries[0].SavedID == 0 || entries[0].SavedAt.IsZero() {
		t.Fatalf("entry must carry bookmark id and savedAt")
	}
}

// 目标被删除后收藏成为悬挂引用：列表里跳过，但收藏行保留。
func TestListSavedSkipsDanglingTargets(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	_, job := seedUserAndJob(t, db)

	if _, err := svc.Save(ctx, KindJob, 5, fmt.Sprint(job.ID)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := db.Delete(&database.Job{}, job.ID).Error; err != nil {
		t.Fatalf("delete job: %v", err)
	}

	entries, err := svc.ListSaved(ctx, KindJob, 5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("dangling entry must be skipped, got %d", len(entries))
	}

	var count int64
	if err := db.Model(&database.SavedJob{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("bookmark row must survive target deletion, got %d rows", count)
	}
}

func TestSaveExperienceKind(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	exp := database.Experience{
		Title:          "Interview at Acme",
		Company:        "Acme",
		ExperienceType: "Interview",
		Content:        "c",
	}
	if err := db.Create(&exp).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	expID := fmt.Sprint(exp.ID)

	if _, err := svc.Save(ctx, KindExperience, 8, expID); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := svc.Save(ctx, KindExperience, 8, expID); httperr.KindOf(err) != httperr.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	// 两个目录的收藏互不影响。
	saved, err := svc.IsSaved(ctx, KindJob, 8, expID)
	if err != nil {
		t.Fatalf("isSaved: %v", err)
	}
	if saved {
		t.Fatal("job catalog must not report experience bookmark")
	}
}

func TestParseKind(t *testing.T) {
	if _, ok := ParseKind("jobs"); !ok {
		t.Fatal("jobs must parse")
	}
	if _, ok := ParseKind("experiences"); !ok {
		t.Fatal("experiences must parse")
	}
	if _, ok := ParseKind("postings"); ok {
		t.Fatal("unknown kind must not parse")
	}
}
