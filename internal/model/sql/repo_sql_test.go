package sql

import (
	"context"
	"errors"
	"testing"

	"interntrack/internal/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) *GormRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&entity.DbUser{}, &entity.DbTask{}); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}
	return NewGormRepository(db)
}

func mustCreateUser(t *testing.T, repo *GormRepository, email, role, status string, supervisorID *uint) *entity.DbUser {
	t.Helper()
	user := &entity.DbUser{
		Name:         email,
		Email:        email,
		PasswordHash: "x",
		Role:         role,
		Status:       status,
		SupervisorID: supervisorID,
	}
	if err := repo.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	mustCreateUser(t, repo, "a@x.com", entity.RoleIntern, entity.StatusPending, nil)

	dup := &entity.DbUser{Name: "B", Email: "a@x.com", PasswordHash: "x"}
	if err := repo.CreateUser(ctx, dup); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected duplicated key error, got %v", err)
	}
}

func TestGetUserByEmailIsCaseInsensitive(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created := mustCreateUser(t, repo, "a@x.com", entity.RoleIntern, entity.StatusPending, nil)

	found, err := repo.GetUserByEmail(ctx, "A@X.COM")
	if err != nil {
		t.Fatalf("unexpected lookup error: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("expected user %d, got %d", created.ID, found.ID)
	}
}

func TestUpdateUserClearsSupervisor(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	sup := mustCreateUser(t, repo, "s@x.com", entity.RoleSupervisor, entity.StatusActive, nil)
	intern := mustCreateUser(t, repo, "i@x.com", entity.RoleIntern, entity.StatusActive, &sup.ID)

	role := entity.RoleSupervisor
	status := entity.StatusActive
	updates := entity.UserUpdates{
		Role:          &role,
		Status:        &status,
		SetSupervisor: true,
		SupervisorID:  nil,
	}
	if err := repo.UpdateUser(ctx, intern.ID, updates); err != nil {
		t.Fatalf("unexpected update error: %v", err)
	}

	reloaded, err := repo.GetUserByID(ctx, intern.ID)
	if err != nil {
		t.Fatalf("unexpected reload error: %v", err)
	}
	if reloaded.SupervisorID != nil {
		t.Fatal("expected supervisor reference to be cleared")
	}
	if reloaded.Role != entity.RoleSupervisor {
		t.Fatalf("expected role to change, got %s", reloaded.Role)
	}
}

func TestListInternsOfFiltersRoleStatusAndSupervisor(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	sup := mustCreateUser(t, repo, "s@x.com", entity.RoleSupervisor, entity.StatusActive, nil)
	other := mustCreateUser(t, repo, "s2@x.com", entity.RoleSupervisor, entity.StatusActive, nil)
	mustCreateUser(t, repo, "active@x.com", entity.RoleIntern, entity.StatusActive, &sup.ID)
	mustCreateUser(t, repo, "pending@x.com", entity.RoleIntern, entity.StatusPending, &sup.ID)
	mustCreateUser(t, repo, "elsewhere@x.com", entity.RoleIntern, entity.StatusActive, &other.ID)

	interns, err := repo.ListInternsOf(ctx, sup.ID)
	if err != nil {
		t.Fatalf("unexpected list error: %v", err)
	}
	if len(interns) != 1 || interns[0].Email != "active@x.com" {
		t.Fatalf("expected only the active assigned intern, got %+v", interns)
	}
}

func TestCreateTaskDuplicateDateForOwner(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	owner := mustCreateUser(t, repo, "i@x.com", entity.RoleIntern, entity.StatusActive, nil)
	other := mustCreateUser(t, repo, "j@x.com", entity.RoleIntern, entity.StatusActive, nil)

	first := &entity.DbTask{UserID: owner.ID, Date: "2024-05-01", Name: "X", Hours: 4}
	if err := repo.CreateTask(ctx, first); err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}

	dup := &entity.DbTask{UserID: owner.ID, Date: "2024-05-01", Name: "Y", Hours: 2}
	if err := repo.CreateTask(ctx, dup); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected duplicated key error, got %v", err)
	}

	// 另一账号同一天不受影响
	theirs := &entity.DbTask{UserID: other.ID, Date: "2024-05-01", Name: "Z", Hours: 3}
	if err := repo.CreateTask(ctx, theirs); err != nil {
		t.Fatalf("unexpected create error for other owner: %v", err)
	}
}

func TestListTasksByOwnerOrderedByDate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	owner := mustCreateUser(t, repo, "i@x.com", entity.RoleIntern, entity.StatusActive, nil)
	for _, date := range []string{"2024-05-03", "2024-05-01", "2024-05-02"} {
		task := &entity.DbTask{UserID: owner.ID, Date: date, Name: "X", Hours: 4}
		if err := repo.CreateTask(ctx, task); err != nil {
			t.Fatalf("unexpected create error for %s: %v", date, err)
		}
	}

	tasks, err := repo.ListTasksByOwner(ctx, owner.ID)
	if err != nil {
		t.Fatalf("unexpected list error: %v", err)
	}
	want := []string{"2024-05-01", "2024-05-02", "2024-05-03"}
	for i, date := range want {
		if tasks[i].Date != date {
			t.Fatalf("expected task %d to be %s, got %s", i, date, tasks[i].Date)
		}
	}
}

func TestDeleteTaskMissingIsNotAnError(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.DeleteTask(context.Background(), 12345); err != nil {
		t.Fatalf("expected no error for missing task, got %v", err)
	}
}
