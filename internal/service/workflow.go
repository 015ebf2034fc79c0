package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"interntrack/internal/auth"
	"interntrack/internal/entity"
	"interntrack/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Business-rule failures. Handlers map these onto the HTTP error envelope;
// anything else is treated as an unexpected server fault.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrInvalidState       = errors.New("invalid state")
)

const (
	minTaskHours = 1
	maxTaskHours = 24

	dateLayout = "2006-01-02"
)

// WorkflowService 账户审批与任务归属规则，系统的核心业务逻辑。
// 每个方法都显式接收调用者身份，不依赖任何进程级会话状态。
type WorkflowService struct {
	repo model.Repository
}

// NewWorkflowService 创建工作流服务实例
func NewWorkflowService(repo model.Repository) *WorkflowService {
	return &WorkflowService{repo: repo}
}

// Signup registers a new account. It always starts as a pending intern;
// role and supervisor are assigned later by an admin approval.
func (s *WorkflowService) Signup(ctx context.Context, name, email, password string) (*entity.DbUser, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)

	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &entity.DbUser{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleIntern,
		Status:       entity.StatusPending,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, err
	}
	return user, nil
}

// Authenticate checks the credential and returns the minimal identity.
// Failures are deliberately indistinguishable so callers cannot probe which
// emails exist. Admins may log in regardless of status so the bootstrap
// admin is never locked out.
func (s *WorkflowService) Authenticate(ctx context.Context, email, password string) (*entity.DbUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Status != entity.StatusActive && user.Role != entity.RoleAdmin {
		return nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Approve moves a pending account to active, assigning its role and, for
// interns, the supervising account. Approving anything but a pending
// account fails and leaves the row untouched.
func (s *WorkflowService) Approve(ctx context.Context, caller *entity.DbUser, userID uint, role string, supervisorID *uint) (*entity.DbUser, error) {
	if !isAdmin(caller) {
		return nil, fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	if !entity.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	target, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, err
	}
	if target.Status != entity.StatusPending {
		return nil, fmt.Errorf("%w: account is %s, only pending accounts can be approved", ErrInvalidState, target.Status)
	}

	var assignedSupervisor *uint
	if role == entity.RoleIntern {
		if supervisorID == nil || *supervisorID == 0 {
			return nil, fmt.Errorf("%w: intern approval requires a supervisor", ErrInvalidInput)
		}
		supervisor, err := s.repo.GetUserByID(ctx, *supervisorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: supervisor not found", ErrInvalidInput)
			}
			return nil, err
		}
		if supervisor.Role != entity.RoleSupervisor || supervisor.Status != entity.StatusActive {
			return nil, fmt.Errorf("%w: supervisor must be an active supervisor account", ErrInvalidInput)
		}
		assignedSupervisor = supervisorID
	}

	status := entity.StatusActive
	updates := entity.UserUpdates{
		Role:          &role,
		Status:        &status,
		SetSupervisor: true,
		SupervisorID:  assignedSupervisor,
	}
	if err := s.repo.UpdateUser(ctx, target.ID, updates); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"admin_id":  caller.ID,
		"user_id":   target.ID,
		"role":      role,
		"has_super": assignedSupervisor != nil,
	}).Info("account approved")

	return s.repo.GetUserByID(ctx, target.ID)
}

// Reject moves a pending account to the terminal rejected state.
func (s *WorkflowService) Reject(ctx context.Context, caller *entity.DbUser, userID uint) (*entity.DbUser, error) {
	if !isAdmin(caller) {
		return nil, fmt.Errorf("%w: admin role required", ErrForbidden)
	}

	target, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, err
	}
	if target.Status != entity.StatusPending {
		return nil, fmt.Errorf("%w: account is %s, only pending accounts can be rejected", ErrInvalidState, target.Status)
	}

	status := entity.StatusRejected
	if err := s.repo.UpdateUser(ctx, target.ID, entity.UserUpdates{Status: &status}); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"admin_id": caller.ID,
		"user_id":  target.ID,
	}).Info("account rejected")

	return s.repo.GetUserByID(ctx, target.ID)
}

// ListPending returns accounts awaiting review. Admin only.
func (s *WorkflowService) ListPending(ctx context.Context, caller *entity.DbUser) ([]entity.DbUser, error) {
	if !isAdmin(caller) {
		return nil, fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	return s.repo.ListUsersByStatus(ctx, entity.StatusPending)
}

// ListSupervisors returns active supervisor accounts. Any authenticated
// caller may read this, the admin approval dialog and the signup flow both
// need it.
func (s *WorkflowService) ListSupervisors(ctx context.Context, caller *entity.DbUser) ([]entity.DbUser, error) {
	if caller == nil {
		return nil, fmt.Errorf("%w: authentication required", ErrForbidden)
	}
	return s.repo.ListActiveUsersByRole(ctx, entity.RoleSupervisor)
}

// ListInterns returns the active interns assigned to the given supervisor.
func (s *WorkflowService) ListInterns(ctx context.Context, caller *entity.DbUser, supervisorID uint) ([]entity.DbUser, error) {
	if caller == nil {
		return nil, fmt.Errorf("%w: authentication required", ErrForbidden)
	}
	if supervisorID == 0 {
		return nil, fmt.Errorf("%w: supervisor id is required", ErrInvalidInput)
	}
	return s.repo.ListInternsOf(ctx, supervisorID)
}

// ListAll returns every account. Admin only.
func (s *WorkflowService) ListAll(ctx context.Context, caller *entity.DbUser) ([]entity.DbUser, error) {
	if !isAdmin(caller) {
		return nil, fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	return s.repo.ListAllUsers(ctx)
}

// CreateTask logs a task for the calling account. Ownership comes from the
// caller identity, never from the request body. One task per calendar day:
// the store's unique index turns a duplicate into a Conflict.
func (s *WorkflowService) CreateTask(ctx context.Context, caller *entity.DbUser, req entity.TaskCreateRequest) (*entity.DbTask, error) {
	if caller == nil {
		return nil, fmt.Errorf("%w: authentication required", ErrForbidden)
	}
	date := strings.TrimSpace(req.Date)
	if err := validateDate(date); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: task name is required", ErrInvalidInput)
	}
	if err := validateHours(req.Hours); err != nil {
		return nil, err
	}

	task := &entity.DbTask{
		UserID:      caller.ID,
		Date:        date,
		Name:        name,
		Hours:       req.Hours,
		Description: strings.TrimSpace(req.Description),
	}

	if err := s.repo.CreateTask(ctx, task); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: a task already exists for %s", ErrConflict, date)
		}
		return nil, err
	}
	return task, nil
}

// ListTasksForOwner returns the owner's tasks ordered by date. Readable by
// the owner, by the owner's assigned supervisor, and by admins.
func (s *WorkflowService) ListTasksForOwner(ctx context.Context, caller *entity.DbUser, ownerID uint) ([]entity.DbTask, error) {
	if caller == nil {
		return nil, fmt.Errorf("%w: authentication required", ErrForbidden)
	}
	if ownerID == 0 {
		return nil, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}

	if caller.ID != ownerID && caller.Role != entity.RoleAdmin {
		if caller.Role != entity.RoleSupervisor {
			return nil, fmt.Errorf("%w: not allowed to view these tasks", ErrForbidden)
		}
		owner, err := s.repo.GetUserByID(ctx, ownerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: user not found", ErrNotFound)
			}
			return nil, err
		}
		if !supervises(caller, owner) {
			return nil, fmt.Errorf("%w: not one of your interns", ErrForbidden)
		}
	}

	return s.repo.ListTasksByOwner(ctx, ownerID)
}

// UpdateTask edits an existing task. Only the owner may update, and the
// date is immutable after creation.
func (s *WorkflowService) UpdateTask(ctx context.Context, caller *entity.DbUser, taskID uint, req entity.TaskUpdateRequest) (*entity.DbTask, error) {
	if caller == nil {
		return nil, fmt.Errorf("%w: authentication required", ErrForbidden)
	}

	task, err := s.repo.GetTaskByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: task not found", ErrNotFound)
		}
		return nil, err
	}
	// Owner mismatch is reported the same as a missing task so callers
	// cannot probe other accounts' task ids.
	if task.UserID != caller.ID {
		return nil, fmt.Errorf("%w: task not found", ErrNotFound)
	}

	if req.Date != nil && *req.Date != task.Date {
		return nil, fmt.Errorf("%w: task date cannot be changed", ErrInvalidInput)
	}

	updates := entity.TaskUpdates{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: task name is required", ErrInvalidInput)
		}
		updates.Name = &name
	}
	if req.Hours != nil {
		if err := validateHours(*req.Hours); err != nil {
			return nil, err
		}
		updates.Hours = req.Hours
	}
	if req.Description != nil {
		desc := strings.TrimSpace(*req.Description)
		updates.Description = &desc
	}

	if updates.IsEmpty() {
		return task, nil
	}
	if err := s.repo.UpdateTask(ctx, task.ID, updates); err != nil {
		return nil, err
	}
	return s.repo.GetTaskByID(ctx, task.ID)
}

// DeleteTask removes a task. Only the owner may delete; deleting an id that
// no longer exists succeeds so retried deletes stay harmless.
func (s *WorkflowService) DeleteTask(ctx context.Context, caller *entity.DbUser, taskID uint) error {
	if caller == nil {
		return fmt.Errorf("%w: authentication required", ErrForbidden)
	}
	if taskID == 0 {
		return fmt.Errorf("%w: task id is required", ErrInvalidInput)
	}

	task, err := s.repo.GetTaskByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if task.UserID != caller.ID {
		return fmt.Errorf("%w: only the owner may delete a task", ErrForbidden)
	}

	return s.repo.DeleteTask(ctx, task.ID)
}

func isAdmin(caller *entity.DbUser) bool {
	return caller != nil && caller.Role == entity.RoleAdmin
}

func supervises(supervisor, owner *entity.DbUser) bool {
	if supervisor == nil || owner == nil {
		return false
	}
	return owner.Role == entity.RoleIntern &&
		owner.Status == entity.StatusActive &&
		owner.SupervisorID != nil &&
		*owner.SupervisorID == supervisor.ID
}

func validateHours(hours float64) error {
	if hours < minTaskHours || hours > maxTaskHours {
		return fmt.Errorf("%w: hours must be between %d and %d", ErrInvalidInput, minTaskHours, maxTaskHours)
	}
	return nil
}

func validateDate(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if _, err := time.Parse(dateLayout, trimmed); err != nil {
		return fmt.Errorf("%w: date must be formatted as %s", ErrInvalidInput, dateLayout)
	}
	return nil
}
