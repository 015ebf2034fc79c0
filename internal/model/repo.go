package model

import (
	"context"

	"interntrack/internal/entity"
)

// Repository 定义数据库操作接口
type Repository interface {
	// 账户
	CreateUser(ctx context.Context, user *entity.DbUser) error
	UpdateUser(ctx context.Context, id uint, updates entity.UserUpdates) error
	GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error)
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	ListUsersByStatus(ctx context.Context, status string) ([]entity.DbUser, error)
	ListActiveUsersByRole(ctx context.Context, role string) ([]entity.DbUser, error)
	ListInternsOf(ctx context.Context, supervisorID uint) ([]entity.DbUser, error)
	ListAllUsers(ctx context.Context) ([]entity.DbUser, error)
	CountUsersByRole(ctx context.Context, role string) (int64, error)

	// 任务
	CreateTask(ctx context.Context, task *entity.DbTask) error
	GetTaskByID(ctx context.Context, id uint) (*entity.DbTask, error)
	UpdateTask(ctx context.Context, id uint, updates entity.TaskUpdates) error
	DeleteTask(ctx context.Context, id uint) error
	ListTasksByOwner(ctx context.Context, ownerID uint) ([]entity.DbTask, error)
}
