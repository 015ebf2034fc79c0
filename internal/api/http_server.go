package api

import (
	"time"

	"interntrack/internal/auth"
	"interntrack/internal/config"
	"interntrack/internal/entity"
	"interntrack/internal/model"
	"interntrack/internal/service"
)

// HTTPHandler HTTP 请求处理器
type HTTPHandler struct {
	cfg         config.Config
	repo        model.Repository
	authManager *auth.Manager

	// 业务核心：审批工作流与任务规则
	workflow *service.WorkflowService
}

// NewHTTPHandler 创建 HTTP 处理器实例
func NewHTTPHandler(cfg config.Config, repo model.Repository) (*HTTPHandler, error) {
	expiry := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiry)
	if err != nil {
		return nil, err
	}

	return &HTTPHandler{
		cfg:         cfg,
		repo:        repo,
		authManager: authManager,
		workflow:    service.NewWorkflowService(repo),
	}, nil
}

func makeUserSummary(user *entity.DbUser) entity.UserSummary {
	if user == nil {
		return entity.UserSummary{}
	}
	return entity.UserSummary{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		Status:       user.Status,
		SupervisorID: user.SupervisorID,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func makeUserSummaries(users []entity.DbUser) []entity.UserSummary {
	out := make([]entity.UserSummary, 0, len(users))
	for idx := range users {
		out = append(out, makeUserSummary(&users[idx]))
	}
	return out
}

func makeDirectoryEntries(users []entity.DbUser) []entity.DirectoryEntry {
	out := make([]entity.DirectoryEntry, 0, len(users))
	for _, user := range users {
		out = append(out, entity.DirectoryEntry{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		})
	}
	return out
}

func makeIdentity(user *entity.DbUser) entity.Identity {
	if user == nil {
		return entity.Identity{}
	}
	return entity.Identity{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}
