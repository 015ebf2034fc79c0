package model

import (
	"context"
	"errors"
	"strings"

	"interntrack/internal/auth"
	"interntrack/internal/config"
	"interntrack/internal/entity"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SeedInitialAdmin ensures at least one admin account exists so the approval
// workflow can be bootstrapped. It is a no-op when any admin is already
// present or when no admin password is configured.
func SeedInitialAdmin(ctx context.Context, repo Repository, cfg config.Config) error {
	if repo == nil {
		return nil
	}

	password := strings.TrimSpace(cfg.AdminPassword)
	if password == "" {
		logrus.Warn("ADMIN_PASSWORD not set, skipping initial admin seeding")
		return nil
	}

	count, err := repo.CountUsersByRole(ctx, entity.RoleAdmin)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &entity.DbUser{
		Name:         strings.TrimSpace(cfg.AdminName),
		Email:        strings.ToLower(strings.TrimSpace(cfg.AdminEmail)),
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
		Status:       entity.StatusActive,
	}

	if err := repo.CreateUser(ctx, admin); err != nil {
		// 与另一个实例并发启动时可能撞上唯一索引，视为已存在
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}

	logrus.WithField("email", admin.Email).Info("initial admin account created")
	return nil
}
