package main

import (
	"context"
	"time"

	authsvc "meta_people/internal/api/auth/service"
	"meta_people/internal/global"
	"meta_people/internal/logger"
)

// InitDefaultData tạo tài khoản admin mặc định nếu được cấu hình.
// ADMIN_PASSWORD bỏ trống nghĩa là không tự tạo, user đăng ký qua API như thường.
func InitDefaultData() {
	log := logger.GetAppLogger()
	cfg := global.MongoDB_ServerConfig

	if cfg.AdminPassword == "" {
		log.Info("ADMIN_PASSWORD not set, skipping default admin account")
		return
	}

	userService, err := authsvc.NewUserService()
	if err != nil {
		log.Fatalf("Failed to create user service: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := userService.EnsureAdminAccount(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to ensure admin account: %v", err)
	}
	log.Infof("Default admin account ensured: %s", cfg.AdminEmail)
}
