// Package router đăng ký các route thuộc domain auth: đăng ký, đăng nhập, profile, quản trị user.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authhdl "meta_people/internal/api/auth/handler"
	basehdl "meta_people/internal/api/base/handler"
	"meta_people/internal/api/middleware"
	apirouter "meta_people/internal/api/router"
)

// Register đăng ký tất cả route auth (system, auth, quản trị user) lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	registerSystemRoutes(v1)
	if err := registerAuthRoutes(v1); err != nil {
		return err
	}
	if err := registerUserAdminRoutes(v1, r); err != nil {
		return err
	}
	return nil
}

func registerSystemRoutes(router fiber.Router) {
	systemHandler := basehdl.NewSystemHandler()
	router.Get("/system/health", systemHandler.HandleHealth)
}

func registerAuthRoutes(router fiber.Router) error {
	userHandler, err := authhdl.NewUserHandler()
	if err != nil {
		return fmt.Errorf("failed to create user handler: %w", err)
	}

	// Route public duy nhất: đăng nhập
	router.Post("/auth/login", userHandler.HandleLogin)

	authMiddleware := middleware.AuthMiddleware()

	// Tạo tài khoản staff là thao tác quản trị, chỉ admin được gọi
	adminMiddleware := middleware.RequireAdmin()
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "POST", "/register", []fiber.Handler{authMiddleware, adminMiddleware}, userHandler.HandleRegister)

	// Route yêu cầu đăng nhập
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "GET", "/me", []fiber.Handler{authMiddleware}, userHandler.HandleGetProfile)
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "PUT", "/profile", []fiber.Handler{authMiddleware}, userHandler.HandleUpdateProfile)
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "PUT", "/change-password", []fiber.Handler{authMiddleware}, userHandler.HandleChangePassword)
	return nil
}

func registerUserAdminRoutes(router fiber.Router, r *apirouter.Router) error {
	userHandler, err := authhdl.NewUserHandler()
	if err != nil {
		return fmt.Errorf("failed to create user handler: %w", err)
	}

	// Danh sách user chỉ đọc, dành cho admin
	adminMiddleware := middleware.RequireAdmin()
	apirouter.RegisterRouteWithMiddleware(router, "/user", "GET", "/find", []fiber.Handler{middleware.AuthMiddleware(), adminMiddleware}, userHandler.Find)
	apirouter.RegisterRouteWithMiddleware(router, "/user", "GET", "/find-by-id/:id", []fiber.Handler{middleware.AuthMiddleware(), adminMiddleware}, userHandler.FindOneById)
	apirouter.RegisterRouteWithMiddleware(router, "/user", "GET", "/find-with-pagination", []fiber.Handler{middleware.AuthMiddleware(), adminMiddleware}, userHandler.FindWithPagination)
	apirouter.RegisterRouteWithMiddleware(router, "/user", "GET", "/count", []fiber.Handler{middleware.AuthMiddleware(), adminMiddleware}, userHandler.CountDocuments)
	return nil
}
