package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	basehdl "meta_people/internal/api/base/handler"
	"meta_people/internal/common"
	"meta_people/internal/global"
	"meta_people/internal/utility"
)

// AuthMiddleware xác thực JWT token từ header Authorization (Bearer scheme).
// Sau khi xác thực thành công, lưu user_id, user_email, user_role vào context
// để các handler phía sau sử dụng.
func AuthMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return handleAuthError(c, common.ErrTokenMissing)
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return handleAuthError(c, common.ErrTokenInvalid)
		}

		claims, err := utility.ParseToken(global.MongoDB_ServerConfig.JwtSecret, parts[1])
		if err != nil {
			return handleAuthError(c, err)
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("user_email", claims.Email)
		c.Locals("user_role", claims.Role)

		return c.Next()
	}
}

// RequireAdmin chặn các request không có role admin.
// Phải đặt sau AuthMiddleware trong chuỗi middleware.
func RequireAdmin() fiber.Handler {
	return func(c fiber.Ctx) error {
		role, ok := c.Locals("user_role").(string)
		if !ok || role != "admin" {
			return handleAuthError(c, common.ErrAdminRequired)
		}
		return c.Next()
	}
}

// handleAuthError trả về error response theo format thống nhất của ứng dụng
func handleAuthError(c fiber.Ctx, err error) error {
	basehdl.HandleError(c, err)
	return nil
}
