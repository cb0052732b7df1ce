// Package router đăng ký các route thuộc domain CRM (khách hàng + audit log).
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	crmhdl "meta_people/internal/api/crm/handler"
	"meta_people/internal/api/middleware"
	apirouter "meta_people/internal/api/router"
)

// Register đăng ký tất cả route CRM lên v1 dưới prefix /client/customers.
// Route tĩnh (/count, /stats, /deleted, /import, ...) đăng ký trước /:id để
// không bị nuốt bởi param route. Scope ownership (staff chỉ thấy dữ liệu của
// mình) nằm trong service; router chỉ gate các thao tác admin-only:
// xem thùng rác, restore, hard delete và các bản bulk của chúng.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	customerHandler, err := crmhdl.NewCustomerHandler()
	if err != nil {
		return fmt.Errorf("failed to create customer handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	adminMiddleware := middleware.RequireAdmin()
	prefix := "/client/customers"

	authed := []fiber.Handler{authMiddleware}
	adminOnly := []fiber.Handler{authMiddleware, adminMiddleware}

	apirouter.RegisterRouteWithMiddleware(v1, prefix, "GET", "/count", authed, customerHandler.HandleCount)
	apirouter.RegisterRouteWithMiddleware(v1, prefix, "GET", "/stats", authed, customerHandler.HandleStats)
	apirouter.RegisterRouteWithMiddleware(v1, prefix, "GET", "/deleted", adminOnly, customerHandler.HandleListDeleted)
	apirouter.RegisterRouteWithMiddleware(v1, prefix, "POST", "/import", authed, customerHandler.HandleImport)
	apirouter.RegisterRouteWithMiddleware(v1, prefix, "POST", "/restore/bulk", adminOnly, customerHandler.HandleBulkRestore)
	apirouter.RegisterRouteWithMiddleware(v1, prefix, "POST", "/hard/bulk", adminOnly, customerHandler.HandleBulkHardDelete)

	apirouter.RegisterRouteWithMiddleware(v1, prefix, "GET", "/", authed, customerHandler.HandleList)
	apirouter.RegisterRouteWithMiddleware(v1, prefix, "POST", "/", authed, customerHandler.HandleCreate)

	apirouter.RegisterRouteWithMiddleware(v1, prefix, "GET", "/:id/logs", authed, customerHandler.HandleListLogs)
	apirouter.RegisterRouteWithMiddleware(v1, prefix, "POST", "/:id/restore", adminOnly, customerHandler.HandleRestore)
	apirouter.RegisterRouteWithMiddleware(v1, prefix, "DELETE", "/:id/hard", adminOnly, customerHandler.HandleHardDelete)

	apirouter.RegisterRouteWithMiddleware(v1, prefix, "GET", "/:id", authed, customerHandler.HandleGet)
	apirouter.RegisterRouteWithMiddleware(v1, prefix, "PUT", "/:id", authed, customerHandler.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(v1, prefix, "DELETE", "/:id", authed, customerHandler.HandleSoftDelete)

	return nil
}
