// Package router đăng ký các route thuộc domain payroll.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"meta_people/internal/api/middleware"
	payrollhdl "meta_people/internal/api/payroll/handler"
	apirouter "meta_people/internal/api/router"
)

// Register đăng ký các route payroll lên v1.
// Bảng lương là dữ liệu nhạy cảm nên mọi thao tác ghi đều yêu cầu admin.
// Insert/update không dùng CRUD mặc định vì NetPay phải do service tính lại.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	payrollHandler, err := payrollhdl.NewPayrollRunHandler()
	if err != nil {
		return fmt.Errorf("failed to create payroll handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	adminMiddleware := middleware.RequireAdmin()
	prefix := "/payroll/runs"

	r.RegisterCRUDRoutes(v1, prefix, payrollHandler, apirouter.ReadOnlyConfig)

	readChain := []fiber.Handler{authMiddleware}
	writeChain := []fiber.Handler{authMiddleware, adminMiddleware}

	apirouter.RegisterRouteWithMiddleware(v1, prefix, "POST", "/insert-one", writeChain, payrollHandler.HandleCreate)
	apirouter.RegisterRouteWithMiddleware(v1, prefix, "PUT", "/update-by-id/:id", writeChain, payrollHandler.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(v1, prefix, "POST", "/:id/close", writeChain, payrollHandler.HandleClose)
	apirouter.RegisterRouteWithMiddleware(v1, prefix, "DELETE", "/delete-by-id/:id", writeChain, payrollHandler.DeleteById)

	apirouter.RegisterRouteWithMiddleware(v1, prefix, "GET", "/by-employee/:id", readChain, payrollHandler.HandleFindByEmployee)
	apirouter.RegisterRouteWithMiddleware(v1, prefix, "GET", "/summary/:period", readChain, payrollHandler.HandleSummaryByPeriod)

	return nil
}
