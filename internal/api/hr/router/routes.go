// Package router đăng ký các route thuộc domain hr: phòng ban và nhân viên.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	hrhdl "meta_people/internal/api/hr/handler"
	"meta_people/internal/api/middleware"
	apirouter "meta_people/internal/api/router"
)

// Register đăng ký tất cả route hr lên v1.
// Route ghi/xóa yêu cầu quyền admin, route đọc chỉ cần đăng nhập.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	departmentHandler, err := hrhdl.NewDepartmentHandler()
	if err != nil {
		return fmt.Errorf("failed to create department handler: %w", err)
	}
	employeeHandler, err := hrhdl.NewEmployeeHandler()
	if err != nil {
		return fmt.Errorf("failed to create employee handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	adminMiddleware := middleware.RequireAdmin()

	r.RegisterCRUDRoutes(v1, "/hr/departments", departmentHandler, apirouter.ReadWriteConfig, adminMiddleware)
	apirouter.RegisterRouteWithMiddleware(v1, "/hr/departments", "GET", "/:id/employee-count", []fiber.Handler{authMiddleware}, departmentHandler.HandleEmployeeCount)

	// Ghi/xóa nhân viên cũng phải admin: baseSalary là đầu vào tính lương,
	// để staff sửa được thì gate admin bên payroll thành vô nghĩa
	r.RegisterCRUDRoutes(v1, "/hr/employees", employeeHandler, apirouter.ReadWriteConfig, adminMiddleware)
	apirouter.RegisterRouteWithMiddleware(v1, "/hr/employees", "GET", "/by-department/:departmentId", []fiber.Handler{authMiddleware}, employeeHandler.HandleFindByDepartment)
	apirouter.RegisterRouteWithMiddleware(v1, "/hr/employees", "PUT", "/:id/transfer", []fiber.Handler{authMiddleware, adminMiddleware}, employeeHandler.HandleTransfer)

	return nil
}
