// Package hrhdl - các handler thuộc domain hr.
package hrhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "meta_people/internal/api/base/handler"
	hrdto "meta_people/internal/api/hr/dto"
	models "meta_people/internal/api/hr/models"
	hrsvc "meta_people/internal/api/hr/service"
)

// DepartmentHandler xử lý các request liên quan đến phòng ban
type DepartmentHandler struct {
	*basehdl.BaseHandler[models.Department, hrdto.DepartmentCreateInput, hrdto.DepartmentUpdateInput]
	departmentService *hrsvc.DepartmentService
}

// NewDepartmentHandler tạo instance mới của DepartmentHandler
func NewDepartmentHandler() (*DepartmentHandler, error) {
	departmentService, err := hrsvc.NewDepartmentService()
	if err != nil {
		return nil, fmt.Errorf("failed to create department service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.Department, hrdto.DepartmentCreateInput, hrdto.DepartmentUpdateInput](departmentService)
	return &DepartmentHandler{
		BaseHandler:       baseHandler,
		departmentService: departmentService,
	}, nil
}

// HandleEmployeeCount trả về số nhân viên đang thuộc phòng ban
func (h *DepartmentHandler) HandleEmployeeCount(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		departmentID, err := basehdl.ParseObjectIDParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		count, err := h.departmentService.GetEmployeeCount(c.Context(), departmentID)
		h.HandleResponse(c, fiber.Map{"employeeCount": count}, err)
		return nil
	})
}
