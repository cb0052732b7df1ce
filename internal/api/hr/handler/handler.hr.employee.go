package hrhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "meta_people/internal/api/base/handler"
	hrdto "meta_people/internal/api/hr/dto"
	models "meta_people/internal/api/hr/models"
	hrsvc "meta_people/internal/api/hr/service"
	"meta_people/internal/common"
	"meta_people/internal/utility"
)

// EmployeeHandler xử lý các request liên quan đến nhân viên
type EmployeeHandler struct {
	*basehdl.BaseHandler[models.Employee, hrdto.EmployeeCreateInput, hrdto.EmployeeUpdateInput]
	employeeService *hrsvc.EmployeeService
}

// NewEmployeeHandler tạo instance mới của EmployeeHandler
func NewEmployeeHandler() (*EmployeeHandler, error) {
	employeeService, err := hrsvc.NewEmployeeService()
	if err != nil {
		return nil, fmt.Errorf("failed to create employee service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.Employee, hrdto.EmployeeCreateInput, hrdto.EmployeeUpdateInput](employeeService)
	return &EmployeeHandler{
		BaseHandler:     baseHandler,
		employeeService: employeeService,
	}, nil
}

// HandleFindByDepartment lấy danh sách nhân viên của một phòng ban (phân trang)
func (h *EmployeeHandler) HandleFindByDepartment(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		departmentIDStr := c.Params("departmentId")
		if !primitive.IsValidObjectID(departmentIDStr) {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("ID '%s' không đúng định dạng MongoDB ObjectID (phải là chuỗi hex 24 ký tự)", departmentIDStr),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		page, limit := h.ParsePagination(c)
		data, err := h.employeeService.FindByDepartment(c.Context(), utility.String2ObjectID(departmentIDStr), page, limit)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleTransfer chuyển nhân viên sang phòng ban khác
func (h *EmployeeHandler) HandleTransfer(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		employeeID, err := basehdl.ParseObjectIDParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input hrdto.EmployeeTransferInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.employeeService.Transfer(c.Context(), employeeID, utility.String2ObjectID(input.DepartmentID))
		h.HandleResponse(c, data, err)
		return nil
	})
}
