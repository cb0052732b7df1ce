// Package payrollhdl xử lý các request HTTP của domain payroll.
package payrollhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "meta_people/internal/api/base/handler"
	payrolldto "meta_people/internal/api/payroll/dto"
	models "meta_people/internal/api/payroll/models"
	payrollsvc "meta_people/internal/api/payroll/service"
	"meta_people/internal/logger"
)

// PayrollRunHandler xử lý các request liên quan đến bảng lương
type PayrollRunHandler struct {
	*basehdl.BaseHandler[models.PayrollRun, payrolldto.PayrollRunCreateInput, payrolldto.PayrollRunUpdateInput]
	payrollService *payrollsvc.PayrollRunService
}

// NewPayrollRunHandler tạo instance mới của PayrollRunHandler
func NewPayrollRunHandler() (*PayrollRunHandler, error) {
	payrollService, err := payrollsvc.NewPayrollRunService()
	if err != nil {
		return nil, fmt.Errorf("failed to create payroll service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.PayrollRun, payrolldto.PayrollRunCreateInput, payrolldto.PayrollRunUpdateInput](payrollService)
	return &PayrollRunHandler{
		BaseHandler:    baseHandler,
		payrollService: payrollService,
	}, nil
}

// HandleCreate tạo bảng lương mới. Không dùng InsertOne mặc định vì NetPay
// phải do service tính và kỳ lương phải được kiểm tra trùng.
func (h *PayrollRunHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input payrolldto.PayrollRunCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.payrollService.Create(c.Context(), &input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		logger.LogCRUD("create", "payroll_run", data.ID.Hex(), c, map[string]interface{}{
			"employeeId": data.EmployeeID.Hex(),
			"period":     data.Period,
		})
		h.HandleCreated(c, data, nil)
		return nil
	})
}

// HandleUpdate cập nhật bảng lương còn draft, service tính lại NetPay
func (h *PayrollRunHandler) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		runID, err := basehdl.ParseObjectIDParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input payrolldto.PayrollRunUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.payrollService.Update(c.Context(), runID, &input)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleClose chốt bảng lương
func (h *PayrollRunHandler) HandleClose(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		runID, err := basehdl.ParseObjectIDParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.payrollService.Close(c.Context(), runID)
		if err == nil {
			logger.LogCRUD("close", "payroll_run", runID.Hex(), c, map[string]interface{}{
				"period": data.Period,
			})
		}
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleFindByEmployee lấy danh sách bảng lương của một nhân viên (phân trang)
func (h *PayrollRunHandler) HandleFindByEmployee(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		employeeID, err := basehdl.ParseObjectIDParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		page, limit := h.ParsePagination(c)
		data, err := h.payrollService.FindByEmployee(c.Context(), employeeID, page, limit)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleSummaryByPeriod tổng hợp lương của một kỳ (YYYY-MM)
func (h *PayrollRunHandler) HandleSummaryByPeriod(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		period := c.Params("period")
		data, err := h.payrollService.SummaryByPeriod(c.Context(), period)
		h.HandleResponse(c, data, err)
		return nil
	})
}
