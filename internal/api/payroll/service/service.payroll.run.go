// Package payrollsvc - service kỳ lương (PayrollRun).
package payrollsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basemodels "meta_people/internal/api/base/models"
	basesvc "meta_people/internal/api/base/service"
	hrmodels "meta_people/internal/api/hr/models"
	payrolldto "meta_people/internal/api/payroll/dto"
	models "meta_people/internal/api/payroll/models"
	"meta_people/internal/common"
	"meta_people/internal/global"
	"meta_people/internal/utility"
)

// PayrollRunService là cấu trúc chứa các phương thức liên quan đến bảng lương
type PayrollRunService struct {
	*basesvc.BaseServiceMongoImpl[models.PayrollRun]
	employeeService *basesvc.BaseServiceMongoImpl[hrmodels.Employee]
}

// NewPayrollRunService tạo mới PayrollRunService
func NewPayrollRunService() (*PayrollRunService, error) {
	payrollCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.PayrollRuns)
	if !exist {
		return nil, fmt.Errorf("failed to get payroll_runs collection: %v", common.ErrNotFound)
	}
	employeeCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Employees)
	if !exist {
		return nil, fmt.Errorf("failed to get employees collection: %v", common.ErrNotFound)
	}

	return &PayrollRunService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.PayrollRun](payrollCollection),
		employeeService:      basesvc.NewBaseServiceMongo[hrmodels.Employee](employeeCollection),
	}, nil
}

// ComputeNetPay tính lương thực nhận từ các thành phần
func ComputeNetPay(baseSalary, bonus, deduction int64) int64 {
	return baseSalary + bonus - deduction
}

// Create tạo bảng lương cho một nhân viên trong một kỳ.
// Mỗi nhân viên chỉ có một bảng lương mỗi kỳ; BaseSalary bỏ trống lấy theo lương hiện tại của nhân viên.
func (s *PayrollRunService) Create(ctx context.Context, input *payrolldto.PayrollRunCreateInput) (models.PayrollRun, error) {
	var zero models.PayrollRun

	employeeID := utility.String2ObjectID(input.EmployeeID)
	employee, err := s.employeeService.FindOneById(ctx, employeeID)
	if err != nil {
		return zero, err
	}

	// Kiểm tra đã có bảng lương cho kỳ này chưa (unique index là chốt chặn cuối)
	exists, err := s.BaseServiceMongoImpl.DocumentExists(ctx, bson.M{
		"employeeId": employeeID,
		"period":     input.Period,
	})
	if err != nil {
		return zero, err
	}
	if exists {
		return zero, common.NewError(
			common.ErrCodeBusinessOperation,
			fmt.Sprintf("Nhân viên đã có bảng lương cho kỳ %s", input.Period),
			common.StatusBadRequest,
			nil,
		)
	}

	baseSalary := input.BaseSalary
	if baseSalary == 0 {
		baseSalary = employee.BaseSalary
	}

	run := models.PayrollRun{
		EmployeeID: employeeID,
		Period:     input.Period,
		BaseSalary: baseSalary,
		Bonus:      input.Bonus,
		Deduction:  input.Deduction,
		NetPay:     ComputeNetPay(baseSalary, input.Bonus, input.Deduction),
		Status:     models.PayrollStatusDraft,
		Note:       input.Note,
	}

	created, err := s.BaseServiceMongoImpl.InsertOne(ctx, run)
	if err != nil {
		if errors.Is(err, common.ErrMongoDuplicate) {
			return zero, common.NewError(
				common.ErrCodeBusinessOperation,
				fmt.Sprintf("Nhân viên đã có bảng lương cho kỳ %s", input.Period),
				common.StatusBadRequest,
				nil,
			)
		}
		return zero, err
	}

	return created, nil
}

// Update cập nhật các thành phần lương của một bảng lương còn draft và tính lại NetPay
func (s *PayrollRunService) Update(ctx context.Context, runID primitive.ObjectID, input *payrolldto.PayrollRunUpdateInput) (models.PayrollRun, error) {
	var zero models.PayrollRun

	run, err := s.BaseServiceMongoImpl.FindOneById(ctx, runID)
	if err != nil {
		return zero, err
	}

	if run.Status == models.PayrollStatusClosed {
		return zero, common.NewError(
			common.ErrCodeBusinessState,
			"Bảng lương đã chốt, không thể chỉnh sửa",
			common.StatusBadRequest,
			nil,
		)
	}

	baseSalary := run.BaseSalary
	bonus := run.Bonus
	deduction := run.Deduction

	updateData := &basesvc.UpdateData{Set: make(map[string]interface{})}
	if input.BaseSalary != nil {
		baseSalary = *input.BaseSalary
		updateData.Set["baseSalary"] = baseSalary
	}
	if input.Bonus != nil {
		bonus = *input.Bonus
		updateData.Set["bonus"] = bonus
	}
	if input.Deduction != nil {
		deduction = *input.Deduction
		updateData.Set["deduction"] = deduction
	}
	if input.Note != "" {
		updateData.Set["note"] = input.Note
	}
	updateData.Set["netPay"] = ComputeNetPay(baseSalary, bonus, deduction)

	return s.BaseServiceMongoImpl.UpdateById(ctx, runID, updateData)
}

// Close chốt bảng lương, sau khi chốt không thể chỉnh sửa
func (s *PayrollRunService) Close(ctx context.Context, runID primitive.ObjectID) (models.PayrollRun, error) {
	var zero models.PayrollRun

	run, err := s.BaseServiceMongoImpl.FindOneById(ctx, runID)
	if err != nil {
		return zero, err
	}

	if run.Status == models.PayrollStatusClosed {
		return zero, common.NewError(
			common.ErrCodeBusinessState,
			"Bảng lương đã được chốt trước đó",
			common.StatusBadRequest,
			nil,
		)
	}

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"status":   models.PayrollStatusClosed,
			"closedAt": time.Now().UnixMilli(),
		},
	}
	return s.BaseServiceMongoImpl.UpdateById(ctx, runID, updateData)
}

// FindByEmployee lấy danh sách bảng lương của một nhân viên với phân trang
func (s *PayrollRunService) FindByEmployee(ctx context.Context, employeeID primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[models.PayrollRun], error) {
	if _, err := s.employeeService.FindOneById(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.BaseServiceMongoImpl.FindWithPagination(ctx, bson.M{"employeeId": employeeID}, page, limit, nil)
}

// SummaryByPeriod tổng hợp lương theo kỳ bằng aggregation
func (s *PayrollRunService) SummaryByPeriod(ctx context.Context, period string) (*models.PeriodSummary, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"period": period}},
		{"$group": bson.M{
			"_id":            "$period",
			"employeeCount":  bson.M{"$sum": 1},
			"totalNetPay":    bson.M{"$sum": "$netPay"},
			"totalBonus":     bson.M{"$sum": "$bonus"},
			"totalDeduction": bson.M{"$sum": "$deduction"},
		}},
	}

	cursor, err := s.Collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var results []models.PeriodSummary
	if err := cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	if len(results) == 0 {
		return &models.PeriodSummary{Period: period}, nil
	}
	return &results[0], nil
}
