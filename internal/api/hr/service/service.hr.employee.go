package hrsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basemodels "meta_people/internal/api/base/models"
	basesvc "meta_people/internal/api/base/service"
	models "meta_people/internal/api/hr/models"
	"meta_people/internal/common"
	"meta_people/internal/global"
)

// EmployeeService là cấu trúc chứa các phương thức liên quan đến nhân viên
type EmployeeService struct {
	*basesvc.BaseServiceMongoImpl[models.Employee]
	departmentService *basesvc.BaseServiceMongoImpl[models.Department]
}

// NewEmployeeService tạo mới EmployeeService
func NewEmployeeService() (*EmployeeService, error) {
	employeeCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Employees)
	if !exist {
		return nil, fmt.Errorf("failed to get employees collection: %v", common.ErrNotFound)
	}
	departmentCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Departments)
	if !exist {
		return nil, fmt.Errorf("failed to get departments collection: %v", common.ErrNotFound)
	}

	return &EmployeeService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Employee](employeeCollection),
		departmentService:    basesvc.NewBaseServiceMongo[models.Department](departmentCollection),
	}, nil
}

// FindByDepartment tìm nhân viên theo phòng ban với phân trang
func (s *EmployeeService) FindByDepartment(ctx context.Context, departmentID primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[models.Employee], error) {
	// Xác nhận phòng ban tồn tại
	if _, err := s.departmentService.FindOneById(ctx, departmentID); err != nil {
		return nil, err
	}

	filter := bson.M{"departmentId": departmentID}
	return s.BaseServiceMongoImpl.FindWithPagination(ctx, filter, page, limit, nil)
}

// Transfer chuyển nhân viên sang phòng ban khác
func (s *EmployeeService) Transfer(ctx context.Context, employeeID, departmentID primitive.ObjectID) (models.Employee, error) {
	var zero models.Employee

	// Phòng ban đích phải tồn tại
	if _, err := s.departmentService.FindOneById(ctx, departmentID); err != nil {
		return zero, err
	}

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{"departmentId": departmentID},
	}
	return s.BaseServiceMongoImpl.UpdateById(ctx, employeeID, updateData)
}
