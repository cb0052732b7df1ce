// Package hrsvc - các service thuộc domain hr.
package hrsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "meta_people/internal/api/base/service"
	models "meta_people/internal/api/hr/models"
	"meta_people/internal/common"
	"meta_people/internal/global"
)

// DepartmentService là cấu trúc chứa các phương thức liên quan đến phòng ban
type DepartmentService struct {
	*basesvc.BaseServiceMongoImpl[models.Department]
}

// NewDepartmentService tạo mới DepartmentService
func NewDepartmentService() (*DepartmentService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Departments)
	if !exist {
		return nil, fmt.Errorf("failed to get departments collection: %v", common.ErrNotFound)
	}

	return &DepartmentService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Department](collection),
	}, nil
}

// GetEmployeeCount trả về số nhân viên đang thuộc phòng ban
func (s *DepartmentService) GetEmployeeCount(ctx context.Context, departmentID primitive.ObjectID) (int64, error) {
	// Xác nhận phòng ban tồn tại trước khi đếm
	if _, err := s.BaseServiceMongoImpl.FindOneById(ctx, departmentID); err != nil {
		return 0, err
	}
	return basesvc.GetRelationshipCount(ctx, departmentID, global.MongoDB_ColNames.Employees, "departmentId")
}
