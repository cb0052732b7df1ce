package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các giá trị status hợp lệ của Employee
const (
	EmployeeStatusActive     = "active"
	EmployeeStatusOnLeave    = "on_leave"
	EmployeeStatusTerminated = "terminated"
)

// Employee định nghĩa mô hình nhân viên.
// Không thể xóa nhân viên khi còn bảng lương gắn với nhân viên đó.
type Employee struct {
	_Relationships struct{}           `relationship:"collection:payroll_runs,field:employeeId,message:Không thể xóa nhân viên vì có %d bảng lương đang gắn với nhân viên này. Vui lòng xóa các bảng lương trước."`
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name" index:"text"`
	Email          string             `json:"email,omitempty" bson:"email,omitempty" index:"unique,sparse"`
	Phone          string             `json:"phone,omitempty" bson:"phone,omitempty" index:"unique,sparse"`
	DepartmentID   primitive.ObjectID `json:"departmentId" bson:"departmentId" index:"single:1"`
	Position       string             `json:"position,omitempty" bson:"position,omitempty"`
	BaseSalary     int64              `json:"baseSalary" bson:"baseSalary"`
	Status         string             `json:"status" bson:"status" index:"single:1"`
	JoinedAt       int64              `json:"joinedAt,omitempty" bson:"joinedAt,omitempty"`
	CreatedAt      int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt      int64              `json:"updatedAt" bson:"updatedAt"`
}
