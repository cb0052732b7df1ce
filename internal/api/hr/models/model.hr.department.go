// Package models - các model thuộc domain hr (phòng ban, nhân viên).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Department định nghĩa mô hình phòng ban.
// Không thể xóa phòng ban khi còn nhân viên trực thuộc (kiểm tra qua relationship tag).
type Department struct {
	_Relationships struct{}           `relationship:"collection:employees,field:departmentId,message:Không thể xóa phòng ban vì có %d nhân viên đang thuộc phòng ban này. Vui lòng chuyển nhân viên sang phòng ban khác trước."`
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name" index:"unique"`
	Code           string             `json:"code,omitempty" bson:"code,omitempty" index:"unique,sparse"`
	Description    string             `json:"description,omitempty" bson:"description,omitempty"`
	ManagerID      primitive.ObjectID `json:"managerId,omitempty" bson:"managerId,omitempty"`
	CreatedAt      int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt      int64              `json:"updatedAt" bson:"updatedAt"`
}
