// Package models - model kỳ lương (PayrollRun) thuộc domain payroll.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các giá trị status hợp lệ của PayrollRun
const (
	PayrollStatusDraft  = "draft"
	PayrollStatusClosed = "closed"
)

// PayrollRun định nghĩa một bảng lương của nhân viên trong một kỳ (YYYY-MM).
// Mỗi nhân viên chỉ có một bảng lương cho mỗi kỳ (unique compound index).
// NetPay luôn được service tính lại từ BaseSalary + Bonus - Deduction, không nhận từ client.
type PayrollRun struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	EmployeeID primitive.ObjectID `json:"employeeId" bson:"employeeId" index:"compound:employee_period_unique"`
	Period     string             `json:"period" bson:"period" index:"compound:employee_period_unique"`
	BaseSalary int64              `json:"baseSalary" bson:"baseSalary"`
	Bonus      int64              `json:"bonus" bson:"bonus"`
	Deduction  int64              `json:"deduction" bson:"deduction"`
	NetPay     int64              `json:"netPay" bson:"netPay"`
	Status     string             `json:"status" bson:"status" index:"single:1"`
	Note       string             `json:"note,omitempty" bson:"note,omitempty"`
	ClosedAt   int64              `json:"closedAt,omitempty" bson:"closedAt,omitempty"`
	CreatedAt  int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt  int64              `json:"updatedAt" bson:"updatedAt"`
}

// PeriodSummary kết quả tổng hợp lương theo kỳ
type PeriodSummary struct {
	Period        string `json:"period" bson:"_id"`
	EmployeeCount int64  `json:"employeeCount" bson:"employeeCount"`
	TotalNetPay   int64  `json:"totalNetPay" bson:"totalNetPay"`
	TotalBonus    int64  `json:"totalBonus" bson:"totalBonus"`
	TotalDeduct   int64  `json:"totalDeduction" bson:"totalDeduction"`
}
