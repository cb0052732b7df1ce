// Package payrolldto - các DTO đầu vào của domain payroll.
package payrolldto

// PayrollRunCreateInput đầu vào tạo bảng lương cho một nhân viên trong một kỳ.
// BaseSalary bỏ trống (0) sẽ lấy theo lương cơ bản hiện tại của nhân viên.
type PayrollRunCreateInput struct {
	EmployeeID string `json:"employeeId" validate:"required,exists=employees"`
	Period     string `json:"period" validate:"required,datetime=2006-01"`
	BaseSalary int64  `json:"baseSalary" validate:"omitempty,gte=0"`
	Bonus      int64  `json:"bonus" validate:"omitempty,gte=0"`
	Deduction  int64  `json:"deduction" validate:"omitempty,gte=0"`
	Note       string `json:"note" validate:"omitempty,no_xss"`
}

// PayrollRunUpdateInput đầu vào cập nhật bảng lương (chỉ khi còn draft).
type PayrollRunUpdateInput struct {
	BaseSalary *int64 `json:"baseSalary" validate:"omitempty,gte=0"`
	Bonus      *int64 `json:"bonus" validate:"omitempty,gte=0"`
	Deduction  *int64 `json:"deduction" validate:"omitempty,gte=0"`
	Note       string `json:"note" validate:"omitempty,no_xss"`
}
