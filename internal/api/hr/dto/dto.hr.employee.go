package hrdto

// EmployeeCreateInput đầu vào tạo nhân viên.
type EmployeeCreateInput struct {
	Name         string `json:"name" validate:"required,no_xss"`
	Email        string `json:"email" validate:"omitempty,email"`
	Phone        string `json:"phone" validate:"omitempty"`
	DepartmentID string `json:"departmentId" validate:"required,exists=departments"`
	Position     string `json:"position" validate:"omitempty,no_xss"`
	BaseSalary   int64  `json:"baseSalary" validate:"gte=0"`
	Status       string `json:"status" validate:"omitempty,oneof=active on_leave terminated"`
	JoinedAt     int64  `json:"joinedAt" validate:"omitempty,gte=0"`
}

// EmployeeUpdateInput đầu vào cập nhật nhân viên (partial update).
type EmployeeUpdateInput struct {
	Name         string `json:"name" validate:"omitempty,no_xss"`
	Email        string `json:"email" validate:"omitempty,email"`
	Phone        string `json:"phone" validate:"omitempty"`
	DepartmentID string `json:"departmentId" validate:"omitempty,exists=departments"`
	Position     string `json:"position" validate:"omitempty,no_xss"`
	BaseSalary   int64  `json:"baseSalary" validate:"omitempty,gte=0"`
	Status       string `json:"status" validate:"omitempty,oneof=active on_leave terminated"`
	JoinedAt     int64  `json:"joinedAt" validate:"omitempty,gte=0"`
}

// EmployeeTransferInput đầu vào chuyển nhân viên sang phòng ban khác.
type EmployeeTransferInput struct {
	DepartmentID string `json:"departmentId" validate:"required,exists=departments"`
}
