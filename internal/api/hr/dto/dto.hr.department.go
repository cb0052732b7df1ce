// Package hrdto - các DTO đầu vào của domain hr.
package hrdto

// DepartmentCreateInput đầu vào tạo phòng ban.
type DepartmentCreateInput struct {
	Name        string `json:"name" validate:"required,no_xss"`
	Code        string `json:"code" validate:"omitempty,no_xss"`
	Description string `json:"description" validate:"omitempty,no_xss"`
	ManagerID   string `json:"managerId" validate:"omitempty,exists=employees"`
}

// DepartmentUpdateInput đầu vào cập nhật phòng ban (partial update).
type DepartmentUpdateInput struct {
	Name        string `json:"name" validate:"omitempty,no_xss"`
	Code        string `json:"code" validate:"omitempty,no_xss"`
	Description string `json:"description" validate:"omitempty,no_xss"`
	ManagerID   string `json:"managerId" validate:"omitempty,exists=employees"`
}
