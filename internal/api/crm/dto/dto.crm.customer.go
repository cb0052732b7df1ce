// Package dto - các DTO đầu vào/đầu ra của domain CRM.
package dto

import (
	models "meta_people/internal/api/crm/models"
)

// CustomerCreateInput đầu vào tạo khách hàng.
// OwnerID/OwnerName chỉ có hiệu lực với admin; với staff server luôn ghi đè
// bằng identity của chính actor.
type CustomerCreateInput struct {
	Name      string   `json:"name" validate:"required,no_xss"`
	Email     string   `json:"email" validate:"omitempty,email"`
	Phone     string   `json:"phone" validate:"omitempty,max=20"`
	Address   string   `json:"address" validate:"omitempty,no_xss"`
	Industry  string   `json:"industry" validate:"omitempty,no_xss"`
	Status    string   `json:"status" validate:"omitempty,oneof=lead active inactive"`
	Tags      []string `json:"tags" validate:"omitempty,dive,no_xss"`
	OwnerID   string   `json:"ownerId" validate:"omitempty,mongodb"`
	OwnerName string   `json:"ownerName" validate:"omitempty,no_xss"`
}

// CustomerUpdateInput đầu vào cập nhật khách hàng.
// Dùng con trỏ để phân biệt "không gửi field" với "gửi giá trị rỗng":
// chỉ field có mặt trong payload mới được áp vào document (partial update).
type CustomerUpdateInput struct {
	Name      *string   `json:"name" validate:"omitempty,no_xss"`
	Email     *string   `json:"email" validate:"omitempty,email"`
	Phone     *string   `json:"phone" validate:"omitempty,max=20"`
	Address   *string   `json:"address" validate:"omitempty,no_xss"`
	Industry  *string   `json:"industry" validate:"omitempty,no_xss"`
	Status    *string   `json:"status" validate:"omitempty,oneof=lead active inactive"`
	Tags      *[]string `json:"tags" validate:"omitempty,dive,no_xss"`
	OwnerID   *string   `json:"ownerId" validate:"omitempty,mongodb"`
	OwnerName *string   `json:"ownerName" validate:"omitempty,no_xss"`
}

// CustomerImportRecord một dòng trong batch import. Không validate bằng
// validator: dòng thiếu name được gom vào errors thay vì fail cả batch.
type CustomerImportRecord struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Address   string   `json:"address"`
	Industry  string   `json:"industry"`
	Status    string   `json:"status"`
	Tags      []string `json:"tags"`
	OwnerID   string   `json:"ownerId"`
	OwnerName string   `json:"ownerName"`
}

// CustomerImportRequest body của endpoint import khi client gửi dạng object.
// Endpoint cũng chấp nhận body là mảng JSON thuần.
type CustomerImportRequest struct {
	Customers []CustomerImportRecord `json:"customers"`
}

// CustomerImportSkip một dòng bị bỏ qua khi import kèm lý do
// (duplicate_in_file | already_exists).
type CustomerImportSkip struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// CustomerImportError một dòng lỗi khi import (thiếu name hoặc insert thất bại)
type CustomerImportError struct {
	Index   int    `json:"index"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message"`
}

// CustomerImportReport kết quả import: batch không atomic, thành công một
// phần là kết quả hợp lệ và được báo cáo thay vì rollback.
type CustomerImportReport struct {
	CreatedCount int                   `json:"createdCount"`
	SkippedCount int                   `json:"skippedCount"`
	ErrorCount   int                   `json:"errorCount"`
	Created      []models.Customer     `json:"created"`
	Skipped      []CustomerImportSkip  `json:"skipped"`
	Errors       []CustomerImportError `json:"errors"`
}

// CustomerBulkIDsInput body của các endpoint bulk restore / bulk hard-delete
type CustomerBulkIDsInput struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,mongodb"`
}
