package global

import (
	"meta_people/config"
	"meta_people/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Users             string // Tên collection cho tài khoản người dùng
	Departments       string // Tên collection cho phòng ban
	Employees         string // Tên collection cho nhân viên
	PayrollRuns       string // Tên collection cho kỳ lương
	Customers         string // Tên collection cho khách hàng CRM
	CustomerAuditLogs string // Tên collection cho nhật ký thao tác khách hàng
}

// Validate kiểm tra tất cả tên collection đã được gán hay chưa.
// Gọi sau khi init để chặn sớm lỗi thiếu cấu hình tên collection.
func (c *MongoDB_CollectionName) Validate() bool {
	return c.Users != "" &&
		c.Departments != "" &&
		c.Employees != "" &&
		c.PayrollRuns != "" &&
		c.Customers != "" &&
		c.CustomerAuditLogs != ""
}

// Các biến toàn cục
var Validate *validator.Validate                                         // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                        // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration                           // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName = *new(MongoDB_CollectionName) // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
