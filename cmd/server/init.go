package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"meta_people/config"
	authmodels "meta_people/internal/api/auth/models"
	crmmodels "meta_people/internal/api/crm/models"
	hrmodels "meta_people/internal/api/hr/models"
	payrollmodels "meta_people/internal/api/payroll/models"
	"meta_people/internal/database"
	"meta_people/internal/global"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.Users = "auth_users"
	global.MongoDB_ColNames.Departments = "departments"
	global.MongoDB_ColNames.Employees = "employees"
	global.MongoDB_ColNames.PayrollRuns = "payroll_runs"
	global.MongoDB_ColNames.Customers = "crm_customers"
	global.MongoDB_ColNames.CustomerAuditLogs = "crm_customer_audit_logs"

	if !global.MongoDB_ColNames.Validate() {
		logrus.Fatal("Collection names are not fully configured")
	}
	logrus.Info("Initialized collection names") // Ghi log thông báo đã khởi tạo tên các collection
}

// Hàm khởi tạo validator (global.InitValidator đăng ký custom validators: no_xss, strong_password, exists)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator") // Ghi log thông báo đã khởi tạo validator
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil") // Ghi log lỗi nếu khởi tạo cấu hình thất bại
	}
	logrus.Info("Initialized server config") // Ghi log thông báo đã khởi tạo cấu hình server
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err) // Ghi log lỗi nếu kết nối database thất bại
	}
	logrus.Info("Connected to MongoDB") // Ghi log thông báo đã kết nối database thành công

	// Khởi tạo db và các collection nếu chưa có
	if err := database.EnsureDatabaseAndCollections(global.MongoDB_Session); err != nil {
		logrus.Fatalf("Failed to ensure database and collections: %v", err)
	}
	logrus.Info("Ensured database and collections")

	// Đồng bộ index cho các collection theo tag `index` trên model
	dbName := global.MongoDB_ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)
	ctx := context.TODO()
	database.CreateIndexes(ctx, db.Collection(global.MongoDB_ColNames.Users), authmodels.User{})
	database.CreateIndexes(ctx, db.Collection(global.MongoDB_ColNames.Departments), hrmodels.Department{})
	database.CreateIndexes(ctx, db.Collection(global.MongoDB_ColNames.Employees), hrmodels.Employee{})
	database.CreateIndexes(ctx, db.Collection(global.MongoDB_ColNames.PayrollRuns), payrollmodels.PayrollRun{})
	database.CreateIndexes(ctx, db.Collection(global.MongoDB_ColNames.Customers), crmmodels.Customer{})
	database.CreateIndexes(ctx, db.Collection(global.MongoDB_ColNames.CustomerAuditLogs), crmmodels.CustomerAuditLog{})
	logrus.Info("Synchronized collection indexes")
}
