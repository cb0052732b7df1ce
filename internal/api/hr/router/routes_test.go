// Package router - Test wiring route hr: ghi/xóa nhân viên và phòng ban đều
// là thao tác admin, staff chỉ được đọc.
package router

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"meta_people/config"
	apirouter "meta_people/internal/api/router"
	"meta_people/internal/common"
	"meta_people/internal/global"
	"meta_people/internal/utility"
)

// setupHRTestApp dựng app với route hr thật. Collection đăng ký từ client
// chưa kết nối: các assert ở đây đều dừng ở middleware, không chạm DB.
func setupHRTestApp(t *testing.T) *fiber.App {
	t.Helper()

	client, err := mongo.Connect(context.Background())
	if err != nil {
		t.Fatalf("không tạo được mongo client: %v", err)
	}
	db := client.Database("meta_people_test")

	global.MongoDB_ColNames.Departments = "departments"
	global.MongoDB_ColNames.Employees = "employees"
	if _, err := global.RegistryCollections.Register("departments", db.Collection("departments")); err != nil {
		t.Fatalf("không đăng ký được collection: %v", err)
	}
	if _, err := global.RegistryCollections.Register("employees", db.Collection("employees")); err != nil {
		t.Fatalf("không đăng ký được collection: %v", err)
	}
	global.MongoDB_ServerConfig = &config.Configuration{JwtSecret: "test-secret"}

	app := fiber.New()
	if err := apirouter.SetupRoutes(app, Register); err != nil {
		t.Fatalf("SetupRoutes lỗi: %v", err)
	}
	return app
}

func staffBearer(t *testing.T) string {
	t.Helper()
	token, err := utility.CreateToken("test-secret", primitive.NewObjectID().Hex(), "staff@example.com", "staff", 1)
	if err != nil {
		t.Fatalf("CreateToken lỗi: %v", err)
	}
	return "Bearer " + token
}

func TestEmployeeWrite_TokenStaffBi403(t *testing.T) {
	app := setupHRTestApp(t)
	bearer := staffBearer(t)

	cases := []struct {
		method string
		path   string
	}{
		{"POST", "/api/v1/hr/employees/insert-one"},
		{"PUT", "/api/v1/hr/employees/update-by-id/" + primitive.NewObjectID().Hex()},
		{"DELETE", "/api/v1/hr/employees/delete-by-id/" + primitive.NewObjectID().Hex()},
		{"PUT", "/api/v1/hr/employees/" + primitive.NewObjectID().Hex() + "/transfer"},
	}
	for _, c := range cases {
		req := httptest.NewRequest(c.method, c.path, nil)
		req.Header.Set("Authorization", bearer)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test lỗi: %v", err)
		}
		if resp.StatusCode != common.StatusForbidden {
			t.Errorf("%s %s với token staff phải trả %d, got %d", c.method, c.path, common.StatusForbidden, resp.StatusCode)
		}
	}
}

func TestDepartmentWrite_TokenStaffBi403(t *testing.T) {
	app := setupHRTestApp(t)

	req := httptest.NewRequest("POST", "/api/v1/hr/departments/insert-one", nil)
	req.Header.Set("Authorization", staffBearer(t))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test lỗi: %v", err)
	}
	if resp.StatusCode != common.StatusForbidden {
		t.Errorf("staff tạo phòng ban phải trả %d, got %d", common.StatusForbidden, resp.StatusCode)
	}
}

func TestEmployeeWrite_KhongTokenBi401(t *testing.T) {
	app := setupHRTestApp(t)

	req := httptest.NewRequest("POST", "/api/v1/hr/employees/insert-one", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test lỗi: %v", err)
	}
	if resp.StatusCode != common.StatusUnauthorized {
		t.Errorf("không có token phải trả %d, got %d", common.StatusUnauthorized, resp.StatusCode)
	}
}
