// Package router - Test wiring route auth: register là thao tác quản trị,
// login là route public duy nhất.
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

// setupAuthTestApp dựng app với route auth thật. Collection đăng ký từ client
// chưa kết nối: các assert ở đây đều dừng ở middleware, không chạm DB.
func setupAuthTestApp(t *testing.T) *fiber.App {
	t.Helper()

	client, err := mongo.Connect(context.Background())
	if err != nil {
		t.Fatalf("không tạo được mongo client: %v", err)
	}
	db := client.Database("meta_people_test")

	global.MongoDB_ColNames.Users = "auth_users"
	if _, err := global.RegistryCollections.Register("auth_users", db.Collection("auth_users")); err != nil {
		t.Fatalf("không đăng ký được collection: %v", err)
	}
	global.MongoDB_ServerConfig = &config.Configuration{JwtSecret: "test-secret"}

	app := fiber.New()
	if err := apirouter.SetupRoutes(app, Register); err != nil {
		t.Fatalf("SetupRoutes lỗi: %v", err)
	}
	return app
}

func bearerToken(t *testing.T, role string) string {
	t.Helper()
	token, err := utility.CreateToken("test-secret", primitive.NewObjectID().Hex(), "user@example.com", role, 1)
	if err != nil {
		t.Fatalf("CreateToken lỗi: %v", err)
	}
	return "Bearer " + token
}

func TestRegister_KhongTokenBi401(t *testing.T) {
	app := setupAuthTestApp(t)

	req := httptest.NewRequest("POST", "/api/v1/auth/register", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test lỗi: %v", err)
	}
	if resp.StatusCode != common.StatusUnauthorized {
		t.Errorf("register không có token phải trả %d, got %d", common.StatusUnauthorized, resp.StatusCode)
	}
}

func TestRegister_TokenStaffBi403(t *testing.T) {
	app := setupAuthTestApp(t)

	req := httptest.NewRequest("POST", "/api/v1/auth/register", nil)
	req.Header.Set("Authorization", bearerToken(t, "staff"))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test lỗi: %v", err)
	}
	if resp.StatusCode != common.StatusForbidden {
		t.Errorf("staff gọi register phải trả %d, got %d", common.StatusForbidden, resp.StatusCode)
	}
}

func TestLogin_KhongBiGateAdmin(t *testing.T) {
	app := setupAuthTestApp(t)

	// Login phải tồn tại và không nằm sau gate admin như register
	req := httptest.NewRequest("POST", "/api/v1/auth/login", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test lỗi: %v", err)
	}
	if resp.StatusCode == common.StatusForbidden || resp.StatusCode == common.StatusNotFound {
		t.Errorf("login không được yêu cầu quyền admin, got %d", resp.StatusCode)
	}
}
