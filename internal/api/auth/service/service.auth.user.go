// Package authsvc - service người dùng (User).
package authsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authdto "meta_people/internal/api/auth/dto"
	models "meta_people/internal/api/auth/models"
	basesvc "meta_people/internal/api/base/service"
	"meta_people/internal/common"
	"meta_people/internal/global"
	"meta_people/internal/utility"
)

// UserService là cấu trúc chứa các phương thức liên quan đến người dùng
type UserService struct {
	*basesvc.BaseServiceMongoImpl[models.User]
}

// NewUserService tạo mới UserService
func NewUserService() (*UserService, error) {
	userCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}

	return &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.User](userCollection),
	}, nil
}

// Register đăng ký tài khoản mới với role mặc định là staff.
// Email được chuẩn hóa về chữ thường trước khi lưu.
func (s *UserService) Register(ctx context.Context, input *authdto.UserRegisterInput) (models.User, error) {
	var zero models.User

	email := strings.ToLower(strings.TrimSpace(input.Email))

	// Kiểm tra email đã tồn tại chưa
	_, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"email": email}, nil)
	if err == nil {
		return zero, common.NewError(common.ErrCodeAuthCredentials, "Email đã được sử dụng", common.StatusBadRequest, nil)
	}
	if !errors.Is(err, common.ErrNotFound) {
		return zero, err
	}

	hashed, err := utility.HashPassword(input.Password)
	if err != nil {
		logrus.WithError(err).Error("Register: Lỗi hash mật khẩu")
		return zero, common.NewError(common.ErrCodeInternalServer, common.MsgInternalError, common.StatusInternalServerError, err)
	}

	user := models.User{
		Name:     input.Name,
		Email:    email,
		Password: hashed,
		Role:     models.RoleStaff,
		IsActive: true,
	}

	created, err := s.BaseServiceMongoImpl.InsertOne(ctx, user)
	if err != nil {
		return zero, err
	}

	return created, nil
}

// Login xác thực email/mật khẩu và trả về JWT token cùng thông tin user.
func (s *UserService) Login(ctx context.Context, input *authdto.UserLoginInput) (string, models.User, error) {
	var zero models.User

	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"email": email}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", zero, common.ErrInvalidCredentials
		}
		return "", zero, err
	}

	if !utility.VerifyPassword(input.Password, user.Password) {
		return "", zero, common.ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", zero, common.ErrUserInactive
	}

	cfg := global.MongoDB_ServerConfig
	token, err := utility.CreateToken(cfg.JwtSecret, user.ID.Hex(), user.Email, user.Role, cfg.JwtExpireHours)
	if err != nil {
		logrus.WithError(err).Error("Login: Lỗi tạo JWT token")
		return "", zero, common.NewError(common.ErrCodeInternalServer, common.MsgInternalError, common.StatusInternalServerError, err)
	}

	return token, user, nil
}

// GetProfile lấy thông tin người dùng hiện tại
func (s *UserService) GetProfile(ctx context.Context, userID primitive.ObjectID) (models.User, error) {
	return s.BaseServiceMongoImpl.FindOneById(ctx, userID)
}

// ChangeInfo cập nhật thông tin cơ bản của người dùng
func (s *UserService) ChangeInfo(ctx context.Context, userID primitive.ObjectID, input *authdto.UserChangeInfoInput) (models.User, error) {
	updateData := &basesvc.UpdateData{Set: make(map[string]interface{})}
	if input.Name != "" {
		updateData.Set["name"] = input.Name
	}
	if len(updateData.Set) == 0 {
		return s.BaseServiceMongoImpl.FindOneById(ctx, userID)
	}
	return s.BaseServiceMongoImpl.UpdateById(ctx, userID, updateData)
}

// ChangePassword đổi mật khẩu sau khi xác thực mật khẩu cũ
func (s *UserService) ChangePassword(ctx context.Context, userID primitive.ObjectID, input *authdto.UserChangePasswordInput) error {
	user, err := s.BaseServiceMongoImpl.FindOneById(ctx, userID)
	if err != nil {
		return err
	}

	if !utility.VerifyPassword(input.OldPassword, user.Password) {
		return common.NewError(common.ErrCodeAuthCredentials, "Mật khẩu cũ không chính xác", common.StatusBadRequest, nil)
	}

	hashed, err := utility.HashPassword(input.NewPassword)
	if err != nil {
		return common.NewError(common.ErrCodeInternalServer, common.MsgInternalError, common.StatusInternalServerError, err)
	}

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{"password": hashed},
	}
	_, err = s.BaseServiceMongoImpl.UpdateById(ctx, userID, updateData)
	return err
}

// EnsureAdminAccount tạo tài khoản admin mặc định nếu email chưa tồn tại.
// Dùng khi khởi động server với cấu hình AdminEmail/AdminPassword.
func (s *UserService) EnsureAdminAccount(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	email = strings.ToLower(strings.TrimSpace(email))

	_, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"email": email}, nil)
	if err == nil {
		return nil // Đã tồn tại
	}
	if !errors.Is(err, common.ErrNotFound) {
		return err
	}

	hashed, err := utility.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     "Administrator",
		Email:    email,
		Password: hashed,
		Role:     models.RoleAdmin,
		IsActive: true,
	}

	_, err = s.BaseServiceMongoImpl.InsertOne(ctx, admin)
	if err != nil {
		return err
	}

	logrus.WithField("email", email).Info("Đã tạo tài khoản admin mặc định")
	return nil
}
