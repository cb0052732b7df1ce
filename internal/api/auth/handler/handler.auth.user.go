package authhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authdto "meta_people/internal/api/auth/dto"
	models "meta_people/internal/api/auth/models"
	authsvc "meta_people/internal/api/auth/service"
	basehdl "meta_people/internal/api/base/handler"
	"meta_people/internal/common"
	"meta_people/internal/logger"
)

// UserHandler xử lý các request xác thực và quản lý người dùng
type UserHandler struct {
	*basehdl.BaseHandler[models.User, authdto.UserRegisterInput, authdto.UserChangeInfoInput]
	userService *authsvc.UserService
}

// NewUserHandler tạo instance mới của UserHandler
func NewUserHandler() (*UserHandler, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.User, authdto.UserRegisterInput, authdto.UserChangeInfoInput](userService)
	return &UserHandler{
		BaseHandler: baseHandler,
		userService: userService,
	}, nil
}

// HandleRegister xử lý đăng ký tài khoản mới
func (h *UserHandler) HandleRegister(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.UserRegisterInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		user, err := h.userService.Register(c.Context(), &input)
		if err == nil {
			logger.LogAuth("register", c, map[string]interface{}{"email": user.Email})
		}
		h.HandleCreated(c, user, err)
		return nil
	})
}

// HandleLogin xử lý đăng nhập, trả về JWT token và thông tin user
func (h *UserHandler) HandleLogin(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.UserLoginInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		token, user, err := h.userService.Login(c.Context(), &input)
		if err != nil {
			logger.LogAuth("login_failed", c, map[string]interface{}{"email": input.Email})
			h.HandleResponse(c, nil, err)
			return nil
		}

		logger.LogAuth("login", c, map[string]interface{}{"email": user.Email})
		h.HandleResponse(c, authdto.UserLoginResult{Token: token, User: user}, nil)
		return nil
	})
}

// HandleGetProfile lấy thông tin profile của người dùng hiện tại
func (h *UserHandler) HandleGetProfile(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.currentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		user, err := h.userService.GetProfile(c.Context(), userID)
		h.HandleResponse(c, user, err)
		return nil
	})
}

// HandleUpdateProfile cập nhật thông tin cơ bản của người dùng hiện tại
func (h *UserHandler) HandleUpdateProfile(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.currentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input authdto.UserChangeInfoInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		user, err := h.userService.ChangeInfo(c.Context(), userID, &input)
		h.HandleResponse(c, user, err)
		return nil
	})
}

// HandleChangePassword đổi mật khẩu của người dùng hiện tại
func (h *UserHandler) HandleChangePassword(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.currentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input authdto.UserChangePasswordInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		err = h.userService.ChangePassword(c.Context(), userID, &input)
		if err == nil {
			logger.LogAuth("change_password", c, nil)
		}
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// currentUserID lấy ObjectID của user đang đăng nhập từ context
func (h *UserHandler) currentUserID(c fiber.Ctx) (primitive.ObjectID, error) {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok || userIDStr == "" {
		return primitive.NilObjectID, common.NewError(common.ErrCodeAuth, "Chưa xác thực người dùng", common.StatusUnauthorized, nil)
	}
	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "User ID không hợp lệ", common.StatusBadRequest, err)
	}
	return userID, nil
}
