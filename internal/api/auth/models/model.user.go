// Package models - model người dùng (User) thuộc domain auth.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các giá trị role hợp lệ của User
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User định nghĩa mô hình người dùng.
// Password lưu dạng "saltHex$hashHex" (PBKDF2-SHA256), không bao giờ trả về qua JSON.
type User struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email" index:"unique"`
	Password  string             `json:"-" bson:"password"`
	Role      string             `json:"role" bson:"role" index:"single:1"`
	IsActive  bool               `json:"isActive" bson:"isActive"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
