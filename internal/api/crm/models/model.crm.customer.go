// Package models - model khách hàng (Customer) thuộc domain CRM.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các giá trị status hợp lệ của Customer
const (
	CustomerStatusLead     = "lead"
	CustomerStatusActive   = "active"
	CustomerStatusInactive = "inactive"
)

// Customer định nghĩa một khách hàng / lead trong CRM.
// Mỗi khách hàng thuộc về đúng một owner (nhân sự phụ trách); OwnerID rỗng
// nghĩa là chưa gán, chỉ admin nhìn thấy. NameNormalized là tên đã trim +
// lowercase, dùng cho ràng buộc duy nhất (ownerId, tên) ở tầng service.
// Compound index (ownerId, nameNormalized) KHÔNG unique: check trùng tên là
// check-then-write ở tầng ứng dụng, race dưới tải đồng thời là giới hạn đã
// được chấp nhận của thiết kế hiện tại.
type Customer struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name" index:"text"`
	NameNormalized string             `json:"-" bson:"nameNormalized" index:"compound:owner_name"`
	Email          string             `json:"email,omitempty" bson:"email,omitempty"`
	Phone          string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Address        string             `json:"address,omitempty" bson:"address,omitempty"`
	Industry       string             `json:"industry,omitempty" bson:"industry,omitempty"`
	Status         string             `json:"status" bson:"status" index:"single:1"`
	Tags           []string           `json:"tags,omitempty" bson:"tags,omitempty"`

	OwnerID   primitive.ObjectID `json:"ownerId,omitempty" bson:"ownerId,omitempty" index:"compound:owner_name"`
	OwnerName string             `json:"ownerName,omitempty" bson:"ownerName,omitempty"`

	// Soft delete: hai trạng thái active-visible / soft-deleted.
	// IsDeleted không có omitempty để false luôn được lưu xuống document.
	IsDeleted      bool   `json:"isDeleted" bson:"isDeleted" index:"single:1"`
	DeletedAt      int64  `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`
	DeletedByID    string `json:"deletedById,omitempty" bson:"deletedById,omitempty"`
	DeletedByEmail string `json:"deletedByEmail,omitempty" bson:"deletedByEmail,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// CustomerStatusStats kết quả thống kê khách hàng theo status.
// Status không khớp active/lead/inactive (kể cả sai hoa thường sau normalize
// vẫn lạ) được gom vào Other. Percent làm tròn 1 chữ số thập phân, bằng 0 khi
// Total = 0.
type CustomerStatusStats struct {
	Total           int64   `json:"total"`
	Active          int64   `json:"active"`
	Lead            int64   `json:"lead"`
	Inactive        int64   `json:"inactive"`
	Other           int64   `json:"other"`
	ActivePercent   float64 `json:"activePercent"`
	LeadPercent     float64 `json:"leadPercent"`
	InactivePercent float64 `json:"inactivePercent"`
	OtherPercent    float64 `json:"otherPercent"`
}
