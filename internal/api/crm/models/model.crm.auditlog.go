package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các loại action được ghi vào audit log khách hàng
const (
	AuditActionCreate     = "create"
	AuditActionUpdate     = "update"
	AuditActionDelete     = "delete"
	AuditActionRestore    = "restore"
	AuditActionImport     = "import"
	AuditActionHardDelete = "hard_delete"
)

// AuditCustomerIDBulk là placeholder cho CustomerID khi action áp lên cả batch (import, bulk restore/delete)
const AuditCustomerIDBulk = "bulk"

// CustomerAuditLog là bản ghi append-only của một action trên khách hàng.
// Ứng dụng không bao giờ sửa hay xóa bản ghi này. Before/After là snapshot
// trạng thái trước/sau mutation (hoặc meta summary cho import/bulk).
// CustomerID là string để chứa được placeholder "bulk".
type CustomerAuditLog struct {
	ID         primitive.ObjectID     `json:"id,omitempty" bson:"_id,omitempty"`
	CustomerID string                 `json:"customerId" bson:"customerId" index:"single:1"`
	Action     string                 `json:"action" bson:"action" index:"single:1"`
	ActorID    string                 `json:"actorId" bson:"actorId" index:"single:1"`
	ActorEmail string                 `json:"actorEmail,omitempty" bson:"actorEmail,omitempty"`
	Before     map[string]interface{} `json:"before,omitempty" bson:"before,omitempty"`
	After      map[string]interface{} `json:"after,omitempty" bson:"after,omitempty"`
	CreatedAt  int64                  `json:"createdAt" bson:"createdAt"`
	UpdatedAt  int64                  `json:"-" bson:"updatedAt"`
}
