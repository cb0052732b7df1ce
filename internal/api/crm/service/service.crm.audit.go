// Package crmvc - service domain CRM: khách hàng và audit log.
package crmvc

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "meta_people/internal/api/base/models"
	basesvc "meta_people/internal/api/base/service"
	crmmodels "meta_people/internal/api/crm/models"
	"meta_people/internal/common"
	"meta_people/internal/global"
	"meta_people/internal/logger"
)

// Actor là identity của người thực hiện request, lấy từ JWT claims
type Actor struct {
	ID    string
	Email string
	Role  string
}

// IsAdmin kiểm tra actor có quyền admin không
func (a Actor) IsAdmin() bool {
	return a.Role == "admin"
}

// AuditLogFilter điều kiện lọc khi đọc audit log của một khách hàng.
// From/To là epoch millis, 0 = không giới hạn.
type AuditLogFilter struct {
	Action  string
	ActorID string
	From    int64
	To      int64
}

// CustomerAuditService ghi và đọc audit log khách hàng (append-only)
type CustomerAuditService struct {
	*basesvc.BaseServiceMongoImpl[crmmodels.CustomerAuditLog]
}

// NewCustomerAuditService tạo CustomerAuditService mới
func NewCustomerAuditService() (*CustomerAuditService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CustomerAuditLogs)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.CustomerAuditLogs, common.ErrNotFound)
	}
	return &CustomerAuditService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[crmmodels.CustomerAuditLog](coll),
	}, nil
}

// Record ghi một entry audit theo kiểu best-effort: lỗi ghi log chỉ được
// log lại rồi nuốt, không bao giờ làm hỏng mutation chính đã thành công.
func (s *CustomerAuditService) Record(ctx context.Context, customerID string, action string, actor Actor, before, after map[string]interface{}) {
	entry := crmmodels.CustomerAuditLog{
		CustomerID: customerID,
		Action:     action,
		ActorID:    actor.ID,
		ActorEmail: actor.Email,
		Before:     before,
		After:      after,
	}
	if _, err := s.InsertOne(ctx, entry); err != nil {
		logger.GetErrorLogger().WithFields(map[string]interface{}{
			"customerId": customerID,
			"action":     action,
			"actorId":    actor.ID,
		}).Warnf("Ghi audit log khách hàng thất bại: %v", err)
	}
}

// ListByCustomer đọc audit log của một khách hàng, mới nhất trước.
// Ownership check trên khách hàng cha do CustomerService đảm nhiệm trước khi gọi.
func (s *CustomerAuditService) ListByCustomer(ctx context.Context, customerID string, f AuditLogFilter, page, limit int64) (*basemodels.PaginateResult[crmmodels.CustomerAuditLog], error) {
	filter := bson.M{"customerId": customerID}
	if f.Action != "" {
		filter["action"] = f.Action
	}
	if f.ActorID != "" {
		filter["actorId"] = f.ActorID
	}
	if f.From > 0 || f.To > 0 {
		createdAt := bson.M{}
		if f.From > 0 {
			createdAt["$gte"] = f.From
		}
		if f.To > 0 {
			createdAt["$lte"] = f.To
		}
		filter["createdAt"] = createdAt
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.FindWithPagination(ctx, filter, page, limit, opts)
}

// ParseTimeBound đọc một mốc thời gian từ query: chấp nhận epoch millis
// hoặc RFC3339, trả về epoch millis (0 nếu rỗng).
func ParseTimeBound(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	if millis, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return millis, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return 0, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Mốc thời gian '%s' không hợp lệ (cần epoch millis hoặc RFC3339)", raw),
			common.StatusBadRequest,
			nil,
		)
	}
	return t.UnixMilli(), nil
}
