package crmvc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "meta_people/internal/api/base/models"
	basesvc "meta_people/internal/api/base/service"
	crmdto "meta_people/internal/api/crm/dto"
	crmmodels "meta_people/internal/api/crm/models"
	"meta_people/internal/common"
	"meta_people/internal/global"
	"meta_people/internal/utility"
)

// Giới hạn phân trang cho danh sách khách hàng
const (
	customerDefaultLimit = 50
	customerMaxLimit     = 200
)

// CustomerListFilter điều kiện lọc danh sách/đếm/thống kê khách hàng.
// OwnerID zero = không lọc theo owner (chỉ có ý nghĩa với admin; với staff
// service luôn ghi đè bằng id của chính actor trước khi truy vấn).
type CustomerListFilter struct {
	Search  string
	Status  string
	OwnerID primitive.ObjectID
}

// CustomerService xử lý nghiệp vụ khách hàng CRM: CRUD có ownership scoping,
// soft delete / restore hai trạng thái, import batch có khử trùng lặp và
// audit log best-effort sau mỗi mutation.
type CustomerService struct {
	*basesvc.BaseServiceMongoImpl[crmmodels.Customer]
	auditService *CustomerAuditService
}

// NewCustomerService tạo CustomerService mới
func NewCustomerService() (*CustomerService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Customers)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Customers, common.ErrNotFound)
	}
	auditService, err := NewCustomerAuditService()
	if err != nil {
		return nil, err
	}
	return &CustomerService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[crmmodels.Customer](coll),
		auditService:         auditService,
	}, nil
}

// AuditService trả về service audit log, dùng cho endpoint đọc log
func (s *CustomerService) AuditService() *CustomerAuditService {
	return s.auditService
}

// NormalizeName chuẩn hóa tên khách hàng cho ràng buộc duy nhất (ownerId, tên)
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ScopeFilterForActor ép ownerId filter về chính actor nếu không phải admin.
// Staff không bao giờ được truy vấn ngoài phạm vi của mình, bất kể client gửi gì.
// Claim id không parse được thì từ chối luôn thay vì để filter owner rỗng
// (filter rỗng đồng nghĩa staff thấy toàn bộ dữ liệu).
func ScopeFilterForActor(f CustomerListFilter, actor Actor) (CustomerListFilter, error) {
	if actor.IsAdmin() {
		return f, nil
	}
	ownerID, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return f, common.ErrTokenInvalid
	}
	f.OwnerID = ownerID
	return f, nil
}

func clampCustomerPaging(page, limit int64) (int64, int64) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = customerDefaultLimit
	}
	if limit > customerMaxLimit {
		limit = customerMaxLimit
	}
	return page, limit
}

// buildFilter dựng filter Mongo từ điều kiện lọc. Search là substring match
// không phân biệt hoa thường trên name/email/phone.
func (s *CustomerService) buildFilter(f CustomerListFilter, deleted bool) bson.M {
	filter := bson.M{"isDeleted": deleted}
	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = []bson.M{
			{"name": pattern},
			{"email": pattern},
			{"phone": pattern},
		}
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if !f.OwnerID.IsZero() {
		filter["ownerId"] = f.OwnerID
	}
	return filter
}

// List trả về khách hàng chưa xóa theo filter, mới tạo trước, có phân trang
func (s *CustomerService) List(ctx context.Context, f CustomerListFilter, page, limit int64) (*basemodels.PaginateResult[crmmodels.Customer], error) {
	page, limit = clampCustomerPaging(page, limit)
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.FindWithPagination(ctx, s.buildFilter(f, false), page, limit, opts)
}

// Count đếm khách hàng chưa xóa theo filter
func (s *CustomerService) Count(ctx context.Context, f CustomerListFilter) (int64, error) {
	return s.CountDocuments(ctx, s.buildFilter(f, false))
}

// StatusStats thống kê khách hàng chưa xóa theo status đã chuẩn hóa.
// Status không thuộc active/lead/inactive gom vào other; phần trăm làm tròn
// 1 chữ số thập phân, tất cả bằng 0 khi total = 0.
func (s *CustomerService) StatusStats(ctx context.Context, ownerID primitive.ObjectID) (*crmmodels.CustomerStatusStats, error) {
	match := bson.M{"isDeleted": false}
	if !ownerID.IsZero() {
		match["ownerId"] = ownerID
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":   bson.M{"$toLower": bson.M{"$trim": bson.M{"input": bson.M{"$ifNull": []interface{}{"$status", ""}}}}},
			"count": bson.M{"$sum": 1},
		}},
	}

	cursor, err := s.Collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	stats := &crmmodels.CustomerStatusStats{}
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case crmmodels.CustomerStatusActive:
			stats.Active += row.Count
		case crmmodels.CustomerStatusLead:
			stats.Lead += row.Count
		case crmmodels.CustomerStatusInactive:
			stats.Inactive += row.Count
		default:
			stats.Other += row.Count
		}
	}
	FillStatusPercents(stats)
	return stats, nil
}

// FillStatusPercents tính các trường phần trăm từ bucket counts
func FillStatusPercents(stats *crmmodels.CustomerStatusStats) {
	if stats.Total == 0 {
		return
	}
	stats.ActivePercent = roundPercent(stats.Active, stats.Total)
	stats.LeadPercent = roundPercent(stats.Lead, stats.Total)
	stats.InactivePercent = roundPercent(stats.Inactive, stats.Total)
	stats.OtherPercent = roundPercent(stats.Other, stats.Total)
}

func roundPercent(bucket, total int64) float64 {
	return math.Round(float64(bucket)/float64(total)*100*10) / 10
}

// ownerPairFilter dựng filter cho cặp (ownerId, tên chuẩn hóa) trên khách
// hàng chưa xóa. OwnerID zero khớp khách chưa gán owner.
func ownerPairFilter(ownerID primitive.ObjectID, normalizedName string) bson.M {
	filter := bson.M{
		"nameNormalized": normalizedName,
		"isDeleted":      false,
	}
	if ownerID.IsZero() {
		filter["ownerId"] = bson.M{"$exists": false}
	} else {
		filter["ownerId"] = ownerID
	}
	return filter
}

// FindByNameAndOwner tìm khách hàng chưa xóa theo cặp (owner, tên) — dùng cho
// check trùng tên trước create/update. Check-then-write này không có
// transaction bao quanh nên hai create đồng thời cùng cặp vẫn có thể cùng
// lọt qua; đây là giới hạn đã chấp nhận, không phải guarantee.
func (s *CustomerService) FindByNameAndOwner(ctx context.Context, name string, ownerID primitive.ObjectID) (crmmodels.Customer, error) {
	return s.FindOne(ctx, ownerPairFilter(ownerID, NormalizeName(name)), nil)
}

// resolveOwner xác định owner cho create: staff luôn bị ép owner = chính mình,
// admin được gán tự do (kể cả để trống = chưa gán).
func resolveOwner(actor Actor, requestedOwnerID, requestedOwnerName string) (primitive.ObjectID, string) {
	if !actor.IsAdmin() {
		return utility.String2ObjectID(actor.ID), actor.Email
	}
	if requestedOwnerID == "" {
		return primitive.NilObjectID, requestedOwnerName
	}
	return utility.String2ObjectID(requestedOwnerID), requestedOwnerName
}

// Create tạo khách hàng mới, 400 nếu cặp (owner, tên) đã tồn tại
func (s *CustomerService) Create(ctx context.Context, input *crmdto.CustomerCreateInput, actor Actor) (crmmodels.Customer, error) {
	var zero crmmodels.Customer

	ownerID, ownerName := resolveOwner(actor, input.OwnerID, input.OwnerName)

	if _, err := s.FindByNameAndOwner(ctx, input.Name, ownerID); err == nil {
		return zero, common.ErrDuplicateName
	} else if !errors.Is(err, common.ErrNotFound) {
		return zero, err
	}

	status := input.Status
	if status == "" {
		status = crmmodels.CustomerStatusLead
	}

	customer := crmmodels.Customer{
		Name:           strings.TrimSpace(input.Name),
		NameNormalized: NormalizeName(input.Name),
		Email:          input.Email,
		Phone:          input.Phone,
		Address:        input.Address,
		Industry:       input.Industry,
		Status:         status,
		Tags:           input.Tags,
		OwnerID:        ownerID,
		OwnerName:      ownerName,
	}

	created, err := s.InsertOne(ctx, customer)
	if err != nil {
		return zero, err
	}

	s.auditService.Record(ctx, created.ID.Hex(), crmmodels.AuditActionCreate, actor, nil, snapshot(created))
	return created, nil
}

// Get trả về một khách hàng chưa xóa, 404 nếu không có hoặc đã soft-delete,
// 403 nếu actor không phải admin và không phải owner
func (s *CustomerService) Get(ctx context.Context, id primitive.ObjectID, actor Actor) (crmmodels.Customer, error) {
	var zero crmmodels.Customer

	customer, err := s.FindOneById(ctx, id)
	if err != nil {
		return zero, err
	}
	if customer.IsDeleted {
		return zero, common.ErrNotFound
	}
	if err := requireOwnership(customer, actor); err != nil {
		return zero, err
	}
	return customer, nil
}

// requireOwnership guard chung cho mọi thao tác trên một bản ghi cụ thể
func requireOwnership(customer crmmodels.Customer, actor Actor) error {
	if actor.IsAdmin() {
		return nil
	}
	if customer.OwnerID.IsZero() || customer.OwnerID.Hex() != actor.ID {
		return common.ErrForbiddenOwner
	}
	return nil
}

// Update cập nhật một phần khách hàng: chỉ field có mặt trong payload được áp.
// Nếu name hoặc owner thay đổi thì check lại ràng buộc (owner, tên), loại trừ
// chính bản ghi đang sửa.
func (s *CustomerService) Update(ctx context.Context, id primitive.ObjectID, input *crmdto.CustomerUpdateInput, actor Actor) (crmmodels.Customer, error) {
	var zero crmmodels.Customer

	existing, err := s.Get(ctx, id, actor)
	if err != nil {
		return zero, err
	}

	set := make(map[string]interface{})
	unset := make(map[string]interface{})

	newName := existing.Name
	if input.Name != nil {
		newName = strings.TrimSpace(*input.Name)
		if newName == "" {
			return zero, common.ErrRequiredField
		}
		set["name"] = newName
		set["nameNormalized"] = NormalizeName(newName)
	}
	if input.Email != nil {
		setOrUnset(set, unset, "email", *input.Email)
	}
	if input.Phone != nil {
		setOrUnset(set, unset, "phone", *input.Phone)
	}
	if input.Address != nil {
		setOrUnset(set, unset, "address", *input.Address)
	}
	if input.Industry != nil {
		setOrUnset(set, unset, "industry", *input.Industry)
	}
	if input.Status != nil {
		set["status"] = *input.Status
	}
	if input.Tags != nil {
		set["tags"] = *input.Tags
	}

	// Chỉ admin được đổi owner, staff gửi ownerId sẽ bị bỏ qua
	newOwnerID := existing.OwnerID
	if actor.IsAdmin() {
		if input.OwnerID != nil {
			if *input.OwnerID == "" {
				newOwnerID = primitive.NilObjectID
				unset["ownerId"] = ""
			} else {
				newOwnerID = utility.String2ObjectID(*input.OwnerID)
				set["ownerId"] = newOwnerID
			}
		}
		if input.OwnerName != nil {
			setOrUnset(set, unset, "ownerName", *input.OwnerName)
		}
	}

	if len(set) == 0 && len(unset) == 0 {
		return existing, nil
	}

	// Name hoặc owner đổi thì check lại cặp (owner, tên), loại trừ chính mình
	if NormalizeName(newName) != existing.NameNormalized || newOwnerID != existing.OwnerID {
		pairFilter := ownerPairFilter(newOwnerID, NormalizeName(newName))
		pairFilter["_id"] = bson.M{"$ne": id}
		exists, err := s.DocumentExists(ctx, pairFilter)
		if err != nil {
			return zero, err
		}
		if exists {
			return zero, common.ErrDuplicateName
		}
	}

	updateData := &basesvc.UpdateData{Set: set}
	if len(unset) > 0 {
		updateData.Unset = unset
	}
	updated, err := s.UpdateById(ctx, id, updateData)
	if err != nil {
		return zero, err
	}

	s.auditService.Record(ctx, id.Hex(), crmmodels.AuditActionUpdate, actor, snapshot(existing), snapshot(updated))
	return updated, nil
}

// setOrUnset đặt giá trị mới, giá trị rỗng thì xóa field khỏi document
func setOrUnset(set, unset map[string]interface{}, field, value string) {
	if value == "" {
		unset[field] = ""
		return
	}
	set[field] = value
}

// SoftDelete chuyển khách hàng sang trạng thái soft-deleted.
// 400 nếu đã xóa rồi; xóa một bản ghi đã xóa không phải no-op im lặng.
func (s *CustomerService) SoftDelete(ctx context.Context, id primitive.ObjectID, actor Actor) (crmmodels.Customer, error) {
	var zero crmmodels.Customer

	existing, err := s.FindOneById(ctx, id)
	if err != nil {
		return zero, err
	}
	if err := requireOwnership(existing, actor); err != nil {
		return zero, err
	}
	if existing.IsDeleted {
		return zero, common.ErrAlreadyDeleted
	}

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"isDeleted":      true,
			"deletedAt":      time.Now().UnixMilli(),
			"deletedById":    actor.ID,
			"deletedByEmail": actor.Email,
		},
	}
	deleted, err := s.UpdateById(ctx, id, updateData)
	if err != nil {
		return zero, err
	}

	s.auditService.Record(ctx, id.Hex(), crmmodels.AuditActionDelete, actor, snapshot(existing), snapshot(deleted))
	return deleted, nil
}

// restoreByID khôi phục một khách hàng đã soft-delete, không ghi audit.
// Sau restore bản ghi trở về trạng thái trước khi xóa, chỉ các field
// deletion metadata bị xóa khỏi document.
func (s *CustomerService) restoreByID(ctx context.Context, id primitive.ObjectID) (crmmodels.Customer, crmmodels.Customer, error) {
	var zero crmmodels.Customer

	existing, err := s.FindOneById(ctx, id)
	if err != nil {
		return zero, zero, err
	}
	if !existing.IsDeleted {
		return zero, zero, common.ErrNotDeleted
	}

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{"isDeleted": false},
		Unset: map[string]interface{}{
			"deletedAt":      "",
			"deletedById":    "",
			"deletedByEmail": "",
		},
	}
	restored, err := s.UpdateById(ctx, id, updateData)
	if err != nil {
		return zero, zero, err
	}
	return existing, restored, nil
}

// Restore khôi phục một khách hàng đã soft-delete, 400 nếu chưa bị xóa
func (s *CustomerService) Restore(ctx context.Context, id primitive.ObjectID, actor Actor) (crmmodels.Customer, error) {
	existing, restored, err := s.restoreByID(ctx, id)
	if err != nil {
		return crmmodels.Customer{}, err
	}
	s.auditService.Record(ctx, id.Hex(), crmmodels.AuditActionRestore, actor, snapshot(existing), snapshot(restored))
	return restored, nil
}

// ListDeleted liệt kê khách hàng đã soft-delete, xóa gần nhất trước
func (s *CustomerService) ListDeleted(ctx context.Context, ownerID primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[crmmodels.Customer], error) {
	page, limit = clampCustomerPaging(page, limit)
	opts := options.Find().SetSort(bson.D{{Key: "deletedAt", Value: -1}})
	return s.FindWithPagination(ctx, s.buildFilter(CustomerListFilter{OwnerID: ownerID}, true), page, limit, opts)
}

// hardDeleteByID xóa vĩnh viễn một khách hàng, không ghi audit.
// Trả về bản ghi trước khi xóa để caller làm snapshot.
func (s *CustomerService) hardDeleteByID(ctx context.Context, id primitive.ObjectID) (crmmodels.Customer, error) {
	var zero crmmodels.Customer
	existing, err := s.FindOneById(ctx, id)
	if err != nil {
		return zero, err
	}
	if err := s.DeleteById(ctx, id); err != nil {
		return zero, err
	}
	return existing, nil
}

// HardDelete xóa vĩnh viễn một khách hàng (bất kể trạng thái), không khôi phục được
func (s *CustomerService) HardDelete(ctx context.Context, id primitive.ObjectID, actor Actor) error {
	existing, err := s.hardDeleteByID(ctx, id)
	if err != nil {
		return err
	}
	s.auditService.Record(ctx, id.Hex(), crmmodels.AuditActionHardDelete, actor, snapshot(existing), nil)
	return nil
}

// CustomerBulkResult kết quả một thao tác bulk trên danh sách id
type CustomerBulkResult struct {
	SucceededCount int                          `json:"succeededCount"`
	FailedCount    int                          `json:"failedCount"`
	Errors         []crmdto.CustomerImportError `json:"errors"`
}

// BulkRestore khôi phục nhiều khách hàng, lỗi từng id không dừng cả batch
func (s *CustomerService) BulkRestore(ctx context.Context, ids []primitive.ObjectID, actor Actor) *CustomerBulkResult {
	result := s.runBulk(ctx, ids, func(ctx context.Context, id primitive.ObjectID) error {
		_, _, err := s.restoreByID(ctx, id)
		return err
	})
	s.auditService.Record(ctx, crmmodels.AuditCustomerIDBulk, crmmodels.AuditActionRestore, actor, nil, bulkMeta(len(ids), result))
	return result
}

// BulkHardDelete xóa vĩnh viễn nhiều khách hàng, lỗi từng id không dừng cả batch
func (s *CustomerService) BulkHardDelete(ctx context.Context, ids []primitive.ObjectID, actor Actor) *CustomerBulkResult {
	result := s.runBulk(ctx, ids, func(ctx context.Context, id primitive.ObjectID) error {
		_, err := s.hardDeleteByID(ctx, id)
		return err
	})
	s.auditService.Record(ctx, crmmodels.AuditCustomerIDBulk, crmmodels.AuditActionHardDelete, actor, nil, bulkMeta(len(ids), result))
	return result
}

func (s *CustomerService) runBulk(ctx context.Context, ids []primitive.ObjectID, op func(context.Context, primitive.ObjectID) error) *CustomerBulkResult {
	result := &CustomerBulkResult{Errors: []crmdto.CustomerImportError{}}
	for i, id := range ids {
		if err := op(ctx, id); err != nil {
			result.FailedCount++
			result.Errors = append(result.Errors, crmdto.CustomerImportError{
				Index:   i,
				Name:    id.Hex(),
				Message: err.Error(),
			})
			continue
		}
		result.SucceededCount++
	}
	return result
}

func bulkMeta(requested int, result *CustomerBulkResult) map[string]interface{} {
	return map[string]interface{}{
		"requestedCount": requested,
		"succeededCount": result.SucceededCount,
		"failedCount":    result.FailedCount,
	}
}

// ListLogs đọc audit log của một khách hàng sau khi check quyền đọc trên
// chính khách hàng đó (owner hoặc admin). Staff không đọc được log của bản
// ghi đã soft-delete vì với staff bản ghi đó coi như không tồn tại.
func (s *CustomerService) ListLogs(ctx context.Context, id primitive.ObjectID, actor Actor, f AuditLogFilter, page, limit int64) (*basemodels.PaginateResult[crmmodels.CustomerAuditLog], error) {
	customer, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && customer.IsDeleted {
		return nil, common.ErrNotFound
	}
	if err := requireOwnership(customer, actor); err != nil {
		return nil, err
	}
	page, limit = clampCustomerPaging(page, limit)
	return s.auditService.ListByCustomer(ctx, id.Hex(), f, page, limit)
}

// snapshot chuyển customer thành map cho audit log, nil nếu marshal lỗi
func snapshot(c crmmodels.Customer) map[string]interface{} {
	m, err := utility.ToMap(c)
	if err != nil {
		return nil
	}
	return m
}
