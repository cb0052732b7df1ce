// Package crmhdl xử lý các request HTTP của domain CRM.
package crmhdl

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "meta_people/internal/api/base/handler"
	crmdto "meta_people/internal/api/crm/dto"
	crmvc "meta_people/internal/api/crm/service"
	"meta_people/internal/common"
	"meta_people/internal/logger"
	"meta_people/internal/utility"
)

// CustomerHandler xử lý các request liên quan đến khách hàng CRM.
// Không nhúng BaseHandler CRUD: surface của module này là ownership-scoped,
// mọi thao tác đều đi qua CustomerService thay vì base service trực tiếp.
type CustomerHandler struct {
	customerService *crmvc.CustomerService
}

// NewCustomerHandler tạo instance mới của CustomerHandler
func NewCustomerHandler() (*CustomerHandler, error) {
	customerService, err := crmvc.NewCustomerService()
	if err != nil {
		return nil, fmt.Errorf("failed to create customer service: %v", err)
	}
	return &CustomerHandler{customerService: customerService}, nil
}

// actorFromContext dựng Actor từ JWT claims do auth middleware gắn vào Locals
func actorFromContext(c fiber.Ctx) crmvc.Actor {
	actor := crmvc.Actor{}
	if v, ok := c.Locals("user_id").(string); ok {
		actor.ID = v
	}
	if v, ok := c.Locals("user_email").(string); ok {
		actor.Email = v
	}
	if v, ok := c.Locals("user_role").(string); ok {
		actor.Role = v
	}
	return actor
}

// parsePaging đọc page/limit từ query, giá trị không hợp lệ để service tự clamp
func parsePaging(c fiber.Ctx) (int64, int64) {
	page, err := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	if err != nil {
		page = 1
	}
	limit, err := strconv.ParseInt(c.Query("limit", "0"), 10, 64)
	if err != nil {
		limit = 0
	}
	return page, limit
}

// listFilterFromQuery đọc filter từ query rồi ép scope theo actor:
// staff luôn bị giới hạn về dữ liệu của chính mình, kể cả khi gửi ownerId khác
func listFilterFromQuery(c fiber.Ctx, actor crmvc.Actor) (crmvc.CustomerListFilter, error) {
	f := crmvc.CustomerListFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
	}
	if ownerID := c.Query("ownerId"); ownerID != "" {
		if !primitive.IsValidObjectID(ownerID) {
			return f, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("ownerId '%s' không đúng định dạng MongoDB ObjectID", ownerID),
				common.StatusBadRequest,
				nil,
			)
		}
		f.OwnerID = utility.String2ObjectID(ownerID)
	}
	return crmvc.ScopeFilterForActor(f, actor)
}

// HandleList lấy danh sách khách hàng chưa xóa (phân trang, owner-scoped)
func (h *CustomerHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandlerFunc(c, func() error {
		actor := actorFromContext(c)
		filter, err := listFilterFromQuery(c, actor)
		if err != nil {
			basehdl.HandleError(c, err)
			return nil
		}

		page, limit := parsePaging(c)
		data, err := h.customerService.List(c.Context(), filter, page, limit)
		if err != nil {
			basehdl.HandleError(c, err)
			return nil
		}
		basehdl.HandleSuccess(c, common.StatusOK, data)
		return nil
	})
}

// HandleCount đếm khách hàng chưa xóa theo filter (owner-scoped)
func (h *CustomerHandler) HandleCount(c fiber.Ctx) error {
	return basehdl.SafeHandlerFunc(c, func() error {
		actor := actorFromContext(c)
		filter, err := listFilterFromQuery(c, actor)
		if err != nil {
			basehdl.HandleError(c, err)
			return nil
		}

		count, err := h.customerService.Count(c.Context(), filter)
		if err != nil {
			basehdl.HandleError(c, err)
			return nil
		}
		basehdl.HandleSuccess(c, common.StatusOK, fiber.Map{"count": count})
		return nil
	})
}

// HandleStats thống kê khách hàng theo status (owner-scoped)
func (h *CustomerHandler) HandleStats(c fiber.Ctx) error {
	return basehdl.SafeHandlerFunc(c, func() error {
		actor := actorFromContext(c)
		filter, err := listFilterFromQuery(c, actor)
		if err != nil {
			basehdl.HandleError(c, err)
			return nil
		}

		stats, err := h.customerService.StatusStats(c.Context(), filter.OwnerID)
		if err != nil {
			basehdl.HandleError(c, err)
			return nil
		}
		basehdl.HandleSuccess(c, common.StatusOK, stats)
		return nil
	})
}

// HandleCreate tạo khách hàng mới, 400 nếu trùng tên trong phạm vi owner
func (h *CustomerHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandlerFunc(c, func() error {
		var input crmdto.CustomerCreateInput
		if err := json.Unmarshal(c.Body(), &input); err != nil {
			basehdl.HandleError(c, common.ErrInvalidFormat)
			return nil
		}
		if err := basehdl.ValidateStruct(&input); err != nil {
			basehdl.HandleError(c, err)
			return nil
		}

		actor := actorFromContext(c)
		data, err := h.customerService.Create(c.Context(), &input, actor)
		if err != nil {
			basehdl.HandleError(c, err)
			return nil
		}

		logger.LogCRUD("create", "customer", data.ID.Hex(), c, nil)
		basehdl.HandleSuccess(c, common.StatusCreated, data)
		return nil
	})
}

// HandleGet lấy một khách hàng theo id (404 nếu đã soft-delete, 403 nếu không phải owner)
func (h *CustomerHandler) HandleGet(c fiber.Ctx) error {
	return basehdl.SafeHandlerFunc(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c)
		if err != nil {
			basehdl.HandleError(c, err)
			return nil
		}

		data, err := h.customerService.Get(c.Context(), id, actorFromContext(c))
		if err != nil {
			basehdl.HandleError(c, err)
			return nil
		}
		basehdl.HandleSuccess(c, common.StatusOK, data)
		return nil
	})
}

// HandleUpdate cập nhật một phần khách hàng
func (h *CustomerHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandlerFunc(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c)
		if err != nil {
			basehdl.HandleError(c, err)
			return nil
		}

		var input crmdto.CustomerUpdateInput
		if err := json.Unmarshal(c.Body(), &input); err != nil {
			basehdl.HandleError(c, common.ErrInvalidFormat)
			return nil
		}
		if err := basehdl.ValidateStruct(&input); err != nil {
			basehdl.HandleError(c, err)
			return nil
		}

		data, err := h.customerService.Update(c.Context(), id, &input, actorFromContext(c))
		if err != nil {
			basehdl.HandleError(c, err)
			return nil
		}

		logger.LogCRUD("update", "customer", id.Hex(), c, nil)
		basehdl.HandleSuccess(c, common.StatusOK, data)
		return nil
	})
}

// HandleSoftDelete soft-delete một khách hàng, 400 nếu đã xóa rồi
func (h *CustomerHandler) HandleSoftDelete(c fiber.Ctx) error {
	return basehdl.SafeHandlerFunc(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c)
		if err != nil {
			basehdl.HandleError(c, err)
			return nil
		}

		data, err := h.customerService.SoftDelete(c.Context(), id, actorFromContext(c))
		if err != nil {
			basehdl.HandleError(c, err)
			return nil
		}

		logger.LogCRUD("delete", "customer", id.Hex(), c, nil)
		basehdl.HandleSuccess(c, common.StatusOK, data)
		return nil
	})
}

// HandleRestore khôi phục một khách hàng đã soft-delete (admin only, 400 nếu chưa xóa)
func (h *CustomerHandler) HandleRestore(c fiber.Ctx) error {
	return basehdl.SafeHandlerFunc(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c)
		if err != nil {
			basehdl.HandleError(c, err)
			return nil
		}

		data, err := h.customerService.Restore(c.Context(), id, actorFromContext(c))
		if err != nil {
			basehdl.HandleError(c, err)
			return nil
		}

		logger.LogCRUD("restore", "customer", id.Hex(), c, nil)
		basehdl.HandleSuccess(c, common.StatusOK, data)
		return nil
	})
}

// HandleListDeleted liệt kê khách hàng đã soft-delete (admin only)
func (h *CustomerHandler) HandleListDeleted(c fiber.Ctx) error {
	return basehdl.SafeHandlerFunc(c, func() error {
		var ownerID primitive.ObjectID
		if raw := c.Query("ownerId"); raw != "" {
			if !primitive.IsValidObjectID(raw) {
				basehdl.HandleError(c, common.ErrInvalidFormat)
				return nil
			}
			ownerID = utility.String2ObjectID(raw)
		}

		page, limit := parsePaging(c)
		data, err := h.customerService.ListDeleted(c.Context(), ownerID, page, limit)
		if err != nil {
			basehdl.HandleError(c, err)
			return nil
		}
		basehdl.HandleSuccess(c, common.StatusOK, data)
		return nil
	})
}

// HandleHardDelete xóa vĩnh viễn một khách hàng (admin only)
func (h *CustomerHandler) HandleHardDelete(c fiber.Ctx) error {
	return basehdl.SafeHandlerFunc(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c)
		if err != nil {
			basehdl.HandleError(c, err)
			return nil
		}

		if err := h.customerService.HardDelete(c.Context(), id, actorFromContext(c)); err != nil {
			basehdl.HandleError(c, err)
			return nil
		}

		logger.LogCRUD("hard_delete", "customer", id.Hex(), c, nil)
		basehdl.HandleSuccess(c, common.StatusOK, fiber.Map{"deleted": true})
		return nil
	})
}

// parseBulkIDs đọc và validate body {ids: [...]} của các endpoint bulk
func parseBulkIDs(c fiber.Ctx) ([]primitive.ObjectID, error) {
	var input crmdto.CustomerBulkIDsInput
	if err := json.Unmarshal(c.Body(), &input); err != nil {
		return nil, common.ErrInvalidFormat
	}
	if err := basehdl.ValidateStruct(&input); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(input.IDs))
	for _, raw := range input.IDs {
		ids = append(ids, utility.String2ObjectID(raw))
	}
	return ids, nil
}

// HandleBulkRestore khôi phục nhiều khách hàng (admin only)
func (h *CustomerHandler) HandleBulkRestore(c fiber.Ctx) error {
	return basehdl.SafeHandlerFunc(c, func() error {
		ids, err := parseBulkIDs(c)
		if err != nil {
			basehdl.HandleError(c, err)
			return nil
		}

		result := h.customerService.BulkRestore(c.Context(), ids, actorFromContext(c))
		logger.LogCRUD("restore", "customer", "bulk", c, map[string]interface{}{"count": len(ids)})
		basehdl.HandleSuccess(c, common.StatusOK, result)
		return nil
	})
}

// HandleBulkHardDelete xóa vĩnh viễn nhiều khách hàng (admin only)
func (h *CustomerHandler) HandleBulkHardDelete(c fiber.Ctx) error {
	return basehdl.SafeHandlerFunc(c, func() error {
		ids, err := parseBulkIDs(c)
		if err != nil {
			basehdl.HandleError(c, err)
			return nil
		}

		result := h.customerService.BulkHardDelete(c.Context(), ids, actorFromContext(c))
		logger.LogCRUD("hard_delete", "customer", "bulk", c, map[string]interface{}{"count": len(ids)})
		basehdl.HandleSuccess(c, common.StatusOK, result)
		return nil
	})
}

// HandleImport import một batch khách hàng. Body chấp nhận cả mảng JSON thuần
// lẫn {customers: [...]}. Luôn trả 201 kèm report, kể cả khi mọi dòng đều lỗi:
// lỗi từng dòng là dữ liệu của report, không phải lỗi của request.
func (h *CustomerHandler) HandleImport(c fiber.Ctx) error {
	return basehdl.SafeHandlerFunc(c, func() error {
		records, err := parseImportBody(c.Body())
		if err != nil {
			basehdl.HandleError(c, err)
			return nil
		}

		report, err := h.customerService.ImportMany(c.Context(), records, actorFromContext(c))
		if err != nil {
			basehdl.HandleError(c, err)
			return nil
		}

		logger.LogCRUD("import", "customer", "bulk", c, map[string]interface{}{
			"recordCount":  len(records),
			"createdCount": report.CreatedCount,
		})
		basehdl.HandleSuccess(c, common.StatusCreated, report)
		return nil
	})
}

// parseImportBody chấp nhận body dạng [...] hoặc {customers: [...]}
func parseImportBody(body []byte) ([]crmdto.CustomerImportRecord, error) {
	var records []crmdto.CustomerImportRecord
	if err := json.Unmarshal(body, &records); err == nil {
		return records, nil
	}
	var wrapped crmdto.CustomerImportRequest
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Customers != nil {
		return wrapped.Customers, nil
	}
	return nil, common.NewError(
		common.ErrCodeValidationFormat,
		"Body import phải là mảng khách hàng hoặc object {customers: [...]}",
		common.StatusBadRequest,
		nil,
	)
}

// HandleListLogs đọc audit log của một khách hàng, check quyền như đọc chính khách hàng đó
func (h *CustomerHandler) HandleListLogs(c fiber.Ctx) error {
	return basehdl.SafeHandlerFunc(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c)
		if err != nil {
			basehdl.HandleError(c, err)
			return nil
		}

		from, err := crmvc.ParseTimeBound(c.Query("from"))
		if err != nil {
			basehdl.HandleError(c, err)
			return nil
		}
		to, err := crmvc.ParseTimeBound(c.Query("to"))
		if err != nil {
			basehdl.HandleError(c, err)
			return nil
		}

		filter := crmvc.AuditLogFilter{
			Action:  c.Query("action"),
			ActorID: c.Query("actorId"),
			From:    from,
			To:      to,
		}
		page, limit := parsePaging(c)

		data, err := h.customerService.ListLogs(c.Context(), id, actorFromContext(c), filter, page, limit)
		if err != nil {
			basehdl.HandleError(c, err)
			return nil
		}
		basehdl.HandleSuccess(c, common.StatusOK, data)
		return nil
	})
}
