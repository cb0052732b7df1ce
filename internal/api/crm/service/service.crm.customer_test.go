// Package crmvc - Test các logic thuần của service khách hàng:
// chuẩn hóa tên, scope ownership, thống kê status, partial update helper.
package crmvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	crmmodels "meta_people/internal/api/crm/models"
	"meta_people/internal/common"
)

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Acme", "acme"},
		{"  ACME Corp  ", "acme corp"},
		{"Công Ty TNHH", "công ty tnhh"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeName(c.in); got != c.want {
			t.Errorf("NormalizeName(%q) = %q, muốn %q", c.in, got, c.want)
		}
	}
}

func TestScopeFilterForActor_StaffBiGhiDeOwner(t *testing.T) {
	staffID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()
	staff := Actor{ID: staffID.Hex(), Role: "staff"}

	// Staff cố lọc theo owner khác vẫn bị ép về chính mình
	f, err := ScopeFilterForActor(CustomerListFilter{OwnerID: otherID}, staff)
	if err != nil {
		t.Fatalf("staff có id hợp lệ không được trả lỗi: %v", err)
	}
	if f.OwnerID != staffID {
		t.Errorf("staff phải bị ép ownerId về chính mình, got %s", f.OwnerID.Hex())
	}
}

func TestScopeFilterForActor_StaffIDHongBiChan(t *testing.T) {
	// Claim id không phải hex hợp lệ: phải trả lỗi chứ không được để filter
	// owner trống (trống = staff thấy toàn bộ khách hàng)
	staff := Actor{ID: "không-phải-hex", Role: "staff"}
	if _, err := ScopeFilterForActor(CustomerListFilter{}, staff); err == nil {
		t.Fatal("staff có id claim hỏng phải bị từ chối")
	}

	staff = Actor{Role: "staff"}
	if _, err := ScopeFilterForActor(CustomerListFilter{}, staff); err == nil {
		t.Fatal("staff không có id claim phải bị từ chối")
	}
}

func TestScopeFilterForActor_AdminGiuNguyenFilter(t *testing.T) {
	otherID := primitive.NewObjectID()
	admin := Actor{ID: primitive.NewObjectID().Hex(), Role: "admin"}

	f, err := ScopeFilterForActor(CustomerListFilter{OwnerID: otherID}, admin)
	if err != nil {
		t.Fatalf("admin không được trả lỗi: %v", err)
	}
	if f.OwnerID != otherID {
		t.Error("admin phải được giữ nguyên ownerId filter")
	}

	f, err = ScopeFilterForActor(CustomerListFilter{}, admin)
	if err != nil {
		t.Fatalf("admin không được trả lỗi: %v", err)
	}
	if !f.OwnerID.IsZero() {
		t.Error("admin không gửi ownerId thì filter phải để trống (thấy tất cả)")
	}
}

func TestRequireOwnership(t *testing.T) {
	ownerID := primitive.NewObjectID()
	customer := crmmodels.Customer{OwnerID: ownerID}

	if err := requireOwnership(customer, Actor{ID: ownerID.Hex(), Role: "staff"}); err != nil {
		t.Errorf("owner phải được truy cập bản ghi của mình: %v", err)
	}
	if err := requireOwnership(customer, Actor{ID: primitive.NewObjectID().Hex(), Role: "staff"}); err != common.ErrForbiddenOwner {
		t.Errorf("staff khác owner phải bị ErrForbiddenOwner, got %v", err)
	}
	if err := requireOwnership(customer, Actor{ID: primitive.NewObjectID().Hex(), Role: "admin"}); err != nil {
		t.Errorf("admin phải được truy cập mọi bản ghi: %v", err)
	}

	// Khách chưa gán owner chỉ admin thấy được
	unassigned := crmmodels.Customer{}
	if err := requireOwnership(unassigned, Actor{ID: primitive.NewObjectID().Hex(), Role: "staff"}); err != common.ErrForbiddenOwner {
		t.Errorf("staff không được truy cập khách chưa gán owner, got %v", err)
	}
}

func TestResolveOwner(t *testing.T) {
	staffID := primitive.NewObjectID()
	staff := Actor{ID: staffID.Hex(), Email: "staff@example.com", Role: "staff"}
	requested := primitive.NewObjectID()

	// Staff bị ép owner = chính mình bất kể payload
	ownerID, ownerName := resolveOwner(staff, requested.Hex(), "Ai Đó")
	if ownerID != staffID {
		t.Errorf("staff phải bị ép ownerId = chính mình, got %s", ownerID.Hex())
	}
	if ownerName != staff.Email {
		t.Errorf("staff phải bị ép ownerName = email của mình, got %q", ownerName)
	}

	// Admin gán tự do
	admin := Actor{ID: primitive.NewObjectID().Hex(), Role: "admin"}
	ownerID, ownerName = resolveOwner(admin, requested.Hex(), "Nguyễn Văn A")
	if ownerID != requested || ownerName != "Nguyễn Văn A" {
		t.Error("admin phải được gán owner theo payload")
	}

	// Admin để trống = chưa gán
	ownerID, _ = resolveOwner(admin, "", "")
	if !ownerID.IsZero() {
		t.Error("admin để trống ownerId thì khách phải ở trạng thái chưa gán")
	}
}

func TestFillStatusPercents(t *testing.T) {
	stats := &crmmodels.CustomerStatusStats{Total: 3, Active: 1, Lead: 1, Inactive: 1}
	FillStatusPercents(stats)
	if stats.ActivePercent != 33.3 {
		t.Errorf("1/3 phải làm tròn thành 33.3, got %v", stats.ActivePercent)
	}

	// Tổng các bucket luôn bằng total
	sum := stats.Active + stats.Lead + stats.Inactive + stats.Other
	if sum != stats.Total {
		t.Errorf("tổng bucket %d phải bằng total %d", sum, stats.Total)
	}
}

func TestFillStatusPercents_BucketOther(t *testing.T) {
	// Status ngoài bộ từ vựng (dữ liệu cũ) dồn vào Other và vẫn được tính phần trăm
	stats := &crmmodels.CustomerStatusStats{Total: 4, Active: 2, Lead: 1, Other: 1}
	FillStatusPercents(stats)
	if stats.OtherPercent != 25 {
		t.Errorf("1/4 Other phải ra 25, got %v", stats.OtherPercent)
	}
	if stats.ActivePercent != 50 || stats.LeadPercent != 25 || stats.InactivePercent != 0 {
		t.Errorf("các bucket còn lại tính sai: active=%v lead=%v inactive=%v",
			stats.ActivePercent, stats.LeadPercent, stats.InactivePercent)
	}
}

func TestFillStatusPercents_TotalKhongThiTatCaBangKhong(t *testing.T) {
	stats := &crmmodels.CustomerStatusStats{}
	FillStatusPercents(stats)
	if stats.ActivePercent != 0 || stats.LeadPercent != 0 || stats.InactivePercent != 0 || stats.OtherPercent != 0 {
		t.Error("total = 0 thì mọi percent phải bằng 0")
	}
}

func TestRoundPercent(t *testing.T) {
	cases := []struct {
		bucket, total int64
		want          float64
	}{
		{1, 2, 50},
		{2, 3, 66.7},
		{1, 8, 12.5},
		{7, 7, 100},
	}
	for _, c := range cases {
		if got := roundPercent(c.bucket, c.total); got != c.want {
			t.Errorf("roundPercent(%d, %d) = %v, muốn %v", c.bucket, c.total, got, c.want)
		}
	}
}

func TestSetOrUnset(t *testing.T) {
	set := map[string]interface{}{}
	unset := map[string]interface{}{}

	setOrUnset(set, unset, "email", "a@b.com")
	setOrUnset(set, unset, "phone", "")

	if set["email"] != "a@b.com" {
		t.Error("giá trị khác rỗng phải vào set")
	}
	if _, ok := unset["phone"]; !ok {
		t.Error("giá trị rỗng phải vào unset để xóa field khỏi document")
	}
	if _, ok := set["phone"]; ok {
		t.Error("giá trị rỗng không được vào set")
	}
}

func TestOwnerPairFilter(t *testing.T) {
	ownerID := primitive.NewObjectID()
	f := ownerPairFilter(ownerID, "acme")
	if f["ownerId"] != ownerID {
		t.Error("owner có id phải lọc exact match trên ownerId")
	}
	if f["isDeleted"] != false {
		t.Error("check trùng tên chỉ xét bản ghi chưa xóa")
	}

	// Owner trống khớp document không có field ownerId
	f = ownerPairFilter(primitive.NilObjectID, "acme")
	cond, ok := f["ownerId"].(bson.M)
	if !ok || cond["$exists"] != false {
		t.Errorf("owner trống phải lọc ownerId $exists:false, got %v", f["ownerId"])
	}
}

func TestBuildFilter_Search(t *testing.T) {
	s := &CustomerService{}
	f := s.buildFilter(CustomerListFilter{Search: "acme", Status: "lead"}, false)

	if f["isDeleted"] != false {
		t.Error("danh sách thường chỉ gồm bản ghi chưa xóa")
	}
	if f["status"] != "lead" {
		t.Error("status phải lọc exact match")
	}
	or, ok := f["$or"].([]bson.M)
	if !ok || len(or) != 3 {
		t.Fatalf("search phải sinh $or trên 3 field name/email/phone, got %v", f["$or"])
	}
}

func TestClampCustomerPaging(t *testing.T) {
	page, limit := clampCustomerPaging(0, 0)
	if page != 1 || limit != customerDefaultLimit {
		t.Errorf("page/limit không hợp lệ phải về mặc định, got page=%d limit=%d", page, limit)
	}
	_, limit = clampCustomerPaging(1, 9999)
	if limit != customerMaxLimit {
		t.Errorf("limit phải bị chặn trên ở %d, got %d", customerMaxLimit, limit)
	}
}
