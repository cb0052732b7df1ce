// Package crmvc - Test khử trùng lặp batch import (bước 1 + 2).
package crmvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	crmdto "meta_people/internal/api/crm/dto"
	crmmodels "meta_people/internal/api/crm/models"
)

func emptyReport() *crmdto.CustomerImportReport {
	return &crmdto.CustomerImportReport{
		Created: []crmmodels.Customer{},
		Skipped: []crmdto.CustomerImportSkip{},
		Errors:  []crmdto.CustomerImportError{},
	}
}

func TestPartitionImportBatch_ThieuNameVaoErrors(t *testing.T) {
	actor := Actor{ID: primitive.NewObjectID().Hex(), Role: "staff"}
	report := emptyReport()

	candidates := partitionImportBatch([]crmdto.CustomerImportRecord{
		{Name: "Acme"},
		{Name: "   "},
		{Email: "no-name@example.com"},
	}, actor, report)

	if len(candidates) != 1 {
		t.Fatalf("chỉ 1 dòng hợp lệ, got %d", len(candidates))
	}
	if len(report.Errors) != 2 {
		t.Fatalf("2 dòng thiếu name phải vào errors, got %d", len(report.Errors))
	}
	if report.Errors[0].Index != 1 || report.Errors[1].Index != 2 {
		t.Error("error phải giữ đúng index của dòng trong batch")
	}
}

func TestPartitionImportBatch_TrungTrongFile(t *testing.T) {
	actor := Actor{ID: primitive.NewObjectID().Hex(), Role: "staff"}
	report := emptyReport()

	// 3 dòng cùng tên (khác hoa thường) của cùng owner: giữ dòng đầu, bỏ 2 dòng sau
	candidates := partitionImportBatch([]crmdto.CustomerImportRecord{
		{Name: "Acme"},
		{Name: "ACME"},
		{Name: "  acme  "},
	}, actor, report)

	if len(candidates) != 1 {
		t.Fatalf("cùng cặp (owner, tên) chỉ giữ dòng đầu, got %d", len(candidates))
	}
	if len(report.Skipped) != 2 {
		t.Fatalf("2 dòng lặp phải vào skipped, got %d", len(report.Skipped))
	}
	for _, skip := range report.Skipped {
		if skip.Reason != ImportSkipDuplicateInFile {
			t.Errorf("lý do skip phải là %s, got %s", ImportSkipDuplicateInFile, skip.Reason)
		}
	}
}

func TestPartitionImportBatch_AdminKhacOwnerKhongTrung(t *testing.T) {
	admin := Actor{ID: primitive.NewObjectID().Hex(), Role: "admin"}
	report := emptyReport()

	ownerA := primitive.NewObjectID().Hex()
	ownerB := primitive.NewObjectID().Hex()
	candidates := partitionImportBatch([]crmdto.CustomerImportRecord{
		{Name: "Acme", OwnerID: ownerA},
		{Name: "Acme", OwnerID: ownerB},
	}, admin, report)

	if len(candidates) != 2 {
		t.Fatalf("cùng tên nhưng khác owner không phải trùng, got %d candidates", len(candidates))
	}
	if len(report.Skipped) != 0 {
		t.Error("không dòng nào được skip khi owner khác nhau")
	}
}

func TestPartitionImportBatch_StaffMoiDongDeuVeChinhMinh(t *testing.T) {
	staffID := primitive.NewObjectID()
	staff := Actor{ID: staffID.Hex(), Email: "staff@example.com", Role: "staff"}
	report := emptyReport()

	// Staff gán ownerId khác nhau cho từng dòng nhưng đều bị ép về chính mình,
	// nên hai dòng cùng tên thành trùng trong file
	candidates := partitionImportBatch([]crmdto.CustomerImportRecord{
		{Name: "Acme", OwnerID: primitive.NewObjectID().Hex()},
		{Name: "Acme", OwnerID: primitive.NewObjectID().Hex()},
	}, staff, report)

	if len(candidates) != 1 {
		t.Fatalf("staff bị ép owner nên 2 dòng cùng tên phải trùng, got %d candidates", len(candidates))
	}
	if candidates[0].ownerID != staffID {
		t.Error("owner của candidate phải là chính staff")
	}
	if len(report.Skipped) != 1 || report.Skipped[0].Reason != ImportSkipDuplicateInFile {
		t.Error("dòng thứ hai phải bị skip với lý do duplicate_in_file")
	}
}

func TestImportStatus(t *testing.T) {
	if got := importStatus("active"); got != crmmodels.CustomerStatusActive {
		t.Errorf("status hợp lệ phải giữ nguyên, got %q", got)
	}
	if got := importStatus("VIP"); got != crmmodels.CustomerStatusLead {
		t.Errorf("status lạ phải về mặc định lead, got %q", got)
	}
	if got := importStatus(""); got != crmmodels.CustomerStatusLead {
		t.Errorf("status rỗng phải về mặc định lead, got %q", got)
	}
}
