package crmvc

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	crmdto "meta_people/internal/api/crm/dto"
	crmmodels "meta_people/internal/api/crm/models"
)

// Lý do bỏ qua một dòng khi import
const (
	ImportSkipDuplicateInFile = "duplicate_in_file"
	ImportSkipAlreadyExists   = "already_exists"
)

// importCandidate một dòng đã qua sanitize owner, chờ khử trùng lặp
type importCandidate struct {
	index     int
	record    crmdto.CustomerImportRecord
	ownerID   primitive.ObjectID
	ownerName string
	normName  string
}

func (c importCandidate) key() string {
	return c.ownerID.Hex() + "|" + c.normName
}

// ImportMany import một batch khách hàng với khử trùng lặp ba bước:
//  1. Dòng thiếu name gom vào errors, không hủy cả batch.
//  2. Trong batch, cặp (owner, tên chuẩn hóa) lặp lại dòng trước đó bị bỏ
//     qua với lý do duplicate_in_file.
//  3. Cặp đã tồn tại trong store (chưa xóa) bị bỏ qua với lý do already_exists.
//
// Các dòng còn lại insert từng dòng một; lỗi insert của một dòng được ghi
// nhận như dữ liệu, không dừng phần còn lại. Batch không atomic: thành công
// một phần là kết quả hợp lệ.
func (s *CustomerService) ImportMany(ctx context.Context, records []crmdto.CustomerImportRecord, actor Actor) (*crmdto.CustomerImportReport, error) {
	report := &crmdto.CustomerImportReport{
		Created: []crmmodels.Customer{},
		Skipped: []crmdto.CustomerImportSkip{},
		Errors:  []crmdto.CustomerImportError{},
	}

	candidates := partitionImportBatch(records, actor, report)

	// Bước 3: loại các cặp đã tồn tại trong store
	existing, err := s.findExistingKeys(ctx, candidates)
	if err != nil {
		return nil, err
	}

	for _, candidate := range candidates {
		if existing[candidate.key()] {
			report.Skipped = append(report.Skipped, crmdto.CustomerImportSkip{
				Index:  candidate.index,
				Name:   strings.TrimSpace(candidate.record.Name),
				Reason: ImportSkipAlreadyExists,
			})
			continue
		}

		customer := crmmodels.Customer{
			Name:           strings.TrimSpace(candidate.record.Name),
			NameNormalized: candidate.normName,
			Email:          candidate.record.Email,
			Phone:          candidate.record.Phone,
			Address:        candidate.record.Address,
			Industry:       candidate.record.Industry,
			Status:         importStatus(candidate.record.Status),
			Tags:           candidate.record.Tags,
			OwnerID:        candidate.ownerID,
			OwnerName:      candidate.ownerName,
		}

		created, err := s.InsertOne(ctx, customer)
		if err != nil {
			report.Errors = append(report.Errors, crmdto.CustomerImportError{
				Index:   candidate.index,
				Name:    customer.Name,
				Message: err.Error(),
			})
			continue
		}
		report.Created = append(report.Created, created)
	}

	report.CreatedCount = len(report.Created)
	report.SkippedCount = len(report.Skipped)
	report.ErrorCount = len(report.Errors)

	s.auditService.Record(ctx, crmmodels.AuditCustomerIDBulk, crmmodels.AuditActionImport, actor, nil, map[string]interface{}{
		"recordCount":  len(records),
		"createdCount": report.CreatedCount,
		"skippedCount": report.SkippedCount,
		"errorCount":   report.ErrorCount,
	})
	return report, nil
}

// partitionImportBatch chạy bước 1 + 2 của khử trùng lặp: loại dòng thiếu
// name (gom vào errors của report) và loại dòng lặp cặp (owner, tên) trong
// cùng batch (gom vào skipped với lý do duplicate_in_file)
func partitionImportBatch(records []crmdto.CustomerImportRecord, actor Actor, report *crmdto.CustomerImportReport) []importCandidate {
	seen := make(map[string]bool)
	candidates := make([]importCandidate, 0, len(records))
	for i, record := range records {
		name := strings.TrimSpace(record.Name)
		if name == "" {
			report.Errors = append(report.Errors, crmdto.CustomerImportError{
				Index:   i,
				Message: "Thiếu trường name",
			})
			continue
		}

		ownerID, ownerName := resolveOwner(actor, record.OwnerID, record.OwnerName)
		candidate := importCandidate{
			index:     i,
			record:    record,
			ownerID:   ownerID,
			ownerName: ownerName,
			normName:  NormalizeName(name),
		}

		if seen[candidate.key()] {
			report.Skipped = append(report.Skipped, crmdto.CustomerImportSkip{
				Index:  i,
				Name:   name,
				Reason: ImportSkipDuplicateInFile,
			})
			continue
		}
		seen[candidate.key()] = true
		candidates = append(candidates, candidate)
	}
	return candidates
}

// findExistingKeys truy vấn các cặp (owner, tên chuẩn hóa) đã có trong store
// (chưa xóa) bằng một query $or duy nhất cho cả batch
func (s *CustomerService) findExistingKeys(ctx context.Context, candidates []importCandidate) (map[string]bool, error) {
	existing := make(map[string]bool)
	if len(candidates) == 0 {
		return existing, nil
	}

	clauses := make([]bson.M, 0, len(candidates))
	for _, candidate := range candidates {
		clauses = append(clauses, ownerPairFilter(candidate.ownerID, candidate.normName))
	}

	matches, err := s.Find(ctx, bson.M{"$or": clauses}, nil)
	if err != nil {
		return nil, err
	}
	for _, match := range matches {
		existing[match.OwnerID.Hex()+"|"+match.NameNormalized] = true
	}
	return existing, nil
}

func importStatus(status string) string {
	switch status {
	case crmmodels.CustomerStatusLead, crmmodels.CustomerStatusActive, crmmodels.CustomerStatusInactive:
		return status
	default:
		return crmmodels.CustomerStatusLead
	}
}
