package basesvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"meta_people/internal/common"
	"meta_people/internal/global"
)

// RelationshipCheck định nghĩa một quan hệ cần kiểm tra trước khi xóa
type RelationshipCheck struct {
	CollectionName string
	FieldName      string
	ErrorMessage   string
	Optional       bool
}

// CheckRelationshipExists kiểm tra có record nào trong collection khác đang trỏ tới record này không.
// Nếu có, trả về lỗi BusinessOperation với StatusConflict.
func CheckRelationshipExists(ctx context.Context, recordID primitive.ObjectID, checks []RelationshipCheck) error {
	for _, check := range checks {
		collection, exists := global.RegistryCollections.Get(check.CollectionName)
		if !exists {
			if check.Optional {
				continue
			}
			return common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Không tìm thấy collection '%s' để kiểm tra quan hệ", check.CollectionName),
				common.StatusInternalServerError,
				nil,
			)
		}

		filter := bson.M{check.FieldName: recordID}
		count, err := collection.CountDocuments(ctx, filter)
		if err != nil {
			return common.ConvertMongoError(err)
		}

		if count > 0 {
			errorMsg := check.ErrorMessage
			if errorMsg == "" {
				errorMsg = fmt.Sprintf("Không thể xóa record vì có %d record trong collection '%s' đang tham chiếu tới record này", count, check.CollectionName)
			} else {
				errorMsg = fmt.Sprintf(check.ErrorMessage, count)
			}
			return common.NewError(common.ErrCodeBusinessOperation, errorMsg, common.StatusConflict, nil)
		}
	}
	return nil
}

// GetRelationshipCount trả về số lượng record đang tham chiếu tới record này
func GetRelationshipCount(ctx context.Context, recordID primitive.ObjectID, collectionName, fieldName string) (int64, error) {
	collection, exists := global.RegistryCollections.Get(collectionName)
	if !exists {
		return 0, common.NewError(common.ErrCodeInternalServer, fmt.Sprintf("Không tìm thấy collection '%s'", collectionName), common.StatusInternalServerError, nil)
	}
	filter := bson.M{fieldName: recordID}
	return collection.CountDocuments(ctx, filter)
}

// ValidateBeforeDeleteDepartment kiểm tra các quan hệ của Department trước khi xóa
func ValidateBeforeDeleteDepartment(ctx context.Context, departmentID primitive.ObjectID) error {
	checks := []RelationshipCheck{
		{CollectionName: global.MongoDB_ColNames.Employees, FieldName: "departmentId", ErrorMessage: "Không thể xóa phòng ban vì có %d nhân viên đang thuộc phòng ban này. Vui lòng chuyển nhân viên sang phòng ban khác trước."},
	}
	return CheckRelationshipExists(ctx, departmentID, checks)
}

// ValidateBeforeDeleteEmployee kiểm tra các quan hệ của Employee trước khi xóa
func ValidateBeforeDeleteEmployee(ctx context.Context, employeeID primitive.ObjectID) error {
	checks := []RelationshipCheck{
		{CollectionName: global.MongoDB_ColNames.PayrollRuns, FieldName: "employeeId", ErrorMessage: "Không thể xóa nhân viên vì có %d bảng lương đang gắn với nhân viên này. Vui lòng xóa các bảng lương trước."},
	}
	return CheckRelationshipExists(ctx, employeeID, checks)
}
