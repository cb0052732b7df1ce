package basesvc

import (
	"fmt"
	"reflect"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RelationshipDefinition định nghĩa một quan hệ đọc từ struct tag
type RelationshipDefinition struct {
	CollectionName string // Collection chứa record tham chiếu tới record này
	FieldName      string // Field trong collection đó đang giữ ObjectID của record này
	ErrorMessage   string // Thông báo lỗi (có thể chứa %d cho số lượng record)
	Optional       bool   // true: bỏ qua nếu collection chưa đăng ký
	Cascade        bool   // true: không chặn xóa (để caller tự xử lý cascade)
}

// ParseRelationshipTag phân tích struct tag `relationship` để lấy các định nghĩa quan hệ.
// Cú pháp: relationship:"collection:employees,field:departmentId,message:..."
// Nhiều quan hệ trên cùng field phân tách bằng "|".
func ParseRelationshipTag(structType reflect.Type) []RelationshipDefinition {
	var relationships []RelationshipDefinition
	for i := 0; i < structType.NumField(); i++ {
		tag := structType.Field(i).Tag.Get("relationship")
		if tag == "" {
			continue
		}
		relationships = append(relationships, parseRelationshipTagValue(tag)...)
	}
	return relationships
}

func parseRelationshipTagValue(tagValue string) []RelationshipDefinition {
	var relationships []RelationshipDefinition
	parts := strings.Split(tagValue, "|")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		rel := RelationshipDefinition{}
		pairs := strings.Split(part, ",")
		for _, pair := range pairs {
			pair = strings.TrimSpace(pair)
			if pair == "" {
				continue
			}
			kv := strings.SplitN(pair, ":", 2)
			if len(kv) != 2 {
				continue
			}
			key := strings.TrimSpace(kv[0])
			value := strings.TrimSpace(kv[1])
			switch key {
			case "collection":
				rel.CollectionName = value
			case "field":
				rel.FieldName = value
			case "message", "msg":
				rel.ErrorMessage = value
			case "optional":
				rel.Optional = value == "true" || value == "1"
			case "cascade":
				rel.Cascade = value == "true" || value == "1"
			}
		}
		if rel.CollectionName != "" && rel.FieldName != "" {
			if rel.ErrorMessage == "" {
				rel.ErrorMessage = fmt.Sprintf("Không thể xóa record vì có %%d record trong collection '%s' đang tham chiếu tới.", rel.CollectionName)
			}
			relationships = append(relationships, rel)
		}
	}
	return relationships
}

// parseRelationshipsOf lấy các định nghĩa quan hệ từ một giá trị model (struct hoặc *struct)
func parseRelationshipsOf(data interface{}) []RelationshipDefinition {
	val := reflect.ValueOf(data)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil
	}
	return ParseRelationshipTag(val.Type())
}

// getIDFromModel lấy ObjectID từ field ID của model bằng reflection
func getIDFromModel(data interface{}) (primitive.ObjectID, bool) {
	val := reflect.ValueOf(data)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return primitive.NilObjectID, false
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return primitive.NilObjectID, false
	}

	idField := val.FieldByName("ID")
	if !idField.IsValid() {
		idField = val.FieldByName("Id")
	}
	if !idField.IsValid() {
		return primitive.NilObjectID, false
	}

	id, ok := idField.Interface().(primitive.ObjectID)
	if !ok || id.IsZero() {
		return primitive.NilObjectID, false
	}
	return id, true
}
