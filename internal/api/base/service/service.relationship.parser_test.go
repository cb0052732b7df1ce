// Package basesvc - Test parse tag relationship trên model.
package basesvc

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type parentModel struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	_Relationships struct{}           `relationship:"collection:children,field:parentId,message:Không thể xóa vì còn %d bản ghi con"`
}

type multiRelModel struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	_Relationships struct{}           `relationship:"collection:a,field:xId|collection:b,field:yId,optional"`
}

func TestParseRelationshipTag(t *testing.T) {
	defs := ParseRelationshipTag(reflect.TypeOf(parentModel{}))
	if len(defs) != 1 {
		t.Fatalf("muốn 1 relationship, got %d", len(defs))
	}
	def := defs[0]
	if def.CollectionName != "children" || def.FieldName != "parentId" {
		t.Errorf("parse sai collection/field: %+v", def)
	}
	if def.ErrorMessage == "" {
		t.Error("message trong tag phải được giữ lại")
	}
}

func TestParseRelationshipTag_NhieuRelationship(t *testing.T) {
	defs := ParseRelationshipTag(reflect.TypeOf(multiRelModel{}))
	if len(defs) != 2 {
		t.Fatalf("tag phân cách bởi | phải ra 2 relationship, got %d", len(defs))
	}
	if defs[0].CollectionName != "a" || defs[1].CollectionName != "b" {
		t.Errorf("thứ tự relationship phải theo thứ tự trong tag: %+v", defs)
	}
	if !defs[1].Optional {
		t.Error("relationship thứ hai phải có Optional = true")
	}
}

func TestParseRelationshipTag_KhongCoTag(t *testing.T) {
	type plain struct {
		ID primitive.ObjectID `bson:"_id,omitempty"`
	}
	if defs := ParseRelationshipTag(reflect.TypeOf(plain{})); len(defs) != 0 {
		t.Errorf("model không có tag phải trả về rỗng, got %d", len(defs))
	}
}

func TestGetIDFromModel(t *testing.T) {
	id := primitive.NewObjectID()
	m := parentModel{ID: id}
	got, ok := getIDFromModel(m)
	if !ok || got != id {
		t.Errorf("getIDFromModel phải lấy được field ID, got %v ok=%v", got, ok)
	}

	if _, ok := getIDFromModel(struct{ Name string }{"x"}); ok {
		t.Error("struct không có ID phải trả về ok=false")
	}
}
