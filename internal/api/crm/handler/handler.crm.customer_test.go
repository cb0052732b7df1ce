// Package crmhdl - Test parse body của endpoint import (mảng thuần hoặc {customers: [...]}).
package crmhdl

import "testing"

func TestParseImportBody_MangThuan(t *testing.T) {
	records, err := parseImportBody([]byte(`[{"name":"Acme"},{"name":"Beta","email":"b@example.com"}]`))
	if err != nil {
		t.Fatalf("body dạng mảng phải parse được: %v", err)
	}
	if len(records) != 2 || records[0].Name != "Acme" || records[1].Email != "b@example.com" {
		t.Errorf("parse sai nội dung: %+v", records)
	}
}

func TestParseImportBody_ObjectBocCustomers(t *testing.T) {
	records, err := parseImportBody([]byte(`{"customers":[{"name":"Acme"}]}`))
	if err != nil {
		t.Fatalf("body dạng {customers: [...]} phải parse được: %v", err)
	}
	if len(records) != 1 || records[0].Name != "Acme" {
		t.Errorf("parse sai nội dung: %+v", records)
	}
}

func TestParseImportBody_KhongHopLe(t *testing.T) {
	if _, err := parseImportBody([]byte(`{"foo": 1}`)); err == nil {
		t.Error("object không có customers phải trả về lỗi")
	}
	if _, err := parseImportBody([]byte(`"chuỗi"`)); err == nil {
		t.Error("body không phải mảng hay object phải trả về lỗi")
	}
}
