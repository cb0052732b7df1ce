// Package crmvc - Test parse mốc thời gian của filter audit log.
package crmvc

import "testing"

func TestParseTimeBound(t *testing.T) {
	if got, err := ParseTimeBound(""); err != nil || got != 0 {
		t.Errorf("chuỗi rỗng phải trả về 0, got %d err=%v", got, err)
	}

	if got, err := ParseTimeBound("1700000000000"); err != nil || got != 1700000000000 {
		t.Errorf("epoch millis phải được giữ nguyên, got %d err=%v", got, err)
	}

	got, err := ParseTimeBound("2024-01-02T03:04:05Z")
	if err != nil {
		t.Fatalf("RFC3339 phải parse được: %v", err)
	}
	if got != 1704164645000 {
		t.Errorf("RFC3339 phải đổi ra epoch millis, got %d", got)
	}

	if _, err := ParseTimeBound("hôm-qua"); err == nil {
		t.Error("chuỗi không hợp lệ phải trả về lỗi")
	}
}
