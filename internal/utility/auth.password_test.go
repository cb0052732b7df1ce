// Package utility - Test hash/verify mật khẩu và tạo/parse JWT.
package utility

import "testing"

func TestHashPassword_VerifyRoundtrip(t *testing.T) {
	stored, err := HashPassword("MậtKhẩu@123")
	if err != nil {
		t.Fatalf("HashPassword lỗi: %v", err)
	}
	if !VerifyPassword("MậtKhẩu@123", stored) {
		t.Error("mật khẩu đúng phải verify thành công")
	}
	if VerifyPassword("sai-mật-khẩu", stored) {
		t.Error("mật khẩu sai không được verify thành công")
	}
}

func TestHashPassword_SaltNgauNhien(t *testing.T) {
	a, err := HashPassword("CungMotMatKhau@1")
	if err != nil {
		t.Fatalf("HashPassword lỗi: %v", err)
	}
	b, err := HashPassword("CungMotMatKhau@1")
	if err != nil {
		t.Fatalf("HashPassword lỗi: %v", err)
	}
	if a == b {
		t.Error("hai lần hash cùng mật khẩu phải khác nhau nhờ salt ngẫu nhiên")
	}
}

func TestVerifyPassword_StoredHong(t *testing.T) {
	if VerifyPassword("bất kỳ", "không-có-dấu-phân-cách") {
		t.Error("stored sai định dạng phải trả về false thay vì panic")
	}
}

func TestCreateToken_ParseRoundtrip(t *testing.T) {
	token, err := CreateToken("test-secret", "64f000000000000000000001", "user@example.com", "staff", 1)
	if err != nil {
		t.Fatalf("CreateToken lỗi: %v", err)
	}

	claims, err := ParseToken("test-secret", token)
	if err != nil {
		t.Fatalf("ParseToken lỗi: %v", err)
	}
	if claims.UserID != "64f000000000000000000001" {
		t.Errorf("UserID không khớp: %s", claims.UserID)
	}
	if claims.Email != "user@example.com" || claims.Role != "staff" {
		t.Error("Email/Role trong claims không khớp")
	}
}

func TestParseToken_SaiSecret(t *testing.T) {
	token, err := CreateToken("secret-a", "64f000000000000000000001", "user@example.com", "staff", 1)
	if err != nil {
		t.Fatalf("CreateToken lỗi: %v", err)
	}
	if _, err := ParseToken("secret-b", token); err == nil {
		t.Error("token ký bằng secret khác phải bị từ chối")
	}
}
