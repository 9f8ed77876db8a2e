package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("plant123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "plant123" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !CheckPassword("plant123", hash) {
		t.Error("correct password should verify")
	}
	if CheckPassword("wrongpass", hash) {
		t.Error("wrong password must not verify")
	}
}
