package auth

import (
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("oss-porra-123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "oss-porra-123" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !CheckPassword(hash, "oss-porra-123") {
		t.Error("correct password should verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("wrong password should not verify")
	}
	if CheckPassword("not-a-hash", "oss-porra-123") {
		t.Error("malformed hash should not verify")
	}
}
