package credential

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	record, err := Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if !Verify("correct horse battery staple", record) {
		t.Fatalf("expected password to verify against its own record")
	}
	if Verify("wrong password", record) {
		t.Fatalf("expected wrong password to fail verification")
	}
}

func TestHashRecordFormat(t *testing.T) {
	record, err := Hash("StrongPass123!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	salt, key, found := strings.Cut(record, "$")
	if !found {
		t.Fatalf("expected record to contain a $ separator, got %q", record)
	}
	if len(salt) != saltBytes*2 {
		t.Fatalf("expected %d hex chars of salt, got %d", saltBytes*2, len(salt))
	}
	if len(key) != keyLength*2 {
		t.Fatalf("expected %d hex chars of derived key, got %d", keyLength*2, len(key))
	}
	if strings.Contains(record, "StrongPass123!") {
		t.Fatalf("record must not contain the plaintext password")
	}
}

func TestHashUsesFreshSalt(t *testing.T) {
	first, err := Hash("StrongPass123!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := Hash("StrongPass123!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if first == second {
		t.Fatalf("expected different records for the same password")
	}
	if !Verify("StrongPass123!", first) || !Verify("StrongPass123!", second) {
		t.Fatalf("expected both records to verify the original password")
	}
}

func TestVerifyRejectsMalformedRecord(t *testing.T) {
	if Verify("whatever", "no-separator-here") {
		t.Fatalf("expected record without separator to fail verification")
	}
	if Verify("whatever", "") {
		t.Fatalf("expected empty record to fail verification")
	}
}
