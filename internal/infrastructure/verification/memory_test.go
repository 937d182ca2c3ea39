package verification

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_PutGet(t *testing.T) {
	s := NewMemoryStore()

	if err := s.Put(context.Background(), "jane@example.com", "123456", CodeTTL); err != nil {
		t.Fatalf("put: %v", err)
	}

	code, ok, err := s.Get(context.Background(), "jane@example.com")
	if err != nil || !ok {
		t.Fatalf("expected live code, ok=%v err=%v", ok, err)
	}
	if code != "123456" {
		t.Fatalf("expected 123456, got %s", code)
	}
}

func TestMemoryStore_Overwrite(t *testing.T) {
	s := NewMemoryStore()

	_ = s.Put(context.Background(), "jane@example.com", "111111", CodeTTL)
	_ = s.Put(context.Background(), "jane@example.com", "222222", CodeTTL)

	code, ok, _ := s.Get(context.Background(), "jane@example.com")
	if !ok || code != "222222" {
		t.Fatalf("resend must overwrite the slot, got ok=%v code=%s", ok, code)
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	s := NewMemoryStore()
	base := time.Now()
	s.now = func() time.Time { return base }

	_ = s.Put(context.Background(), "jane@example.com", "123456", CodeTTL)

	s.now = func() time.Time { return base.Add(CodeTTL + time.Second) }
	if _, ok, _ := s.Get(context.Background(), "jane@example.com"); ok {
		t.Fatalf("expired code must not be returned")
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	s := NewMemoryStore()

	_ = s.Put(context.Background(), "jane@example.com", "123456", CodeTTL)
	_ = s.Delete(context.Background(), "jane@example.com")

	if _, ok, _ := s.Get(context.Background(), "jane@example.com"); ok {
		t.Fatalf("deleted code must not be returned")
	}
}

func TestGenerateCode_SixDigits(t *testing.T) {
	for i := 0; i < 32; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("non-digit in code %q", code)
			}
		}
	}
}
