package devserver

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/funnytutor6/tutor-fe-sub002/domain"
)

func newTestOTPService(t *testing.T) (*OTPService, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	svc := NewOTPService(client, OTPConfig{
		Length:       6,
		TTL:          5 * time.Minute,
		MaxAttempts:  3,
		ResendWindow: time.Minute,
	})
	return svc, mr
}

func TestOTPService_GenerateAndVerify(t *testing.T) {
	svc, _ := newTestOTPService(t)
	ctx := context.Background()

	code, err := svc.Generate(ctx, "verify", "+911234567890", "S1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(code) != 6 {
		t.Errorf("expected 6-digit code, got %q", code)
	}
	for _, ch := range code {
		if ch < '0' || ch > '9' {
			t.Errorf("non-digit in code %q", code)
		}
	}

	if err := svc.Verify(ctx, "verify", "+911234567890", "S1", code); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	// The code is consumed on success.
	err = svc.Verify(ctx, "verify", "+911234567890", "S1", code)
	if !errors.Is(err, domain.ErrOTPNotFound) {
		t.Errorf("expected ErrOTPNotFound after consumption, got %v", err)
	}
}

func TestOTPService_VerifyWrongCode(t *testing.T) {
	svc, _ := newTestOTPService(t)
	ctx := context.Background()

	code, err := svc.Generate(ctx, "verify", "+911234567890", "S1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	err = svc.Verify(ctx, "verify", "+911234567890", "S1", "000000")
	if !errors.Is(err, domain.ErrOTPInvalid) {
		t.Errorf("expected ErrOTPInvalid, got %v", err)
	}

	// The right code still works after a failed attempt.
	if err := svc.Verify(ctx, "verify", "+911234567890", "S1", code); err != nil {
		t.Errorf("Verify after one failure: %v", err)
	}
}

func TestOTPService_MaxAttempts(t *testing.T) {
	svc, _ := newTestOTPService(t)
	ctx := context.Background()

	code, err := svc.Generate(ctx, "verify", "+911234567890", "S1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := svc.Verify(ctx, "verify", "+911234567890", "S1", "000000"); !errors.Is(err, domain.ErrOTPInvalid) {
			t.Fatalf("attempt %d: expected ErrOTPInvalid, got %v", i+1, err)
		}
	}

	// The cap invalidates even the correct code.
	err = svc.Verify(ctx, "verify", "+911234567890", "S1", code)
	if !errors.Is(err, domain.ErrOTPMaxAttempts) {
		t.Errorf("expected ErrOTPMaxAttempts, got %v", err)
	}
}

func TestOTPService_ResendThrottle(t *testing.T) {
	svc, mr := newTestOTPService(t)
	ctx := context.Background()

	if _, err := svc.Generate(ctx, "verify", "+911234567890", "S1"); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	_, err := svc.Generate(ctx, "verify", "+911234567890", "S1")
	if err == nil {
		t.Fatal("expected throttle error")
	}
	if !strings.Contains(err.Error(), "wait") || !strings.Contains(err.Error(), "seconds") {
		t.Errorf("throttle message must carry the wait in parseable form, got %q", err.Error())
	}

	canResend, wait, err := svc.CanResend(ctx, "verify", "+911234567890")
	if err != nil {
		t.Fatalf("CanResend failed: %v", err)
	}
	if canResend || wait <= 0 {
		t.Errorf("expected active throttle, got canResend=%v wait=%d", canResend, wait)
	}

	// A different destination is unthrottled.
	if _, err := svc.Generate(ctx, "verify", "+919999999999", "S2"); err != nil {
		t.Errorf("other destination throttled: %v", err)
	}

	mr.FastForward(time.Minute)
	if _, err := svc.Generate(ctx, "verify", "+911234567890", "S1"); err != nil {
		t.Errorf("Generate after window elapsed: %v", err)
	}
}

func TestOTPService_CodeExpiry(t *testing.T) {
	svc, mr := newTestOTPService(t)
	ctx := context.Background()

	code, err := svc.Generate(ctx, "verify", "+911234567890", "S1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	mr.FastForward(6 * time.Minute)

	err = svc.Verify(ctx, "verify", "+911234567890", "S1", code)
	if !errors.Is(err, domain.ErrOTPNotFound) {
		t.Errorf("expected ErrOTPNotFound for expired code, got %v", err)
	}
}

func TestOTPService_PurposeIsolation(t *testing.T) {
	svc, _ := newTestOTPService(t)
	ctx := context.Background()

	code, err := svc.Generate(ctx, "verify", "+911234567890", "S1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// A reset-purpose verify never sees the verify-purpose code.
	err = svc.Verify(ctx, "reset", "+911234567890", "S1", code)
	if !errors.Is(err, domain.ErrOTPNotFound) {
		t.Errorf("expected purpose isolation, got %v", err)
	}

	hasActive, err := svc.HasActiveCode(ctx, "verify", "+911234567890", "S1")
	if err != nil || !hasActive {
		t.Errorf("expected active verify code, got %v %v", hasActive, err)
	}
}
