package flow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/funnytutor6/tutor-fe-sub002/domain"
	"github.com/funnytutor6/tutor-fe-sub002/internal/api"
	"github.com/funnytutor6/tutor-fe-sub002/internal/mocks"
)

func newTestStep(t *testing.T, verification *mocks.MockVerificationAPI, onSuccess func(ctx context.Context) error) *VerificationStep {
	t.Helper()
	pending := &domain.PendingVerification{
		UserID:      "S1",
		UserType:    domain.UserTypeStudent,
		Destination: "+911234567890",
	}
	step := NewVerificationStep(verification, pending, onSuccess, nil, WithTick(time.Hour))
	t.Cleanup(step.Close)
	return step
}

func TestVerificationStep_VerifyRequiresSixDigits(t *testing.T) {
	verification := mocks.NewMockVerificationAPI()
	step := newTestStep(t, verification, nil)

	partials := []string{"", "1", "12345"}
	for _, partial := range partials {
		step.Buffer().Clear()
		for _, ch := range partial {
			step.Buffer().Type(ch)
		}

		err := step.VerifyCode(context.Background())
		if !errors.Is(err, domain.ErrCodeIncomplete) {
			t.Errorf("partial %q: expected ErrCodeIncomplete, got %v", partial, err)
		}
	}
	if len(verification.VerifyCodeCalls) != 0 {
		t.Errorf("expected zero network calls for incomplete codes, got %d", len(verification.VerifyCodeCalls))
	}
}

func TestVerificationStep_FailedVerifyClearsBuffer(t *testing.T) {
	verification := mocks.NewMockVerificationAPI()
	verification.VerifyCodeFunc = func(ctx context.Context, userID string, userType domain.UserType, destination, code string) error {
		return domain.ErrOTPInvalid
	}
	step := newTestStep(t, verification, nil)

	step.Buffer().Paste("123456")
	err := step.VerifyCode(context.Background())
	if !errors.Is(err, domain.ErrOTPInvalid) {
		t.Fatalf("expected ErrOTPInvalid, got %v", err)
	}

	for i, s := range step.Buffer().Slots() {
		if s != "" {
			t.Errorf("slot %d not cleared after failed verify: %q", i, s)
		}
	}
	if step.Buffer().Focus() != 0 {
		t.Errorf("expected focus back on slot 0, got %d", step.Buffer().Focus())
	}
}

func TestVerificationStep_SuccessAwaitsContinuation(t *testing.T) {
	verification := mocks.NewMockVerificationAPI()
	continued := false
	step := newTestStep(t, verification, func(ctx context.Context) error {
		continued = true
		return nil
	})

	step.Buffer().Paste("123456")
	if err := step.VerifyCode(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !continued {
		t.Error("success continuation did not run")
	}

	call := verification.VerifyCodeCalls[0]
	if call.UserID != "S1" || call.UserType != domain.UserTypeStudent || call.Destination != "+911234567890" || call.Code != "123456" {
		t.Errorf("verify called with wrong tuple: %+v", call)
	}
}

func TestVerificationStep_ContinuationFailureIsTerminal(t *testing.T) {
	verification := mocks.NewMockVerificationAPI()
	step := newTestStep(t, verification, func(ctx context.Context) error {
		return errors.New("completion failed")
	})

	step.Buffer().Paste("123456")
	if err := step.VerifyCode(context.Background()); err == nil {
		t.Fatal("expected continuation error to propagate")
	}
}

func TestVerificationStep_SendSeedsCooldown(t *testing.T) {
	verification := mocks.NewMockVerificationAPI()
	verification.SendCodeFunc = func(ctx context.Context, userID string, userType domain.UserType, destination string) (*domain.SendResult, error) {
		return &domain.SendResult{CooldownSeconds: 42}, nil
	}
	step := newTestStep(t, verification, nil)

	if err := step.SendCode(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := step.Cooldown().Remaining(); got != 42 {
		t.Errorf("expected cooldown 42, got %d", got)
	}
	if step.CanResend() {
		t.Error("resend should be disabled while cooldown is positive")
	}
}

func TestVerificationStep_SendDefaultsCooldown(t *testing.T) {
	verification := mocks.NewMockVerificationAPI()
	verification.SendCodeFunc = func(ctx context.Context, userID string, userType domain.UserType, destination string) (*domain.SendResult, error) {
		return &domain.SendResult{}, nil
	}
	step := newTestStep(t, verification, nil)

	if err := step.SendCode(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := step.Cooldown().Remaining(); got != DefaultCooldownSeconds {
		t.Errorf("expected default cooldown %d, got %d", DefaultCooldownSeconds, got)
	}
}

func TestVerificationStep_ResendDuringCooldownIsNoOp(t *testing.T) {
	verification := mocks.NewMockVerificationAPI()
	step := newTestStep(t, verification, nil)
	step.Cooldown().Reset(42)

	err := step.SendCode(context.Background())
	if !errors.Is(err, domain.ErrCooldownActive) {
		t.Fatalf("expected ErrCooldownActive, got %v", err)
	}
	if verification.SendCodeCalls != 0 {
		t.Errorf("expected zero network calls, got %d", verification.SendCodeCalls)
	}
	if got := step.Cooldown().Remaining(); got != 42 {
		t.Errorf("cooldown changed on rejected resend: %d", got)
	}
}

func TestVerificationStep_SendFailureSeedsParsedCooldown(t *testing.T) {
	verification := mocks.NewMockVerificationAPI()
	verification.SendCodeFunc = func(ctx context.Context, userID string, userType domain.UserType, destination string) (*domain.SendResult, error) {
		return nil, &api.APIError{
			StatusCode: 429,
			Message:    "please wait 37 seconds before requesting a new code",
		}
	}
	step := newTestStep(t, verification, nil)

	if err := step.SendCode(context.Background()); err == nil {
		t.Fatal("expected send error")
	}
	if got := step.Cooldown().Remaining(); got != 37 {
		t.Errorf("expected parsed cooldown 37, got %d", got)
	}
}

func TestVerificationStep_SendRequiresDestination(t *testing.T) {
	verification := mocks.NewMockVerificationAPI()
	pending := &domain.PendingVerification{UserID: "S1", UserType: domain.UserTypeStudent}
	step := NewVerificationStep(verification, pending, nil, nil, WithTick(time.Hour))
	defer step.Close()

	err := step.SendCode(context.Background())
	if !errors.Is(err, domain.ErrDestinationMissing) {
		t.Fatalf("expected ErrDestinationMissing, got %v", err)
	}
	if verification.SendCodeCalls != 0 {
		t.Errorf("expected zero network calls, got %d", verification.SendCodeCalls)
	}
}
