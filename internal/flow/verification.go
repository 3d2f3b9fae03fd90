package flow

import (
	"context"
	"time"

	"github.com/funnytutor6/tutor-fe-sub002/domain"
	"github.com/funnytutor6/tutor-fe-sub002/internal/api"
)

// VerificationStep drives the six-digit code entry for one pending
// verification: it owns the input buffer and the resend countdown, and
// sequences send/verify calls against the verification endpoints.
type VerificationStep struct {
	verification domain.VerificationAPI

	userID      string
	userType    domain.UserType
	destination string

	buffer   *CodeBuffer
	cooldown *Countdown

	// onSuccess is awaited before the step exits; it may perform a
	// further network round trip (login replay or complete-registration).
	onSuccess           func(ctx context.Context) error
	onChangeDestination func()
}

// StepOption adjusts a VerificationStep at construction time.
type StepOption func(*VerificationStep)

// WithTick overrides the countdown tick interval. Tests use this.
func WithTick(tick time.Duration) StepOption {
	return func(s *VerificationStep) {
		s.cooldown = NewCountdownWithTick(tick)
	}
}

// NewVerificationStep wires a step for a (userId, userType, destination)
// tuple. The success callback is invoked, and awaited, after the server
// accepts the code; the change-destination callback returns the user to
// the editable form.
func NewVerificationStep(
	verification domain.VerificationAPI,
	pending *domain.PendingVerification,
	onSuccess func(ctx context.Context) error,
	onChangeDestination func(),
	opts ...StepOption,
) *VerificationStep {
	s := &VerificationStep{
		verification:        verification,
		userID:              pending.UserID,
		userType:            pending.UserType,
		destination:         pending.Destination,
		buffer:              NewCodeBuffer(),
		cooldown:            NewCountdown(),
		onSuccess:           onSuccess,
		onChangeDestination: onChangeDestination,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Buffer exposes the input buffer for keystroke handling.
func (s *VerificationStep) Buffer() *CodeBuffer {
	return s.buffer
}

// Cooldown exposes the resend countdown.
func (s *VerificationStep) Cooldown() *Countdown {
	return s.cooldown
}

// CanResend reports whether a send is currently allowed.
func (s *VerificationStep) CanResend() bool {
	return !s.cooldown.Active()
}

// SendCode requests a fresh code for the destination. It refuses to run
// without a destination or while the cooldown is positive, and seeds the
// countdown from the response, falling back to a cooldown parsed out of
// the error text so a throttled user is not invited to retry at once.
func (s *VerificationStep) SendCode(ctx context.Context) error {
	if s.destination == "" {
		return domain.ErrDestinationMissing
	}
	if s.cooldown.Active() {
		return domain.ErrCooldownActive
	}

	result, err := s.verification.SendCode(ctx, s.userID, s.userType, s.destination)
	if err != nil {
		if seconds, ok := api.CooldownFromError(err); ok {
			s.cooldown.Reset(seconds)
		}
		return err
	}

	seconds := result.CooldownSeconds
	if seconds <= 0 {
		seconds = DefaultCooldownSeconds
	}
	s.cooldown.Reset(seconds)
	return nil
}

// VerifyCode submits the buffered code. A buffer short of six digits
// fails fast with no network call; a server rejection clears the buffer
// and returns focus to the first slot. On acceptance the success
// callback runs to completion before the step is considered done.
func (s *VerificationStep) VerifyCode(ctx context.Context) error {
	if !s.buffer.Complete() {
		return domain.ErrCodeIncomplete
	}

	if err := s.verification.VerifyCode(ctx, s.userID, s.userType, s.destination, s.buffer.Code()); err != nil {
		s.buffer.Clear()
		return err
	}

	if s.onSuccess != nil {
		if err := s.onSuccess(ctx); err != nil {
			return err
		}
	}
	s.cooldown.Stop()
	return nil
}

// Status asks the backend for the current verification state, used to
// seed the countdown when the step mounts mid-flow.
func (s *VerificationStep) Status(ctx context.Context) (*domain.OTPStatus, error) {
	return s.verification.Status(ctx, s.userID, s.userType, s.destination)
}

// ChangeDestination abandons this verification and hands control back
// to the form.
func (s *VerificationStep) ChangeDestination() {
	s.cooldown.Stop()
	if s.onChangeDestination != nil {
		s.onChangeDestination()
	}
}

// Close tears down the countdown. Call on unmount.
func (s *VerificationStep) Close() {
	s.cooldown.Stop()
}
