package flow

import (
	"context"
	"fmt"
	"sync"

	"github.com/funnytutor6/tutor-fe-sub002/domain"
	"github.com/funnytutor6/tutor-fe-sub002/internal/session"
)

// Phase is the orchestrator's current state. Transitions happen only
// inside the submit and verification handlers, so each phase carries
// exactly the data that is legal for it.
type Phase int

const (
	// PhaseEditing is the resting state: the form is editable.
	PhaseEditing Phase = iota
	// PhaseSubmitting covers the window between an explicit submit and
	// its final handler; it is the only phase in which the submit
	// control is disabled.
	PhaseSubmitting
	// PhaseAwaitingVerification means the backend demanded OTP
	// verification; a PendingVerification is held.
	PhaseAwaitingVerification
	// PhaseAuthenticated means a Session was produced and persisted.
	PhaseAuthenticated
)

func (p Phase) String() string {
	switch p {
	case PhaseEditing:
		return "editing"
	case PhaseSubmitting:
		return "submitting"
	case PhaseAwaitingVerification:
		return "awaiting_verification"
	case PhaseAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// Orchestrator coordinates form submission, the verification branch and
// session creation for one user type. One instance per flow; no two
// submits may be in flight concurrently for the same instance.
type Orchestrator struct {
	mu       sync.Mutex
	phase    Phase
	pending  *domain.PendingVerification
	userType domain.UserType

	auth         domain.AuthAPI
	verification domain.VerificationAPI
	sessions     domain.SessionStore
}

// NewOrchestrator creates a registration/login orchestrator for the
// given user type. Admin flows use the same type; they simply never
// receive a verification challenge.
func NewOrchestrator(userType domain.UserType, auth domain.AuthAPI, verification domain.VerificationAPI, sessions domain.SessionStore) *Orchestrator {
	return &Orchestrator{
		phase:        PhaseEditing,
		userType:     userType,
		auth:         auth,
		verification: verification,
		sessions:     sessions,
	}
}

// Phase returns the current state.
func (o *Orchestrator) Phase() Phase {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phase
}

// Pending returns a copy of the held PendingVerification, if any.
func (o *Orchestrator) Pending() (*domain.PendingVerification, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.pending == nil {
		return nil, false
	}
	copied := *o.pending
	return &copied, true
}

// beginSubmit sets the submitting flag synchronously, before the first
// suspension point. The caller must pair it with endSubmit on every
// exit path.
func (o *Orchestrator) beginSubmit() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.phase == PhaseSubmitting {
		return domain.ErrSubmitInFlight
	}
	o.phase = PhaseSubmitting
	return nil
}

// endSubmit records the outcome of a submit. It runs on success and
// failure alike, so the submitting flag is always released.
func (o *Orchestrator) endSubmit(next Phase, pending *domain.PendingVerification) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.phase = next
	o.pending = pending
}

// SubmitLogin calls the login endpoint. A successful response yields a
// persisted Session. A requiresOTPVerification signal stores the
// credentials for replay, triggers exactly one code send, and moves the
// flow to AwaitingVerification without constructing a Session. Any
// other failure returns the flow to Editing with the error surfaced.
func (o *Orchestrator) SubmitLogin(ctx context.Context, email, password string) (*domain.Session, error) {
	if err := o.beginSubmit(); err != nil {
		return nil, err
	}

	result, challenge, err := o.auth.Login(ctx, o.userType, email, password)
	if err != nil {
		o.endSubmit(PhaseEditing, nil)
		return nil, err
	}

	if challenge != nil {
		pending := &domain.PendingVerification{
			UserID:      challenge.UserID,
			UserType:    challenge.UserType,
			Destination: challenge.PhoneNumber,
			PendingLogin: &domain.CredentialsDraft{
				Email:    email,
				Password: password,
			},
		}
		o.endSubmit(PhaseAwaitingVerification, pending)
		// Side effect of entering the verification step. A send failure
		// is non-fatal: the step's resend affordance remains usable.
		if _, sendErr := o.verification.SendCode(ctx, pending.UserID, pending.UserType, pending.Destination); sendErr != nil {
			return nil, sendErr
		}
		return nil, nil
	}

	sess := session.FromAuthResult(result)
	o.sessions.Set(sess)
	o.endSubmit(PhaseAuthenticated, nil)
	return sess, nil
}

// validateRegistration is the local fail-fast gate; it performs no
// network calls.
func validateRegistration(draft *domain.ProfileDraft) error {
	switch {
	case draft.Name == "":
		return fmt.Errorf("%w: name", domain.ErrMissingRequiredField)
	case draft.Email == "":
		return fmt.Errorf("%w: email", domain.ErrMissingRequiredField)
	case draft.Password == "":
		return fmt.Errorf("%w: password", domain.ErrMissingRequiredField)
	case draft.Country == "":
		return fmt.Errorf("%w: country", domain.ErrMissingRequiredField)
	case !draft.HasPhoneNumber():
		return domain.ErrPhoneIncomplete
	}
	return nil
}

// SubmitRegistration validates the draft locally, then calls the
// register endpoint. A requiresOTPVerification response stores the
// registration identifiers and moves to AwaitingVerification without a
// Session; the legacy path produces a Session directly.
func (o *Orchestrator) SubmitRegistration(ctx context.Context, draft *domain.ProfileDraft) (*domain.Session, error) {
	if err := validateRegistration(draft); err != nil {
		return nil, err
	}
	if err := o.beginSubmit(); err != nil {
		return nil, err
	}

	result, challenge, err := o.auth.Register(ctx, o.userType, draft)
	if err != nil {
		o.endSubmit(PhaseEditing, nil)
		return nil, err
	}

	if challenge != nil {
		pending := &domain.PendingVerification{
			UserID:      challenge.UserID,
			UserType:    o.userType,
			Destination: challenge.PhoneNumber,
		}
		o.endSubmit(PhaseAwaitingVerification, pending)
		return nil, nil
	}

	sess := session.FromAuthResult(result)
	o.sessions.Set(sess)
	o.endSubmit(PhaseAuthenticated, nil)
	return sess, nil
}

// OnVerificationSuccess finishes the flow after the server accepts the
// code. With stored login credentials it replays the identical login;
// otherwise it completes the registration keyed by the stored user id.
// Presence of stored credentials is the sole discriminator between the
// two branches. Success persists the Session and clears the pending
// verification; failure leaves the flow awaiting a fresh verification.
func (o *Orchestrator) OnVerificationSuccess(ctx context.Context) (*domain.Session, error) {
	o.mu.Lock()
	if o.phase != PhaseAwaitingVerification || o.pending == nil {
		o.mu.Unlock()
		return nil, fmt.Errorf("no verification in progress")
	}
	pending := *o.pending
	o.mu.Unlock()

	var result *domain.AuthResult
	var err error
	if pending.PendingLogin != nil {
		result, _, err = o.auth.Login(ctx, o.userType, pending.PendingLogin.Email, pending.PendingLogin.Password)
		if err == nil && result == nil {
			err = fmt.Errorf("login still requires verification")
		}
	} else {
		result, err = o.auth.CompleteRegistration(ctx, o.userType, pending.UserID)
	}
	if err != nil {
		return nil, err
	}

	sess := session.FromAuthResult(result)
	o.sessions.Set(sess)
	o.endSubmit(PhaseAuthenticated, nil)
	return sess, nil
}

// OnChangeDestination discards the pending verification and returns the
// user to the editable form; other draft fields are untouched because
// the orchestrator never owned them.
func (o *Orchestrator) OnChangeDestination() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending = nil
	o.phase = PhaseEditing
}

// VerificationStep builds the step component for the held pending
// verification, wiring its success continuation back into this
// orchestrator.
func (o *Orchestrator) VerificationStep(onDone func(*domain.Session, error), opts ...StepOption) (*VerificationStep, error) {
	pending, ok := o.Pending()
	if !ok {
		return nil, fmt.Errorf("no verification in progress")
	}
	onSuccess := func(ctx context.Context) error {
		sess, err := o.OnVerificationSuccess(ctx)
		if onDone != nil {
			onDone(sess, err)
		}
		return err
	}
	return NewVerificationStep(o.verification, pending, onSuccess, o.OnChangeDestination, opts...), nil
}
