package flow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/funnytutor6/tutor-fe-sub002/domain"
	"github.com/funnytutor6/tutor-fe-sub002/internal/mocks"
	"github.com/funnytutor6/tutor-fe-sub002/internal/session"
)

func validDraft() *domain.ProfileDraft {
	draft := &domain.ProfileDraft{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "secret123",
		Country:  "India",
	}
	draft.SetCountryCode("+91")
	draft.SetNationalNumber("1234567890")
	return draft
}

func challengeLogin(userID string) func(ctx context.Context, userType domain.UserType, email, password string) (*domain.AuthResult, *domain.LoginChallenge, error) {
	return func(ctx context.Context, userType domain.UserType, email, password string) (*domain.AuthResult, *domain.LoginChallenge, error) {
		return nil, &domain.LoginChallenge{
			UserID:      userID,
			UserType:    userType,
			PhoneNumber: "+911234567890",
		}, nil
	}
}

func TestOrchestrator_LoginSuccessPersistsSession(t *testing.T) {
	auth := mocks.NewMockAuthAPI()
	verification := mocks.NewMockVerificationAPI()
	sessions := session.NewStore()
	o := NewOrchestrator(domain.UserTypeStudent, auth, verification, sessions)

	sess, err := o.SubmitLogin(context.Background(), "asha@example.com", "secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess == nil {
		t.Fatal("expected a session")
	}
	if o.Phase() != PhaseAuthenticated {
		t.Errorf("expected authenticated phase, got %s", o.Phase())
	}
	stored, ok := sessions.Current()
	if !ok || stored.Token != "test-token" {
		t.Errorf("session not persisted: %v %v", stored, ok)
	}
	if verification.SendCodeCalls != 0 {
		t.Errorf("expected no code sends on direct login, got %d", verification.SendCodeCalls)
	}
}

func TestOrchestrator_LoginChallengeSendsExactlyOneCode(t *testing.T) {
	auth := mocks.NewMockAuthAPI()
	auth.LoginFunc = challengeLogin("S1")
	verification := mocks.NewMockVerificationAPI()
	sessions := session.NewStore()
	o := NewOrchestrator(domain.UserTypeStudent, auth, verification, sessions)

	sess, err := o.SubmitLogin(context.Background(), "asha@example.com", "secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess != nil {
		t.Error("challenge must not produce a session")
	}
	if o.Phase() != PhaseAwaitingVerification {
		t.Errorf("expected awaiting verification, got %s", o.Phase())
	}
	if verification.SendCodeCalls != 1 {
		t.Errorf("expected exactly one code send, got %d", verification.SendCodeCalls)
	}
	if _, ok := sessions.Current(); ok {
		t.Error("no session may exist while verification is pending")
	}

	pending, ok := o.Pending()
	if !ok {
		t.Fatal("expected pending verification")
	}
	if pending.UserID != "S1" || pending.Destination != "+911234567890" {
		t.Errorf("wrong pending verification: %+v", pending)
	}
	if pending.PendingLogin == nil || pending.PendingLogin.Password != "secret123" {
		t.Error("login credentials not stored for replay")
	}
}

func TestOrchestrator_LoginChallengeSendFailureStaysAwaiting(t *testing.T) {
	auth := mocks.NewMockAuthAPI()
	auth.LoginFunc = challengeLogin("S1")
	verification := mocks.NewMockVerificationAPI()
	verification.SendCodeFunc = func(ctx context.Context, userID string, userType domain.UserType, destination string) (*domain.SendResult, error) {
		return nil, errors.New("sms gateway down")
	}
	o := NewOrchestrator(domain.UserTypeStudent, auth, verification, session.NewStore())

	_, err := o.SubmitLogin(context.Background(), "asha@example.com", "secret123")
	if err == nil {
		t.Fatal("expected send error to surface")
	}
	if o.Phase() != PhaseAwaitingVerification {
		t.Errorf("send failure must leave the flow awaiting verification, got %s", o.Phase())
	}
}

func TestOrchestrator_VerificationSuccessReplaysStoredLogin(t *testing.T) {
	auth := mocks.NewMockAuthAPI()
	verified := false
	auth.LoginFunc = func(ctx context.Context, userType domain.UserType, email, password string) (*domain.AuthResult, *domain.LoginChallenge, error) {
		if !verified {
			return nil, &domain.LoginChallenge{UserID: "S1", UserType: userType, PhoneNumber: "+911234567890"}, nil
		}
		return &domain.AuthResult{
			User:  &domain.User{ID: "S1", Email: email},
			Role:  userType,
			Token: "replayed-token",
		}, nil, nil
	}
	verification := mocks.NewMockVerificationAPI()
	sessions := session.NewStore()
	o := NewOrchestrator(domain.UserTypeStudent, auth, verification, sessions)

	if _, err := o.SubmitLogin(context.Background(), "asha@example.com", "secret123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	verified = true

	sess, err := o.OnVerificationSuccess(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Token != "replayed-token" {
		t.Errorf("expected replayed login token, got %q", sess.Token)
	}
	if o.Phase() != PhaseAuthenticated {
		t.Errorf("expected authenticated phase, got %s", o.Phase())
	}

	// Replay must reuse the submitted credentials verbatim.
	if len(auth.LoginCalls) != 2 {
		t.Fatalf("expected two login calls, got %d", len(auth.LoginCalls))
	}
	first, second := auth.LoginCalls[0], auth.LoginCalls[1]
	if first != second {
		t.Errorf("replay used different credentials: %+v vs %+v", first, second)
	}
	if len(auth.CompleteRegistrationCalls) != 0 {
		t.Error("login replay must not call complete-registration")
	}
}

func TestOrchestrator_VerificationSuccessCompletesRegistration(t *testing.T) {
	auth := mocks.NewMockAuthAPI()
	auth.RegisterFunc = func(ctx context.Context, userType domain.UserType, draft *domain.ProfileDraft) (*domain.AuthResult, *domain.LoginChallenge, error) {
		return nil, &domain.LoginChallenge{UserID: "S9", PhoneNumber: draft.PhoneNumber}, nil
	}
	verification := mocks.NewMockVerificationAPI()
	sessions := session.NewStore()
	o := NewOrchestrator(domain.UserTypeStudent, auth, verification, sessions)

	sess, err := o.SubmitRegistration(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess != nil {
		t.Error("challenge must not produce a session")
	}
	if verification.SendCodeCalls != 0 {
		t.Errorf("registration challenge must not auto-send, got %d sends", verification.SendCodeCalls)
	}

	sess, err = o.OnVerificationSuccess(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess == nil {
		t.Fatal("expected a session")
	}
	if len(auth.CompleteRegistrationCalls) != 1 || auth.CompleteRegistrationCalls[0] != "S9" {
		t.Errorf("expected complete-registration for S9, got %v", auth.CompleteRegistrationCalls)
	}
	if len(auth.LoginCalls) != 0 {
		t.Error("registration completion must not replay a login")
	}
}

func TestOrchestrator_VerificationCompletionFailureStaysAwaiting(t *testing.T) {
	auth := mocks.NewMockAuthAPI()
	auth.RegisterFunc = func(ctx context.Context, userType domain.UserType, draft *domain.ProfileDraft) (*domain.AuthResult, *domain.LoginChallenge, error) {
		return nil, &domain.LoginChallenge{UserID: "S9", PhoneNumber: draft.PhoneNumber}, nil
	}
	auth.CompleteRegistrationFunc = func(ctx context.Context, userType domain.UserType, userID string) (*domain.AuthResult, error) {
		return nil, errors.New("backend unavailable")
	}
	sessions := session.NewStore()
	o := NewOrchestrator(domain.UserTypeStudent, auth, mocks.NewMockVerificationAPI(), sessions)

	if _, err := o.SubmitRegistration(context.Background(), validDraft()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := o.OnVerificationSuccess(context.Background()); err == nil {
		t.Fatal("expected completion failure to surface")
	}
	if o.Phase() != PhaseAwaitingVerification {
		t.Errorf("failed completion must leave flow awaiting verification, got %s", o.Phase())
	}
	if _, ok := sessions.Current(); ok {
		t.Error("no session may exist after failed completion")
	}
}

func TestOrchestrator_RegistrationValidatesBeforeNetwork(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.ProfileDraft)
		wantErr error
	}{
		{"missing name", func(d *domain.ProfileDraft) { d.Name = "" }, domain.ErrMissingRequiredField},
		{"missing email", func(d *domain.ProfileDraft) { d.Email = "" }, domain.ErrMissingRequiredField},
		{"missing password", func(d *domain.ProfileDraft) { d.Password = "" }, domain.ErrMissingRequiredField},
		{"missing country", func(d *domain.ProfileDraft) { d.Country = "" }, domain.ErrMissingRequiredField},
		{"bare country code", func(d *domain.ProfileDraft) { d.SetNationalNumber("") }, domain.ErrPhoneIncomplete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := mocks.NewMockAuthAPI()
			o := NewOrchestrator(domain.UserTypeTeacher, auth, mocks.NewMockVerificationAPI(), session.NewStore())

			draft := validDraft()
			tt.mutate(draft)

			_, err := o.SubmitRegistration(context.Background(), draft)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if auth.RegisterCalls != 0 {
				t.Errorf("invalid draft must not reach the network, got %d calls", auth.RegisterCalls)
			}
			if o.Phase() != PhaseEditing {
				t.Errorf("expected editing phase, got %s", o.Phase())
			}
		})
	}
}

func TestOrchestrator_ConcurrentSubmitRejected(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	auth := mocks.NewMockAuthAPI()
	auth.LoginFunc = func(ctx context.Context, userType domain.UserType, email, password string) (*domain.AuthResult, *domain.LoginChallenge, error) {
		close(entered)
		<-release
		return &domain.AuthResult{User: &domain.User{ID: "U1"}, Role: userType, Token: "t"}, nil, nil
	}
	o := NewOrchestrator(domain.UserTypeStudent, auth, mocks.NewMockVerificationAPI(), session.NewStore())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := o.SubmitLogin(context.Background(), "a@x.com", "pw"); err != nil {
			t.Errorf("first submit failed: %v", err)
		}
	}()

	<-entered
	_, err := o.SubmitLogin(context.Background(), "a@x.com", "pw")
	if !errors.Is(err, domain.ErrSubmitInFlight) {
		t.Errorf("expected ErrSubmitInFlight, got %v", err)
	}
	close(release)
	wg.Wait()

	if len(auth.LoginCalls) != 1 {
		t.Errorf("expected a single login call, got %d", len(auth.LoginCalls))
	}
}

func TestOrchestrator_ChangeDestinationReturnsToEditing(t *testing.T) {
	auth := mocks.NewMockAuthAPI()
	auth.LoginFunc = challengeLogin("S1")
	o := NewOrchestrator(domain.UserTypeStudent, auth, mocks.NewMockVerificationAPI(), session.NewStore())

	if _, err := o.SubmitLogin(context.Background(), "asha@example.com", "secret123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	o.OnChangeDestination()
	if o.Phase() != PhaseEditing {
		t.Errorf("expected editing phase, got %s", o.Phase())
	}
	if _, ok := o.Pending(); ok {
		t.Error("pending verification should be discarded")
	}
}

func TestOrchestrator_VerificationStepDrivesCompletion(t *testing.T) {
	auth := mocks.NewMockAuthAPI()
	auth.RegisterFunc = func(ctx context.Context, userType domain.UserType, draft *domain.ProfileDraft) (*domain.AuthResult, *domain.LoginChallenge, error) {
		return nil, &domain.LoginChallenge{UserID: "S9", PhoneNumber: draft.PhoneNumber}, nil
	}
	verification := mocks.NewMockVerificationAPI()
	sessions := session.NewStore()
	o := NewOrchestrator(domain.UserTypeStudent, auth, verification, sessions)

	if _, err := o.SubmitRegistration(context.Background(), validDraft()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doneSess *domain.Session
	var doneErr error
	step, err := o.VerificationStep(func(sess *domain.Session, err error) {
		doneSess, doneErr = sess, err
	}, WithTick(time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer step.Close()

	if err := step.SendCode(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	step.Buffer().Paste("123456")
	if err := step.VerifyCode(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doneErr != nil {
		t.Fatalf("completion callback got error: %v", doneErr)
	}
	if doneSess == nil {
		t.Fatal("completion callback got no session")
	}
	if o.Phase() != PhaseAuthenticated {
		t.Errorf("expected authenticated phase, got %s", o.Phase())
	}
	stored, ok := sessions.Current()
	if !ok || stored.UserID != "S9" {
		t.Errorf("session not persisted: %v %v", stored, ok)
	}
}
