package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/funnytutor6/tutor-fe-sub002/domain"
	"github.com/funnytutor6/tutor-fe-sub002/internal/api"
	"github.com/funnytutor6/tutor-fe-sub002/internal/config"
	"github.com/funnytutor6/tutor-fe-sub002/internal/flow"
	"github.com/funnytutor6/tutor-fe-sub002/internal/session"
)

const usage = `tutorctl — tutoring marketplace client

Usage:
  tutorctl login -type student|teacher|admin -email ... -password ...
  tutorctl register -type student|teacher
  tutorctl reset-password -type student|teacher -email ...
  tutorctl upload -file photo.png [-folder profiles]
  tutorctl posts [list|create|delete] ...
  tutorctl admin [students|teachers|approve|analytics] ...
`

type app struct {
	client   *api.Client
	sessions *session.Store
	stdin    *bufio.Reader
	folder   string
}

func main() {
	log.SetFlags(0)

	cfg, err := config.Load("config/config.yml")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	sessions := session.NewStore()
	a := &app{
		client:   api.New(cfg.BaseURL, sessions),
		sessions: sessions,
		stdin:    bufio.NewReader(os.Stdin),
		folder:   cfg.UploadFolder,
	}

	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(2)
	}

	ctx := context.Background()
	switch os.Args[1] {
	case "login":
		err = a.runLogin(ctx, os.Args[2:])
	case "register":
		err = a.runRegister(ctx, os.Args[2:])
	case "reset-password":
		err = a.runResetPassword(ctx, os.Args[2:])
	case "upload":
		err = a.runUpload(ctx, os.Args[2:])
	case "posts":
		err = a.runPosts(ctx, os.Args[2:])
	case "admin":
		err = a.runAdmin(ctx, os.Args[2:])
	default:
		fmt.Print(usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("error: %v", err)
	}
}

func (a *app) prompt(label string) string {
	fmt.Printf("%s: ", label)
	line, _ := a.stdin.ReadString('\n')
	return strings.TrimSpace(line)
}

// runVerification drives the six-digit entry loop until the flow
// finishes or the user backs out. initialSend requests the first code;
// the login path skips it because the orchestrator already sent one.
func (a *app) runVerification(ctx context.Context, o *flow.Orchestrator, initialSend bool) (*domain.Session, error) {
	var done *domain.Session
	step, err := o.VerificationStep(func(sess *domain.Session, err error) {
		done = sess
	})
	if err != nil {
		return nil, err
	}
	defer step.Close()

	pending, _ := o.Pending()
	if initialSend {
		if err := step.SendCode(ctx); err != nil {
			fmt.Printf("send failed: %v\n", err)
		}
	}
	fmt.Printf("A verification code was sent to %s.\n", pending.Destination)

	for {
		input := a.prompt("Enter 6-digit code (r = resend, c = change destination)")
		switch input {
		case "r":
			if err := step.SendCode(ctx); err != nil {
				fmt.Printf("resend failed: %v (wait %ds)\n", err, step.Cooldown().Remaining())
			} else {
				fmt.Println("code sent")
			}
			continue
		case "c":
			step.ChangeDestination()
			return nil, fmt.Errorf("verification cancelled")
		}

		step.Buffer().Paste(input)
		if err := step.VerifyCode(ctx); err != nil {
			fmt.Printf("verification failed: %v\n", err)
			continue
		}
		return done, nil
	}
}

// ensureSession logs the user in before commands that hit
// authenticated endpoints. tutorctl is single-invocation, so there is
// no token cache to fall back on.
func (a *app) ensureSession(ctx context.Context, userType string) error {
	if _, ok := a.sessions.Current(); ok {
		return nil
	}

	fmt.Println("login required")
	if userType == "" {
		userType = a.prompt("Account type (student/teacher/admin)")
	}
	email := a.prompt("Email")
	password := a.prompt("Password")
	if email == "" || password == "" {
		return domain.ErrSessionMissing
	}

	o := flow.NewOrchestrator(domain.UserType(userType), a.client, a.client, a.sessions)
	_, err := o.SubmitLogin(ctx, email, password)
	if err != nil && o.Phase() != flow.PhaseAwaitingVerification {
		return err
	}
	if o.Phase() == flow.PhaseAwaitingVerification {
		if err != nil {
			fmt.Printf("code send failed: %v\n", err)
		}
		if _, err := a.runVerification(ctx, o, false); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	userType := fs.String("type", "student", "student, teacher or admin")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	if *email == "" {
		*email = a.prompt("Email")
	}
	if *password == "" {
		*password = a.prompt("Password")
	}

	o := flow.NewOrchestrator(domain.UserType(*userType), a.client, a.client, a.sessions)
	sess, err := o.SubmitLogin(ctx, *email, *password)
	if err != nil && o.Phase() != flow.PhaseAwaitingVerification {
		return err
	}

	if o.Phase() == flow.PhaseAwaitingVerification {
		if err != nil {
			// The initial send failed; the resend affordance still works.
			fmt.Printf("code send failed: %v\n", err)
		}
		if sess, err = a.runVerification(ctx, o, false); err != nil {
			return err
		}
	}
	fmt.Printf("logged in as %s (%s)\n", sess.Email, sess.Role)
	return nil
}

func (a *app) runRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	userType := fs.String("type", "student", "student or teacher")
	fs.Parse(args)

	draft := &domain.ProfileDraft{}
	draft.Name = a.prompt("Name")
	draft.Email = a.prompt("Email")
	draft.Password = a.prompt("Password")
	if a.prompt("Confirm password") != draft.Password {
		return domain.ErrPasswordMismatch
	}
	draft.SetCountryCode(a.prompt("Country code (e.g. +91)"))
	draft.SetNationalNumber(a.prompt("Phone number (without country code)"))
	draft.Country = a.prompt("Country")
	draft.CityOrTown = a.prompt("City or town")

	o := flow.NewOrchestrator(domain.UserType(*userType), a.client, a.client, a.sessions)
	sess, err := o.SubmitRegistration(ctx, draft)
	if err != nil {
		return err
	}

	if o.Phase() == flow.PhaseAwaitingVerification {
		// Registration does not auto-send; request the first code here.
		if sess, err = a.runVerification(ctx, o, true); err != nil {
			return err
		}
	}
	fmt.Printf("registered and logged in as %s (%s)\n", sess.Email, sess.Role)
	return nil
}

func (a *app) runResetPassword(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reset-password", flag.ExitOnError)
	userType := fs.String("type", "student", "student or teacher")
	email := fs.String("email", "", "account email")
	fs.Parse(args)

	if *email == "" {
		*email = a.prompt("Email")
	}

	result, err := a.client.ForgotPassword(ctx, *email, domain.UserType(*userType))
	if err != nil {
		if seconds, ok := api.CooldownFromError(err); ok {
			return fmt.Errorf("wait %d seconds before requesting another code", seconds)
		}
		return err
	}
	fmt.Printf("reset code sent (valid resend in %ds)\n", result.CooldownSeconds)

	code := a.prompt("Code")
	newPassword := a.prompt("New password")
	if err := a.client.ResetPassword(ctx, *email, domain.UserType(*userType), code, newPassword); err != nil {
		return err
	}
	fmt.Println("password updated")
	return nil
}

func (a *app) runUpload(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	file := fs.String("file", "", "image file to upload")
	folder := fs.String("folder", a.folder, "destination folder")
	fs.Parse(args)

	if *file == "" {
		return fmt.Errorf("missing -file")
	}
	if err := a.ensureSession(ctx, ""); err != nil {
		return err
	}

	f, err := os.Open(*file)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	result, err := a.client.UploadImage(ctx, *file, f, info.Size(), *folder)
	if err != nil {
		return err
	}
	fmt.Printf("uploaded: %s (public id %s)\n", result.URL, result.PublicID)
	return nil
}

func (a *app) runPosts(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	if err := a.ensureSession(ctx, ""); err != nil {
		return err
	}
	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("posts list", flag.ExitOnError)
		page := fs.Int("page", 1, "page number")
		search := fs.String("search", "", "title/subject search")
		fs.Parse(args[1:])

		result, err := a.client.ListPosts(ctx, domain.PageRequest{Page: *page, Limit: 20, Search: *search})
		if err != nil {
			return err
		}
		for _, p := range result.Items {
			fmt.Printf("%s  %-30s %-15s %.0f/h  %s\n", p.ID, p.Title, p.Subject, p.HourlyRate, p.Location)
		}
		fmt.Printf("page %d of %d items\n", result.Page, result.Total)
		return nil
	case "create":
		draft := &domain.PostDraft{
			Title:       a.prompt("Title"),
			Subject:     a.prompt("Subject"),
			Description: a.prompt("Description"),
			Location:    a.prompt("Location"),
		}
		if rate, err := strconv.ParseFloat(a.prompt("Hourly rate"), 64); err == nil {
			draft.HourlyRate = rate
		}
		post, err := a.client.CreatePost(ctx, draft)
		if err != nil {
			return err
		}
		fmt.Printf("created post %s\n", post.ID)
		return nil
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: posts delete <id>")
		}
		return a.client.DeletePost(ctx, args[1])
	}
	return fmt.Errorf("unknown posts command %q", args[0])
}

func (a *app) runAdmin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: admin students|teachers|approve|analytics")
	}
	if err := a.ensureSession(ctx, "admin"); err != nil {
		return err
	}
	switch args[0] {
	case "students", "teachers":
		fs := flag.NewFlagSet("admin list", flag.ExitOnError)
		page := fs.Int("page", 1, "page number")
		search := fs.String("search", "", "name/email search")
		fs.Parse(args[1:])

		req := domain.PageRequest{Page: *page, Limit: 20, Search: *search}
		var result *domain.UserPage
		var err error
		if args[0] == "students" {
			result, err = a.client.ListStudents(ctx, req)
		} else {
			result, err = a.client.ListTeachers(ctx, req)
		}
		if err != nil {
			return err
		}
		for _, u := range result.Items {
			status := "pending"
			if u.Approved {
				status = "approved"
			}
			fmt.Printf("%s  %-25s %-30s %s\n", u.ID, u.Name, u.Email, status)
		}
		fmt.Printf("page %d of %d items\n", result.Page, result.Total)
		return nil
	case "approve":
		if len(args) < 2 {
			return fmt.Errorf("usage: admin approve <teacher-id>")
		}
		return a.client.ApproveTeacher(ctx, args[1])
	case "analytics":
		summary, err := a.client.Analytics(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("students: %d  teachers: %d (pending %d)  posts: %d\n",
			summary.TotalStudents, summary.TotalTeachers, summary.PendingTeachers, summary.TotalPosts)
		for _, p := range summary.SignupsByDay {
			fmt.Printf("%s  %s\n", p.Day, strings.Repeat("#", p.Count))
		}
		return nil
	}
	return fmt.Errorf("unknown admin command %q", args[0])
}
