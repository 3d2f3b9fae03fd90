package devserver

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/funnytutor6/tutor-fe-sub002/domain"
)

// Account is the gorm model behind students, teachers and admins.
type Account struct {
	ID              string `gorm:"primaryKey"`
	UserType        string `gorm:"index:idx_accounts_type_email,unique"`
	Email           string `gorm:"index:idx_accounts_type_email,unique"`
	Name            string
	PasswordHash    string `gorm:"column:password"`
	PhoneNumber     string
	Country         string
	CityOrTown      string
	ProfilePhotoURL string
	Approved        bool
	PhoneVerified   bool
	Completed       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PostRecord is the gorm model behind tutoring listings.
type PostRecord struct {
	ID          string `gorm:"primaryKey"`
	OwnerID     string `gorm:"index"`
	OwnerType   string
	Title       string
	Subject     string
	Description string
	HourlyRate  float64
	Location    string
	Approved    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Store wraps the sqlite database used by the reference server.
type Store struct {
	db *gorm.DB
}

// OpenStore opens (or creates) the sqlite database and migrates the
// schema. Use ":memory:" for tests.
func OpenStore(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.AutoMigrate(&Account{}, &PostRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) toUser(a *Account) *domain.User {
	return &domain.User{
		ID:              a.ID,
		Name:            a.Name,
		Email:           a.Email,
		PhoneNumber:     a.PhoneNumber,
		Country:         a.Country,
		CityOrTown:      a.CityOrTown,
		ProfilePhotoURL: a.ProfilePhotoURL,
		Approved:        a.Approved,
		PhoneVerified:   a.PhoneVerified,
	}
}

// CreateAccount inserts a new account with a generated id.
func (s *Store) CreateAccount(a *Account) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if err := s.db.Create(a).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return domain.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

// FindAccountByEmail looks up one account within a user type.
func (s *Store) FindAccountByEmail(userType, email string) (*Account, error) {
	var a Account
	err := s.db.Where("user_type = ? AND email = ?", userType, email).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// FindAccountByID looks up one account within a user type.
func (s *Store) FindAccountByID(userType, id string) (*Account, error) {
	var a Account
	err := s.db.Where("user_type = ? AND id = ?", userType, id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// MarkPhoneVerified flips the verified flag. Idempotent.
func (s *Store) MarkPhoneVerified(id string) error {
	return s.db.Model(&Account{}).Where("id = ?", id).Update("phone_verified", true).Error
}

// MarkCompleted finalizes a registration.
func (s *Store) MarkCompleted(id string) error {
	return s.db.Model(&Account{}).Where("id = ?", id).Update("completed", true).Error
}

// UpdatePassword replaces an account's password hash.
func (s *Store) UpdatePassword(id, hash string) error {
	return s.db.Model(&Account{}).Where("id = ?", id).Update("password", hash).Error
}

// ApproveTeacher marks a teacher as approved for the marketplace.
func (s *Store) ApproveTeacher(id string) error {
	res := s.db.Model(&Account{}).
		Where("id = ? AND user_type = ?", id, string(domain.UserTypeTeacher)).
		Update("approved", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ListAccounts returns one page of accounts of a user type, optionally
// filtered by a case-insensitive name/email search.
func (s *Store) ListAccounts(userType string, req domain.PageRequest) (*domain.UserPage, error) {
	page, limit := normalizePage(req)

	q := s.db.Model(&Account{}).Where("user_type = ?", userType)
	if req.Search != "" {
		like := "%" + strings.ToLower(req.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var accounts []Account
	if err := q.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&accounts).Error; err != nil {
		return nil, err
	}

	items := make([]domain.User, 0, len(accounts))
	for i := range accounts {
		items = append(items, *s.toUser(&accounts[i]))
	}
	return &domain.UserPage{Items: items, Total: int(total), Page: page, Limit: limit}, nil
}

// CountAccounts counts accounts of a user type, optionally only the
// unapproved ones.
func (s *Store) CountAccounts(userType string, pendingOnly bool) (int, error) {
	q := s.db.Model(&Account{}).Where("user_type = ?", userType)
	if pendingOnly {
		q = q.Where("approved = ?", false)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, err
	}
	return int(total), nil
}

// SignupsByDay buckets account creation over the trailing week.
func (s *Store) SignupsByDay(days int) ([]domain.AnalyticsPoint, error) {
	since := time.Now().AddDate(0, 0, -days+1).Truncate(24 * time.Hour)

	var accounts []Account
	if err := s.db.Where("created_at >= ?", since).Find(&accounts).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for i := range accounts {
		counts[accounts[i].CreatedAt.Format("2006-01-02")]++
	}

	points := make([]domain.AnalyticsPoint, 0, days)
	for d := 0; d < days; d++ {
		day := since.AddDate(0, 0, d).Format("2006-01-02")
		points = append(points, domain.AnalyticsPoint{Day: day, Count: counts[day]})
	}
	return points, nil
}

// CreatePost inserts a listing with a generated id.
func (s *Store) CreatePost(p *PostRecord) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return s.db.Create(p).Error
}

// FindPost looks up one listing.
func (s *Store) FindPost(id string) (*PostRecord, error) {
	var p PostRecord
	err := s.db.Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, gorm.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePost replaces the editable fields of a listing.
func (s *Store) UpdatePost(p *PostRecord) error {
	return s.db.Model(&PostRecord{}).Where("id = ?", p.ID).Updates(map[string]any{
		"title":       p.Title,
		"subject":     p.Subject,
		"description": p.Description,
		"hourly_rate": p.HourlyRate,
		"location":    p.Location,
	}).Error
}

// DeletePost removes a listing.
func (s *Store) DeletePost(id string) error {
	return s.db.Delete(&PostRecord{}, "id = ?", id).Error
}

// ListPosts returns one page of listings, optionally filtered by a
// title/subject search.
func (s *Store) ListPosts(req domain.PageRequest) (*domain.PostPage, error) {
	page, limit := normalizePage(req)

	q := s.db.Model(&PostRecord{})
	if req.Search != "" {
		like := "%" + strings.ToLower(req.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(subject) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var records []PostRecord
	if err := q.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&records).Error; err != nil {
		return nil, err
	}

	items := make([]domain.Post, 0, len(records))
	for i := range records {
		items = append(items, *toPost(&records[i]))
	}
	return &domain.PostPage{Items: items, Total: int(total), Page: page, Limit: limit}, nil
}

// CountPosts counts all listings.
func (s *Store) CountPosts() (int, error) {
	var total int64
	if err := s.db.Model(&PostRecord{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return int(total), nil
}

func toPost(p *PostRecord) *domain.Post {
	return &domain.Post{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		OwnerType:   p.OwnerType,
		Title:       p.Title,
		Subject:     p.Subject,
		Description: p.Description,
		HourlyRate:  p.HourlyRate,
		Location:    p.Location,
		Approved:    p.Approved,
	}
}

func normalizePage(req domain.PageRequest) (page, limit int) {
	page, limit = req.Page, req.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
