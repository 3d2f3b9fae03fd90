package devserver

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/funnytutor6/tutor-fe-sub002/domain"
)

// OTPConfig tunes code generation and throttling.
type OTPConfig struct {
	Length       int
	TTL          time.Duration
	MaxAttempts  int
	ResendWindow time.Duration
}

// OTPService stores one-time codes in Redis with TTL-based expiry, an
// attempts cap, and a resend throttle per destination.
type OTPService struct {
	redisClient *redis.Client
	config      OTPConfig
}

// NewOTPService creates a Redis-backed OTP service.
func NewOTPService(redisClient *redis.Client, config OTPConfig) *OTPService {
	return &OTPService{redisClient: redisClient, config: config}
}

func otpKey(purpose, destination, userID string) string {
	return fmt.Sprintf("otp:%s:%s:%s", purpose, destination, userID)
}

func attemptsKey(purpose, destination, userID string) string {
	return fmt.Sprintf("otp:att:%s:%s:%s", purpose, destination, userID)
}

func resendKey(purpose, destination string) string {
	return fmt.Sprintf("otp:res:%s:%s", purpose, destination)
}

// Generate creates and stores a fresh code for a destination. The
// throttle error message deliberately carries the remaining seconds in
// "wait N seconds" form; clients parse it as a fallback.
func (s *OTPService) Generate(ctx context.Context, purpose, destination, userID string) (string, error) {
	canResend, waitTime, err := s.CanResend(ctx, purpose, destination)
	if err != nil {
		return "", err
	}
	if !canResend {
		return "", fmt.Errorf("please wait %d seconds before requesting a new code", waitTime)
	}

	code, err := s.generateSecureCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}

	if err := s.redisClient.Set(ctx, otpKey(purpose, destination, userID), code, s.config.TTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store code: %w", err)
	}
	if err := s.redisClient.Set(ctx, attemptsKey(purpose, destination, userID), 0, s.config.TTL).Err(); err != nil {
		return "", fmt.Errorf("failed to initialize attempts counter: %w", err)
	}
	if err := s.redisClient.Set(ctx, resendKey(purpose, destination), 1, s.config.ResendWindow).Err(); err != nil {
		return "", fmt.Errorf("failed to set resend throttle: %w", err)
	}

	return code, nil
}

// Verify checks a submitted code, consuming it on success and counting
// the attempt otherwise.
func (s *OTPService) Verify(ctx context.Context, purpose, destination, userID, code string) error {
	oKey := otpKey(purpose, destination, userID)
	aKey := attemptsKey(purpose, destination, userID)

	attempts, err := s.redisClient.Incr(ctx, aKey).Result()
	if err != nil {
		return fmt.Errorf("failed to increment attempts: %w", err)
	}
	if attempts > int64(s.config.MaxAttempts) {
		s.redisClient.Del(ctx, oKey, aKey)
		return domain.ErrOTPMaxAttempts
	}

	stored, err := s.redisClient.Get(ctx, oKey).Result()
	if err == redis.Nil {
		return domain.ErrOTPNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read stored code: %w", err)
	}

	if stored != code {
		return domain.ErrOTPInvalid
	}

	s.redisClient.Del(ctx, oKey, aKey)
	return nil
}

// CanResend reports whether the resend throttle allows a new code, and
// how long to wait otherwise.
func (s *OTPService) CanResend(ctx context.Context, purpose, destination string) (bool, int64, error) {
	ttl, err := s.redisClient.TTL(ctx, resendKey(purpose, destination)).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check resend throttle: %w", err)
	}
	if ttl <= 0 {
		return true, 0, nil
	}
	return false, int64(ttl.Seconds()), nil
}

// HasActiveCode reports whether an unexpired code exists for the tuple.
func (s *OTPService) HasActiveCode(ctx context.Context, purpose, destination, userID string) (bool, error) {
	n, err := s.redisClient.Exists(ctx, otpKey(purpose, destination, userID)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *OTPService) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.Length)
	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}
	return string(digits), nil
}
