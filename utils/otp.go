// utils/otp.go
package utils

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	otpTTL         = 10 * time.Minute
	maxOTPAttempts = 5
)

// ErrOTPUnavailable is returned when Redis is not connected.
var ErrOTPUnavailable = errors.New("OTP service unavailable")

// GenerateSecureOTP returns a random 6-digit numeric code.
func GenerateSecureOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// StoreOTP saves an OTP for an email with a fixed expiry.
func StoreOTP(ctx context.Context, rdb *redis.Client, email, otp string) error {
	if rdb == nil {
		return ErrOTPUnavailable
	}
	return rdb.Set(ctx, "otp:"+email, otp, otpTTL).Err()
}

// VerifyOTP checks a submitted OTP against the stored one and deletes it
// on success so a code cannot be replayed.
func VerifyOTP(ctx context.Context, rdb *redis.Client, email, otp string) (bool, error) {
	if rdb == nil {
		return false, ErrOTPUnavailable
	}

	stored, err := rdb.Get(ctx, "otp:"+email).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if stored != otp {
		return false, nil
	}

	rdb.Del(ctx, "otp:"+email)
	rdb.Del(ctx, "otp_attempts:"+email)
	return true, nil
}

// ValidateOTPAttempts limits how many codes can be tried per hour.
func ValidateOTPAttempts(email string, rdb *redis.Client) error {
	if rdb == nil {
		return ErrOTPUnavailable
	}

	key := "otp_attempts:" + email
	attempts, err := rdb.Incr(context.Background(), key).Result()
	if err != nil {
		return err
	}

	// Set expiry if first attempt
	if attempts == 1 {
		rdb.Expire(context.Background(), key, 1*time.Hour)
	}

	if attempts > maxOTPAttempts {
		return errors.New("too many OTP attempts")
	}

	return nil
}
