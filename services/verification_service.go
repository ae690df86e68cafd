package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/nabilnabti/tapeat-sub001/entity"
	"github.com/nabilnabti/tapeat-sub001/pkg/mailer"
	"github.com/nabilnabti/tapeat-sub001/repository"
)

// Distinct failure classes surfaced to the verification UI.
var (
	ErrCodeNotFound = errors.New("verification code not found")
	ErrCodeExpired  = errors.New("verification code expired")
	ErrCodeMismatch = errors.New("verification code mismatch")
)

const codeTTL = 10 * time.Minute

type VerificationService struct {
	Repo     *repository.VerificationRepository
	UserRepo *repository.UserRepository
	Mailer   mailer.Sender
}

func NewVerificationService(repo *repository.VerificationRepository, userRepo *repository.UserRepository, sender mailer.Sender) *VerificationService {
	return &VerificationService{Repo: repo, UserRepo: userRepo, Mailer: sender}
}

// newCode returns a 6-digit numeric code, left-padded with zeros.
func newCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// RequestCode stores a fresh code for the email (replacing any previous one)
// and sends it over SMTP.
func (s *VerificationService) RequestCode(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errors.New("email is required")
	}

	code, err := newCode()
	if err != nil {
		return err
	}

	vc := &entity.VerificationCode{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(codeTTL),
	}
	if err := s.Repo.Upsert(vc); err != nil {
		return err
	}

	return s.Mailer.SendVerificationCode(email, code)
}

// VerifyCode checks the submitted code. An expired code fails and is kept in
// place; only a successful match deletes the row and marks the user verified.
func (s *VerificationService) VerifyCode(email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	vc, err := s.Repo.FindByEmail(email)
	if err != nil {
		return ErrCodeNotFound
	}
	if time.Now().After(vc.ExpiresAt) {
		return ErrCodeExpired
	}
	if vc.Code != strings.TrimSpace(code) {
		return ErrCodeMismatch
	}

	if err := s.Repo.DeleteByEmail(email); err != nil {
		return err
	}
	return s.UserRepo.MarkVerified(email)
}
