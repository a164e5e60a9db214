package service

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/gomail.v2"

	"github.com/tradewell/storefront/config"
	"github.com/tradewell/storefront/internal/domain"
	"github.com/tradewell/storefront/internal/dto"
	"github.com/tradewell/storefront/internal/repository"
	"github.com/tradewell/storefront/pkg/errs"
	"github.com/tradewell/storefront/pkg/utils"
)

type UserServiceImpl struct {
	userRepo    repository.UserRepository
	mailBreaker *gobreaker.CircuitBreaker[[]byte]
	config      *config.Config
}

func CreateUserService(userRepo repository.UserRepository, mailBreaker *gobreaker.CircuitBreaker[[]byte], config *config.Config) UserService {
	return &UserServiceImpl{userRepo: userRepo, mailBreaker: mailBreaker, config: config}
}

func (s *UserServiceImpl) Register(ctx context.Context, req dto.UserRequest) (err error) {
	if req.Email == "" || req.Password == "" {
		return errs.ErrClient
	}

	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return
	}

	if !user.ID.IsZero() {
		return errs.ErrEmailAlreadyUsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = s.userRepo.AddUser(ctx, domain.User{
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: string(hash),
		Role:           domain.RoleUser,
		Phone:          req.Phone,
		CompanyName:    req.CompanyName,
		GSTNumber:      req.GSTNumber,
		Addresses:      []domain.Address{},
		CreatedAt:      now,
		UpdatedAt:      now,
	})

	return err
}

func (s *UserServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (resp dto.LoginResponse, err error) {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return
	}

	if user.ID.IsZero() {
		return resp, errs.ErrAccountNotFound
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Login").Msg("")
		return resp, errs.ErrInvalidCredentialsEmail
	}

	token, err := utils.CreateJWTToken(user.ID.Hex(), user.Name, user.Role, s.config.JWTSecret)
	if err != nil {
		return
	}

	resp.Token = token
	resp.UserID = user.ID.Hex()
	resp.Name = user.Name
	resp.Role = user.Role

	return resp, nil
}

// IssuePendingRegistrationToken turns an OAuth callback's identity into a
// short-lived signed claim handed back to the client, instead of stashing
// the pending registration in server-side session state.
func (s *UserServiceImpl) IssuePendingRegistrationToken(name string, email string, provider string) (token string, err error) {
	return utils.CreatePendingRegistrationToken(name, email, provider, s.config.JWTSecret)
}

func (s *UserServiceImpl) CompleteOAuthRegistration(ctx context.Context, req dto.CompleteOAuthRequest) (resp dto.LoginResponse, err error) {
	name, email, provider, err := utils.ParsePendingRegistrationToken(req.Token, s.config.JWTSecret)
	if err != nil {
		return
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return
	}

	if !user.ID.IsZero() {
		return resp, errs.ErrEmailAlreadyUsed
	}

	// OAuth accounts get an unguessable placeholder password; logins go
	// through the provider.
	hash, err := bcrypt.GenerateFromPassword([]byte(ulid.Make().String()), bcrypt.DefaultCost)
	if err != nil {
		return
	}

	now := time.Now()
	id, err := s.userRepo.AddUser(ctx, domain.User{
		Name:           name,
		Email:          email,
		HashedPassword: string(hash),
		Role:           domain.RoleUser,
		Phone:          req.Phone,
		CompanyName:    req.CompanyName,
		GSTNumber:      req.GSTNumber,
		OAuthProvider:  provider,
		Addresses:      []domain.Address{},
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return
	}

	token, err := utils.CreateJWTToken(id.Hex(), name, domain.RoleUser, s.config.JWTSecret)
	if err != nil {
		return
	}

	resp.Token = token
	resp.UserID = id.Hex()
	resp.Name = name
	resp.Role = domain.RoleUser

	return resp, nil
}

func (s *UserServiceImpl) ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) (err error) {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return
	}

	// Whether the account exists is not leaked to the caller.
	if user.ID.IsZero() {
		return nil
	}

	expiry := time.Now().Add(30 * time.Minute)
	user.ResetToken = ulid.Make().String()
	user.ResetTokenExpiresAt = &expiry

	if err = s.userRepo.UpdateUser(ctx, user); err != nil {
		return
	}

	go s.sendResetEmail(user)

	return nil
}

func (s *UserServiceImpl) sendResetEmail(user domain.User) {
	if s.config.SMTPConfig.Host == "" {
		return
	}

	message := gomail.NewMessage()
	message.SetHeader("From", s.config.SMTPConfig.Sender)
	message.SetHeader("To", user.Email)
	message.SetHeader("Subject", "Password reset request")
	message.SetBody("text/html", fmt.Sprintf("<p>Hi %s,</p><p>Reset your password here: %s/password/reset/%s</p><p>The link expires in 30 minutes.</p>",
		user.Name, s.config.FrontendHost, user.ResetToken))

	_, err := s.mailBreaker.Execute(func() ([]byte, error) {
		return nil, utils.SendEmail(message, s.config.SMTPConfig.Sender, s.config.SMTPConfig.Password, s.config.SMTPConfig.Host, s.config.SMTPConfig.Port)
	})
	if err != nil {
		log.Error().Err(err).Str("component", "sendResetEmail").Msg("")
	}
}

func (s *UserServiceImpl) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) (err error) {
	if req.Token == "" || req.Password == "" {
		return errs.ErrClient
	}

	user, err := s.userRepo.GetUserByResetToken(ctx, req.Token)
	if err != nil {
		return
	}

	if user.ResetTokenExpiresAt == nil || user.ResetTokenExpiresAt.Before(time.Now()) {
		return errs.ErrTokenExpired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return
	}

	user.HashedPassword = string(hash)
	user.ResetToken = ""
	user.ResetTokenExpiresAt = nil

	return s.userRepo.UpdateUser(ctx, user)
}

func (s *UserServiceImpl) GetUserByID(ctx context.Context, id string) (user domain.User, err error) {
	return s.userRepo.GetUserByID(ctx, id)
}

func (s *UserServiceImpl) AddAddress(ctx context.Context, userID string, req dto.AddressRequest) (user domain.User, err error) {
	user, err = s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return
	}

	user.Addresses = append(user.Addresses, domain.Address{
		ID:      primitive.NewObjectID(),
		Label:   req.Label,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		Country: req.Country,
		PinCode: req.PinCode,
		Phone:   req.Phone,
	})

	if err = s.userRepo.UpdateUser(ctx, user); err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func (s *UserServiceImpl) DeleteAddress(ctx context.Context, userID string, addressID string) (user domain.User, err error) {
	aid, err := primitive.ObjectIDFromHex(addressID)
	if err != nil {
		return user, errs.ErrNotFound
	}

	user, err = s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return
	}

	remaining := make([]domain.Address, 0, len(user.Addresses))
	found := false
	for _, address := range user.Addresses {
		if address.ID == aid {
			found = true
			continue
		}
		remaining = append(remaining, address)
	}

	if !found {
		return domain.User{}, errs.ErrNotFound
	}

	user.Addresses = remaining

	if err = s.userRepo.UpdateUser(ctx, user); err != nil {
		return domain.User{}, err
	}

	return user, nil
}
