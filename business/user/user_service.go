package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Sandeep-S-M/FarmConn/domain"
	internalRedis "github.com/Sandeep-S-M/FarmConn/internal/repository/redis"
	"github.com/Sandeep-S-M/FarmConn/pkg/logger"
	"github.com/Sandeep-S-M/FarmConn/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/pobyzaarif/goshortcute"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateEmailVerification(ctx context.Context, id uint, isVerified bool) error
	Search(ctx context.Context, query string) ([]domain.User, error)
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, textBody, htmlBody string) (err error)
}

// TokenRepository contract interface
type TokenRepository interface {
	StoreToken(ctx context.Context, userID, token string, data internalRedis.TokenData, ttl time.Duration) error
	GetTokenData(ctx context.Context, userID string) (*internalRedis.TokenData, error)
	ValidateToken(ctx context.Context, token string) (string, error)
	DeleteToken(ctx context.Context, userID, token string) error
}

const (
	verificationCodeTTL      = 5
	SubjectRegisterAccount   = "Activate Your FarmConn Account!"
	EmailBodyRegisterAccount = `Hello %v, activate your account by opening the link below.</br></br>%v</br>Note: the link is only valid for %v minutes.`
)

var validRoles = map[string]bool{
	domain.RoleFarmer:  true,
	domain.RoleNursery: true,
}

type userService struct {
	userRepo                UserRepository
	validate                *validator.Validate
	notifRepo               NotificationRepository
	tokenRepo               TokenRepository
	appEmailVerificationKey string
	appDeploymentUrl        string
}

func NewUserService(
	userRepo UserRepository,
	validate *validator.Validate,
	notifRepo NotificationRepository,
	tokenRepo TokenRepository,
	appEmailVerificationKey string,
	appDeploymentUrl string,
) *userService {
	return &userService{
		userRepo:                userRepo,
		validate:                validate,
		notifRepo:               notifRepo,
		tokenRepo:               tokenRepo,
		appEmailVerificationKey: appEmailVerificationKey,
		appDeploymentUrl:        appDeploymentUrl,
	}
}

func (s *userService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	if err := s.validate.Var(user.Username, "required,min=3,max=64"); err != nil {
		logger.Error("Invalid username", err)
		return domain.User{}, errors.New("username must be between 3 and 64 characters")
	}

	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		logger.Error("Invalid email format", err)
		return domain.User{}, errors.New("invalid email format")
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		logger.Error("Invalid user password", err)
		return domain.User{}, errors.New("password must be at least 6 characters")
	}

	if !validRoles[user.Role] {
		logger.Error("Invalid role on register", "role", user.Role)
		return domain.User{}, errors.New("role must be farmer or nursery")
	}

	existingUser, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil && existingUser.ID > 0 {
		logger.Error("Email already exists")
		return domain.User{}, errors.New("email already exists")
	}

	existingUser, err = s.userRepo.FindByUsername(ctx, user.Username)
	if err == nil && existingUser.ID > 0 {
		logger.Error("Username already exists")
		return domain.User{}, errors.New("username already exists")
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		Username:   user.Username,
		Email:      user.Email,
		Password:   passwordHash,
		Role:       user.Role,
		IsVerified: false,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user", err)
		return domain.User{}, err
	}

	expAt := time.Now().Add(time.Minute * verificationCodeTTL).Unix()

	verificationCode := fmt.Sprintf("%v|%v", newUser.Email, expAt)
	verificationCodeEncrypt, err := goshortcute.AESCBCEncrypt([]byte(verificationCode), []byte(s.appEmailVerificationKey))
	if err != nil {
		logger.Fatal("error when encrypting verification code")
	}
	strEncode := goshortcute.StringtoBase64Encode(verificationCodeEncrypt)
	activationLink := s.appDeploymentUrl + "/api/v1/users/email-verification/" + strEncode

	err = s.notifRepo.SendEmail(newUser.Username, newUser.Email, SubjectRegisterAccount,
		fmt.Sprintf(EmailBodyRegisterAccount, newUser.Username, activationLink, verificationCodeTTL), "")
	if err != nil {
		logger.Warn("Failed to send verification email", err)
	}

	newUser.Password = ""
	return newUser, nil
}

func (s *userService) Login(ctx context.Context, email, password, ipAddress, userAgent string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("Invalid user credentials", err)
		return "", domain.User{}, errors.New("invalid email or password")
	}

	if !utils.CheckPassword(password, user.Password) {
		logger.Error("User password incorrect")
		return "", domain.User{}, errors.New("invalid email or password")
	}

	if !user.IsVerified {
		logger.Error("Email address has not been verified")
		return "", domain.User{}, errors.New("email address has not been verified")
	}

	userIdStr := strconv.FormatUint(uint64(user.ID), 10)
	token, err := utils.GenerateJWT(userIdStr, user.Role)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return "", domain.User{}, errors.New("failed to generate token")
	}

	now := time.Now()
	err = s.tokenRepo.StoreToken(ctx, userIdStr, token, internalRedis.TokenData{
		UserID:    userIdStr,
		Role:      user.Role,
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(utils.TokenTTL()),
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}, utils.TokenTTL())
	if err != nil {
		logger.Error("Failed to store session token", err)
		return "", domain.User{}, errors.New("failed to create session")
	}

	user.Password = ""
	return token, user, nil
}

// RefreshToken swaps the caller's session for a fresh one: a new JWT is
// issued with a full TTL and the old token stops working immediately.
// The presented token must match the stored session, so a stale token
// left behind by a later login cannot be refreshed.
func (s *userService) RefreshToken(ctx context.Context, userID uint, oldToken string) (string, error) {
	userIdStr := strconv.FormatUint(uint64(userID), 10)

	data, err := s.tokenRepo.GetTokenData(ctx, userIdStr)
	if err != nil {
		logger.Error("Failed to get session for refresh", err)
		return "", errors.New("session not found")
	}

	if data.Token != oldToken {
		logger.Error("Refresh token mismatch", "user_id", userIdStr)
		return "", errors.New("session not found")
	}

	newToken, err := utils.GenerateJWT(userIdStr, data.Role)
	if err != nil {
		logger.Error("Failed to generate refreshed token", err)
		return "", errors.New("failed to generate token")
	}

	if err := s.tokenRepo.DeleteToken(ctx, userIdStr, oldToken); err != nil {
		logger.Error("Failed to drop old session on refresh", err)
		return "", errors.New("failed to refresh session")
	}

	now := time.Now()
	err = s.tokenRepo.StoreToken(ctx, userIdStr, newToken, internalRedis.TokenData{
		UserID:    userIdStr,
		Role:      data.Role,
		Token:     newToken,
		IssuedAt:  now,
		ExpiresAt: now.Add(utils.TokenTTL()),
		IPAddress: data.IPAddress,
		UserAgent: data.UserAgent,
	}, utils.TokenTTL())
	if err != nil {
		logger.Error("Failed to store refreshed session", err)
		return "", errors.New("failed to refresh session")
	}

	return newToken, nil
}

func (s *userService) Logout(ctx context.Context, userID uint, token string) error {
	userIdStr := strconv.FormatUint(uint64(userID), 10)
	if err := s.tokenRepo.DeleteToken(ctx, userIdStr, token); err != nil {
		logger.Error("Failed to delete session token", err)
		return err
	}

	return nil
}

func (s *userService) ValidateTokenFromRedis(ctx context.Context, token string) (string, error) {
	return s.tokenRepo.ValidateToken(ctx, token)
}

func (s *userService) VerifyEmail(ctx context.Context, verificationCodeEncrypt string) error {
	strDecode := goshortcute.StringtoBase64Decode(verificationCodeEncrypt)
	verificationCodeDecrypt, err := goshortcute.AESCBCDecrypt([]byte(strDecode), []byte(s.appEmailVerificationKey))
	if err != nil {
		logger.Error("Verifying email error", err)
		return errors.New("invalid or expired url")
	}

	verificationCode := strings.Split(verificationCodeDecrypt, "|")
	if len(verificationCode) != 2 {
		logger.Error("Verifying email error", "code", verificationCodeDecrypt)
		return errors.New("invalid or expired url")
	}

	email := verificationCode[0]
	expAtStr := verificationCode[1]

	ts, err := strconv.ParseInt(expAtStr, 10, 64)
	if err != nil {
		logger.Error("Verifying email error", "code", verificationCodeDecrypt)
		return errors.New("invalid or expired url")
	}
	if time.Now().After(time.Unix(ts, 0)) {
		return errors.New("invalid or expired url")
	}

	getUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("Verifying email error", err)
		return errors.New("failed to get user by email")
	}

	if getUser.IsVerified {
		logger.Warn("Email verified already", "email", email)
		return errors.New("invalid or expired url")
	}

	if err := s.userRepo.UpdateEmailVerification(ctx, getUser.ID, true); err != nil {
		logger.Error("Verify email err", err)
		return err
	}

	return nil
}

// GetProfile retrieves a user's public profile by username.
func (s *userService) GetProfile(ctx context.Context, username string) (domain.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		logger.Error("Failed to get user by username", err)
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}

// UpdateProfile updates the caller's own profile. Which fields apply
// depends on the role: nursery owners carry the nursery fields, farmers
// only the common ones.
func (s *userService) UpdateProfile(ctx context.Context, id uint, updateData *domain.User) (domain.User, error) {
	existingUser, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("User not found for profile update", err)
		return domain.User{}, err
	}

	if updateData.Bio != "" {
		existingUser.Bio = updateData.Bio
	}
	if updateData.Location != "" {
		existingUser.Location = updateData.Location
	}
	if updateData.OwnerName != "" {
		existingUser.OwnerName = updateData.OwnerName
	}
	if updateData.ContactDetails != "" {
		existingUser.ContactDetails = updateData.ContactDetails
	}

	if existingUser.Role == domain.RoleNursery {
		if updateData.NurseryName != "" {
			existingUser.NurseryName = updateData.NurseryName
		}
		if updateData.PaymentMethods != "" {
			existingUser.PaymentMethods = updateData.PaymentMethods
		}
	}

	if err := s.userRepo.Update(ctx, &existingUser); err != nil {
		logger.Error("Failed to update user profile", err)
		return domain.User{}, err
	}

	existingUser.Password = ""
	return existingUser, nil
}

func (s *userService) SearchUsers(ctx context.Context, query string) ([]domain.User, error) {
	users, err := s.userRepo.Search(ctx, query)
	if err != nil {
		logger.Error("Failed to search users", err)
		return nil, err
	}

	for i := range users {
		users[i].Password = ""
	}

	return users, nil
}
