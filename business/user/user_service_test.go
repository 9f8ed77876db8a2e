package user

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Sandeep-S-M/FarmConn/domain"
	internalRedis "github.com/Sandeep-S-M/FarmConn/internal/repository/redis"
	"github.com/Sandeep-S-M/FarmConn/pkg/utils"

	"github.com/go-playground/validator/v10"
)

const testVerificationKey = "0123456789abcdef"

func init() {
	utils.SetJWTSecret("unit-test-secret")
}

type fakeUserRepo struct {
	users  map[uint]domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]domain.User), nextID: 1}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint) (domain.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return domain.User{}, domain.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) UpdateEmailVerification(ctx context.Context, id uint, isVerified bool) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsVerified = isVerified
	r.users[id] = u
	return nil
}

func (r *fakeUserRepo) Search(ctx context.Context, query string) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		if strings.Contains(u.Username, query) {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeNotifier struct {
	fail   bool
	bodies []string
}

func (n *fakeNotifier) SendEmail(toName, toEmail, subject, textBody, htmlBody string) error {
	if n.fail {
		return context.DeadlineExceeded
	}
	n.bodies = append(n.bodies, textBody)
	return nil
}

type fakeTokenRepo struct {
	tokens map[string]internalRedis.TokenData
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]internalRedis.TokenData)}
}

func (r *fakeTokenRepo) StoreToken(ctx context.Context, userID, token string, data internalRedis.TokenData, ttl time.Duration) error {
	r.tokens[token] = data
	return nil
}

func (r *fakeTokenRepo) GetTokenData(ctx context.Context, userID string) (*internalRedis.TokenData, error) {
	for _, data := range r.tokens {
		if data.UserID == userID {
			d := data
			return &d, nil
		}
	}
	return nil, errors.New("token not found")
}

func (r *fakeTokenRepo) ValidateToken(ctx context.Context, token string) (string, error) {
	if data, ok := r.tokens[token]; ok {
		return data.UserID, nil
	}
	return "", context.Canceled
}

func (r *fakeTokenRepo) DeleteToken(ctx context.Context, userID, token string) error {
	delete(r.tokens, token)
	return nil
}

func newTestService(repo *fakeUserRepo, notifier *fakeNotifier, tokens *fakeTokenRepo) *userService {
	return NewUserService(repo, validator.New(), notifier, tokens, testVerificationKey, "http://localhost:8080")
}

func registerRequest(role string) *domain.User {
	return &domain.User{
		Username: "ravi",
		Email:    "ravi@example.com",
		Password: "plant123",
		Role:     role,
	}
}

func TestRegister(t *testing.T) {
	repo := newFakeUserRepo()
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier, newFakeTokenRepo())

	created, err := svc.Register(context.Background(), registerRequest(domain.RoleFarmer))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if created.ID == 0 {
		t.Error("registered user should get an ID")
	}
	if created.IsVerified {
		t.Error("new accounts start unverified")
	}
	if created.Password != "" {
		t.Error("password must not leak out of Register")
	}

	stored := repo.users[created.ID]
	if stored.Password == "plant123" {
		t.Error("stored password must be hashed")
	}
	if !utils.CheckPassword("plant123", stored.Password) {
		t.Error("stored hash should match the original password")
	}

	if len(notifier.bodies) != 1 {
		t.Fatalf("verification emails sent = %d, want 1", len(notifier.bodies))
	}
	if !strings.Contains(notifier.bodies[0], "/api/v1/users/email-verification/") {
		t.Error("verification email should carry the activation link")
	}
}

func TestRegister_RejectsUnknownRole(t *testing.T) {
	svc := newTestService(newFakeUserRepo(), &fakeNotifier{}, newFakeTokenRepo())

	for _, role := range []string{"", "admin", "buyer", "Nursery"} {
		if _, err := svc.Register(context.Background(), registerRequest(role)); err == nil {
			t.Errorf("role %q should be rejected", role)
		}
	}
}

func TestRegister_DuplicateEmailAndUsername(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, &fakeNotifier{}, newFakeTokenRepo())

	if _, err := svc.Register(context.Background(), registerRequest(domain.RoleFarmer)); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	dup := registerRequest(domain.RoleFarmer)
	dup.Username = "otherravi"
	if _, err := svc.Register(context.Background(), dup); err == nil || !strings.Contains(err.Error(), "email") {
		t.Errorf("duplicate email: err = %v", err)
	}

	dup = registerRequest(domain.RoleFarmer)
	dup.Email = "other@example.com"
	if _, err := svc.Register(context.Background(), dup); err == nil || !strings.Contains(err.Error(), "username") {
		t.Errorf("duplicate username: err = %v", err)
	}
}

func TestVerifyEmailThenLogin(t *testing.T) {
	repo := newFakeUserRepo()
	notifier := &fakeNotifier{}
	tokens := newFakeTokenRepo()
	svc := newTestService(repo, notifier, tokens)

	created, err := svc.Register(context.Background(), registerRequest(domain.RoleNursery))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Login before verification must fail.
	if _, _, err := svc.Login(context.Background(), "ravi@example.com", "plant123", "127.0.0.1", "go-test"); err == nil {
		t.Fatal("login must be rejected before email verification")
	}

	code := extractVerificationCode(t, notifier.bodies[0])
	if err := svc.VerifyEmail(context.Background(), code); err != nil {
		t.Fatalf("VerifyEmail failed: %v", err)
	}
	if !repo.users[created.ID].IsVerified {
		t.Fatal("user should be verified after VerifyEmail")
	}

	// Reusing the link must fail.
	if err := svc.VerifyEmail(context.Background(), code); err == nil {
		t.Error("verification link must be single use")
	}

	token, user, err := svc.Login(context.Background(), "ravi@example.com", "plant123", "127.0.0.1", "go-test")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token == "" {
		t.Fatal("login should return a token")
	}
	if user.Password != "" {
		t.Error("password must not leak out of Login")
	}

	claims, err := utils.ParseJWT(token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.Role != domain.RoleNursery {
		t.Errorf("token role = %q, want nursery", claims.Role)
	}

	userID, err := svc.ValidateTokenFromRedis(context.Background(), token)
	if err != nil {
		t.Fatalf("session lookup failed: %v", err)
	}
	if userID != claims.UserID {
		t.Errorf("session user = %q, token user = %q", userID, claims.UserID)
	}

	if err := svc.Logout(context.Background(), user.ID, token); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if _, err := svc.ValidateTokenFromRedis(context.Background(), token); err == nil {
		t.Error("session must be gone after logout")
	}
}

func TestRefreshToken(t *testing.T) {
	repo := newFakeUserRepo()
	notifier := &fakeNotifier{}
	tokens := newFakeTokenRepo()
	svc := newTestService(repo, notifier, tokens)

	created, err := svc.Register(context.Background(), registerRequest(domain.RoleNursery))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := repo.UpdateEmailVerification(context.Background(), created.ID, true); err != nil {
		t.Fatal(err)
	}

	oldToken, user, err := svc.Login(context.Background(), "ravi@example.com", "plant123", "127.0.0.1", "go-test")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	newToken, err := svc.RefreshToken(context.Background(), user.ID, oldToken)
	if err != nil {
		t.Fatalf("RefreshToken failed: %v", err)
	}
	if newToken == oldToken {
		t.Fatal("refresh must issue a different token")
	}

	if _, err := svc.ValidateTokenFromRedis(context.Background(), oldToken); err == nil {
		t.Error("old token must stop working after refresh")
	}
	userID, err := svc.ValidateTokenFromRedis(context.Background(), newToken)
	if err != nil {
		t.Fatalf("refreshed session lookup failed: %v", err)
	}

	claims, err := utils.ParseJWT(newToken)
	if err != nil {
		t.Fatalf("refreshed token does not parse: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("session user = %q, token user = %q", userID, claims.UserID)
	}
	if claims.Role != domain.RoleNursery {
		t.Errorf("refreshed token role = %q, want nursery", claims.Role)
	}

	// A token that is not the stored session cannot be refreshed.
	if _, err := svc.RefreshToken(context.Background(), user.ID, oldToken); err == nil {
		t.Error("stale token must not refresh")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier, newFakeTokenRepo())

	created, err := svc.Register(context.Background(), registerRequest(domain.RoleFarmer))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := repo.UpdateEmailVerification(context.Background(), created.ID, true); err != nil {
		t.Fatal(err)
	}

	if _, _, err := svc.Login(context.Background(), "ravi@example.com", "wrongpass", "127.0.0.1", "go-test"); err == nil {
		t.Error("wrong password must be rejected")
	}
	if _, _, err := svc.Login(context.Background(), "noone@example.com", "plant123", "127.0.0.1", "go-test"); err == nil {
		t.Error("unknown email must be rejected")
	}
}

func TestVerifyEmail_GarbageCode(t *testing.T) {
	svc := newTestService(newFakeUserRepo(), &fakeNotifier{}, newFakeTokenRepo())

	if err := svc.VerifyEmail(context.Background(), "not-a-real-code"); err == nil {
		t.Error("garbage verification code must be rejected")
	}
}

func TestUpdateProfile_RoleFields(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, &fakeNotifier{}, newFakeTokenRepo())

	farmer, err := svc.Register(context.Background(), registerRequest(domain.RoleFarmer))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	updated, err := svc.UpdateProfile(context.Background(), farmer.ID, &domain.User{
		Bio:         "Growing mangoes since 2010",
		Location:    "Kerala",
		NurseryName: "Should Not Stick",
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	if updated.Bio != "Growing mangoes since 2010" || updated.Location != "Kerala" {
		t.Errorf("common fields not applied: %+v", updated)
	}
	if updated.NurseryName != "" {
		t.Error("farmers must not carry a nursery name")
	}

	nurseryReq := registerRequest(domain.RoleNursery)
	nurseryReq.Username = "greenleaf"
	nurseryReq.Email = "owner@greenleaf.in"
	nursery, err := svc.Register(context.Background(), nurseryReq)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	updated, err = svc.UpdateProfile(context.Background(), nursery.ID, &domain.User{
		NurseryName:    "GreenLeaf Nursery",
		PaymentMethods: "UPI, cash on delivery",
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.NurseryName != "GreenLeaf Nursery" {
		t.Errorf("nursery name = %q", updated.NurseryName)
	}
	if updated.PaymentMethods != "UPI, cash on delivery" {
		t.Errorf("payment methods = %q", updated.PaymentMethods)
	}
}

func extractVerificationCode(t *testing.T, emailBody string) string {
	t.Helper()
	const marker = "/api/v1/users/email-verification/"
	idx := strings.Index(emailBody, marker)
	if idx < 0 {
		t.Fatalf("no activation link in email body: %s", emailBody)
	}
	rest := emailBody[idx+len(marker):]
	if end := strings.Index(rest, "</br>"); end >= 0 {
		rest = rest[:end]
	}
	return rest
}
