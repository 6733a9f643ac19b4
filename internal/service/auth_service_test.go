package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"cafemanagement/internal/apperror"
	"cafemanagement/internal/dto"
	"cafemanagement/internal/model"
)

func buildAuthSvc() (AuthService, *stubUserRepo) {
	userRepo := newStubUserRepo()
	caches := newTestCaches(userRepo, newStubProductRepo(), newStubOrderRepo())
	svc := NewAuthService(userRepo, testConfig(), caches, nil, nil, nil)
	return svc, userRepo
}

// seedAccount inserts a user directly, bypassing Register, so the approval
// status can be chosen freely. MinCost keeps the suite fast.
func seedAccount(t *testing.T, repo *stubUserRepo, email, password string, status model.ApprovalStatus) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{
		Username:       email,
		PasswordHash:   string(hash),
		Name:           "Cuenta " + email,
		Email:          &email,
		Role:           model.RoleEmployee,
		ApprovalStatus: status,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestLogin_ApprovedAccount(t *testing.T) {
	svc, repo := buildAuthSvc()
	seedAccount(t, repo, "ana@cafe.local", "secreta123", model.ApprovalApproved)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@cafe.local", Password: "secreta123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.NotNil(t, resp.User.LastLogin)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, repo := buildAuthSvc()
	seedAccount(t, repo, "ana@cafe.local", "secreta123", model.ApprovalApproved)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@cafe.local", Password: "equivocada",
	})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.Unauthorized))
	assert.EqualError(t, err, "credenciales inválidas")
}

func TestLogin_UnknownEmailSameMessageAsWrongPassword(t *testing.T) {
	svc, _ := buildAuthSvc()

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "nadie@cafe.local", Password: "lo-que-sea",
	})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.Unauthorized))
	// The message must not reveal whether the account exists.
	assert.EqualError(t, err, "credenciales inválidas")
}

func TestLogin_PendingAccount(t *testing.T) {
	svc, repo := buildAuthSvc()
	seedAccount(t, repo, "ana@cafe.local", "secreta123", model.ApprovalPending)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@cafe.local", Password: "secreta123",
	})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.Unauthorized))
	assert.EqualError(t, err, "cuenta pendiente de aprobación")
}

func TestLogin_RejectedAccount(t *testing.T) {
	svc, repo := buildAuthSvc()
	seedAccount(t, repo, "ana@cafe.local", "secreta123", model.ApprovalRejected)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@cafe.local", Password: "secreta123",
	})
	require.Error(t, err)
	assert.EqualError(t, err, "cuenta rechazada")
}

func TestRegister_StartsPending(t *testing.T) {
	svc, repo := buildAuthSvc()

	resp, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "nuevo",
		Password: "secreta123",
		Name:     "Nuevo Empleado",
		Email:    "nuevo@cafe.local",
	})
	require.NoError(t, err)
	assert.Equal(t, string(model.ApprovalPending), resp.ApprovalStatus)
	assert.Equal(t, model.RoleEmployee, resp.Role)

	stored, err := repo.FindByEmail(context.Background(), "nuevo@cafe.local")
	require.NoError(t, err)
	assert.Equal(t, model.ApprovalPending, stored.ApprovalStatus)
	// The hash is stored, never the raw password.
	assert.NotEqual(t, "secreta123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreta123")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, repo := buildAuthSvc()
	seedAccount(t, repo, "ana@cafe.local", "secreta123", model.ApprovalApproved)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "ana-bis",
		Password: "secreta123",
		Name:     "Ana Bis",
		Email:    "ana@cafe.local",
	})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.Conflict))
}

func TestApprove_PendingUnlocksLogin(t *testing.T) {
	svc, repo := buildAuthSvc()
	u := seedAccount(t, repo, "ana@cafe.local", "secreta123", model.ApprovalPending)
	ctx := context.Background()

	require.NoError(t, svc.Approve(ctx, u.ID))

	resp, err := svc.Login(ctx, dto.LoginRequest{Email: "ana@cafe.local", Password: "secreta123"})
	require.NoError(t, err)
	assert.Equal(t, string(model.ApprovalApproved), resp.User.ApprovalStatus)
}

func TestDecide_AlreadyDecidedIsConflict(t *testing.T) {
	svc, repo := buildAuthSvc()
	ctx := context.Background()

	approved := seedAccount(t, repo, "ana@cafe.local", "secreta123", model.ApprovalApproved)
	rejected := seedAccount(t, repo, "bob@cafe.local", "secreta123", model.ApprovalRejected)

	// No transition leaves a decided state, in either direction.
	err := svc.Reject(ctx, approved.ID)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.Conflict))

	err = svc.Approve(ctx, rejected.ID)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.Conflict))

	err = svc.Approve(ctx, approved.ID)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.Conflict))
}

func TestDecide_UnknownUser(t *testing.T) {
	svc, _ := buildAuthSvc()

	err := svc.Approve(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.NotFound))
}

func TestCreateUser_InvalidApprovalStatus(t *testing.T) {
	svc, _ := buildAuthSvc()

	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username:       "ana",
		Password:       "secreta123",
		Name:           "Ana",
		Email:          "ana@cafe.local",
		Role:           model.RoleEmployee,
		ApprovalStatus: "dudoso",
	})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.InvalidInput))
}

func TestCreateUser_DefaultsToPending(t *testing.T) {
	svc, _ := buildAuthSvc()

	resp, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "ana",
		Password: "secreta123",
		Name:     "Ana",
		Email:    "ana@cafe.local",
		Role:     model.RoleManager,
	})
	require.NoError(t, err)
	assert.Equal(t, string(model.ApprovalPending), resp.ApprovalStatus)
	assert.Equal(t, model.RoleManager, resp.Role)
}

func TestRequestPasswordReset_UnknownEmailIsSilent(t *testing.T) {
	svc, _ := buildAuthSvc()

	// Never reveal whether the address exists: no error, no mail.
	err := svc.RequestPasswordReset(context.Background(), "nadie@cafe.local")
	assert.NoError(t, err)
}
