package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"cafemanagement/internal/apperror"
	"cafemanagement/internal/cache"
	"cafemanagement/internal/config"
	"cafemanagement/internal/dto"
	"cafemanagement/internal/infra"
	"cafemanagement/internal/model"
	"cafemanagement/internal/repository"
	"cafemanagement/internal/worker"
)

// AuthService owns authentication and the account approval workflow:
// pending → approved, pending → rejected, nothing out of a decided state.
// Only approved accounts may authenticate; pending and rejected accounts get
// distinct denial reasons instead of a generic login failure.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error)
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	GetUser(ctx context.Context, id uint) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, id uint, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, id uint) error
	Approve(ctx context.Context, id uint) error
	Reject(ctx context.Context, id uint) error
	SetProfilePicture(ctx context.Context, id uint, data []byte, ext string) (*dto.UserResponse, error)
	RequestPasswordReset(ctx context.Context, email string) error
	SendMeetingInvite(ctx context.Context, req dto.MeetingInviteRequest) error
}

type authService struct {
	repo       repository.UserRepository
	cfg        *config.Config
	caches     *cache.Collections
	files      *infra.FileStore
	mailer     *infra.Mailer
	dispatcher *worker.Dispatcher // nil when redis is not configured
}

func NewAuthService(
	repo repository.UserRepository,
	cfg *config.Config,
	caches *cache.Collections,
	files *infra.FileStore,
	mailer *infra.Mailer,
	dispatcher *worker.Dispatcher,
) AuthService {
	return &authService{
		repo:       repo,
		cfg:        cfg,
		caches:     caches,
		files:      files,
		mailer:     mailer,
		dispatcher: dispatcher,
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if apperror.Is(err, apperror.NotFound) {
			// Unknown account and wrong password share one message; bcrypt's
			// compare keeps the timing profile similar either way.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
			return nil, apperror.New(apperror.Unauthorized, "credenciales inválidas")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.New(apperror.Unauthorized, "credenciales inválidas")
	}

	// Approval gate — distinct reasons per state.
	switch user.ApprovalStatus {
	case model.ApprovalApproved:
	case model.ApprovalPending:
		return nil, apperror.New(apperror.Unauthorized, "cuenta pendiente de aprobación")
	case model.ApprovalRejected:
		return nil, apperror.New(apperror.Unauthorized, "cuenta rechazada")
	default:
		return nil, apperror.New(apperror.Unauthorized, "credenciales inválidas")
	}

	now := time.Now()
	if err := s.repo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		// Login still succeeds; the timestamp is best-effort.
		log.Warn().Uint("user_id", user.ID).Err(err).Msg("failed to update last login")
	}
	user.LastLogin = &now

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
		User:        *userToResponse(user),
	}, nil
}

// dummyHash keeps the unknown-account path doing a bcrypt compare.
var dummyHash = func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("login-timing-pad"), 12)
	return h
}()

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:       req.Username,
		PasswordHash:   string(hash),
		Name:           req.Name,
		Email:          &req.Email,
		Role:           model.RoleEmployee,
		ApprovalStatus: model.ApprovalPending,
	}
	if req.Phone != "" {
		user.Phone = &req.Phone
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	cache.RefreshAsync("users", s.caches.RefreshUsers)
	return userToResponse(user), nil
}

func (s *authService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	status := model.ApprovalStatus(req.ApprovalStatus)
	if req.ApprovalStatus == "" {
		status = model.ApprovalPending
	}
	if !status.Valid() {
		return nil, apperror.New(apperror.InvalidInput, "estado de aprobación inválido")
	}
	user := &model.User{
		Username:       req.Username,
		PasswordHash:   string(hash),
		Name:           req.Name,
		Email:          &req.Email,
		Role:           req.Role,
		ApprovalStatus: status,
	}
	if req.Phone != "" {
		user.Phone = &req.Phone
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	cache.RefreshAsync("users", s.caches.RefreshUsers)
	return userToResponse(user), nil
}

func (s *authService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UserResponse, len(users))
	for i := range users {
		resp[i] = *userToResponse(&users[i])
	}
	return resp, nil
}

func (s *authService) GetUser(ctx context.Context, id uint) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return userToResponse(user), nil
}

func (s *authService) UpdateUser(ctx context.Context, id uint, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	cache.RefreshAsync("users", s.caches.RefreshUsers)
	return userToResponse(user), nil
}

func (s *authService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	cache.RefreshAsync("users", s.caches.RefreshUsers)
	return nil
}

func (s *authService) Approve(ctx context.Context, id uint) error {
	return s.decide(ctx, id, model.ApprovalApproved)
}

func (s *authService) Reject(ctx context.Context, id uint) error {
	return s.decide(ctx, id, model.ApprovalRejected)
}

// decide applies a terminal approval decision. The repository update is
// generic; the lock-down to pending → decided lives here.
func (s *authService) decide(ctx context.Context, id uint, status model.ApprovalStatus) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user.ApprovalStatus.Decided() {
		return apperror.New(apperror.Conflict, "la cuenta ya fue decidida")
	}
	affected, err := s.repo.UpdateApprovalStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if !affected {
		return apperror.New(apperror.NotFound, "usuario no encontrado")
	}
	cache.RefreshAsync("users", s.caches.RefreshUsers)
	return nil
}

func (s *authService) SetProfilePicture(ctx context.Context, id uint, data []byte, ext string) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	path, err := s.files.Save(data, ext)
	if err != nil {
		return nil, apperror.Wrap(apperror.TransientIO, "no se pudo guardar la imagen", err)
	}
	old := user.ProfilePicture
	user.ProfilePicture = &path
	if err := s.repo.Update(ctx, user); err != nil {
		_ = s.files.Remove(path)
		return nil, err
	}
	if old != nil {
		_ = s.files.Remove(*old)
	}
	cache.RefreshAsync("users", s.caches.RefreshUsers)
	return userToResponse(user), nil
}

func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// Do not reveal whether the address exists.
		if apperror.Is(err, apperror.NotFound) {
			return nil
		}
		return err
	}

	token, err := s.resetToken(user)
	if err != nil {
		return err
	}
	subject := "Restablecimiento de contraseña"
	body := "Usa este código para restablecer tu contraseña: " + token

	if s.dispatcher != nil {
		return s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
			ToEmail: email, Subject: subject, Body: body,
		})
	}
	// No queue configured — deliver synchronously within the mailer's bound.
	return s.mailer.Send(email, subject, body)
}

func (s *authService) SendMeetingInvite(ctx context.Context, req dto.MeetingInviteRequest) error {
	for _, to := range req.Emails {
		if s.dispatcher != nil {
			if err := s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
				ToEmail: to, Subject: req.Subject, Body: req.Body,
			}); err != nil {
				return err
			}
			continue
		}
		if err := s.mailer.Send(to, req.Subject, req.Body); err != nil {
			return err
		}
	}
	return nil
}

func (s *authService) generateToken(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// resetToken is a short-lived single-purpose token.
func (s *authService) resetToken(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"purpose": "password_reset",
		"exp":     time.Now().Add(30 * time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", errors.New("no se pudo generar el token de restablecimiento")
	}
	return signed, nil
}

func userToResponse(u *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		Name:           u.Name,
		Email:          u.Email,
		Phone:          u.Phone,
		Role:           u.Role,
		ApprovalStatus: string(u.ApprovalStatus),
		HireDate:       u.HireDate,
		LastLogin:      u.LastLogin,
		ProfilePicture: u.ProfilePicture,
	}
}
