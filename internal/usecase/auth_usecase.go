package usecase

import (
	"context"
	"errors"
	"time"

	"swasthya-portal/internal/converter"
	"swasthya-portal/internal/delivery/dto"
	"swasthya-portal/internal/domain/entity"
	"swasthya-portal/internal/domain/repository"
	"swasthya-portal/internal/service"
	"swasthya-portal/pkg/jwt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, session *entity.Session, refreshToken string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, session *entity.Session) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, session *entity.Session, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

type authUsecase struct {
	log          *logrus.Logger
	userRepo     repository.UserRepository
	sessionRepo  repository.SessionRepository
	auditService service.AuditService
	jwtService   *jwt.JWTService
	bcryptCost   int
}

func NewAuthUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	auditService service.AuditService,
	jwtService *jwt.JWTService,
	bcryptCost int,
) AuthUsecase {
	return &authUsecase{
		log:          log,
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		auditService: auditService,
		jwtService:   jwtService,
		bcryptCost:   bcryptCost,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	role := entity.Role(req.Role)

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), u.bcryptCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := entity.User{
		ID:        entity.NewID(role.IDPrefix()),
		Email:     req.Email,
		Password:  string(hashedPassword),
		Name:      req.Name,
		Role:      role,
		Phone:     req.Phone,
		Active:    true,
		CreatedAt: time.Now(),
	}
	userFields{
		Specialization:   req.Specialization,
		Experience:       req.Experience,
		About:            req.About,
		LicenseNo:        req.LicenseNo,
		Age:              req.Age,
		BloodGroup:       req.BloodGroup,
		Gender:           req.Gender,
		MedicalHistory:   req.MedicalHistory,
		Allergies:        req.Allergies,
		EmergencyContact: req.EmergencyContact,
	}.applyTo(&user)

	// The duplicate email check runs inside the same locked write as the append
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	safe := user.WithoutPassword()
	u.auditService.LogCreate(ctx, &entity.Session{User: safe}, entity.AuditActionUserRegister, "user", user.ID, safe)

	return converter.UserToResponse(&safe), nil
}

// Login checks email, password and the active flag. Every failure returns
// the same error so the response never tells which check failed.
func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.Active {
		return nil, ErrInvalidCredentials
	}

	tokens, session, err := u.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	u.auditService.LogCreate(ctx, session, entity.AuditActionUserLogin, "session", session.TokenID, nil)

	return tokens, nil
}

func (u *authUsecase) Logout(ctx context.Context, session *entity.Session, refreshToken string) error {
	if err := u.sessionRepo.Delete(ctx, session.UserID(), session.TokenID); err != nil {
		u.log.Warnf("Failed to delete session: %+v", err)
		return err
	}

	// Revoke the refresh token too when the client sent it
	if refreshToken != "" {
		claims, err := u.jwtService.ValidateToken(refreshToken)
		if err == nil && claims.TokenType == jwt.RefreshToken && claims.UserID == session.UserID() {
			if _, err := u.sessionRepo.ConsumeRefreshToken(ctx, claims.UserID, claims.TokenID); err != nil {
				u.log.Warnf("Failed to delete refresh token: %+v", err)
				return err
			}
		}
	}

	u.auditService.LogDelete(ctx, session, entity.AuditActionUserLogout, "session", session.TokenID, nil)

	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	// Validate refresh token
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	// The old refresh token can be used only once
	existed, err := u.sessionRepo.ConsumeRefreshToken(ctx, claims.UserID, claims.TokenID)
	if err != nil {
		u.log.Warnf("Failed to consume refresh token: %+v", err)
		return nil, err
	}
	if !existed {
		return nil, ErrTokenRevoked
	}

	user, err := u.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, ErrTokenRevoked
	}

	tokens, _, err := u.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, session *entity.Session) (*dto.UserResponse, error) {
	user := session.User.WithoutPassword()
	return converter.UserToResponse(&user), nil
}

// UpdateProfile merges the non-empty fields of req into the stored user and
// refreshes every live session of that user.
func (u *authUsecase) UpdateProfile(ctx context.Context, session *entity.Session, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	var before entity.User
	updated, err := u.userRepo.Update(ctx, session.UserID(), func(user *entity.User) error {
		before = user.WithoutPassword()
		userFields{
			Name:             req.Name,
			Phone:            req.Phone,
			Specialization:   req.Specialization,
			Experience:       req.Experience,
			About:            req.About,
			LicenseNo:        req.LicenseNo,
			Age:              req.Age,
			BloodGroup:       req.BloodGroup,
			Gender:           req.Gender,
			MedicalHistory:   req.MedicalHistory,
			Allergies:        req.Allergies,
			EmergencyContact: req.EmergencyContact,
		}.applyTo(user)
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		u.log.Warnf("Failed to update profile of %s: %+v", session.UserID(), err)
		return nil, err
	}

	if err := u.sessionRepo.RefreshUser(ctx, *updated); err != nil {
		u.log.Warnf("Failed to refresh sessions of %s: %+v", updated.ID, err)
	}

	safe := updated.WithoutPassword()
	u.auditService.LogUpdate(ctx, session, entity.AuditActionProfileUpdate, "user", updated.ID, before, safe)

	return converter.UserToResponse(&safe), nil
}

// issueTokens creates an access/refresh pair and persists the session record
// and the refresh token id.
func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, *entity.Session, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(user.ID, string(user.Role))
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(user.ID, string(user.Role))
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, nil, err
	}

	session := &entity.Session{
		User:       user.WithoutPassword(),
		TokenID:    accessTokenID,
		LoggedInAt: time.Now(),
	}
	if err := u.sessionRepo.Save(ctx, session, u.jwtService.GetAccessExpiry()); err != nil {
		u.log.Warnf("Failed to store session: %+v", err)
		return nil, nil, err
	}

	if err := u.sessionRepo.SaveRefreshToken(ctx, user.ID, refreshTokenID, u.jwtService.GetRefreshExpiry()); err != nil {
		u.log.Warnf("Failed to store refresh token: %+v", err)
		return nil, nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
		User:         converter.UserToResponse(&session.User),
	}, session, nil
}
