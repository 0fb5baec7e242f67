package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/festivore/festival-api/internal/domain"
	"github.com/festivore/festival-api/internal/platform/logger"
	"github.com/festivore/festival-api/internal/service/auth"
	"github.com/festivore/festival-api/internal/store"
)

// OrganizerParams are the profile fields required when registering with
// the organizer role.
type OrganizerParams struct {
	DisplayName string
	Website     string
	Instagram   string
}

// RegisterParams are the inputs of a registration.
type RegisterParams struct {
	Email     string
	Password  string
	Role      domain.Role
	Organizer *OrganizerParams
}

// AuthResult is the outcome of a successful login: the signed token plus
// the identity it embeds.
type AuthResult struct {
	Token              string
	UserID             uuid.UUID
	Email              string
	Role               domain.Role
	OrganizerProfileID *uuid.UUID
	ExpiresAt          time.Time
}

// MeResult is the identity projection returned by Me.
type MeResult struct {
	UserID             uuid.UUID
	Email              string
	Role               domain.Role
	OrganizerProfileID *uuid.UUID
}

// AuthService orchestrates registration, login and identity lookup.
type AuthService struct {
	userStore    store.UserStore
	profileStore store.OrganizerProfileStore
	tokenService auth.TokenService
	hasher       auth.PasswordHasher
	verifier     auth.PasswordVerifier
	runTx        store.TxRunner
	logger       *slog.Logger
}

// NewAuthService creates a new AuthService with the given dependencies.
func NewAuthService(
	runTx store.TxRunner,
	userStore store.UserStore,
	profileStore store.OrganizerProfileStore,
	tokenService auth.TokenService,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	log *slog.Logger,
) *AuthService {
	if log == nil {
		log = slog.Default()
	}
	return &AuthService{
		userStore:    userStore,
		profileStore: profileStore,
		tokenService: tokenService,
		hasher:       hasher,
		verifier:     verifier,
		runTx:        runTx,
		logger:       log.With(slog.String("component", "auth_service")),
	}
}

// Register creates a user and, for the organizer role, exactly one linked
// organizer profile. Both writes run inside one transaction so a failure
// or cancellation between them never leaves a user without its profile.
func (s *AuthService) Register(ctx context.Context, params RegisterParams) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := domain.ParseRole(string(params.Role)); err != nil {
		return domain.NewValidationError("role",
			fmt.Sprintf("Role must be %q or %q.", domain.RoleUser, domain.RoleOrganizer))
	}

	if params.Role == domain.RoleOrganizer && params.Organizer == nil {
		return domain.NewValidationError("organizer", "Organizer fields are required.")
	}
	if params.Role == domain.RoleUser && params.Organizer != nil {
		return domain.NewValidationError("organizer", "Organizer fields are only allowed for the organizer role.")
	}

	user, err := domain.NewUser(params.Email, params.Password, params.Role)
	if err != nil {
		return domain.NewValidationError(userValidationField(err), err.Error())
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	var profile *domain.OrganizerProfile
	if params.Role == domain.RoleOrganizer {
		profile, err = domain.NewOrganizerProfile(
			user.ID,
			params.Organizer.DisplayName,
			params.Organizer.Website,
			params.Organizer.Instagram,
		)
		if err != nil {
			return domain.NewValidationError("organizer", err.Error())
		}
	}

	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.userStore.WithTx(tx).Create(ctx, user); err != nil {
			return err
		}
		if profile != nil {
			if err := s.profileStore.WithTx(tx).Create(ctx, profile); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEmailExists):
			return domain.NewValidationError("email", "Email is already registered.")
		case errors.Is(err, store.ErrProfileExists):
			return domain.NewValidationError("organizer", "Organizer profile already exists for this user.")
		default:
			return fmt.Errorf("failed to register user: %w", err)
		}
	}

	log.Info("user registered",
		slog.String("user_id", user.ID.String()),
		slog.String("role", string(user.Role)))
	return nil
}

// Login checks the credentials and issues a signed token on success.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	profileID, err := s.organizerProfileID(ctx, user)
	if err != nil {
		return nil, err
	}

	identity := auth.Identity{
		UserID:             user.ID,
		Email:              user.Email,
		Role:               user.Role,
		OrganizerProfileID: profileID,
	}

	token, err := s.tokenService.GenerateToken(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	log.Info("user logged in", slog.String("user_id", user.ID.String()))

	return &AuthResult{
		Token:              token,
		UserID:             user.ID,
		Email:              user.Email,
		Role:               user.Role,
		OrganizerProfileID: profileID,
		ExpiresAt:          time.Now().UTC().Add(s.tokenService.TokenLifetime()),
	}, nil
}

// Me resolves a previously verified user ID back to its identity.
// Returns domain.ErrUnauthorized if the user no longer exists.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*MeResult, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	profileID, err := s.organizerProfileID(ctx, user)
	if err != nil {
		return nil, err
	}

	return &MeResult{
		UserID:             user.ID,
		Email:              user.Email,
		Role:               user.Role,
		OrganizerProfileID: profileID,
	}, nil
}

// organizerProfileID looks up the owned profile ID, but only for
// organizer accounts; regular users never carry one.
func (s *AuthService) organizerProfileID(ctx context.Context, user *domain.User) (*uuid.UUID, error) {
	if user.Role != domain.RoleOrganizer {
		return nil, nil
	}

	profile, err := s.profileStore.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve organizer profile: %w", err)
	}

	id := profile.ID
	return &id, nil
}

// userValidationField maps domain user validation errors to the request
// field they concern.
func userValidationField(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyEmail), errors.Is(err, domain.ErrInvalidEmail):
		return "email"
	case errors.Is(err, domain.ErrEmptyPassword),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrPasswordTooLong):
		return "password"
	case errors.Is(err, domain.ErrInvalidRole):
		return "role"
	default:
		return "request"
	}
}
