package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hireproof/hireproof-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEnterpriseExists = errors.New("enterprise already exists")
)

// EnterpriseStore is the tenant access the enterprise service needs.
type EnterpriseStore interface {
	Create(ctx context.Context, e *model.Enterprise) error
	GetByName(ctx context.Context, name string) (*model.Enterprise, error)
}

// AdminAccountStore is the account access the enterprise service needs.
type AdminAccountStore interface {
	Create(ctx context.Context, a *model.AdminAccount) error
	GetByUsername(ctx context.Context, username string) (*model.AdminAccount, error)
}

// EnterpriseService registers tenants and their first admin account.
type EnterpriseService struct {
	enterprises EnterpriseStore
	admins      AdminAccountStore
	bcryptCost  int
	logger      zerolog.Logger
}

// NewEnterpriseService creates a new EnterpriseService.
func NewEnterpriseService(enterprises EnterpriseStore, admins AdminAccountStore, bcryptCost int) *EnterpriseService {
	return &EnterpriseService{
		enterprises: enterprises,
		admins:      admins,
		bcryptCost:  bcryptCost,
		logger:      log.With().Str("component", "enterprise_service").Logger(),
	}
}

// Register creates an enterprise together with its initial admin account.
func (s *EnterpriseService) Register(ctx context.Context, req model.RegisterEnterpriseRequest) (*model.Enterprise, *model.AdminAccount, error) {
	if _, err := s.enterprises.GetByName(ctx, req.Name); err == nil {
		return nil, nil, ErrEnterpriseExists
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, err
	}
	if _, err := s.admins.GetByUsername(ctx, req.AdminUsername); err == nil {
		return nil, nil, ErrEnterpriseExists
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.AdminPassword), s.bcryptCost)
	if err != nil {
		return nil, nil, err
	}

	enterprise := &model.Enterprise{ID: uuid.New(), Name: req.Name}
	if err := s.enterprises.Create(ctx, enterprise); err != nil {
		return nil, nil, err
	}

	admin := &model.AdminAccount{
		EnterpriseID: enterprise.ID,
		Username:     req.AdminUsername,
		PasswordHash: string(hash),
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, nil, err
	}

	s.logger.Info().Str("name", enterprise.Name).Msg("enterprise registered")
	return enterprise, admin, nil
}
