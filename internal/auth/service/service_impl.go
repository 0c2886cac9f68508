package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/raizsolar/backoffice/internal/auth/domain"
	"github.com/raizsolar/backoffice/internal/auth/password"
	clientdomain "github.com/raizsolar/backoffice/internal/client/domain"
	"github.com/raizsolar/backoffice/internal/config"
	"github.com/raizsolar/backoffice/internal/observability/metrics"
	operatordomain "github.com/raizsolar/backoffice/internal/operator/domain"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Config    config.Config
	Repo      domain.Repository
	Operators operatordomain.Repository
	Clients   clientdomain.Repository
	Metrics   *metrics.Metrics `optional:"true"`
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	operators operatordomain.Repository
	clients   clientdomain.Repository
	metrics   *metrics.Metrics
	ttl       time.Duration
}

func New(p Params) domain.Service {
	ttl := time.Duration(p.Config.SessionTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("auth.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		operators: p.Operators,
		clients:   p.Clients,
		metrics:   p.Metrics,
		ttl:       ttl,
	}
}

func (s *Service) LoginOperator(ctx context.Context, req domain.LoginRequest) (domain.Principal, string, time.Time, error) {
	email := strings.ToLower(strings.TrimSpace(req.Login))

	operator, err := s.operators.FindByEmail(ctx, s.db, email)
	if err != nil {
		return domain.Principal{}, "", time.Time{}, err
	}
	if operator == nil || !operator.IsActive || !password.Verify(req.Password, operator.Password) {
		s.metrics.RecordLoginAttempt(ctx, domain.KindOperator, "denied")
		return domain.Principal{}, "", time.Time{}, domain.ErrInvalidCredentials
	}

	principal := domain.Principal{Kind: domain.KindOperator, ID: operator.ID, Name: operator.Name}
	token, expiresAt, err := s.issueSession(ctx, principal, req)
	if err != nil {
		return domain.Principal{}, "", time.Time{}, err
	}

	s.metrics.RecordLoginAttempt(ctx, domain.KindOperator, "granted")
	s.log.Info("operator login", zap.String("operator_id", operator.ID.String()))
	return principal, token, expiresAt, nil
}

// LoginClient accepts either the client's email or its UC number.
func (s *Service) LoginClient(ctx context.Context, req domain.LoginRequest) (domain.Principal, string, time.Time, error) {
	login := strings.TrimSpace(req.Login)

	client, err := s.clients.FindByEmail(ctx, s.db, strings.ToLower(login))
	if err != nil {
		return domain.Principal{}, "", time.Time{}, err
	}
	if client == nil {
		client, err = s.clients.FindByUCNumber(ctx, s.db, login)
		if err != nil {
			return domain.Principal{}, "", time.Time{}, err
		}
	}
	if client == nil || !client.IsActive || client.Password == "" || !password.Verify(req.Password, client.Password) {
		s.metrics.RecordLoginAttempt(ctx, domain.KindClient, "denied")
		return domain.Principal{}, "", time.Time{}, domain.ErrInvalidCredentials
	}

	principal := domain.Principal{Kind: domain.KindClient, ID: client.ID, Name: client.Name}
	token, expiresAt, err := s.issueSession(ctx, principal, req)
	if err != nil {
		return domain.Principal{}, "", time.Time{}, err
	}

	s.metrics.RecordLoginAttempt(ctx, domain.KindClient, "granted")
	s.log.Info("client login", zap.String("client_id", client.ID.String()))
	return principal, token, expiresAt, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.repo.DeleteSession(ctx, s.db, hashToken(token))
}

func (s *Service) Resolve(ctx context.Context, token string) (domain.Principal, error) {
	session, err := s.repo.FindSessionByTokenHash(ctx, s.db, hashToken(token))
	if err != nil {
		return domain.Principal{}, err
	}
	if session == nil {
		return domain.Principal{}, domain.ErrSessionNotFound
	}
	if time.Now().UTC().After(session.ExpiresAt) {
		_ = s.repo.DeleteSession(ctx, s.db, session.TokenHash)
		return domain.Principal{}, domain.ErrSessionExpired
	}
	return domain.Principal{Kind: session.PrincipalKind, ID: session.PrincipalID}, nil
}

func (s *Service) issueSession(ctx context.Context, principal domain.Principal, req domain.LoginRequest) (string, time.Time, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", time.Time{}, err
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	now := time.Now().UTC()
	session := domain.Session{
		ID:            s.genID.Generate(),
		TokenHash:     hashToken(token),
		PrincipalKind: principal.Kind,
		PrincipalID:   principal.ID,
		UserAgent:     req.UserAgent,
		IP:            req.IP,
		ExpiresAt:     now.Add(s.ttl),
		CreatedAt:     now,
	}
	if err := s.repo.InsertSession(ctx, s.db, &session); err != nil {
		return "", time.Time{}, err
	}

	// Opportunistic cleanup; login is rare enough to absorb it.
	_ = s.repo.DeleteExpiredSessions(ctx, s.db)

	return token, session.ExpiresAt, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
