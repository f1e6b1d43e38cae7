package application

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/terrasapp/sales-api/internal/dbx"
	"github.com/terrasapp/sales-api/internal/domain/entity"
	repo "github.com/terrasapp/sales-api/internal/domain/repository"
	"github.com/terrasapp/sales-api/pkg/helpers"
	"github.com/terrasapp/sales-api/pkg/paging"
	"github.com/terrasapp/sales-api/pkg/search"
)

var (
	// ErrInvalidCredentials covers both an unknown login and a wrong
	// password; the two cases are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInactiveUser       = errors.New("user is inactive")
)

// MailSender delivers the password-recovery mail.
type MailSender interface {
	SendRecoveredPassword(ctx context.Context, name, mail, login, password string) error
}

// UserService owns the transaction lifecycle for every user write: begin,
// persistence calls against the transactional handle, commit on success,
// rollback on any failure. Reads go straight to the pool.
type UserService struct {
	DB     dbx.DB
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Mail   MailSender
	Logger *logrus.Logger
}

func NewUserService(db dbx.DB, r repo.UserRepository, jwt *helpers.JWTManager, mail MailSender, logger *logrus.Logger) *UserService {
	return &UserService{DB: db, Repo: r, JWT: jwt, Mail: mail, Logger: logger}
}

type CreateUserInput struct {
	Name     string
	Mail     string
	Login    string
	Password string
}

type UpdateUserInput struct {
	Name     string
	Mail     string
	Login    string
	Password string
}

// Create registers a new user, always starting as active.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	now := helpers.FormatDatabaseDatetime(time.Now())
	u := &entity.User{
		Name:      in.Name,
		Mail:      in.Mail,
		Login:     in.Login,
		Password:  in.Password,
		Status:    entity.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := dbx.WithTx(ctx, s.DB, func(ctx context.Context, tx pgx.Tx) error {
		return s.Repo.Create(ctx, tx, u)
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) Search(ctx context.Context, parameter string, page, size *int) (paging.Page[entity.UserWithSales], error) {
	return s.Repo.Search(ctx, s.DB, parameter, page, size)
}

func (s *UserService) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	u, err := s.Repo.FindByID(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (s *UserService) Update(ctx context.Context, id int64, in UpdateUserInput) (*entity.User, error) {
	patch := &entity.User{
		Name:      in.Name,
		Mail:      in.Mail,
		Login:     in.Login,
		Password:  in.Password,
		UpdatedAt: helpers.FormatDatabaseDatetime(time.Now()),
	}
	var updated *entity.User
	err := dbx.WithTx(ctx, s.DB, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		updated, err = s.Repo.Update(ctx, tx, id, patch)
		return err
	})
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) (*entity.User, error) {
	var deleted *entity.User
	err := dbx.WithTx(ctx, s.DB, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		deleted, err = s.Repo.Delete(ctx, tx, id)
		return err
	})
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (s *UserService) DeleteAll(ctx context.Context) error {
	return dbx.WithTx(ctx, s.DB, func(ctx context.Context, tx pgx.Tx) error {
		return s.Repo.DeleteAll(ctx, tx)
	})
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.Repo.Count(ctx, s.DB)
}

// Authenticate looks the user up by a single combined equality on login and
// password and issues a token for active accounts. A wrong password and an
// unknown login produce the same error.
func (s *UserService) Authenticate(ctx context.Context, login, password string) (*entity.User, string, error) {
	u, err := s.Repo.FindOne(ctx, s.DB, []search.Equality{
		{Column: "login", Value: login},
		{Column: "password", Value: password},
	})
	if errors.Is(err, repo.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if u.Status != entity.StatusActive {
		return nil, "", ErrInactiveUser
	}

	token, _, err := s.JWT.Generate(u.UserID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("userId", u.UserID).Error("token generation failed")
		}
		return nil, "", err
	}
	return u, token, nil
}

// RecoverPassword mails the stored password to an active account's address
// and returns the user. A mail failure surfaces to the caller; nothing is
// retried.
func (s *UserService) RecoverPassword(ctx context.Context, mail string) (*entity.User, error) {
	u, err := s.Repo.FindOne(ctx, s.DB, []search.Equality{
		{Column: "mail", Value: mail},
	})
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if u.Status != entity.StatusActive {
		return nil, ErrInactiveUser
	}

	if err := s.Mail.SendRecoveredPassword(ctx, u.Name, u.Mail, u.Login, u.Password); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("mail", u.Mail).Error("recovery mail failed")
		}
		return nil, err
	}
	return u, nil
}
