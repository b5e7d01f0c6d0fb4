package repository

import (
	"context"
	"database/sql"
	"time"

	"tnb-api/core/database"
	"tnb-api/core/logger"
	"tnb-api/modules/account/entity"
)

// AccountRepository handles user and session database operations
type AccountRepository struct {
	DB database.IDatabase
}

func NewAccountRepository(db database.IDatabase) *AccountRepository {
	return &AccountRepository{DB: db}
}

// AccountRepositoryInterface defines the repository contract
type AccountRepositoryInterface interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	Insert(ctx context.Context, user *entity.User) (*entity.User, error)

	CreateSession(ctx context.Context, session *entity.Session) error
	FindUserBySessionToken(ctx context.Context, token string) (*entity.User, *entity.Session, error)
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT id, username, email, password_hash, user_type, created_at, updated_at
		FROM users
		WHERE email = $1
		LIMIT 1
	`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AccountRepository:FindByEmail", "email", email, "error", err)
		return nil, err
	}

	return &user, nil
}

func (r *AccountRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`

	var exists bool
	err := r.DB.QueryRowContext(ctx, query, username).Scan(&exists)
	if err != nil {
		logger.Error("AccountRepository:UsernameExists", "username", username, "error", err)
		return false, err
	}

	return exists, nil
}

// Insert creates a new account. Email uniqueness rides on the database
// constraint; a lost create race surfaces as a constraint error here.
func (r *AccountRepository) Insert(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (username, email, user_type)
		VALUES ($1, $2, $3)
		RETURNING id, username, email, password_hash, user_type, created_at, updated_at
	`

	var created entity.User
	err := r.DB.GetContext(ctx, &created, query, user.Username, user.Email, user.UserType)
	if err != nil {
		logger.Error("AccountRepository:Insert", "email", user.Email, "error", err)
		return nil, err
	}

	return &created, nil
}

func (r *AccountRepository) CreateSession(ctx context.Context, session *entity.Session) error {
	query := `
		INSERT INTO sessions (user_id, token, expires_at)
		VALUES ($1, $2, $3)
	`

	if err := r.DB.ExecContext(ctx, query, session.UserID, session.Token, session.ExpiresAt); err != nil {
		logger.Error("AccountRepository:CreateSession", "user_id", session.UserID, "error", err)
		return err
	}

	return nil
}

// FindUserBySessionToken resolves a session token to its user. Expiry is
// checked by the caller.
func (r *AccountRepository) FindUserBySessionToken(ctx context.Context, token string) (*entity.User, *entity.Session, error) {
	query := `
		SELECT u.id, u.username, u.email, u.password_hash, u.user_type, u.created_at, u.updated_at,
		       s.id AS session_id, s.expires_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token = $1
		LIMIT 1
	`

	var row struct {
		entity.User
		SessionID int64     `db:"session_id"`
		ExpiresAt time.Time `db:"expires_at"`
	}

	err := r.DB.GetContext(ctx, &row, query, token)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, nil
		}
		logger.Error("AccountRepository:FindUserBySessionToken", err)
		return nil, nil, err
	}

	session := &entity.Session{
		ID:        row.SessionID,
		UserID:    row.User.ID,
		Token:     token,
		ExpiresAt: row.ExpiresAt,
	}
	return &row.User, session, nil
}
