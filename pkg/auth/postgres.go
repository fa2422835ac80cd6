package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/authkit/pkg/pg"
)

// PostgresStorage implements Storage over a pgx connection pool.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage wraps the given pool.
func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

func (s *PostgresStorage) CreateUser(ctx context.Context, user *User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, image, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Image, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *PostgresStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.scanUser(s.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, image, created_at, updated_at
		 FROM users WHERE id = $1`, id,
	))
}

func (s *PostgresStorage) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.scanUser(s.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, image, created_at, updated_at
		 FROM users WHERE email = $1`, email,
	))
}

func (s *PostgresStorage) UpdateUser(ctx context.Context, user *User) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET name = $2, email = $3, password_hash = $4, image = $5, updated_at = $6
		 WHERE id = $1`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Image, user.UpdatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *PostgresStorage) GetAccount(ctx context.Context, provider, providerAccountID string) (*Account, error) {
	var account Account
	err := s.pool.QueryRow(ctx,
		`SELECT provider, provider_account_id, provider_account_name, user_id, created_at
		 FROM accounts WHERE provider = $1 AND provider_account_id = $2`,
		provider, providerAccountID,
	).Scan(
		&account.Provider, &account.ProviderAccountID, &account.ProviderAccountName,
		&account.UserID, &account.CreatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (s *PostgresStorage) CreateAccount(ctx context.Context, account *Account) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO accounts (provider, provider_account_id, provider_account_name, user_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		account.Provider, account.ProviderAccountID, account.ProviderAccountName,
		account.UserID, account.CreatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrAccountExists
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (s *PostgresStorage) CreateUserWithAccount(ctx context.Context, user *User, account *Account) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO users (id, name, email, password_hash, image, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			user.ID, user.Name, user.Email, user.PasswordHash, user.Image, user.CreatedAt, user.UpdatedAt,
		)
		if err != nil {
			if pg.IsDuplicateKeyError(err) {
				return ErrEmailAlreadyExists
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO accounts (provider, provider_account_id, provider_account_name, user_id, created_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			account.Provider, account.ProviderAccountID, account.ProviderAccountName,
			account.UserID, account.CreatedAt,
		)
		if err != nil {
			if pg.IsDuplicateKeyError(err) {
				return ErrAccountExists
			}
			return fmt.Errorf("failed to create account: %w", err)
		}
		return nil
	})
}

func (s *PostgresStorage) scanUser(row pgx.Row) (*User, error) {
	var user User
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Image,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

var _ Storage = (*PostgresStorage)(nil)
