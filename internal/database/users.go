package database

import (
	"context"
	"errors"

	"datviz-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

func (q *Queries) GetUserByUUID(ctx context.Context, uuid string) (*models.User, error) {
	query := `
		SELECT uuid, email, ip, available_credits, created_at
		FROM users
		WHERE uuid = $1
	`
	var user models.User
	err := q.db.QueryRow(ctx, query, uuid).Scan(
		&user.UUID,
		&user.Email,
		&user.IP,
		&user.AvailableCredits,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByEmailOrIP finds a user by encrypted email or hashed IP. Both
// values are deterministic for a given input, so equality lookups work.
func (q *Queries) GetUserByEmailOrIP(ctx context.Context, encryptedEmail, hashedIP string) (*models.User, error) {
	query := `
		SELECT uuid, email, ip, available_credits, created_at
		FROM users
		WHERE email = $1 OR ip = $2
	`
	var user models.User
	err := q.db.QueryRow(ctx, query, encryptedEmail, hashedIP).Scan(
		&user.UUID,
		&user.Email,
		&user.IP,
		&user.AvailableCredits,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (q *Queries) GetUserByIP(ctx context.Context, hashedIP string) (*models.User, error) {
	query := `
		SELECT uuid, email, ip, available_credits, created_at
		FROM users
		WHERE ip = $1
	`
	var user models.User
	err := q.db.QueryRow(ctx, query, hashedIP).Scan(
		&user.UUID,
		&user.Email,
		&user.IP,
		&user.AvailableCredits,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

type CreateUserParams struct {
	UUID             string
	Email            string
	IP               string
	AvailableCredits float64
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (*models.User, error) {
	query := `
		INSERT INTO users (uuid, email, ip, available_credits)
		VALUES ($1, $2, $3, $4)
		RETURNING uuid, email, ip, available_credits, created_at
	`
	row := q.db.QueryRow(ctx, query, arg.UUID, arg.Email, arg.IP, arg.AvailableCredits)

	var user models.User
	err := row.Scan(
		&user.UUID,
		&user.Email,
		&user.IP,
		&user.AvailableCredits,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// DebitCredits subtracts cost from the user's balance in a single conditional
// update, so two concurrent debits can never drive the balance negative.
// ok is false when the balance was insufficient; the row is left untouched.
func (q *Queries) DebitCredits(ctx context.Context, uuid string, cost float64) (float64, bool, error) {
	query := `
		UPDATE users
		SET available_credits = available_credits - $1
		WHERE uuid = $2 AND available_credits >= $1
		RETURNING available_credits
	`
	var newBalance float64
	err := q.db.QueryRow(ctx, query, cost, uuid).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return newBalance, true, nil
}
