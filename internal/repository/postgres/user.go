package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/logger"
	"rentnest-backend/internal/repository"

	"github.com/google/uuid"
)

const userColumns = `id, name, email, COALESCE(phone, ''), password_hash, role, status, last_login_at, created_at, updated_at`

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func scanUser(s rowScanner) (*domain.User, error) {
	u := &domain.User{}
	var lastLogin sql.NullTime
	err := s.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.Status, &lastLogin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		u.LastLoginAt = &lastLogin.Time
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	logger.EnterMethod("userRepository.Create", "email", u.Email, "role", u.Role)

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Status == "" {
		u.Status = domain.UserStatusActive
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	query := `INSERT INTO users (id, name, email, phone, password_hash, role, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query, u.ID, u.Name, u.Email, u.Phone, u.PasswordHash, u.Role, u.Status, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		logger.ExitMethodWithError("userRepository.Create", err, "email", u.Email)
		return mapError("user.create", "user", err)
	}

	logger.ExitMethod("userRepository.Create", "userID", u.ID)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.NotFound("user")
	}
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, mapError("user.get", "user", err)
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
	if err != nil {
		return nil, mapError("user.get_by_email", "user", err)
	}
	return u, nil
}

// Update saves the profile fields. Role, status and password are not touched.
func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	u.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `UPDATE users SET name=$1, email=$2, phone=$3, updated_at=$4 WHERE id=$5`,
		u.Name, u.Email, u.Phone, u.UpdatedAt, u.ID)
	if err != nil {
		return mapError("user.update", "user", err)
	}
	return expectRows("user.update", "user", res)
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_login_at = $1 WHERE id = $2`, at, id)
	return mapError("user.update_last_login", "user", err)
}

func (r *userRepository) SetStatus(ctx context.Context, id string, status domain.UserStatus) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.NotFound("user")
	}
	res, err := r.db.ExecContext(ctx, `UPDATE users SET status = $1, updated_at = $2 WHERE id = $3`, status, time.Now().UTC(), id)
	if err != nil {
		return mapError("user.set_status", "user", err)
	}
	return expectRows("user.set_status", "user", res)
}

// Delete removes the user with their listings and everything that references
// either. Inquiries the user filed on other listings are removed too.
func (r *userRepository) Delete(ctx context.Context, id string) error {
	logger.EnterMethod("userRepository.Delete", "userID", id)
	if _, err := uuid.Parse(id); err != nil {
		return domain.NotFound("user")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return mapError("user.delete", "user", err)
	}
	defer tx.Rollback()

	owned := `SELECT id FROM listings WHERE owner_id = $1`
	for _, stmt := range []string{
		`DELETE FROM saved_listings WHERE user_id = $1 OR listing_id IN (` + owned + `)`,
		`DELETE FROM inquiries WHERE seeker_id = $1 OR listing_id IN (` + owned + `)`,
		`DELETE FROM sharing_tiers WHERE listing_id IN (` + owned + `)`,
		`DELETE FROM listing_images WHERE listing_id IN (` + owned + `)`,
		`DELETE FROM listings WHERE owner_id = $1`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			logger.ExitMethodWithError("userRepository.Delete", err, "userID", id)
			return mapError("user.delete", "user", err)
		}
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapError("user.delete", "user", err)
	}
	if err := expectRows("user.delete", "user", res); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return mapError("user.delete", "user", err)
	}

	logger.ExitMethod("userRepository.Delete", "userID", id)
	return nil
}

// List returns every user with the number of listings they own, newest first.
func (r *userRepository) List(ctx context.Context) ([]domain.UserSummary, error) {
	query := `SELECT ` + userColumns + `, (SELECT count(*) FROM listings l WHERE l.owner_id = users.id)
	          FROM users ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError("user.list", "user", err)
	}
	defer rows.Close()

	users := []domain.UserSummary{}
	for rows.Next() {
		var s domain.UserSummary
		var lastLogin sql.NullTime
		u := &s.User
		err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.Status, &lastLogin, &u.CreatedAt, &u.UpdatedAt, &s.ListingCount)
		if err != nil {
			return nil, mapError("user.list", "user", err)
		}
		if lastLogin.Valid {
			u.LastLoginAt = &lastLogin.Time
		}
		users = append(users, s)
	}
	return users, mapError("user.list", "user", rows.Err())
}
