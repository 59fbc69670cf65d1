package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/matiasroldan/cuchilleria/internal/database"
	"github.com/matiasroldan/cuchilleria/internal/models"
)

// MySQL error number for unique key violations.
const erDupEntry = 1062

type UserStore struct {
	db *database.DB
}

func NewUserStore(db *database.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user and returns its id. The password must already be
// hashed by the caller.
func (s *UserStore) Create(ctx context.Context, u *models.User) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password, role) VALUES (?, ?, ?, ?)`,
		u.Username, u.Email, u.Password, u.Role)
	if err != nil {
		if isDuplicate(err) {
			return 0, fmt.Errorf("%w: username or email already taken", ErrDuplicate)
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read user id: %w", err)
	}
	return id, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.get(ctx, `SELECT id, username, email, password, role, created_at FROM users WHERE email = ?`, email)
}

func (s *UserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.get(ctx, `SELECT id, username, email, password, role, created_at FROM users WHERE id = ?`, id)
}

func (s *UserStore) get(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &u, nil
}

// UpdateProfile changes the username and email of an existing user.
func (s *UserStore) UpdateProfile(ctx context.Context, id int64, username, email string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET username = ?, email = ? WHERE id = ?`,
		username, email, id)
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("%w: username or email already taken", ErrDuplicate)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		// RowsAffected is also 0 when the values did not change; confirm
		// the row exists before reporting not found.
		if _, err := s.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == erDupEntry
}
