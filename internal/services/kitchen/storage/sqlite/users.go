package sqlite

import (
	"context"

	"github.com/wsaeed77/spice-loop/internal/platform/storage/sqlitedb"
	"github.com/wsaeed77/spice-loop/internal/services/kitchen/domain"
)

const userColumns = `id, name, email, phone, password_hash, role, created_at`

// PutUser inserts a new account.
func (s *Store) PutUser(ctx context.Context, user domain.User) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO users (`+userColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, user.ID, user.Name, user.Email, user.Phone, user.PasswordHash, string(user.Role), sqlitedb.ToMillis(user.CreatedAt))
	return classify("put user", err)
}

// GetUser loads one account by id.
func (s *Store) GetUser(ctx context.Context, userID string) (domain.User, error) {
	if err := s.ready(ctx); err != nil {
		return domain.User{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, userID)
	user, err := scanUser(row.Scan)
	if err != nil {
		return domain.User{}, classify("get user", err)
	}
	return user, nil
}

// GetUserByEmail loads one account by normalized email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	if err := s.ready(ctx); err != nil {
		return domain.User{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	user, err := scanUser(row.Scan)
	if err != nil {
		return domain.User{}, classify("get user by email", err)
	}
	return user, nil
}

// SetUserRole changes an account's role.
func (s *Store) SetUserRole(ctx context.Context, userID string, role domain.Role) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, `UPDATE users SET role = ? WHERE id = ?`, string(role), userID)
	if err != nil {
		return classify("set user role", err)
	}
	return requireOne("set user role", result)
}

func scanUser(scan scanFunc) (domain.User, error) {
	var (
		user      domain.User
		role      string
		createdAt int64
	)
	if err := scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.PasswordHash, &role, &createdAt); err != nil {
		return domain.User{}, err
	}
	user.Role = domain.Role(role)
	user.CreatedAt = sqlitedb.FromMillis(createdAt)
	return user, nil
}
