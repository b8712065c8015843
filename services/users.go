package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/akbrzda/courier-bot-sub000/db"
	"github.com/akbrzda/courier-bot-sub000/models"
	"github.com/jackc/pgx/v5"
)

const (
	RoleCourier = "courier"
	RoleSenior  = "senior"
	RoleAdmin   = "admin"

	StatusPending  = "pending"
	StatusApproved = "approved"
)

const userColumns = `id, chat_id, full_name, username, role, branch, status, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.ChatID, &u.FullName, &u.Username, &u.Role, &u.Branch, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByID returns the user or nil when no record exists.
func GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	u, err := scanUser(db.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return u, nil
}

// CreateUser inserts a new user record; a repeat registration for the same id
// overwrites the previous pending row.
func CreateUser(ctx context.Context, u *models.User) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO users (id, chat_id, full_name, username, role, branch, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			chat_id = EXCLUDED.chat_id,
			full_name = EXCLUDED.full_name,
			username = EXCLUDED.username,
			role = EXCLUDED.role,
			branch = EXCLUDED.branch,
			status = EXCLUDED.status,
			updated_at = now()`,
		u.ID, u.ChatID, u.FullName, u.Username, u.Role, u.Branch, u.Status,
	)
	if err != nil {
		return fmt.Errorf("CreateUser: %w", err)
	}
	return nil
}

// SetUserStatus updates the status (pending/approved) of a user.
func SetUserStatus(ctx context.Context, id int64, status string) error {
	tag, err := db.Pool.Exec(ctx, `UPDATE users SET status = $1, updated_at = now() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("SetUserStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("SetUserStatus: user %d not found", id)
	}
	return nil
}

// UpdateUserName renames a user.
func UpdateUserName(ctx context.Context, id int64, fullName string) error {
	tag, err := db.Pool.Exec(ctx, `UPDATE users SET full_name = $1, updated_at = now() WHERE id = $2`, fullName, id)
	if err != nil {
		return fmt.Errorf("UpdateUserName: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateUserName: user %d not found", id)
	}
	return nil
}

// UpdateUserBranch moves a user to another branch.
func UpdateUserBranch(ctx context.Context, id int64, branch string) error {
	tag, err := db.Pool.Exec(ctx, `UPDATE users SET branch = $1, updated_at = now() WHERE id = $2`, branch, id)
	if err != nil {
		return fmt.Errorf("UpdateUserBranch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateUserBranch: user %d not found", id)
	}
	return nil
}

// DeleteUser removes the user record (rejected registrations).
func DeleteUser(ctx context.Context, id int64) error {
	if _, err := db.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	return nil
}

// ListAdmins returns all approved administrators.
func ListAdmins(ctx context.Context) ([]models.User, error) {
	rows, err := db.Pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE role = $1 AND status = $2`, RoleAdmin, StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("ListAdmins: %w", err)
	}
	defer rows.Close()
	return collectUsers(rows, "ListAdmins")
}

// ListSeniorsByBranch returns all approved seniors assigned to the branch.
func ListSeniorsByBranch(ctx context.Context, branch string) ([]models.User, error) {
	rows, err := db.Pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE role = $1 AND status = $2 AND branch = $3`,
		RoleSenior, StatusApproved, branch)
	if err != nil {
		return nil, fmt.Errorf("ListSeniorsByBranch: %w", err)
	}
	defer rows.Close()
	return collectUsers(rows, "ListSeniorsByBranch")
}

func collectUsers(rows pgx.Rows, op string) ([]models.User, error) {
	var out []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}
