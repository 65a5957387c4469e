package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Role ids as stored in users.role_id.
const (
	RoleSuperAdmin = 0
	RoleUser       = 1
	RoleAdmin      = 2
)

// PermissionLandingPage is the admin_permissions key that lets an admin edit
// the landing page.
const PermissionLandingPage = "landing_page"

// AdminChecker decides whether a user may edit landing page content.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// SQLAdminChecker lets super admins through and requires admins to hold the
// landing_page permission.
type SQLAdminChecker struct {
	db *sqlx.DB
}

func NewSQLAdminChecker(db *sqlx.DB) *SQLAdminChecker {
	return &SQLAdminChecker{db: db}
}

func (a *SQLAdminChecker) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	var roleID int
	err := a.db.GetContext(ctx, &roleID, a.db.Rebind("SELECT role_id FROM users WHERE id = ?"), userID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("fetch role: %w", err)
	}

	switch roleID {
	case RoleSuperAdmin:
		return true, nil
	case RoleAdmin:
		var hasPermission bool
		err := a.db.GetContext(ctx, &hasPermission, a.db.Rebind(`
			SELECT EXISTS(
				SELECT 1 FROM admin_permissions
				WHERE user_id = ? AND permission_key = ?
			)
		`), userID, PermissionLandingPage)
		if err != nil {
			return false, fmt.Errorf("fetch permission: %w", err)
		}
		return hasPermission, nil
	default:
		return false, nil
	}
}
