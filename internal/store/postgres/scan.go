package postgres

import (
	"database/sql"
	"encoding/json"

	"github.com/clubworks/clubd/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanEvent scans a single row into a model.Event.
// The row must contain columns in the order defined by eventColumns.
func scanEvent(row scannable) (*model.Event, error) {
	var e model.Event
	var (
		description sql.NullString
		location    sql.NullString
		date        sql.NullString
		perks       []byte
	)

	err := row.Scan(
		&e.ID,
		&e.Name,
		&description,
		&location,
		&date,
		&e.Image,
		&perks,
		&e.Pinned,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Description = description.String
	e.Location = location.String
	e.Date = date.String

	if len(perks) > 0 {
		if err := json.Unmarshal(perks, &e.Perks); err != nil {
			return nil, err
		}
	}

	return &e, nil
}

// scanUser scans a single row into a model.User.
// The row must contain columns in the order defined by userColumns.
func scanUser(row scannable) (*model.User, error) {
	var u model.User
	var (
		permissions []byte
		roles       []byte
	)

	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&permissions,
		&roles,
		&u.SecretHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(permissions) > 0 {
		if err := json.Unmarshal(permissions, &u.Permissions); err != nil {
			return nil, err
		}
	}
	if len(roles) > 0 {
		if err := json.Unmarshal(roles, &u.Roles); err != nil {
			return nil, err
		}
	}

	return &u, nil
}

// nullString converts an empty string to a NULL value.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// jsonbStrings marshals a string slice for a JSONB column; nil stays NULL.
func jsonbStrings(ss []string) []byte {
	if ss == nil {
		return nil
	}
	b, _ := json.Marshal(ss)
	return b
}

// jsonbPermissions marshals a permission slice for a JSONB column.
func jsonbPermissions(ps []model.Permission) []byte {
	if ps == nil {
		return nil
	}
	b, _ := json.Marshal(ps)
	return b
}

// jsonbRoles marshals a role slice for a JSONB column.
func jsonbRoles(rs []model.Role) []byte {
	if rs == nil {
		return nil
	}
	b, _ := json.Marshal(rs)
	return b
}
