package postgres

import (
	"database/sql"
	"time"
)

type profileTableModel struct {
	ID          string         `db:"id"`
	Email       sql.NullString `db:"email"`
	DisplayName sql.NullString `db:"display_name"`
	Role        sql.NullString `db:"role"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

type profileInsertModel struct {
	ID          string    `db:"id"`
	Email       *string   `db:"email"`
	DisplayName *string   `db:"display_name"`
	Role        *string   `db:"role"`
	UpdatedAt   time.Time `db:"updated_at"`
}
