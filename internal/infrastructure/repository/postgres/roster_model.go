package postgres

import "time"

type memberTableModel struct {
	ID       string    `db:"id"`
	TeamID   string    `db:"team_id"`
	Kind     string    `db:"kind"`
	EntityID string    `db:"entity_id"`
	FullName string    `db:"full_name"`
	Email    string    `db:"email"`
	Phone    string    `db:"phone"`
	IDNumber string    `db:"id_number"`
	Area     string    `db:"area"`
	Role     string    `db:"role"`
	UserID   string    `db:"user_id"`
	Details  []byte    `db:"details"`
	AddedAt  time.Time `db:"added_at"`
}
