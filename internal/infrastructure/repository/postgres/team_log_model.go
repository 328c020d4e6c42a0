package postgres

import "time"

type messageTableModel struct {
	ID        string    `db:"id"`
	TeamID    string    `db:"team_id"`
	Type      string    `db:"type"`
	Text      string    `db:"text"`
	Author    string    `db:"author"`
	Metadata  []byte    `db:"metadata"`
	CreatedAt time.Time `db:"created_at"`
}

type proofTableModel struct {
	ID          string    `db:"id"`
	TeamID      string    `db:"team_id"`
	Text        string    `db:"text"`
	URL         string    `db:"url"`
	SubmittedBy string    `db:"submitted_by"`
	SubmittedAt time.Time `db:"submitted_at"`
}
