package entities

type Group struct {
	ID         string `db:"id"`
	Name       string `db:"name"`
	Visibility string `db:"visibility"`
}

type GroupMember struct {
	GroupID string `db:"group_id"`
	UserID  string `db:"user_id"`
	Role    string `db:"role"`
}
