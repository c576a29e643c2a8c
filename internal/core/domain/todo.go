package domain

// Todo is a personal to-do item owned by a single user.
type Todo struct {
	ID          int64
	Title       string
	Description *string
	Finished    bool
	UserID      int64
}

// OwnedBy reports whether the todo belongs to the given user.
func (t *Todo) OwnedBy(u *User) bool {
	return u != nil && t.UserID == u.ID
}
