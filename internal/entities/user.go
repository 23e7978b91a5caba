package entities

// User represents a row of the users table
type User struct {
	ID           int64  `db:"id" json:"id"`
	Fullname     string `db:"fullname" json:"fullname"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"` // Never leaves the server
}
