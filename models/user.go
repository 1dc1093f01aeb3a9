package models

// AdminUsername is the account exempt from balance checks.
const AdminUsername = "admin"

type User struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Balance  float64 `json:"balance"`
}

func (u *User) IsAdmin() bool {
	return u.Username == AdminUsername
}
