package domain

// User is an account able to sign in to the admin surface. Only admins may
// call protected routes; self-registered accounts never are.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
	Admin    bool   `json:"admin"`
}
