package domain

// User is the authenticated identity consumed to gate checkout. Tokens are mock
// values; this core does not validate them.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignupForm is the data collected when registering a new demo user.
type SignupForm struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the persisted authentication state.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
