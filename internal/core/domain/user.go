package domain

// User is the subset of a portal account the shell needs: enough to resolve a
// role when the session token does not carry one.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
}
