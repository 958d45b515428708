// Package session holds the current user identity and authentication state.
package session

// User is the authenticated identity. Created on login, destroyed on logout.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatar,omitempty"`
}

// State is a snapshot of the session store.
type State struct {
	User          *User
	Authenticated bool
	Loading       bool
}
