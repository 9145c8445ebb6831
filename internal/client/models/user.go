// Package models defines the data types exchanged between the client
// components: the authenticated user, registration input, and the provider
// directory entries.
package models

// User is the account record populated into session state on login.
// Token is the opaque session token minted at login time; it is empty on
// records that have not been through a login.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Gender    string `json:"gender"`
	Image     string `json:"image"`
	Token     string `json:"token,omitempty"`
}

// RegisterData is the input to account registration. The password is consumed
// by the Session Manager and must not be retained by callers.
type RegisterData struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}
