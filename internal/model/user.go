package model

// GuestIdentity is the implicit identity used when nobody is logged in.
const GuestIdentity = "guest"

// User is the active identity pointer persisted under the "user" key.
// The username is a self-declared display name, not a credential.
type User struct {
	Username string `json:"username"`
}
