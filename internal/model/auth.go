package model

// AuthContext is the authenticated caller identity carried through a request.
// It is established once by the auth middleware and passed explicitly into
// every engine call.
type AuthContext struct {
	UserID  string
	TokenID string
}
