// Package common contains shared constants and sentinel errors used across
// AteliêPerto components.
package common

// Persisted key-value store keys. The "@"-prefixed literals are the session
// and theme keys; registered account records are stored one per username
// under UserRecordPrefix + username.
const (
	TokenKey         = "@auth_token"
	UserKey          = "@user_data"
	ThemeKey         = "@theme_preference"
	UserRecordPrefix = "user_"
)

// AccessTokenHeaderName is the HTTP header used to carry the access token
// on outbound requests.
const AccessTokenHeaderName = "Authorization"
