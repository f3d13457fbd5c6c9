package common

// Header names carrying tokens in both directions. Tokens never travel in a
// JSON body or in cookies.
const (
	AccessTokenHeaderName  = "access"
	RefreshTokenHeaderName = "refresh"
)
