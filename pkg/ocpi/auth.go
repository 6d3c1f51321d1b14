package ocpi

import "encoding/base64"

// AuthorizationHeader is the header carrying the OCPI credentials token.
const AuthorizationHeader = "Authorization"

// TokenAuthorization returns the Authorization value for token. From 2.2 on the
// token is sent base64 encoded; an empty or unknown version sends it as is.
func TokenAuthorization(token string, v Version) string {
	if token == "" {
		return ""
	}
	if v != "" && v.HasRoles() {
		token = base64.StdEncoding.EncodeToString([]byte(token))
	}
	return "Token " + token
}
