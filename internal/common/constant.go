package common

// AuthTokenCookieName is the default name of the cookie carrying the signed
// token issued on sign-up and login.
const AuthTokenCookieName = "authToken"
