package rest

import (
	"github.com/dmitrijs2005/credkeeper/internal/server/models"
	"github.com/labstack/echo/v4"
)

const (
	msgRegistered     = "User registered successfully"
	msgLoggedIn       = "Login successful"
	msgLoggedOut      = "Logout successful"
	msgEmailTaken     = "Email already exist"
	msgBadCredentials = "Invalid credentials"
	msgShortPassword  = "Password must be at least 8 characters long."
	msgBadBody        = "Invalid request body"
	msgUnauthorized   = "Unauthorized"
	msgInternal       = "Internal server error"
)

type authResponse struct {
	Message string            `json:"message"`
	User    models.PublicUser `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type meResponse struct {
	User struct {
		ID string `json:"id"`
	} `json:"user"`
}

// errorsResponse is the single error envelope of the API.
type errorsResponse struct {
	Errors []string `json:"errors"`
}

func writeErrors(c echo.Context, status int, messages ...string) error {
	return c.JSON(status, errorsResponse{Errors: messages})
}
