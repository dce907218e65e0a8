package utils

// response.go centralizes the JSON envelope every endpoint returns:
// {success, data?, error?, message?}.  Keeping the shape in one place
// stops individual handlers from drifting apart.

import "github.com/labstack/echo/v4"

// OK writes a success envelope with data.
func OK(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

// Created writes a success envelope with a human-readable message, used for
// endpoints that create or mutate a resource.
func Created(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "message": message, "data": data})
}

// Fail writes a failure envelope.  The message is the only structured
// information exposed to the client besides the HTTP status.
func Fail(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"success": false, "error": message})
}
