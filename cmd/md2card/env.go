package main

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables consumed by the publish path.
const (
	cookieEnvVar = "XHS_COOKIE"
	apiURLEnvVar = "XHS_API_URL"
)

// defaultAPIURL is where the companion publish service listens locally.
const defaultAPIURL = "http://localhost:5005"

// ErrCookieMissing means no publish cookie was configured.
var ErrCookieMissing = errors.New("XHS_COOKIE not set: add it to the environment or a .env file")

// loadCookie reads the publish cookie from the environment, loading a .env
// file from the working directory first when present.
func loadCookie() (string, error) {
	// Best effort: a missing .env file is fine, the variable may be exported.
	_ = godotenv.Load()

	cookie := os.Getenv(cookieEnvVar)
	if cookie == "" {
		return "", ErrCookieMissing
	}
	return cookie, nil
}

// resolveAPIURL picks the publish API address: explicit flag, then
// environment, then the local default.
func resolveAPIURL(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(apiURLEnvVar); env != "" {
		return env
	}
	return defaultAPIURL
}
