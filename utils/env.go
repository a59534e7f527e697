package utils

import (
	"errors"
	"net"
	"net/url"
	"os"

	"github.com/joho/godotenv"
)

// ErrDatabaseURLMissing is returned when neither DATABASE_URL nor the DB_* parts are set.
var ErrDatabaseURLMissing = errors.New("DATABASE_URL not set (in .env or environment)")

// LoadEnv loads variables from .env files into the process environment.
// Variables that are already set win. It reports false when no file was found.
func LoadEnv(files ...string) bool {
	if err := godotenv.Load(files...); err != nil {
		return false
	}
	return true
}

// DatabaseURL resolves the connection string. DATABASE_URL is used as-is;
// otherwise it is assembled from DB_USER, DB_PASSWORD, DB_HOST, DB_PORT and DB_NAME.
func DatabaseURL(getenv func(string) string) (string, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if u := getenv("DATABASE_URL"); u != "" {
		return u, nil
	}

	user, name := getenv("DB_USER"), getenv("DB_NAME")
	if user == "" || name == "" {
		return "", ErrDatabaseURLMissing
	}
	host := getenv("DB_HOST")
	if host == "" {
		host = "localhost"
	}
	port := getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}

	u := url.URL{
		Scheme: "postgresql",
		Host:   net.JoinHostPort(host, port),
		Path:   "/" + name,
	}
	if pw := getenv("DB_PASSWORD"); pw != "" {
		u.User = url.UserPassword(user, pw)
	} else {
		u.User = url.User(user)
	}
	return u.String(), nil
}

