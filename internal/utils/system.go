package utils

import (
	"os/user"
	"strings"
)

// GetUsername returns the current username. On Windows the domain part of
// DOMAIN\user is kept so that accounts on different domains stay distinct.
func GetUsername() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(u.Username), nil
}
