package cli

import (
	"errors"

	"github.com/dmitrijs2005/vsrclient/internal/client/client"
	"github.com/dmitrijs2005/vsrclient/internal/client/services"
)

// describeError turns a command failure into the line shown to the user.
// hadSession reports whether a session existed when the command started;
// only then does a 401 mean the session was cleared.
func describeError(err error, hadSession bool) string {
	switch {
	case errors.Is(err, services.ErrValidation):
		return "Invalid input: " + err.Error()
	case errors.Is(err, services.ErrUnauthenticated):
		return "Not logged in. Use 'login' first."
	case errors.Is(err, services.ErrForbidden):
		return "This command needs the admin role."
	case errors.Is(err, client.ErrUnauthorized) && hadSession:
		return err.Error() + " (session cleared, please log in again)"
	default:
		return err.Error()
	}
}
