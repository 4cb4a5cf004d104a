package telegram

import (
	"errors"
	"fmt"
	"strings"
)

// apiError is a non-ok response from the Telegram Bot API.
type apiError struct {
	Code        int
	Description string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("telegram: API error %d: %s", e.Code, e.Description)
}

// isNotModifiedError reports whether err is Telegram's complaint about
// editing a message with identical content.
func isNotModifiedError(err error) bool {
	var apiErr *apiError
	if !errors.As(err, &apiErr) {
		return false
	}
	return strings.Contains(apiErr.Description, "message is not modified")
}
