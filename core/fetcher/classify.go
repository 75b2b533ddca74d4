package fetcher

import (
	"strings"

	coreerrors "competitor-monitor-api/core/errors"
	"competitor-monitor-api/pkg/utils/text"
)

// Messages reported in ParsedPage.Error
const (
	MessageTimeout         = "Timed out waiting for the page to load"
	MessageNameNotResolved = "Could not find a site at the specified address"
	MessageRefused         = "Connection refused by the server"
	MessageConnectTimedOut = "Connection timed out"
	browserErrorPrefix     = "Browser error: "
	loadErrorPrefix        = "Error loading page: "
	maxErrorDetailLength   = 200
)

var browserCodes = []struct {
	code    string
	message string
}{
	{"ERR_NAME_NOT_RESOLVED", MessageNameNotResolved},
	{"ERR_CONNECTION_REFUSED", MessageRefused},
	{"ERR_CONNECTION_TIMED_OUT", MessageConnectTimedOut},
}

// Classify turns a fetch failure into the message stored on the page
func Classify(err error) string {
	if err == nil {
		return ""
	}
	if coreerrors.IsTimeout(err) {
		return MessageTimeout
	}

	detail := err.Error()
	if coreerrors.IsBrowser(err) {
		for _, c := range browserCodes {
			if strings.Contains(detail, c.code) {
				return c.message
			}
		}
		return browserErrorPrefix + text.Truncate(detail, maxErrorDetailLength)
	}
	return loadErrorPrefix + text.Truncate(detail, maxErrorDetailLength)
}
