package discord

import (
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/materials-commons/rosterbot/pkg/platform"
	"github.com/pkg/errors"
)

// JSON error codes that mean the target of a request is gone.
const (
	codeUnknownChannel = 10003
	codeUnknownMessage = 10008
	codeUnknownWebhook = 10015
)

// translate turns a discordgo error into a *platform.Error so callers can
// classify it without knowing about discordgo.
func translate(err error, op string, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}

	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return errors.Wrapf(err, format, args...)
	}

	perr := &platform.Error{Op: op}
	if restErr.Response != nil {
		perr.StatusCode = restErr.Response.StatusCode
	}

	if restErr.Message != nil {
		perr.Code = restErr.Message.Code
		perr.Message = restErr.Message.Message
	}

	switch {
	case perr.StatusCode == http.StatusNotFound:
		perr.Missing = true
	case perr.Code == codeUnknownChannel, perr.Code == codeUnknownMessage, perr.Code == codeUnknownWebhook:
		perr.Missing = true
	}

	return errors.Wrapf(perr, format, args...)
}
