package cli

import "errors"

var (
	errUnknownCommand  = errors.New("unknown command")
	errMissingAddress  = errors.New("device address is required")
	errMissingArgument = errors.New("missing argument")
)
