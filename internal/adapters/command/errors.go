package command

import "errors"

// Sentinel kinds for command errors.
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArguments   = errors.New("bad arguments")
)
