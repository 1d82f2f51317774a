package cli

import "errors"

var (
	errConfigNotFound  = errors.New("cli: config file not found")
	errConfigRead      = errors.New("cli: could not read config file")
	errConfigInvalid   = errors.New("cli: invalid config file")
	errBadReplaceEntry = errors.New("cli: malformed --replace entry")
	errUnknownFormat   = errors.New("cli: unknown --format value")
	errMissingArgs     = errors.New("cli: missing arguments")
	errUnknownCommand  = errors.New("cli: unknown command")
)
