package terrain

import (
	"errors"
	"fmt"
	"strings"
)

func errMissingArg(names ...string) error {
	return fmt.Errorf("missing argument(s): %s", strings.Join(names, ", "))
}

func errBadNumber(s string) error {
	return fmt.Errorf("%q is not a valid number", s)
}

func errBadTuple(s string) error {
	return fmt.Errorf("%q is not a valid comma-separated tuple", s)
}

func errUnknownCommand(name string) error {
	return fmt.Errorf("unknown command %q", name)
}

var errEmptyTemplate = errors.New("template contains no commands")
