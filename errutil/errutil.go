package errutil

import (
	"fmt"
	"os"
)

var debug = os.Getenv("DEBUG") == "1"

// SetDebug switches invariant checking on or off and returns the previous setting.
func SetDebug(on bool) bool {
	prev := debug
	debug = on
	return prev
}

func First(errs ...error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

func Bug(format string, msg ...any) {
	if debug {
		panic(fmt.Sprintf(format, msg...))
	}
}
