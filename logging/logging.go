/*package logging controls how much the halo model computations report
through the standard logger.
*/
package logging

import (
	"fmt"
	"runtime"
	"strings"
)

type Flag int

const (
	// Nil turns logging off.
	Nil Flag = iota
	// Performance logs the run time and memory use of each full model
	// evaluation.
	Performance
	// Debug logs intermediate quantities, such as how many masses host
	// axion halos.
	Debug
)

// This is handled this way so that a config doesn't need to be passed to
// literally every function in the project. Set it once, before starting any
// computations.
var (
	Mode Flag = Nil
)

func (f Flag) String() string {
	switch f {
	case Nil:
		return "nil"
	case Performance:
		return "performance"
	case Debug:
		return "debug"
	}
	return fmt.Sprintf("Flag(%d)", int(f))
}

// ParseFlag converts the name of a logging mode, as returned by Flag.String,
// into a Flag. The empty string is Nil.
func ParseFlag(s string) (Flag, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nil":
		return Nil, nil
	case "performance":
		return Performance, nil
	case "debug":
		return Debug, nil
	}
	return Nil, fmt.Errorf("logging: I don't recognize the mode '%s'", s)
}

// MemString returns a string containing various statistics on the current
// memory usage.
func MemString() string {
	ms := runtime.MemStats{}
	runtime.ReadMemStats(&ms)
	return fmt.Sprintf(
		"Alloc - %d MB; Sys - %d MB Integrated - %d MB",
		ms.Alloc>>20, ms.Sys>>20, ms.TotalAlloc>>20,
	)
}
