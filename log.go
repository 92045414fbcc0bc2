package decimater

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
)

// debugLevel reads DUV_DEBUG_LEVEL the way nat-n-shapeset's debug_level()
// reads DEBUG_LEVEL: unparsable or unset collapses to 0 (quiet).
func debugLevel() int64 {
	level, _ := strconv.ParseInt(os.Getenv("DUV_DEBUG_LEVEL"), 10, 64)
	return level
}

// assertf panics with a red-colored message when validity() is false and
// DUV_DEBUG_LEVEL >= 1. At debug level 0 it is a no-op, matching the
// teacher's assert() gating invariant checks behind the same env var.
func assertf(statement string, validity func() bool) {
	if debugLevel() < 1 {
		return
	}
	if !validity() {
		fmt.Print("\a")
		red := color.New(color.FgRed).SprintFunc()
		panic(red("Assertion failed: " + statement))
	}
}

// logProgress prints collapse-loop progress at DUV_DEBUG_LEVEL>=1, mirroring
// borders_simplify.go's simplification-goal progress prints.
func logProgress(format string, args ...interface{}) {
	if debugLevel() < 1 {
		return
	}
	fmt.Println(fmt.Sprintf(format, args...))
}
