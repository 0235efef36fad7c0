// Package featureflags reads boolean flags from the environment so features
// can ship dark and be switched on per deployment.
package featureflags

import (
	"os"
	"strconv"
	"strings"
)

// LiveStats turns on the websocket feed that keeps dashboard totals
// current without a reload.
const LiveStats = "live_stats"

// Enabled reports whether FLAG_<NAME> is set to a truthy value. Accepts
// the usual boolean spellings plus "yes" and "on".
func Enabled(name string) bool {
	raw := strings.ToLower(os.Getenv("FLAG_" + strings.ToUpper(name)))
	if raw == "yes" || raw == "on" {
		return true
	}
	enabled, err := strconv.ParseBool(raw)
	return err == nil && enabled
}
