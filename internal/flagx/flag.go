// Package flagx helps several independent flag sets share one command line.
// Each config layer picks the flags it owns out of os.Args and ignores the rest.
package flagx

import (
	"flag"
	"io"
	"os"
	"slices"
	"strings"
)

// FilterArgs keeps only the flags listed in allowed (with their values) and
// drops everything else. Both "-f value" and "-f=value" forms are understood;
// a token that starts with "-" is never taken as a value.
func FilterArgs(args []string, allowed ...string) []string {
	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if slices.Contains(allowed, name) {
				filtered = append(filtered, arg)
			}
			continue
		}

		if !slices.Contains(allowed, arg) {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigPath returns the JSON config file given with -c or -config in
// os.Args, or "" when none was passed. The last occurrence wins.
func ConfigPath() string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(FilterArgs(os.Args[1:], "-c", "-config"))

	return path
}
