package hammertest

import (
	"fmt"
	"strings"

	"github.com/Kryndex/robottelo/pkg/hammer"
)

// invocation is one parsed command line, the server-side mirror of what
// the builder assembles.
type invocation struct {
	username string
	password string
	format   hammer.Format
	entity   string
	action   string
	help     bool
	flags    map[string]string
}

func parseArgs(args []string) (*invocation, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("Error: no command given.")
	}
	inv := &invocation{format: hammer.FormatBase, flags: map[string]string{}}

	i := 1
	for i < len(args) {
		arg := args[i]
		switch {
		case arg == "-u":
			inv.username = optionValue(args, &i)
		case arg == "-p":
			inv.password = optionValue(args, &i)
		case arg == "--output":
			inv.format = hammer.Format(optionValue(args, &i))
		case arg == "--help":
			inv.help = true
			i++
		case strings.HasPrefix(arg, "--"):
			key := strings.TrimPrefix(arg, "--")
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "--") {
				inv.flags[key] = args[i+1]
				i += 2
			} else {
				inv.flags[key] = "true"
				i++
			}
		case inv.entity == "":
			inv.entity = arg
			i++
		case inv.action == "":
			inv.action = arg
			i++
		default:
			return nil, fmt.Errorf("Error: unexpected argument '%s'.", arg)
		}
	}

	if inv.entity == "" || inv.action == "" {
		return nil, fmt.Errorf("Error: no command given.")
	}
	return inv, nil
}

func optionValue(args []string, i *int) string {
	if *i+1 >= len(args) {
		*i++
		return ""
	}
	v := args[*i+1]
	*i += 2
	return v
}
