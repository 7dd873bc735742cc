package hammer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Format selects the output representation requested from the tool and the
// decoder branch applied to the response.
type Format string

const (
	// FormatBase is the default key-value block format.
	FormatBase Format = "base"
	// FormatCSV is used for list actions.
	FormatCSV Format = "csv"
	// FormatTable is only requested by alignment checks; everyday listing
	// goes through FormatCSV.
	FormatTable Format = "table"
)

// Options maps option names (dash-separated tokens such as "subnet-id") to
// values. Accepted value types: string, bool, int, []string and
// fmt.Stringer; anything else is formatted with %v.
//
// Multi-value options are serialized as a single flag occurrence with the
// values comma-joined (--subnet-ids 1,2,3), the convention the tool expects
// for every entity. A true bool emits a bare flag, a false bool is omitted.
// The reserved key "help" short-circuits the whole invocation into a
// self-documentation request for the entity/action pair.
type Options map[string]any

// HelpOption is the reserved option key requesting self-documentation.
const HelpOption = "help"

// Help reports whether the options request the tool's help text.
func (o Options) Help() bool {
	v, ok := o[HelpOption].(bool)
	return ok && v
}

func optionValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case []string:
		return strings.Join(v, ",")
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Invocation is one fully-described CLI call prior to execution. It is
// built fresh per operation and never mutated afterwards; building it has
// no side effects.
type Invocation struct {
	Binary   string
	Username string
	Password string
	Entity   string
	Action   string
	Options  Options
	Format   Format
}

// Args produces the exact argument vector the remote tool expects. Option
// order is deterministic (sorted by name) so journals and logs stay
// comparable across runs.
func (inv Invocation) Args() []string {
	args := []string{inv.Binary}
	if inv.Username != "" {
		args = append(args, "-u", inv.Username)
	}
	if inv.Password != "" {
		args = append(args, "-p", inv.Password)
	}

	if inv.Options.Help() {
		return append(args, inv.Entity, inv.Action, "--help")
	}

	args = append(args, "--output", string(inv.Format), inv.Entity, inv.Action)

	keys := make([]string, 0, len(inv.Options))
	for k := range inv.Options {
		if k == HelpOption {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := inv.Options[k]
		if v == nil {
			continue
		}
		if b, ok := v.(bool); ok {
			if b {
				args = append(args, "--"+k)
			}
			continue
		}
		args = append(args, "--"+k, optionValue(v))
	}
	return args
}

// String renders the invocation as a single shell command line with
// minimal quoting, suitable for logging and for transports that take a
// command string.
func (inv Invocation) String() string {
	return QuoteArgs(inv.Args())
}

// QuoteArgs joins an argument vector into a shell command line, quoting
// arguments containing shell metacharacters.
func QuoteArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = quoteArg(a)
	}
	return strings.Join(quoted, " ")
}

func quoteArg(a string) string {
	if a == "" {
		return "''"
	}
	if !strings.ContainsAny(a, " \t\n\"'\\$&|;<>()*?#~`") {
		return a
	}
	return "'" + strings.ReplaceAll(a, "'", `'"'"'`) + "'"
}
