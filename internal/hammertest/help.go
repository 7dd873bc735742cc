package hammertest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Kryndex/robottelo/pkg/hammer"
)

// helpOption is one entry under the Options: heading. Long descriptions
// spill onto indented continuation lines, like the real tool wraps them.
type helpOption struct {
	flag string
	desc []string
}

func actionOptions(inv *invocation) []helpOption {
	switch {
	case inv.action == "create":
		return []helpOption{
			{"--description DESCRIPTION", []string{"Description of the " + inv.entity}},
			{"--label LABEL", []string{"Unique label, cannot be changed", "after creation"}},
			{"--name NAME", []string{"Name of the " + inv.entity}},
		}
	case inv.action == "info":
		return []helpOption{
			{"--fields FIELDS", []string{"Show only the given fields"}},
			{"--id ID", []string{"Numeric identifier"}},
			{"--name NAME", []string{"Search by name"}},
		}
	case inv.action == "update":
		return []helpOption{
			{"--description DESCRIPTION", []string{"Description of the " + inv.entity}},
			{"--id ID", []string{"Numeric identifier"}},
			{"--name NAME", []string{"Search by name"}},
			{"--new-name NEW_NAME", []string{"New name for the " + inv.entity}},
		}
	case inv.action == "delete":
		return []helpOption{
			{"--id ID", []string{"Numeric identifier"}},
			{"--name NAME", []string{"Search by name"}},
		}
	case strings.HasPrefix(inv.action, "add-"), strings.HasPrefix(inv.action, "remove-"):
		relation := strings.TrimPrefix(strings.TrimPrefix(inv.action, "add-"), "remove-")
		upper := strings.ToUpper(strings.ReplaceAll(relation, "-", "_"))
		return []helpOption{
			{"--id ID", []string{"Numeric identifier of the " + inv.entity}},
			{"--name NAME", []string{"Name of the " + inv.entity}},
			{"--" + relation + " " + upper, []string{"Name of the " + relation + " to attach"}},
			{"--" + relation + "-id " + upper + "_ID", []string{"Numeric identifier of the " + relation}},
		}
	case inv.action == "set-parameter":
		return []helpOption{
			{"--name NAME", []string{"Parameter name"}},
			{"--" + inv.entity + " " + strings.ToUpper(inv.entity), []string{"Owning " + inv.entity + " name"}},
			{"--value VALUE", []string{"Parameter value"}},
		}
	case inv.action == "delete-parameter":
		return []helpOption{
			{"--name NAME", []string{"Parameter name"}},
			{"--" + inv.entity + " " + strings.ToUpper(inv.entity), []string{"Owning " + inv.entity + " name"}},
		}
	default:
		return nil
	}
}

// helpText renders `<entity> <action> --help`. The list action keeps the
// flat one-option-per-line form; every other action uses the sectioned
// form with an Options: heading and wrapped descriptions.
func (s *Server) helpText(inv *invocation) *hammer.Result {
	usage := "Usage:"
	invoke := fmt.Sprintf("    hammer %s %s [OPTIONS]", inv.entity, inv.action)

	if inv.action == "list" {
		lines := []string{
			usage,
			invoke,
			"--order ORDER                 Sort results",
			"--page PAGE                   Paginate results",
			"--per-page PER_PAGE           Number of entries per request",
			"--search SEARCH               Filter results",
			"-h, --help                    Print help",
		}
		return ok(lines)
	}

	opts := actionOptions(inv)
	if opts == nil {
		return fail(64, fmt.Sprintf("Error: no such sub-command '%s'.", inv.action))
	}
	sort.Slice(opts, func(i, j int) bool { return opts[i].flag < opts[j].flag })

	lines := []string{usage, invoke, "", "Options:"}
	for _, opt := range opts {
		lines = append(lines, " "+opt.flag+strings.Repeat(" ", max(1, 34-len(opt.flag)))+opt.desc[0])
		for _, cont := range opt.desc[1:] {
			lines = append(lines, strings.Repeat(" ", 36)+cont)
		}
	}
	lines = append(lines, " -h, --help"+strings.Repeat(" ", 24)+"Print help")
	return ok(lines)
}
