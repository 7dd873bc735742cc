// Package hammertest is an in-memory stand-in for the remote management
// CLI. It implements the executor contract, keeps entities in plain maps,
// and renders responses in the same textual formats the real tool emits
// (key-value blocks, CSV listings, fixed-width tables, both help forms),
// so the decoding layer and the suites exercise realistic output without a
// live server.
package hammertest

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/Kryndex/robottelo/pkg/hammer"
	"github.com/Kryndex/robottelo/pkg/search"
)

// record is one stored entity: scalar fields plus relation attachments
// (relation keyword → child ids) and a parameter map.
type record struct {
	id        string
	fields    map[string]string
	relations map[string][]string
	params    map[string]string
}

func (r *record) get(field string) []string {
	if v, ok := r.fields[field]; ok {
		return []string{v}
	}
	return nil
}

// Server is the fake CLI endpoint. Safe for concurrent use.
type Server struct {
	mu       sync.Mutex
	nextID   int
	tables   map[string][]*record
	username string
	password string
}

type ServerOption func(*Server)

// WithCredentials makes the server reject invocations whose -u/-p flags
// do not match.
func WithCredentials(username, password string) ServerOption {
	return func(s *Server) {
		s.username = username
		s.password = password
	}
}

func NewServer(opts ...ServerOption) *Server {
	s := &Server{tables: map[string][]*record{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// relation keyword → the entity table its children live in
var relationTables = map[string]string{
	"config-template": "template",
	"smart-proxy":     "proxy",
}

// relation keyword → the label its attachments are listed under in info
var relationLabels = map[string]string{
	"subnet":                "Subnets",
	"user":                  "Users",
	"hostgroup":             "Hostgroups",
	"domain":                "Domains",
	"medium":                "Media",
	"config-template":       "Templates",
	"compute-resource":      "Compute Resources",
	"smart-proxy":           "Smart Proxies",
	"location":              "Locations",
	"lifecycle-environment": "Lifecycle Environments",
	"organization":          "Organizations",
	"role":                  "Roles",
}

func relationTable(relation string) string {
	if t, ok := relationTables[relation]; ok {
		return t
	}
	return relation
}

// Execute dispatches one parsed invocation. The returned Result mirrors
// the real tool: structured stdout on success, a non-zero exit status plus
// stderr text on rejection.
func (s *Server) Execute(_ context.Context, args []string) (*hammer.Result, error) {
	inv, err := parseArgs(args)
	if err != nil {
		return fail(64, err.Error()), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.username != "" && (inv.username != s.username || inv.password != s.password) {
		return fail(129, "Invalid username or password."), nil
	}

	if inv.help {
		return s.helpText(inv), nil
	}

	switch {
	case inv.action == "create":
		return s.create(inv), nil
	case inv.action == "info":
		return s.info(inv), nil
	case inv.action == "list":
		return s.list(inv), nil
	case inv.action == "update":
		return s.update(inv), nil
	case inv.action == "delete":
		return s.del(inv), nil
	case strings.HasPrefix(inv.action, "add-"):
		return s.relationChange(inv, strings.TrimPrefix(inv.action, "add-"), true), nil
	case strings.HasPrefix(inv.action, "remove-"):
		return s.relationChange(inv, strings.TrimPrefix(inv.action, "remove-"), false), nil
	case inv.action == "set-parameter":
		return s.setParameter(inv), nil
	case inv.action == "delete-parameter":
		return s.deleteParameter(inv), nil
	default:
		return fail(64, fmt.Sprintf("Error: no such sub-command '%s'.", inv.action)), nil
	}
}

func fail(status int, msg string) *hammer.Result {
	return &hammer.Result{ExitStatus: status, Stderr: []string{msg}}
}

func ok(lines []string) *hammer.Result {
	return &hammer.Result{ExitStatus: 0, Stdout: lines}
}

// ---- actions ----

var scalarFields = []string{"name", "login", "label", "description", "network", "mask"}

func (s *Server) create(inv *invocation) *hammer.Result {
	nameField := "name"
	if inv.entity == "user" {
		nameField = "login"
	}
	name := inv.flags[nameField]
	if reason := invalidValue(name); reason != "" {
		return fail(70, fmt.Sprintf("Validation failed: %s %s", titleKey(nameField), reason))
	}
	if s.find(inv.entity, "", name) != nil {
		return fail(70, fmt.Sprintf("Validation failed: %s has already been taken", titleKey(nameField)))
	}
	if label, ok := inv.flags["label"]; ok {
		if reason := invalidLabel(label); reason != "" {
			return fail(70, fmt.Sprintf("Validation failed: Label %s", reason))
		}
	}
	if desc, ok := inv.flags["description"]; ok {
		if len(desc) > 255 {
			return fail(70, "Validation failed: Description is too long (maximum is 255 characters)")
		}
	}

	s.nextID++
	rec := &record{
		id:        strconv.Itoa(s.nextID),
		fields:    map[string]string{"id": strconv.Itoa(s.nextID)},
		relations: map[string][]string{},
		params:    map[string]string{},
	}
	for _, f := range scalarFields {
		if v, ok := inv.flags[f]; ok {
			rec.fields[f] = v
		}
	}
	if inv.entity == "organization" {
		if _, ok := rec.fields["label"]; !ok {
			rec.fields["label"] = labelFromName(name)
		}
	}
	s.tables[inv.entity] = append(s.tables[inv.entity], rec)

	return ok(s.renderInfo(inv.entity, rec))
}

func (s *Server) info(inv *invocation) *hammer.Result {
	rec, errRes := s.locate(inv)
	if errRes != nil {
		return errRes
	}
	return ok(s.renderInfo(inv.entity, rec))
}

func (s *Server) list(inv *invocation) *hammer.Result {
	var matcher search.Expression
	if query := inv.flags["search"]; query != "" {
		expr, err := search.Parse([]byte(query))
		if err != nil {
			return fail(64, fmt.Sprintf("Error: %v", err))
		}
		matcher = expr
	}

	var rows [][]string
	for _, rec := range s.tables[inv.entity] {
		if matcher != nil && !search.Matches(matcher, rec.get) {
			continue
		}
		rows = append(rows, []string{rec.id, s.displayName(rec), rec.fields["description"]})
	}

	headers := []string{"Id", "Name", "Description"}
	if inv.format == hammer.FormatTable {
		return ok(hammer.EncodeTable(headers, rows))
	}

	lines := []string{strings.Join(headers, ",")}
	for _, row := range rows {
		lines = append(lines, csvLine(row))
	}
	return ok(lines)
}

func (s *Server) update(inv *invocation) *hammer.Result {
	rec, errRes := s.locate(inv)
	if errRes != nil {
		return errRes
	}
	if newName, ok := inv.flags["new-name"]; ok {
		if reason := invalidValue(newName); reason != "" {
			return fail(70, fmt.Sprintf("Validation failed: Name %s", reason))
		}
		rec.fields["name"] = newName
	}
	for _, f := range []string{"description", "network", "mask"} {
		if v, ok := inv.flags[f]; ok {
			rec.fields[f] = v
		}
	}
	return ok([]string{fmt.Sprintf("%s updated.", titleKey(inv.entity))})
}

func (s *Server) del(inv *invocation) *hammer.Result {
	rec, errRes := s.locate(inv)
	if errRes != nil {
		return errRes
	}
	table := s.tables[inv.entity]
	for i, r := range table {
		if r == rec {
			s.tables[inv.entity] = append(table[:i], table[i+1:]...)
			break
		}
	}
	return ok([]string{fmt.Sprintf("%s deleted.", titleKey(inv.entity))})
}

func (s *Server) relationChange(inv *invocation, relation string, add bool) *hammer.Result {
	parent, errRes := s.locate(inv)
	if errRes != nil {
		return errRes
	}

	childTable := relationTable(relation)
	child := s.find(childTable, inv.flags[relation+"-id"], inv.flags[relation])
	if child == nil {
		return fail(70, fmt.Sprintf("Could not find %s", relation))
	}

	attached := parent.relations[relation]
	if add {
		for _, id := range attached {
			if id == child.id {
				return ok([]string{"The " + relation + " has been added."})
			}
		}
		parent.relations[relation] = append(attached, child.id)
		return ok([]string{"The " + relation + " has been added."})
	}

	for i, id := range attached {
		if id == child.id {
			parent.relations[relation] = append(attached[:i], attached[i+1:]...)
			return ok([]string{"The " + relation + " has been removed."})
		}
	}
	return fail(70, fmt.Sprintf("Could not find %s", relation))
}

func (s *Server) setParameter(inv *invocation) *hammer.Result {
	parent, errRes := s.locateParent(inv)
	if errRes != nil {
		return errRes
	}
	name := inv.flags["name"]
	if name == "" {
		return fail(64, "Error: Option '--name' is required.")
	}
	parent.params[name] = inv.flags["value"]
	return ok([]string{"Parameter [" + name + "] created."})
}

func (s *Server) deleteParameter(inv *invocation) *hammer.Result {
	parent, errRes := s.locateParent(inv)
	if errRes != nil {
		return errRes
	}
	name := inv.flags["name"]
	if _, ok := parent.params[name]; !ok {
		return fail(70, "Could not find parameter "+name)
	}
	delete(parent.params, name)
	return ok([]string{"Parameter [" + name + "] deleted."})
}

// ---- lookup helpers ----

// locate resolves the entity addressed by --id or --name (--login for
// users), the standard identifier pair.
func (s *Server) locate(inv *invocation) (*record, *hammer.Result) {
	name := inv.flags["name"]
	if inv.entity == "user" && name == "" {
		name = inv.flags["login"]
	}
	rec := s.find(inv.entity, inv.flags["id"], name)
	if rec == nil && inv.flags["label"] != "" {
		for _, cand := range s.tables[inv.entity] {
			if cand.fields["label"] == inv.flags["label"] {
				rec = cand
				break
			}
		}
	}
	if rec == nil {
		return nil, fail(70, fmt.Sprintf("%s not found.", titleKey(inv.entity)))
	}
	return rec, nil
}

// locateParent resolves the --<entity>/--<entity>-id pair used by
// parameter actions (`set-parameter --organization <name>`).
func (s *Server) locateParent(inv *invocation) (*record, *hammer.Result) {
	rec := s.find(inv.entity, inv.flags[inv.entity+"-id"], inv.flags[inv.entity])
	if rec == nil {
		return nil, fail(70, fmt.Sprintf("%s not found.", titleKey(inv.entity)))
	}
	return rec, nil
}

func (s *Server) find(table, id, name string) *record {
	for _, rec := range s.tables[table] {
		if id != "" && rec.id == id {
			return rec
		}
		if name != "" && (rec.fields["name"] == name || rec.fields["login"] == name) {
			return rec
		}
	}
	return nil
}

func (s *Server) displayName(rec *record) string {
	if n, ok := rec.fields["name"]; ok {
		return n
	}
	return rec.fields["login"]
}

// ---- rendering ----

func (s *Server) renderInfo(entity string, rec *record) []string {
	lines := []string{"Id: " + rec.id}
	for _, f := range scalarFields {
		if v, ok := rec.fields[f]; ok {
			lines = append(lines, titleKey(f)+": "+v)
		}
	}
	relations := make([]string, 0, len(rec.relations))
	for relation := range rec.relations {
		relations = append(relations, relation)
	}
	sort.Strings(relations)
	for _, relation := range relations {
		label := relationLabels[relation]
		for _, id := range rec.relations[relation] {
			if child := s.find(relationTable(relation), id, ""); child != nil {
				lines = append(lines, label+": "+s.displayName(child))
			}
		}
	}
	params := make([]string, 0, len(rec.params))
	for name := range rec.params {
		params = append(params, name)
	}
	sort.Strings(params)
	for _, name := range params {
		lines = append(lines, "Parameters: "+name+" => "+rec.params[name])
	}
	return lines
}

func csvLine(row []string) string {
	quoted := make([]string, len(row))
	for i, cell := range row {
		if strings.ContainsAny(cell, ",\"\n") {
			cell = `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
		}
		quoted[i] = cell
	}
	return strings.Join(quoted, ",")
}

func titleKey(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "-", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func labelFromName(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
		case r == ' ':
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

func invalidValue(v string) string {
	switch {
	case strings.TrimSpace(v) == "":
		return "can't be blank"
	case len(v) > 255:
		return "is too long (maximum is 255 characters)"
	default:
		return ""
	}
}

func invalidLabel(label string) string {
	if strings.TrimSpace(label) == "" {
		return "can't be blank"
	}
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return "must be alphanumeric"
		}
	}
	return ""
}
