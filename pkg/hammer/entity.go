package hammer

import (
	"context"
	"fmt"
	"regexp"

	"github.com/Kryndex/robottelo/pkg/errors"
	"github.com/Kryndex/robottelo/pkg/search"
)

// FieldDecoder post-processes the raw values of one field. Used where an
// entity deviates from the flat key-value shape, e.g. organization
// parameters decoding into a nested name→value mapping.
type FieldDecoder func(values []string) (any, error)

// Descriptor parameterizes the generic entity surface: the CLI keyword,
// the relation actions this entity supports, and any field decoding
// overrides. Entities differ only by their descriptor; there is no
// per-entity subclassing.
type Descriptor struct {
	Command       string
	Relations     []string
	FieldDecoders map[string]FieldDecoder
}

var keywordRe = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Entity is the uniform command surface (create, info, list, update,
// delete, exists, add/remove relation) for one entity kind.
type Entity struct {
	client    *Client
	desc      Descriptor
	relations map[string]struct{}
}

// NewEntity validates the descriptor and binds it to a client. The
// relation registry is checked here, at construction, so a malformed or
// duplicate relation keyword is a startup failure rather than a surprise
// inside a test.
func NewEntity(client *Client, desc Descriptor) (*Entity, error) {
	if !keywordRe.MatchString(desc.Command) {
		return nil, fmt.Errorf("invalid entity keyword %q", desc.Command)
	}
	relations := make(map[string]struct{}, len(desc.Relations))
	for _, r := range desc.Relations {
		if !keywordRe.MatchString(r) {
			return nil, fmt.Errorf("entity %q: invalid relation keyword %q", desc.Command, r)
		}
		if _, dup := relations[r]; dup {
			return nil, fmt.Errorf("entity %q: duplicate relation %q", desc.Command, r)
		}
		relations[r] = struct{}{}
	}
	return &Entity{client: client, desc: desc, relations: relations}, nil
}

// MustEntity is NewEntity for statically-declared descriptors.
func MustEntity(client *Client, desc Descriptor) *Entity {
	e, err := NewEntity(client, desc)
	if err != nil {
		panic(err)
	}
	return e
}

// Command returns the entity's CLI keyword.
func (e *Entity) Command() string {
	return e.desc.Command
}

// Create runs the create action and returns the decoded record of the new
// entity.
func (e *Entity) Create(ctx context.Context, opts Options) (Record, error) {
	out, err := e.run(ctx, "create", opts, FormatBase)
	if err != nil {
		return nil, err
	}
	return e.decodeRecord(out)
}

// Info fetches one entity, addressed by id or name, as a decoded record.
// Every call re-queries the remote system; nothing is cached.
func (e *Entity) Info(ctx context.Context, opts Options) (Record, error) {
	out, err := e.run(ctx, "info", opts, FormatBase)
	if err != nil {
		return nil, err
	}
	return e.decodeRecord(out)
}

// List runs the list action and decodes the CSV response, one record per
// row. A "search" option is parsed and canonicalized locally first, so a
// malformed query fails with a position instead of a server error.
func (e *Entity) List(ctx context.Context, opts Options) ([]Record, error) {
	opts, err := normalizeSearch(opts)
	if err != nil {
		return nil, err
	}
	out, err := e.run(ctx, "list", opts, FormatCSV)
	if err != nil {
		return nil, err
	}
	return DecodeCSV(out)
}

// ListTable is List through the fixed-width table format. Only alignment
// checks want this; everything else reads the CSV form.
func (e *Entity) ListTable(ctx context.Context, opts Options) ([]Record, error) {
	opts, err := normalizeSearch(opts)
	if err != nil {
		return nil, err
	}
	out, err := e.run(ctx, "list", opts, FormatTable)
	if err != nil {
		return nil, err
	}
	return DecodeTable(out)
}

// Update runs the update action. The tool acknowledges with a message, not
// a record; callers re-query with Info when they need the new state.
func (e *Entity) Update(ctx context.Context, opts Options) error {
	_, err := e.run(ctx, "update", opts, FormatBase)
	return err
}

// Delete removes the entity addressed by the identifying options.
func (e *Entity) Delete(ctx context.Context, opts Options) error {
	_, err := e.run(ctx, "delete", opts, FormatBase)
	return err
}

// Exists probes for an entity with field equal to value. Zero matches is a
// valid negative result, not an error; with several matches the first
// record is returned and disambiguation is the caller's concern.
func (e *Entity) Exists(ctx context.Context, field, value string) (Record, bool, error) {
	records, err := e.List(ctx, Options{"search": search.Eq(field, value)})
	if err != nil {
		return nil, false, err
	}
	if len(records) == 0 {
		return nil, false, nil
	}
	return records[0], true, nil
}

// AddRelation attaches a child entity to this one. The child may be
// addressed by keyword option (name) or "<keyword>-id", the parent by
// "name" or "id"; all four combinations build through the same path.
func (e *Entity) AddRelation(ctx context.Context, relation string, opts Options) error {
	return e.relationAction(ctx, "add-", relation, opts)
}

// RemoveRelation detaches a child entity, accepting the same four
// identifier combinations as AddRelation.
func (e *Entity) RemoveRelation(ctx context.Context, relation string, opts Options) error {
	return e.relationAction(ctx, "remove-", relation, opts)
}

func (e *Entity) relationAction(ctx context.Context, verb, relation string, opts Options) error {
	if _, ok := e.relations[relation]; !ok {
		return errors.NewUnknownRelationError(e.desc.Command, relation)
	}
	_, err := e.run(ctx, verb+relation, opts, FormatBase)
	return err
}

// Action runs an additional entity action outside the CRUD set, such as
// set-parameter. The tool acknowledges with a message; nothing is decoded.
func (e *Entity) Action(ctx context.Context, action string, opts Options) error {
	if !keywordRe.MatchString(action) {
		return fmt.Errorf("invalid action %q", action)
	}
	_, err := e.run(ctx, action, opts, FormatBase)
	return err
}

// Help requests the tool's self-documentation for one action. The list
// form decodes to literal lines, every other form to named option entries;
// the two shapes are genuinely different on the wire.
func (e *Entity) Help(ctx context.Context, action string) (*Help, error) {
	out, err := e.run(ctx, action, Options{HelpOption: true}, FormatBase)
	if err != nil {
		return nil, err
	}
	if action == "list" {
		return DecodeListHelp(out)
	}
	return DecodeInfoHelp(out)
}

func (e *Entity) run(ctx context.Context, action string, opts Options, format Format) ([]string, error) {
	return e.client.run(ctx, e.client.invocation(e.desc.Command, action, opts, format))
}

func (e *Entity) decodeRecord(lines []string) (Record, error) {
	rec, err := DecodeKeyValue(lines)
	if err != nil {
		return nil, err
	}
	for key, decode := range e.desc.FieldDecoders {
		if _, ok := rec[key]; !ok {
			continue
		}
		v, err := decode(rec.List(key))
		if err != nil {
			return nil, err
		}
		rec[key] = v
	}
	return rec, nil
}

func normalizeSearch(opts Options) (Options, error) {
	query, ok := opts["search"].(string)
	if !ok || query == "" {
		return opts, nil
	}
	normalized, err := search.Normalize(query)
	if err != nil {
		return nil, err
	}
	out := make(Options, len(opts))
	for k, v := range opts {
		out[k] = v
	}
	out["search"] = normalized
	return out, nil
}
