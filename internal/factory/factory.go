// Package factory creates throwaway entities for test runs. Every helper
// fills in randomized required fields, creates the entity through the CLI
// client and registers a deletion with the cleaner, so suites can provision
// freely and tear everything down in one call.
package factory

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Kryndex/robottelo/internal/datafactory"
	"github.com/Kryndex/robottelo/internal/entities"
	"github.com/Kryndex/robottelo/pkg/hammer"
)

// Uploader places file content on the machine the CLI runs on. Template
// creation needs it because the tool reads template bodies from local
// paths.
type Uploader interface {
	Upload(ctx context.Context, path string, content []byte, mode os.FileMode) error
}

type Factory struct {
	client   *hammer.Client
	cleaner  *Cleaner
	uploader Uploader
	log      *zap.SugaredLogger
}

type Option func(*Factory)

// WithCleaner registers every created entity for deletion.
func WithCleaner(c *Cleaner) Option {
	return func(f *Factory) { f.cleaner = c }
}

// WithUploader enables helpers that need to stage files remotely.
func WithUploader(u Uploader) Option {
	return func(f *Factory) { f.uploader = u }
}

func New(client *hammer.Client, opts ...Option) *Factory {
	f := &Factory{client: client, log: zap.S().Named("factory")}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// make creates one entity and schedules its removal. Overrides win over
// the generated defaults.
func (f *Factory) make(ctx context.Context, ent *hammer.Entity, defaults, overrides hammer.Options) (hammer.Record, error) {
	opts := hammer.Options{}
	for k, v := range defaults {
		opts[k] = v
	}
	for k, v := range overrides {
		opts[k] = v
	}

	rec, err := ent.Create(ctx, opts)
	if err != nil {
		return nil, err
	}
	if f.cleaner != nil {
		if id := rec.Field("id"); id != "" {
			f.cleaner.Add(ent.Command(), func(ctx context.Context) error {
				return ent.Delete(ctx, hammer.Options{"id": id})
			})
		}
	}
	f.log.Debugw("created entity", "entity", ent.Command(), "id", rec.Field("id"))
	return rec, nil
}

func (f *Factory) MakeOrg(ctx context.Context, overrides hammer.Options) (hammer.Record, error) {
	return f.make(ctx, entities.Organization(f.client), hammer.Options{"name": datafactory.Name()}, overrides)
}

func (f *Factory) MakeUser(ctx context.Context, overrides hammer.Options) (hammer.Record, error) {
	defaults := hammer.Options{
		"login":          datafactory.Label(),
		"mail":           datafactory.Label() + "@example.com",
		"password":       datafactory.Label(),
		"auth-source-id": "1",
	}
	return f.make(ctx, entities.User(f.client), defaults, overrides)
}

func (f *Factory) MakeSubnet(ctx context.Context, overrides hammer.Options) (hammer.Record, error) {
	defaults := hammer.Options{
		"name":    datafactory.Name(),
		"network": "192.168.100.0",
		"mask":    "255.255.255.0",
	}
	return f.make(ctx, entities.Subnet(f.client), defaults, overrides)
}

func (f *Factory) MakeDomain(ctx context.Context, overrides hammer.Options) (hammer.Record, error) {
	return f.make(ctx, entities.Domain(f.client), hammer.Options{"name": datafactory.Label() + ".example.com"}, overrides)
}

func (f *Factory) MakeHostgroup(ctx context.Context, overrides hammer.Options) (hammer.Record, error) {
	return f.make(ctx, entities.Hostgroup(f.client), hammer.Options{"name": datafactory.Name()}, overrides)
}

func (f *Factory) MakeLocation(ctx context.Context, overrides hammer.Options) (hammer.Record, error) {
	return f.make(ctx, entities.Location(f.client), hammer.Options{"name": datafactory.Name()}, overrides)
}

func (f *Factory) MakeMedium(ctx context.Context, overrides hammer.Options) (hammer.Record, error) {
	defaults := hammer.Options{
		"name": datafactory.Name(),
		"path": "http://mirror.example.com/" + datafactory.Label(),
	}
	return f.make(ctx, entities.Medium(f.client), defaults, overrides)
}

// MakeTemplate stages the template body with the uploader when one is
// configured, otherwise it only passes the generated path along. The
// default body is the smallest accepted provisioning template.
func (f *Factory) MakeTemplate(ctx context.Context, overrides hammer.Options) (hammer.Record, error) {
	path := fmt.Sprintf("/tmp/robottelo-%s.erb", uuid.NewString())
	if f.uploader != nil {
		body := []byte("<%#\nname: " + datafactory.Name() + "\n%>\n")
		if err := f.uploader.Upload(ctx, path, body, 0o644); err != nil {
			return nil, err
		}
	}
	defaults := hammer.Options{
		"name": datafactory.Name(),
		"file": path,
		"type": "provision",
	}
	return f.make(ctx, entities.Template(f.client), defaults, overrides)
}

func (f *Factory) MakeComputeResource(ctx context.Context, overrides hammer.Options) (hammer.Record, error) {
	defaults := hammer.Options{
		"name":     datafactory.Name(),
		"provider": "Libvirt",
		"url":      "qemu+tcp://" + datafactory.Label() + ".example.com:16509/system",
	}
	return f.make(ctx, entities.ComputeResource(f.client), defaults, overrides)
}

func (f *Factory) MakeLifecycleEnvironment(ctx context.Context, overrides hammer.Options) (hammer.Record, error) {
	defaults := hammer.Options{
		"name":  datafactory.Name(),
		"prior": "Library",
	}
	return f.make(ctx, entities.LifecycleEnvironment(f.client), defaults, overrides)
}

func (f *Factory) MakeProxy(ctx context.Context, overrides hammer.Options) (hammer.Record, error) {
	defaults := hammer.Options{
		"name": datafactory.Name(),
		"url":  "https://" + datafactory.Label() + ".example.com:9090",
	}
	return f.make(ctx, entities.Proxy(f.client), defaults, overrides)
}
