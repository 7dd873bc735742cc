// Package runner drives a self-contained acceptance pass against a live
// target: it provisions disposable entities, walks them through the CLI
// surface (info, search, relations, parameters, help) and reports each
// step's outcome. All created entities are removed through the cleaner.
package runner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Kryndex/robottelo/internal/entities"
	"github.com/Kryndex/robottelo/internal/factory"
	"github.com/Kryndex/robottelo/pkg/hammer"
)

// Step is one named check and its outcome.
type Step struct {
	Name     string
	Err      error
	Duration time.Duration
}

type Report struct {
	Steps []Step
}

func (r *Report) Failed() int {
	n := 0
	for _, s := range r.Steps {
		if s.Err != nil {
			n++
		}
	}
	return n
}

func (r *Report) Passed() int {
	return len(r.Steps) - r.Failed()
}

type Runner struct {
	client  *hammer.Client
	factory *factory.Factory
	cleaner *factory.Cleaner
	log     *zap.SugaredLogger
}

func New(client *hammer.Client, workers int) *Runner {
	cleaner := factory.NewCleaner(workers)
	return &Runner{
		client:  client,
		factory: factory.New(client, factory.WithCleaner(cleaner)),
		cleaner: cleaner,
		log:     zap.S().Named("runner"),
	}
}

// Close reaps everything the run created and shuts the cleanup pool down.
func (r *Runner) Close(ctx context.Context) error {
	defer r.cleaner.Close()
	return r.cleaner.Run(ctx)
}

func (rep *Report) step(log *zap.SugaredLogger, name string, fn func() error) {
	start := time.Now()
	err := fn()
	d := time.Since(start)
	if err != nil {
		log.Warnw("step failed", "step", name, "error", err, "duration", d)
	} else {
		log.Debugw("step passed", "step", name, "duration", d)
	}
	rep.Steps = append(rep.Steps, Step{Name: name, Err: err, Duration: d})
}

// Smoke runs the organization scenario end to end. Steps keep going after
// a failure so one broken action does not hide the rest of the surface.
func (r *Runner) Smoke(ctx context.Context) *Report {
	rep := &Report{}
	ent := entities.Organization(r.client)

	var org hammer.Record
	rep.step(r.log, "organization create", func() error {
		rec, err := r.factory.MakeOrg(ctx, nil)
		if err != nil {
			return err
		}
		org = rec
		return nil
	})
	if org == nil {
		return rep
	}
	id := org.Field("id")

	rep.step(r.log, "organization info", func() error {
		rec, err := ent.Info(ctx, hammer.Options{"id": id})
		if err != nil {
			return err
		}
		if got := rec.Field("name"); got != org.Field("name") {
			return fmt.Errorf("info returned name %q, created %q", got, org.Field("name"))
		}
		return nil
	})

	rep.step(r.log, "organization update", func() error {
		if err := ent.Update(ctx, hammer.Options{"id": id, "description": "smoke run"}); err != nil {
			return err
		}
		rec, err := ent.Info(ctx, hammer.Options{"id": id})
		if err != nil {
			return err
		}
		if rec.Field("description") != "smoke run" {
			return fmt.Errorf("description not updated, got %q", rec.Field("description"))
		}
		return nil
	})

	rep.step(r.log, "organization search", func() error {
		rec, found, err := ent.Exists(ctx, "name", org.Field("name"))
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("organization %q not found by search", org.Field("name"))
		}
		if rec.Field("id") != id {
			return fmt.Errorf("search matched id %q, created %q", rec.Field("id"), id)
		}
		return nil
	})

	rep.step(r.log, "organization user relation", func() error {
		user, err := r.factory.MakeUser(ctx, nil)
		if err != nil {
			return err
		}
		login := user.Field("login")
		if err := ent.AddRelation(ctx, "user", hammer.Options{"id": id, "user": login}); err != nil {
			return err
		}
		rec, err := ent.Info(ctx, hammer.Options{"id": id})
		if err != nil {
			return err
		}
		if !contains(rec.List("users"), login) {
			return fmt.Errorf("user %q not attached after add", login)
		}
		return ent.RemoveRelation(ctx, "user", hammer.Options{"id": id, "user": login})
	})

	rep.step(r.log, "organization parameter", func() error {
		opts := hammer.Options{"organization-id": id, "name": "smoke", "value": "1"}
		if err := ent.Action(ctx, "set-parameter", opts); err != nil {
			return err
		}
		return ent.Action(ctx, "delete-parameter", hammer.Options{"organization-id": id, "name": "smoke"})
	})

	rep.step(r.log, "organization help", func() error {
		help, err := ent.Help(ctx, "info")
		if err != nil {
			return err
		}
		if dup := firstDuplicate(help.Options); dup != "" {
			return fmt.Errorf("info help lists option %q twice", dup)
		}
		listHelp, err := ent.Help(ctx, "list")
		if err != nil {
			return err
		}
		if dup := firstDuplicate(listHelp.Lines); dup != "" {
			return fmt.Errorf("list help repeats line %q", dup)
		}
		return nil
	})

	return rep
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func firstDuplicate(values []string) string {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			return v
		}
		seen[v] = struct{}{}
	}
	return ""
}
