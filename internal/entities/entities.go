// Package entities declares the concrete entity descriptors: the CLI
// keyword, the relations each entity supports, and field decoding
// overrides where an entity deviates from the flat key-value shape.
// Everything else is the generic surface in pkg/hammer.
package entities

import (
	"strings"

	"github.com/Kryndex/robottelo/pkg/errors"
	"github.com/Kryndex/robottelo/pkg/hammer"
)

var organizationDescriptor = hammer.Descriptor{
	Command: "organization",
	Relations: []string{
		"subnet",
		"user",
		"hostgroup",
		"domain",
		"medium",
		"config-template",
		"compute-resource",
		"smart-proxy",
		"location",
		"lifecycle-environment",
	},
	FieldDecoders: map[string]hammer.FieldDecoder{
		"parameters": DecodeParameters,
	},
}

// Organization returns the organization entity. Its parameters field
// decodes into a nested name→value map instead of a flat list.
func Organization(c *hammer.Client) *hammer.Entity {
	return hammer.MustEntity(c, organizationDescriptor)
}

func User(c *hammer.Client) *hammer.Entity {
	return hammer.MustEntity(c, hammer.Descriptor{
		Command:   "user",
		Relations: []string{"role"},
	})
}

func Subnet(c *hammer.Client) *hammer.Entity {
	return hammer.MustEntity(c, hammer.Descriptor{Command: "subnet"})
}

func Domain(c *hammer.Client) *hammer.Entity {
	return hammer.MustEntity(c, hammer.Descriptor{Command: "domain"})
}

func Hostgroup(c *hammer.Client) *hammer.Entity {
	return hammer.MustEntity(c, hammer.Descriptor{Command: "hostgroup"})
}

func Location(c *hammer.Client) *hammer.Entity {
	return hammer.MustEntity(c, hammer.Descriptor{
		Command: "location",
		Relations: []string{
			"subnet",
			"user",
			"domain",
			"medium",
			"compute-resource",
			"smart-proxy",
			"organization",
		},
	})
}

func Medium(c *hammer.Client) *hammer.Entity {
	return hammer.MustEntity(c, hammer.Descriptor{Command: "medium"})
}

func Template(c *hammer.Client) *hammer.Entity {
	return hammer.MustEntity(c, hammer.Descriptor{Command: "template"})
}

func ComputeResource(c *hammer.Client) *hammer.Entity {
	return hammer.MustEntity(c, hammer.Descriptor{Command: "compute-resource"})
}

func LifecycleEnvironment(c *hammer.Client) *hammer.Entity {
	return hammer.MustEntity(c, hammer.Descriptor{Command: "lifecycle-environment"})
}

func Proxy(c *hammer.Client) *hammer.Entity {
	return hammer.MustEntity(c, hammer.Descriptor{Command: "proxy"})
}

// DecodeParameters turns repeated "name => value" parameter lines into a
// nested map. A line without the arrow separator is a decode failure, not
// a silently dropped parameter.
func DecodeParameters(values []string) (any, error) {
	params := make(map[string]string, len(values))
	for _, v := range values {
		name, value, ok := strings.Cut(v, "=>")
		if !ok {
			return nil, errors.NewDecodeError("parameters", v, "missing '=>' separator")
		}
		params[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return params, nil
}
