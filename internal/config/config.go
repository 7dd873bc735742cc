// Package config carries the harness configuration: the target server, the
// CLI credentials and the journal location. A Configuration is built
// explicitly and handed to the executor at construction; there is no
// ambient process-wide state, so independent targets can run side by side.
package config

import (
	"fmt"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

// Server describes the SSH endpoint the CLI runs on.
type Server struct {
	Host     string        `default:"" validate:"required"`
	Port     int           `default:"22" validate:"gte=1,lte=65535"`
	User     string        `default:"root" validate:"required"`
	Password string        `default:""`
	KeyFile  string        `default:""`
	Timeout  time.Duration `default:"30s" validate:"gt=0"`
}

// Hammer describes the tool binary and the product account it
// authenticates as.
type Hammer struct {
	Binary   string `default:"hammer" validate:"required"`
	Username string `default:"admin" validate:"required"`
	Password string `default:"" validate:"required"`
}

// Journal configures the invocation journal database.
type Journal struct {
	Enabled bool   `default:"true"`
	Path    string `default:":memory:"`
}

type Configuration struct {
	Server  Server
	Hammer  Hammer
	Journal Journal

	// Workers bounds the cleanup pool; one SSH session per worker.
	Workers int `default:"3" validate:"gte=1"`
}

// NewConfigurationWithDefaults returns a Configuration populated from the
// default tags. Flag and environment binding fill in the rest.
func NewConfigurationWithDefaults() *Configuration {
	cfg := &Configuration{}
	if err := defaults.Set(cfg); err != nil {
		// default tags are static; failing to apply them is a programming error
		panic(fmt.Sprintf("applying configuration defaults: %v", err))
	}
	return cfg
}

// Validate checks the configuration, including that at least one SSH
// credential (password or key file) is present.
func (c *Configuration) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if c.Server.Password == "" && c.Server.KeyFile == "" {
		return fmt.Errorf("either server password or key file must be set")
	}
	return nil
}

// Address returns the host:port dial address of the target.
func (c *Configuration) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
