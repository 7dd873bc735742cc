package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/Kryndex/robottelo/internal/config"
)

var cfg *config.Configuration

func validate(cfg *config.Configuration) error {
	if cfg.Server.Host == "" {
		return errors.New("target host is empty")
	}
	if cfg.Server.Password == "" && cfg.Server.KeyFile == "" {
		return errors.New("either an SSH password or a key file is required")
	}
	if cfg.Hammer.Password == "" {
		return errors.New("hammer password is empty")
	}
	return nil
}

func main() {
	cfg = config.NewConfigurationWithDefaults()
	flag.StringVar(&cfg.Server.Host, "host", "", "Target server hostname")
	flag.IntVar(&cfg.Server.Port, "port", 22, "Target SSH port")
	flag.StringVar(&cfg.Server.User, "user", "root", "SSH user")
	flag.StringVar(&cfg.Server.Password, "password", "", "SSH password")
	flag.StringVar(&cfg.Server.KeyFile, "key-file", "", "SSH private key file")
	flag.DurationVar(&cfg.Server.Timeout, "timeout", 30*time.Second, "SSH dial timeout")
	flag.StringVar(&cfg.Hammer.Binary, "hammer-binary", "hammer", "CLI binary on the target")
	flag.StringVar(&cfg.Hammer.Username, "hammer-username", "admin", "Product account username")
	flag.StringVar(&cfg.Hammer.Password, "hammer-password", "", "Product account password")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	if err := validate(cfg); err != nil {
		log.Fatalf("failed to validate configuration: %v", err)
	}

	RegisterFailHandler(Fail)
	if !RunSpecs(&testing.T{}, "E2E Suite") {
		os.Exit(1)
	}
}
