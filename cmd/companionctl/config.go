package main

import (
	"os"
	"time"

	"github.com/go-yaml/yaml"
	"github.com/pkg/errors"

	"github.com/ironfellow/companion/client"
	"github.com/ironfellow/companion/core"
	"github.com/ironfellow/companion/x/mutation"
)

const defaultEndpoint = "http://localhost:8000"

type Config struct {
	Endpoint  string           `yaml:"endpoint"`
	Timeout   string           `yaml:"timeout"`
	Companion core.ConfigInput `yaml:"companion"`
}

// options are the persistent flags shared by every command.
type options struct {
	configPath string
	endpoint   string
	timeout    time.Duration
}

// Load loads config from given path
func (c *Config) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "failed to open configuration file")
	}
	defer f.Close()

	err = yaml.NewDecoder(f).Decode(c)
	if err != nil {
		return errors.Wrap(err, "failed to load configuration file")
	}
	return nil
}

// session is everything a command needs to talk to the server.
type session struct {
	config  core.Config
	store   core.RemoteStore
	gateway core.MutationGateway
}

func (o *options) connect() (*session, error) {
	var cfg Config
	if o.configPath != "" {
		if err := cfg.Load(o.configPath); err != nil {
			return nil, err
		}
	}

	endpoint := cfg.Endpoint
	if o.endpoint != "" {
		endpoint = o.endpoint
	}
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	timeout := o.timeout
	if timeout == 0 && cfg.Timeout != "" {
		parsed, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return nil, errors.Wrap(err, "invalid timeout")
		}
		timeout = parsed
	}

	config, err := core.SetupConfig(cfg.Companion)
	if err != nil {
		return nil, err
	}

	store := client.NewClient(endpoint, timeout)
	return &session{
		config:  config,
		store:   store,
		gateway: mutation.NewGateway(store),
	}, nil
}
