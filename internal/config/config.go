package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Listen   string   `koanf:"listen"`
	Frontend Frontend `koanf:"frontend"`
	Database Database `koanf:"db"`
	Session  Session  `koanf:"session"`
}

type Frontend struct {
	Enabled bool `koanf:"enabled"`
}

type Database struct {
	Path string `koanf:"path"`
}

type Session struct {
	// TTL is the lifetime of a session created without "remember me".
	TTL time.Duration `koanf:"ttl"`
	// RememberMeTTL is the lifetime of a session created with "remember me".
	RememberMeTTL time.Duration `koanf:"remembermettl"`
	// CleanupSchedule is a cron expression for the expired session sweeper.
	CleanupSchedule string `koanf:"cleanupschedule"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Listen: ":8181",
		Frontend: Frontend{
			Enabled: true,
		},
		Database: Database{
			Path: "overlapp.db",
		},
		Session: Session{
			TTL:             24 * time.Hour,
			RememberMeTTL:   30 * 24 * time.Hour,
			CleanupSchedule: "*/15 * * * *",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "OVERLAPP_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "OVERLAPP_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
