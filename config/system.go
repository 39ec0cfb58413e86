package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrAlreadyInitialized is returned by BootstrapProject when the project
// config file already exists.
var ErrAlreadyInitialized = errors.New("project already initialized")

const defaultConfig = `logging:
  level: error
store:
  driver: file
search:
  soonDays: 3
  forcedQuery: ""
appearance:
  theme: auto
`

const welcomeItem = `---
title: Welcome to sieve
status: inbox
priority: normal
contexts: [computer]
tags: [getting-started]
---
Try a few searches:

    sieve search in:inbox
    sieve search "tags:getting-started -in:completed"
    sieve filters
`

// BootstrapProject creates the project directories, a default config.yaml
// and a welcome item. It returns the files it created.
func BootstrapProject() ([]string, error) {
	if _, err := os.Stat(GetProjectConfigFile()); err == nil {
		return nil, ErrAlreadyInitialized
	}

	if err := EnsureDirs(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	var created []string

	configPath := GetProjectConfigFile()
	//nolint:gosec // G306: 0644 is appropriate for config file
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return created, fmt.Errorf("write default config.yaml: %w", err)
	}
	created = append(created, configPath)

	itemPath := filepath.Join(GetItemsDir(), "1-welcome-to-sieve.md")
	if _, err := os.Stat(itemPath); errors.Is(err, os.ErrNotExist) {
		//nolint:gosec // G306: 0644 is appropriate for item file
		if err := os.WriteFile(itemPath, []byte(welcomeItem), 0644); err != nil {
			return created, fmt.Errorf("write welcome item: %w", err)
		}
		created = append(created, itemPath)
	}

	return created, nil
}
