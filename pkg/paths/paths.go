// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package paths resolves per-user locations used by the eventhub CLI.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "eventhub"

// ConfigFileName is the name of the configuration file inside ConfigDir.
const ConfigFileName = "config.yaml"

// ConfigDir returns the config directory for eventhub.
// Order: XDG_CONFIG_HOME/eventhub, platform-specific fallback.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("AppData"); appData != "" {
			return filepath.Join(appData, "EventHub")
		}
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// ConfigFile returns the default configuration file path. The file need not
// exist.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}
