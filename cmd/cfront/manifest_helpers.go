package main

import (
	"fmt"
	"os"
	"path/filepath"

	"cfront/internal/project"
)

// resolveManifest loads cfront.toml either from an explicit --manifest
// path or by walking up from the current directory. Commands work
// without a manifest; they just run on defaults.
func resolveManifest(manifestFlag string) (project.Manifest, string, error) {
	if manifestFlag != "" {
		info, statErr := os.Stat(manifestFlag)
		if statErr != nil || info.IsDir() {
			return project.Manifest{}, "", fmt.Errorf("no %s at %s: check --manifest", project.ManifestName, manifestFlag)
		}
		abs := manifestFlag
		if resolved, absErr := filepath.Abs(manifestFlag); absErr == nil {
			abs = resolved
		}
		m, err := project.LoadManifest(abs)
		if err != nil {
			return project.Manifest{}, "", err
		}
		return m, filepath.Dir(abs), nil
	}

	path, ok, err := project.FindManifest(".")
	if err != nil {
		return project.Manifest{}, "", err
	}
	if !ok {
		root, _ := os.Getwd()
		return project.DefaultManifest(), root, nil
	}
	m, err := project.LoadManifest(path)
	if err != nil {
		return project.Manifest{}, "", err
	}
	return m, filepath.Dir(path), nil
}
