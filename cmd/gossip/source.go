package main

import (
	"os"
	"path/filepath"

	"gossip/langerr"
)

// loadSource reads path and enforces the ".gsp" source extension spec.md
// §6 requires of the host interfaces.
func loadSource(path string) (string, error) {
	if filepath.Ext(path) != ".gsp" {
		return "", langerr.InvalidFileExtensionError{Path: path}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
