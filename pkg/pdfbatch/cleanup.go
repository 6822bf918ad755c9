package pdfbatch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Reset clears the artifacts of a previous run: outputDir and backupDir are
// recreated empty and the merged output file is removed. Empty arguments are
// skipped.
func Reset(outputDir, backupDir, mergedPath string) error {
	for _, dir := range []string{outputDir, backupDir} {
		if dir == "" {
			continue
		}
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("clearing %s: %w", dir, err)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("recreating %s: %w", dir, err)
		}
	}
	if mergedPath != "" {
		if err := os.Remove(mergedPath); err != nil && !os.IsNotExist(err) {
			log.WithField("file", mergedPath).WithError(err).
				Warn("cannot remove previous merged output")
		}
	}
	return nil
}

// PurgeInputs removes PDF files and subdirectories from dir. Other files
// (placeholders such as .gitkeep) are kept. A missing directory is not an
// error.
func PurgeInputs(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("dir", dir).Info("input directory does not exist, nothing to purge")
			return nil
		}
		return fmt.Errorf("reading %s: %w", dir, err)
	}

	removed, kept := 0, 0
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		switch {
		case e.IsDir():
			err = os.RemoveAll(path)
		case strings.EqualFold(filepath.Ext(e.Name()), ".pdf"):
			err = os.Remove(path)
		default:
			kept++
			continue
		}
		if err != nil {
			log.WithField("path", path).WithError(err).Warn("cannot remove input entry")
			continue
		}
		removed++
	}
	log.WithFields(log.Fields{"dir": dir, "removed": removed, "kept": kept}).
		Info("purged input directory")
	return nil
}
