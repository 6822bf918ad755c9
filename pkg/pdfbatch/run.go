package pdfbatch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// ProcessFunc transforms one input PDF into the file at output.
type ProcessFunc func(input, output string) error

// Summary reports the outcome of a batch run.
type Summary struct {
	Succeeded []string // output paths, in processing order
	Failed    []string // base names of the inputs that failed
}

// Run processes every file in order, isolating failures: when a file fails,
// the error is logged, the original input is copied to the expected output
// path as a best-effort fallback, and the batch continues with the next file.
// Panics raised by the PDF toolchain on malformed input are contained the
// same way.
func Run(files []string, outputFor func(input string) string, process ProcessFunc) Summary {
	var s Summary
	for _, file := range files {
		output := outputFor(file)
		log.WithFields(log.Fields{"file": file, "output": output}).Info("processing")

		if err := runOne(file, output, process); err != nil {
			log.WithField("file", file).WithError(err).Error("processing failed")
			if copyErr := CopyFile(file, output); copyErr != nil {
				log.WithField("file", file).WithError(copyErr).Error("fallback copy failed")
			} else {
				log.WithField("output", output).Info("copied original to output as fallback")
			}
			s.Failed = append(s.Failed, filepath.Base(file))
			continue
		}
		s.Succeeded = append(s.Succeeded, output)
	}

	log.WithFields(log.Fields{
		"succeeded": len(s.Succeeded),
		"failed":    len(s.Failed),
	}).Info("batch finished")
	if len(s.Failed) > 0 {
		log.WithField("files", s.Failed).Warn("files that failed processing")
	}
	return s
}

func runOne(input, output string, process ProcessFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("processing %s: panic: %v", input, r)
		}
	}()
	return process(input, output)
}

// Backup copies src into dir, creating the directory if needed.
func Backup(src, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating backup dir: %w", err)
	}
	dst := filepath.Join(dir, filepath.Base(src))
	if err := CopyFile(src, dst); err != nil {
		return fmt.Errorf("backing up %s: %w", src, err)
	}
	return nil
}

// CopyFile copies src to dst, truncating dst if it exists.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return out.Close()
}
