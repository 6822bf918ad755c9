// Package pdfbatch sequences batch processing of PDF files: input discovery
// and ordering, backups, per-file failure isolation with best-effort
// fallbacks, directory cleanup and the final merge with hierarchical
// bookmarks.
//
// Processing is strictly sequential. Order between files only matters for
// merge sequencing and bookmark offset accumulation.
package pdfbatch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Discover expands files and directories into the list of PDF files to
// process, ordered by SortByNumericPrefix. Directories are scanned one level
// deep. An empty result is an error; a batch needs at least one input.
func Discover(inputs []string) ([]string, error) {
	var files []string
	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", in, err)
		}
		if info.IsDir() {
			matches, err := filepath.Glob(filepath.Join(in, "*.pdf"))
			if err != nil {
				return nil, fmt.Errorf("scanning %s: %w", in, err)
			}
			log.WithFields(log.Fields{"dir": in, "count": len(matches)}).Info("discovered PDF files")
			files = append(files, matches...)
			continue
		}
		if !strings.EqualFold(filepath.Ext(in), ".pdf") {
			log.WithField("input", in).Warn("skipping input, not a PDF file")
			continue
		}
		files = append(files, in)
	}
	if len(files) == 0 {
		return nil, errors.New("no PDF files found")
	}
	SortByNumericPrefix(files)
	return files, nil
}

var numericPrefix = regexp.MustCompile(`^\s*(\d+)`)

// SortByNumericPrefix orders paths by the integer prefix of their base name,
// so "2-report.pdf" sorts before "10-report.pdf". Ties and names without a
// numeric prefix fall back to lexical order, the latter after all prefixed
// names.
func SortByNumericPrefix(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		ni, oki := prefixNum(paths[i])
		nj, okj := prefixNum(paths[j])
		switch {
		case oki && okj && ni != nj:
			return ni < nj
		case oki != okj:
			return oki
		default:
			return filepath.Base(paths[i]) < filepath.Base(paths[j])
		}
	})
}

func prefixNum(path string) (int64, bool) {
	m := numericPrefix.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(m[1]), 10, 64)
	if err != nil {
		// a prefix too large for int64 counts as unsortable
		return 0, false
	}
	return n, true
}
