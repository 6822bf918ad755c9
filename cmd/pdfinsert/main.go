// pdfinsert is a command-line tool that prepares PDF files for handwritten
// annotation: every page gets blank top and bottom margins and is followed by
// a square blank companion page, every page is labelled with its position
// among the original pages, and the source's bookmarks are carried over onto
// the new page layout.
//
// With no arguments, every PDF under pdfs/ is processed into output/ (the
// originals are backed up to backup/) and the results are merged into
// merged_output.pdf with one top-level bookmark per source file. Naming
// inputs (files or directories) processes just those and skips the merge.
// Each run starts by clearing output/, backup/ and the merged file.
//
// Usage:
//
//	pdfinsert [flags] [inputs...]
//
// Flags:
//
//	-clean          Additionally remove the PDFs in the pdfs/ input directory
//	-font string    TTF font file for the page-number labels
//	-config string  Optional YAML config file
//
// Examples:
//
//	pdfinsert
//	pdfinsert -clean
//	pdfinsert chapter1.pdf notes/
package main

import (
	"flag"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/funcdfs/pdf-selector/pkg/pagenum"
	"github.com/funcdfs/pdf-selector/pkg/pdfbatch"
	"github.com/funcdfs/pdf-selector/pkg/pdfinsert"
)

type yamlConfig struct {
	InputDir   string  `yaml:"input_dir"`
	OutputDir  string  `yaml:"output_dir"`
	BackupDir  string  `yaml:"backup_dir"`
	MergedPath string  `yaml:"merged_path"`
	MarginCM   float64 `yaml:"margin_cm"`
	FontPath   string  `yaml:"font_path"`
	FontSize   float64 `yaml:"font_size"`
}

func loadConfig(path string) (yamlConfig, error) {
	var yc yamlConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return yc, err
	}
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return yc, err
	}
	return yc, nil
}

func main() {
	clean := flag.Bool("clean", false, "Additionally remove the PDFs in the input directory")
	fontPath := flag.String("font", "", "TTF font file for the page-number labels")
	configPath := flag.String("config", "", "Path to a YAML config file")
	flag.Parse()

	inputDir, outputDir, backupDir := "pdfs", "output", "backup"
	mergedPath := "merged_output.pdf"

	opts := pdfinsert.DefaultOptions()
	var cfg yamlConfig
	if *configPath != "" {
		var err error
		cfg, err = loadConfig(*configPath)
		if err != nil {
			log.WithField("config", *configPath).WithError(err).Fatal("cannot load config")
		}
		if cfg.InputDir != "" {
			inputDir = cfg.InputDir
		}
		if cfg.OutputDir != "" {
			outputDir = cfg.OutputDir
		}
		if cfg.BackupDir != "" {
			backupDir = cfg.BackupDir
		}
		if cfg.MergedPath != "" {
			mergedPath = cfg.MergedPath
		}
		if cfg.MarginCM > 0 {
			opts.TopMargin = cfg.MarginCM * 28.3464567
			opts.BottomMargin = opts.TopMargin
		}
	}

	size := opts.Font.Size
	if cfg.FontSize > 0 {
		size = cfg.FontSize
	}
	opts.Font = pagenum.Resolve([]string{*fontPath, cfg.FontPath}, size, opts.Font.MinSize)

	if err := pdfbatch.Reset(outputDir, backupDir, mergedPath); err != nil {
		log.WithError(err).Fatal("cleanup of previous run failed")
	}

	if *clean {
		if err := pdfbatch.PurgeInputs(inputDir); err != nil {
			log.WithError(err).Fatal("purging input directory failed")
		}
		if flag.NArg() == 0 {
			log.Info("input directory purged, nothing to process")
			return
		}
	}

	inputs := flag.Args()
	mergeAfter := len(inputs) == 0
	if mergeAfter {
		if err := os.MkdirAll(inputDir, 0o755); err != nil {
			log.WithField("dir", inputDir).WithError(err).Fatal("cannot create input directory")
		}
		inputs = []string{inputDir}
	} else {
		log.Info("explicit inputs given, the merge step is skipped")
	}

	files, err := pdfbatch.Discover(inputs)
	if err != nil {
		log.WithError(err).Fatal("no input")
	}

	outputFor := func(in string) string {
		return filepath.Join(outputDir, filepath.Base(in))
	}
	summary := pdfbatch.Run(files, outputFor, func(in, out string) error {
		if err := pdfbatch.Backup(in, backupDir); err != nil {
			return err
		}
		return pdfinsert.ProcessFile(in, out, opts)
	})

	if !mergeAfter {
		return
	}
	if len(summary.Succeeded) == 0 {
		log.Fatal("no files survived processing, skipping merge")
	}

	merge := make([]pdfbatch.MergeInput, 0, len(summary.Succeeded))
	for _, out := range summary.Succeeded {
		merge = append(merge, pdfbatch.MergeInput{Path: out, Title: pdfbatch.Stem(out)})
	}
	if err := pdfbatch.MergeWithBookmarks(merge, mergedPath); err != nil {
		log.WithError(err).Fatal("merge failed")
	}
}
