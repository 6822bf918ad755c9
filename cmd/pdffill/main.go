// pdffill is a command-line tool that normalizes batches of PDF pages onto a
// standard page size and stamps page-number footers.
//
// Every page is scaled to the full A4 width, preserving its aspect ratio, and
// anchored below a 10% top margin. The footer shows the source file's name
// with the page's position inside that file on the left, and the global
// position on the right. By default all inputs are merged into a single
// output with one top-level bookmark per source file and each file's own
// bookmark tree nested beneath it.
//
// Usage:
//
//	pdffill [flags] [input]
//
// input is a PDF file or a directory containing PDFs (default "PDFS").
//
// Flags:
//
//	-o string       Output file or directory
//	-no-merge       Process every file separately instead of merging
//	-font string    TTF font file for the page-number labels
//	-config string  Optional YAML config file
//
// Examples:
//
//	pdffill lectures/
//	pdffill -no-merge -o out/ lectures/
//	pdffill -o thesis_a4.pdf thesis.pdf
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/funcdfs/pdf-selector/pkg/pagenum"
	"github.com/funcdfs/pdf-selector/pkg/pdfbatch"
	"github.com/funcdfs/pdf-selector/pkg/pdffill"
)

// defaultFontPath is probed when neither -font nor the config names a font.
const defaultFontPath = "Font/LXGWWenKaiMono-Regular.ttf"

type yamlConfig struct {
	MarginRatio float64 `yaml:"margin_ratio"`
	FontPath    string  `yaml:"font_path"`
	FontSize    float64 `yaml:"font_size"`
	MinFontSize float64 `yaml:"min_font_size"`
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
	output := flag.String("o", "", "Output file path or directory")
	noMerge := flag.Bool("no-merge", false, "Process every file separately instead of merging")
	fontPath := flag.String("font", "", "TTF font file for the page-number labels")
	configPath := flag.String("config", "", "Path to a YAML config file")
	flag.Parse()

	if flag.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: at most one input file or directory may be given")
		flag.PrintDefaults()
		os.Exit(1)
	}
	input := "PDFS"
	if flag.NArg() == 1 {
		input = flag.Arg(0)
	}

	opts := pdffill.DefaultOptions()
	var cfg yamlConfig
	if *configPath != "" {
		var err error
		cfg, err = loadConfig(*configPath)
		if err != nil {
			log.WithField("config", *configPath).WithError(err).Fatal("cannot load config")
		}
		if cfg.MarginRatio > 0 {
			opts.MarginRatio = cfg.MarginRatio
		}
	}

	size, minSize := opts.Font.Size, opts.Font.MinSize
	if cfg.FontSize > 0 {
		size = cfg.FontSize
	}
	if cfg.MinFontSize > 0 {
		minSize = cfg.MinFontSize
	}
	opts.Font = pagenum.Resolve([]string{*fontPath, cfg.FontPath, defaultFontPath}, size, minSize)

	files, err := pdfbatch.Discover([]string{input})
	if err != nil {
		log.WithError(err).Fatal("no input")
	}

	switch {
	case len(files) == 1:
		out := singleOutputPath(*output, files[0])
		ensureParent(out)
		if err := pdffill.ProcessFile(files[0], out, opts); err != nil {
			log.WithField("file", files[0]).WithError(err).Fatal("processing failed")
		}
		log.WithField("output", out).Info("done")

	case *noMerge:
		// Batch mode without merging needs an explicit output directory;
		// guessing a single file path here would overwrite results.
		if *output == "" || strings.EqualFold(filepath.Ext(*output), ".pdf") {
			log.Fatal("-no-merge over multiple files requires -o with an output directory")
		}
		if err := os.MkdirAll(*output, 0o755); err != nil {
			log.WithError(err).Fatal("cannot create output directory")
		}
		outputFor := func(in string) string {
			return filepath.Join(*output, pdfbatch.Stem(in)+"_processed.pdf")
		}
		summary := pdfbatch.Run(files, outputFor, func(in, out string) error {
			return pdffill.ProcessFile(in, out, opts)
		})
		if len(summary.Succeeded) == 0 {
			log.Fatal("no files were processed successfully")
		}

	default:
		out := mergedOutputPath(*output, input)
		ensureParent(out)
		if err := pdffill.MergeAll(files, out, opts); err != nil {
			log.WithError(err).Fatal("merge failed")
		}
		log.WithFields(log.Fields{"output": out, "files": len(files)}).Info("merged")
	}
}

// singleOutputPath picks the output path for one input file: an explicit .pdf
// path wins, an explicit directory gets "<stem>_processed.pdf", and the
// default is ./output/<stem>_processed.pdf.
func singleOutputPath(output, input string) string {
	name := pdfbatch.Stem(input) + "_processed.pdf"
	switch {
	case output == "":
		return filepath.Join("output", name)
	case strings.EqualFold(filepath.Ext(output), ".pdf"):
		return output
	default:
		return filepath.Join(output, name)
	}
}

// mergedOutputPath picks the merged output path: an explicit .pdf path wins,
// otherwise "<input dir name>_merged.pdf" inside the output directory
// (default ./output).
func mergedOutputPath(output, input string) string {
	name := filepath.Base(filepath.Clean(input)) + "_merged.pdf"
	switch {
	case output == "":
		return filepath.Join("output", name)
	case strings.EqualFold(filepath.Ext(output), ".pdf"):
		return output
	default:
		return filepath.Join(output, name)
	}
}

func ensureParent(path string) {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.WithField("dir", dir).WithError(err).Fatal("cannot create output directory")
	}
}
