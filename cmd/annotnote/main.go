// Command annotnote adds a sticky note to a PDF page and writes the
// result to a new file.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	pdfannot "github.com/pyhub-apps/pdfannot-golang"
)

func main() {
	pageIndex := flag.Int("page", 0, "zero-based page index")
	x := flag.Float64("x", 72, "note X position in PDF units (origin bottom-left)")
	y := flag.Float64("y", 72, "note Y position in PDF units (origin bottom-left)")
	content := flag.String("text", "", "note content")
	out := flag.String("o", "", "output file (default: overwrite input)")
	logLevel := flag.String("log", "info", "log level: debug, info, warn, error")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: annotnote [flags] <pdf_file>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	input := flag.Arg(0)
	if *out == "" {
		*out = input
	}

	lvl, err := zapcore.ParseLevel(*logLevel)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "can't initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	doc, err := pdfannot.Open(input, pdfannot.WithLogger(logger))
	if err != nil {
		logger.Fatal("failed to open PDF", zap.Error(err))
	}
	defer doc.Close()

	page, err := doc.Page(*pageIndex)
	if err != nil {
		logger.Fatal("failed to get page", zap.Error(err))
	}

	note := pdfannot.NewNote(page.Index(), *x, *y, *content)
	count, err := pdfannot.ExportNotes(doc, page, []pdfannot.Note{note})
	if err != nil {
		logger.Fatal("failed to export note", zap.Error(err))
	}
	if count == 0 {
		logger.Fatal("note was not committed")
	}

	if err := doc.SaveAs(*out); err != nil {
		logger.Fatal("failed to save PDF", zap.Error(err))
	}
	logger.Info("added note", zap.String("file", *out),
		zap.Uint("page", page.Index()),
		zap.Float64("x", *x), zap.Float64("y", *y))
}
