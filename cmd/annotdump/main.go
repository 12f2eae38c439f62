// Command annotdump prints every highlight and sticky note of a PDF as
// JSON, one object per page.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	pdfannot "github.com/pyhub-apps/pdfannot-golang"
)

type pageAnnotations struct {
	Page       uint                  `json:"page"`
	Highlights []pdfannot.Highlight  `json:"highlights"`
	Notes      []pdfannot.Note       `json:"notes"`
}

func main() {
	password := flag.String("password", "", "password for encrypted files")
	logLevel := flag.String("log", "warn", "log level: debug, info, warn, error")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: annotdump [flags] <pdf_file>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	logger := newLogger(*logLevel)
	defer logger.Sync()

	doc, err := pdfannot.Open(flag.Arg(0),
		pdfannot.WithLogger(logger),
		pdfannot.WithPassword(*password))
	if err != nil {
		logger.Fatal("failed to open PDF", zap.Error(err))
	}
	defer doc.Close()

	var result []pageAnnotations
	for _, page := range doc.Pages() {
		highlights, err := pdfannot.ReadHighlights(doc, page)
		if err != nil {
			logger.Fatal("failed to read highlights",
				zap.Uint("page", page.Index()), zap.Error(err))
		}
		notes, err := pdfannot.ReadNotes(doc, page)
		if err != nil {
			logger.Fatal("failed to read notes",
				zap.Uint("page", page.Index()), zap.Error(err))
		}
		if len(highlights) == 0 && len(notes) == 0 {
			continue
		}
		result = append(result, pageAnnotations{
			Page:       page.Index(),
			Highlights: highlights,
			Notes:      notes,
		})
	}

	out, err := sonic.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Fatal("failed to encode annotations", zap.Error(err))
	}
	fmt.Println(string(out))
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.WarnLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "can't initialize logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}
