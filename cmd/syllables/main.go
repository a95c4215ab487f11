// Command syllables counts syllables in Dutch text, one line at a time.
//
// Usage:
//
//	syllables [--words] [file ...]
//
// Each input line is printed with its syllable count. With --words every
// token is printed with its count and how it was resolved. Without file
// arguments the text is read from stdin. The lexicon is loaded as configured
// for the server (CONFIG_PATH and environment).
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/heartmarshall/lettergreep/internal/app"
	"github.com/heartmarshall/lettergreep/internal/config"
	"github.com/heartmarshall/lettergreep/internal/estimator"
	"github.com/heartmarshall/lettergreep/internal/syllable"
)

func main() {
	wordsFlag := flag.Bool("words", false, "print a per-token breakdown")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	lex, err := app.OpenLexicon(ctx, cfg, logger)
	cancel()
	if err != nil {
		log.Fatalf("load lexicon: %v", err)
	}

	counter := syllable.NewCounter(lex, estimator.Dutch{}, syllable.WithCache(cfg.Engine.CacheSize))

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if flag.NArg() == 0 {
		if err := count(out, counter, os.Stdin, *wordsFlag); err != nil {
			out.Flush()
			log.Fatalf("stdin: %v", err)
		}
		return
	}

	for _, path := range flag.Args() {
		if err := countFile(out, counter, path, *wordsFlag); err != nil {
			out.Flush()
			log.Fatalf("%s: %v", path, err)
		}
	}
}

func countFile(w io.Writer, counter *syllable.Counter, path string, words bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return count(w, counter, f, words)
}

func count(w io.Writer, counter *syllable.Counter, r io.Reader, words bool) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	for line := 1; scanner.Scan(); line++ {
		text := scanner.Text()

		if !words {
			n, err := counter.CountText(text)
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			fmt.Fprintf(w, "%d\t%s\n", n, text)
			continue
		}

		a, err := counter.Analyze(text)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		for _, wc := range a.Words {
			fmt.Fprintf(w, "%s\t%d\t%s\n", wc.Word, wc.Syllables, wc.Source)
		}
		fmt.Fprintf(w, "total\t%d\n", a.Total)
	}
	return scanner.Err()
}
