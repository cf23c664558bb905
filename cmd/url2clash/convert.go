package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"url2clash/internal/batch"
	"url2clash/internal/links"
	"url2clash/internal/logger"
	"url2clash/internal/metrics"
	"url2clash/internal/model"
	"url2clash/internal/render"
)

func runConvert(cmd *cobra.Command, opts *options, args []string) error {
	cfg := opts.cfg
	stderr := cmd.ErrOrStderr()

	rawLinks := append([]string(nil), args...)
	if opts.input != "" {
		extracted, err := readInput(cmd, opts.input)
		if err != nil {
			return &exitError{code: 1, msg: err.Error()}
		}
		logger.Log.Debugf("Extracted %d links from %s", len(extracted), opts.input)
		rawLinks = append(rawLinks, extracted...)
	}

	if len(rawLinks) == 0 {
		fmt.Fprint(stderr, cmd.UsageString())
		return &exitError{code: 1}
	}

	renderer, err := render.Get(cfg.Output.Format)
	if err != nil {
		return &exitError{code: 1, msg: err.Error()}
	}

	var bar *progressbar.ProgressBar
	if opts.progress {
		bar = newProgressBar(stderr, len(rawLinks))
	}

	proxies, err := batch.Convert(rawLinks, batch.Options{
		Workers: cfg.Convert.Workers,
		Dedupe:  cfg.Convert.Dedupe,
		// Xray outbounds have a home for allowInsecure and obfs.
		Extended: cfg.Convert.Extended || cfg.Output.Format == "xray",
		OnParsed: func() {
			if bar != nil {
				_ = bar.Add(1)
			}
		},
	})
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(stderr)
	}
	if err != nil {
		var f *batch.Failure
		if errors.As(err, &f) {
			fmt.Fprintf(stderr, "# Failed to parse: %s\n# %v\n", f.Link, f.Err)
			return &exitError{code: 2}
		}
		return &exitError{code: 2, msg: err.Error()}
	}

	// Render fully before writing so a failure never leaves half a document.
	var buf bytes.Buffer
	if err := renderer.Render(&buf, proxies); err != nil {
		return &exitError{code: 1, msg: fmt.Sprintf("failed to render %s: %v", cfg.Output.Format, err)}
	}

	if cfg.Output.Path != "" {
		if err := os.WriteFile(cfg.Output.Path, buf.Bytes(), 0644); err != nil {
			return &exitError{code: 1, msg: fmt.Sprintf("failed to write output: %v", err)}
		}
		logger.Log.Infof("Wrote %d proxies to %s", len(proxies), cfg.Output.Path)
	} else if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
		return &exitError{code: 1, msg: fmt.Sprintf("failed to write output: %v", err)}
	}

	if opts.stats {
		printStats(stderr, len(rawLinks), proxies)
	}
	return nil
}

func printStats(w io.Writer, parsed int, proxies []model.Proxy) {
	c := metrics.New()
	for i := range proxies {
		c.RecordProxy(&proxies[i])
	}
	c.RecordDuplicates(parsed - c.Total())
	c.PrintReport(w)
}

func readInput(cmd *cobra.Command, path string) ([]string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return links.Extract(string(data)), nil
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription("[cyan]Parsing...[reset]"),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
