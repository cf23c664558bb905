package batch

import (
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"url2clash/internal/logger"
	"url2clash/internal/model"
	"url2clash/internal/parser"
)

// Failure is the first link, in input order, that could not be parsed.
type Failure struct {
	Index int
	Link  string
	Err   error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("link %d (%s): %v", f.Index+1, f.Link, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

type Options struct {
	// Workers > 1 parses links concurrently. Output order never changes.
	Workers int
	// Dedupe drops descriptors whose fingerprint was already produced.
	Dedupe bool
	// Extended enables the optional parser keys.
	Extended bool
	// OnParsed is called once per processed link, from any goroutine.
	OnParsed func()
}

// Convert parses links into descriptors in input order. The whole batch fails
// on the first bad link; no partial result is returned.
func Convert(links []string, opts Options) ([]model.Proxy, error) {
	var (
		proxies []model.Proxy
		err     error
	)
	if opts.Workers > 1 && len(links) > 1 {
		proxies, err = convertParallel(links, opts)
	} else {
		proxies, err = convertSerial(links, opts)
	}
	if err != nil {
		return nil, err
	}

	if opts.Dedupe {
		before := len(proxies)
		proxies = lo.UniqBy(proxies, func(p model.Proxy) string {
			return p.Fingerprint()
		})
		if dropped := before - len(proxies); dropped > 0 {
			logger.Log.Infof("Dropped %d duplicate proxies", dropped)
		}
	}
	return proxies, nil
}

func convertSerial(links []string, opts Options) ([]model.Proxy, error) {
	proxies := make([]model.Proxy, 0, len(links))
	for i, link := range links {
		p, err := parser.ParseWith(link, parser.Options{Extended: opts.Extended})
		done(opts)
		if err != nil {
			return nil, &Failure{Index: i, Link: link, Err: err}
		}
		logger.Log.Debugf("Parsed %s %q (%s)", p.Type, p.Name, p.Server)
		proxies = append(proxies, *p)
	}
	return proxies, nil
}

func convertParallel(links []string, opts Options) ([]model.Proxy, error) {
	results := make([]*model.Proxy, len(links))
	errs := make([]error, len(links))

	var g errgroup.Group
	g.SetLimit(opts.Workers)
	for i, link := range links {
		g.Go(func() error {
			defer done(opts)
			results[i], errs[i] = parser.ParseWith(link, parser.Options{Extended: opts.Extended})
			return nil
		})
	}
	_ = g.Wait()

	proxies := make([]model.Proxy, 0, len(links))
	for i, p := range results {
		if errs[i] != nil {
			return nil, &Failure{Index: i, Link: links[i], Err: errs[i]}
		}
		logger.Log.Debugf("Parsed %s %q (%s)", p.Type, p.Name, p.Server)
		proxies = append(proxies, *p)
	}
	return proxies, nil
}

func done(opts Options) {
	if opts.OnParsed != nil {
		opts.OnParsed()
	}
}
