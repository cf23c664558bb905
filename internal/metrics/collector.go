package metrics

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"text/tabwriter"

	"url2clash/internal/model"
)

// Collector tallies what a conversion run produced. Safe for concurrent use.
type Collector struct {
	mu sync.Mutex

	byType map[string]int
	total  int

	// Descriptors emitted without server or port (ss payloads lacking an endpoint).
	noEndpoint int
	duplicates int
}

func New() *Collector {
	return &Collector{
		byType: make(map[string]int),
	}
}

func (c *Collector) RecordProxy(p *model.Proxy) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.byType[p.Type]++
	c.total++
	if p.Server == "" || p.Port.IsZero() {
		c.noEndpoint++
	}
}

func (c *Collector) RecordDuplicates(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.duplicates += n
}

// Total returns the number of recorded descriptors.
func (c *Collector) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// PrintReport writes a short summary table to w.
func (c *Collector) PrintReport(w io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "[ CONVERSION REPORT ]")
	fmt.Fprintf(tw, "  Proxies:\t%d\n", c.total)

	types := make([]string, 0, len(c.byType))
	for t := range c.byType {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Fprintf(tw, "    %s:\t%d\n", t, c.byType[t])
	}

	if c.duplicates > 0 {
		fmt.Fprintf(tw, "  Duplicates dropped:\t%d\n", c.duplicates)
	}
	if c.noEndpoint > 0 {
		fmt.Fprintf(tw, "  Missing server/port:\t%d\n", c.noEndpoint)
	}
	tw.Flush()
}
