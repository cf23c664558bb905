package metrics

import (
	"bytes"
	"strings"
	"testing"

	"url2clash/internal/model"
)

func TestCollector_Report(t *testing.T) {
	c := New()
	c.RecordProxy(&model.Proxy{Type: model.TypeVLESS, Server: "a", Port: model.Int(1)})
	c.RecordProxy(&model.Proxy{Type: model.TypeSS, Server: "b", Port: model.Int(2)})
	c.RecordProxy(&model.Proxy{Type: model.TypeSS})
	c.RecordDuplicates(2)

	if c.Total() != 3 {
		t.Fatalf("Total()=%d, want 3", c.Total())
	}

	var buf bytes.Buffer
	c.PrintReport(&buf)
	out := buf.String()

	for _, want := range []string{"Proxies:", "3", "ss:", "vless:", "Duplicates dropped:", "Missing server/port:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "ss:") > strings.Index(out, "vless:") {
		t.Fatalf("types should be sorted:\n%s", out)
	}
}

func TestCollector_QuietWhenClean(t *testing.T) {
	c := New()
	c.RecordProxy(&model.Proxy{Type: model.TypeTrojan, Server: "a", Port: model.Int(1)})

	var buf bytes.Buffer
	c.PrintReport(&buf)
	if strings.Contains(buf.String(), "Duplicates") || strings.Contains(buf.String(), "Missing") {
		t.Fatalf("unexpected lines:\n%s", buf.String())
	}
}
