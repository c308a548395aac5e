package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/shellmaster/sm/internal/llmclient"
	"github.com/shellmaster/sm/internal/state"
)

func TestRunTrivialPwd(t *testing.T) {
	stub := &llmclient.StubClient{}
	p := &Pipeline{LLM: stub}
	st := p.Run(context.Background(), "pwd")

	if st.Complexity != state.Trivial {
		t.Fatalf("Complexity = %v, want TRIVIAL", st.Complexity)
	}
	if st.Command != "pwd" {
		t.Fatalf("Command = %q, want pwd", st.Command)
	}
	if st.ScoutInfo != "" {
		t.Fatalf("ScoutInfo = %q, want empty (scout skipped on trivial path)", st.ScoutInfo)
	}
}

func TestRunNetworkPortQuery(t *testing.T) {
	stub := &llmclient.StubClient{Responses: map[string]string{
		"intent": `{"domains": ["network", "process"], "action": "find listener",
			"entities": {"port": "8080"}, "complexity": 2}`,
		"generate": "ss -tlnp 'sport = :8080'",
	}}
	p := &Pipeline{LLM: stub}
	st := p.Run(context.Background(), "端口 8080 被谁占用")

	if len(st.Intent.Domains) == 0 {
		t.Fatal("expected at least one domain")
	}
	hasNetworkOrProcess := false
	for _, d := range st.Intent.Domains {
		if d == "network" || d == "process" {
			hasNetworkOrProcess = true
		}
	}
	if !hasNetworkOrProcess {
		t.Fatalf("domains = %v, want network or process", st.Intent.Domains)
	}
	if st.Intent.Entities.Port == nil || *st.Intent.Entities.Port != "8080" {
		t.Fatalf("Entities.Port = %v, want 8080", st.Intent.Entities.Port)
	}
	if !strings.Contains(st.Context, "PORT_8080") && !strings.Contains(st.Context, "sport = :8080") {
		t.Fatalf("Context missing port-8080 probe trace: %s", st.Context)
	}
}

func TestRunServiceDownComplex(t *testing.T) {
	stub := &llmclient.StubClient{Responses: map[string]string{
		"intent": `{"domains": ["service", "log"], "action": "diagnose",
			"entities": {"service": "nginx"}, "complexity": 4}`,
		"generate": "systemctl status nginx",
	}}
	p := &Pipeline{LLM: stub}
	st := p.Run(context.Background(), "为什么 nginx 起不来")

	if st.Complexity != state.Complex {
		t.Fatalf("Complexity = %v, want COMPLEX", st.Complexity)
	}
	found := map[string]bool{"status": false, "journal": false}
	for _, r := range strings.Split(st.Context, "\n") {
		if strings.Contains(r, "systemctl status 'nginx'") {
			found["status"] = true
		}
		if strings.Contains(r, "journalctl -u 'nginx'") {
			found["journal"] = true
		}
	}
	if !found["status"] || !found["journal"] {
		t.Fatalf("expected both systemctl status and journalctl probes in context: %s", st.Context)
	}
}

func TestRunUnknownDomainDropped(t *testing.T) {
	stub := &llmclient.StubClient{Responses: map[string]string{
		"intent":   `{"domains": ["file", "rm"], "action": "list", "entities": {}, "complexity": 2}`,
		"generate": "ls -la",
	}}
	p := &Pipeline{LLM: stub}
	st := p.Run(context.Background(), "list my files")

	for _, d := range st.Intent.Domains {
		if d == "rm" {
			t.Fatalf("unknown domain %q survived normalization: %v", d, st.Intent.Domains)
		}
	}
}

func TestRunDiskUsageTrivialStillRetrieves(t *testing.T) {
	stub := &llmclient.StubClient{}
	p := &Pipeline{LLM: stub}
	st := p.Run(context.Background(), "磁盘使用情况")

	if st.Complexity != state.Trivial {
		t.Fatalf("Complexity = %v, want TRIVIAL", st.Complexity)
	}
	if st.Command != "df -h" {
		t.Fatalf("Command = %q, want df -h", st.Command)
	}
	if st.Examples == "" {
		t.Fatal("Examples empty, want retrieve to have run even on the trivial path")
	}
}
