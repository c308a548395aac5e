package entity

import "testing"

func TestExtractPort(t *testing.T) {
	e := Extract("端口 8080 被谁占用")
	if e.Port == nil || *e.Port != "8080" {
		t.Fatalf("Extract port = %v, want 8080", e.Port)
	}
}

func TestExtractPortEnglish(t *testing.T) {
	e := Extract("what is using port 3000")
	if e.Port == nil || *e.Port != "3000" {
		t.Fatalf("Extract port = %v, want 3000", e.Port)
	}
}

func TestExtractIP(t *testing.T) {
	e := Extract("ping 192.168.1.1 please")
	if e.IP == nil || *e.IP != "192.168.1.1" {
		t.Fatalf("Extract IP = %v, want 192.168.1.1", e.IP)
	}
}

func TestExtractInvalidIPRejected(t *testing.T) {
	e := Extract("ping 999.999.999.999 please")
	if e.IP != nil {
		t.Fatalf("Extract IP = %v, want nil for invalid IPv4", e.IP)
	}
}

func TestExtractPath(t *testing.T) {
	e := Extract("show me /var/log/nginx/error.log")
	if e.Path == nil {
		t.Fatal("Extract path = nil, want a match")
	}
}

func TestExtractTool(t *testing.T) {
	e := Extract("use docker to list containers")
	if e.Tool == nil || *e.Tool != "docker" {
		t.Fatalf("Extract tool = %v, want docker", e.Tool)
	}
}

func TestExtractPID(t *testing.T) {
	e := Extract("check pid 12345")
	if e.PID == nil || *e.PID != "12345" {
		t.Fatalf("Extract pid = %v, want 12345", e.PID)
	}
}

func TestExtractPathExactMatch(t *testing.T) {
	e := Extract("check /etc/hosts status")
	if e.Path == nil || *e.Path != "/etc/hosts" {
		t.Fatalf("Extract path = %v, want /etc/hosts", e.Path)
	}
}
