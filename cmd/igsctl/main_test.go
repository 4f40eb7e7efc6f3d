package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jengzang/igs-backend-go/internal/auth"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	mov := writeFile(t, dir, "Bo.csv", "time,x,y\n0,0,0\n1,0,0\n2,0,0\n3,3,4\n")
	codes := writeFile(t, dir, "group.csv", "start,end\n0,2\n")
	bad := writeFile(t, dir, "bad.csv", "a,b\n1,2\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{"inspect", "-min-stop", "1", mov, codes, bad}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}

	var got inspectResult
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("output: %v\n%s", err, stdout.String())
	}
	if len(got.Reports) != 2 || len(got.Errors) != 1 || !strings.Contains(got.Errors[0], "bad.csv") {
		t.Fatalf("reports %+v errors %v", got.Reports, got.Errors)
	}
	if len(got.Summaries) != 1 || got.Summaries[0].Name != "bo" || got.Summaries[0].PathLength != 5 {
		t.Fatalf("summaries %+v", got.Summaries)
	}
	if len(got.Codes) != 1 || got.Codes[0].Code != "group" {
		t.Fatalf("codes %+v", got.Codes)
	}
	if got.Timeline.EndTime != 3 {
		t.Fatalf("timeline end %v", got.Timeline.EndTime)
	}
}

func TestInspectNothingUsable(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "notes.txt", "hello")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"inspect", bad}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit %d", code)
	}
	if code := run([]string{"inspect", "-annotator", "magic", bad}, &stdout, &stderr); code != 2 {
		t.Fatalf("bad annotator exit %d", code)
	}
	if code := run([]string{"inspect", "-min-stop", "-1", bad}, &stdout, &stderr); code != 2 {
		t.Fatalf("negative min-stop exit %d", code)
	}
}

func TestToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"token", "-subject", "tablet"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	claims, err := auth.Verify("s3cret", strings.TrimSpace(stdout.String()))
	if err != nil {
		t.Fatal(err)
	}
	if claims.Subject != "tablet" {
		t.Fatalf("subject %q", claims.Subject)
	}
}

func TestUnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"serve"}, &stdout, &stderr); code != 2 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(stderr.String(), "Usage") {
		t.Fatalf("stderr %q", stderr.String())
	}
}
