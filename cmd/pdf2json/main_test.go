package main

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

const testVersion = "1.2.3"

func TestPrintVersion(t *testing.T) {
	// Save original stdout
	originalStdout := os.Stdout

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	os.Stdout = w

	oldVersion := version
	oldBuildTime := buildTime
	oldGitCommit := gitCommit

	version = testVersion
	buildTime = "2023-12-01_10:30:00"
	gitCommit = "abc123"

	defer func() {
		version = oldVersion
		buildTime = oldBuildTime
		gitCommit = oldGitCommit
		os.Stdout = originalStdout
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		printVersion()
		w.Close()
	}()

	var buf bytes.Buffer
	io.Copy(&buf, r)
	<-done

	output := buf.String()

	expectedParts := []string{
		"pdf2json",
		"Version: " + testVersion,
		"Build Time: 2023-12-01_10:30:00",
		"Git Commit: abc123",
		"Go Version:",
		"OS/Arch:",
	}
	for _, part := range expectedParts {
		if !strings.Contains(output, part) {
			t.Errorf("printVersion() output missing %q, got:\n%s", part, output)
		}
	}
}
