package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func writeCorpus(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docs.jsonl")
	content := strings.Join([]string{
		`{"text": "The quick brown fox jumps"}`,
		`{"text": "The lazy dog sleeps all day"}`,
		`{"text": "quick dog"}`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing corpus: %v", err)
	}
	return path
}

func runApp(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	l := logrus.New()
	l.SetOutput(io.Discard)
	logger = l.WithField("app", appName)

	var out, errOut bytes.Buffer
	app := makeApp()
	app.Writer = &out
	app.ErrWriter = &errOut

	err = app.Run(append([]string{appName, "--log-level", "error"}, args...))
	return out.String(), errOut.String(), err
}

func TestRunMain(t *testing.T) {
	corpus := writeCorpus(t)

	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{
			name: "single match",
			args: []string{"--docs", corpus, "--query", "quick fox"},
			want: []string{
				`"quick fox": 1 result(s)`,
				"[0]",
				"The quick brown fox jumps",
			},
			notWant: []string{"quick dog"},
		},
		{
			name: "several queries in order",
			args: []string{"--docs", corpus, "--query", "dog", "--query", "nonexistent"},
			want: []string{
				`"dog": 2 result(s)`,
				`"nonexistent": 0 result(s)`,
			},
		},
		{
			name: "limit flag",
			args: []string{"--docs", corpus, "--query", "dog", "--limit", "1"},
			want: []string{`"dog": 1 result(s)`},
		},
		{
			name: "zero limit returns nothing",
			args: []string{"--docs", corpus, "--query", "dog", "--limit", "0"},
			want: []string{`"dog": 0 result(s)`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := runApp(t, tt.args...)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			for _, s := range tt.want {
				if !strings.Contains(stdout, s) {
					t.Errorf("output missing %q:\n%s", s, stdout)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(stdout, s) {
					t.Errorf("output should not contain %q:\n%s", s, stdout)
				}
			}
		})
	}

	stdout, _, err := runApp(t, "--docs", corpus, "--query", "fox", "--query", "dog")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.Index(stdout, `"fox"`) > strings.Index(stdout, `"dog"`) {
		t.Errorf("queries printed out of order:\n%s", stdout)
	}
}

func TestRunMainMetrics(t *testing.T) {
	stdout, stderr, err := runApp(t, "--docs", writeCorpus(t), "--query", "fox", "--query", "", "--metrics")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(stdout, `"fox": 1 result(s)`) {
		t.Errorf("unexpected output:\n%s", stdout)
	}

	for _, want := range []string{
		"sift_documents_indexed_total 3",
		`sift_searches_total{outcome="matched"} 1`,
		`sift_searches_total{outcome="empty_query"} 1`,
		"sift_search_duration_seconds_count 2",
	} {
		if !strings.Contains(stderr, want) {
			t.Errorf("metrics dump missing %q:\n%s", want, stderr)
		}
	}
}

func TestRunMainErrors(t *testing.T) {
	if _, _, err := runApp(t, "--config", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Run() with a missing config file should fail")
	}
	if _, _, err := runApp(t, "--log-level", "loud"); err == nil {
		t.Error("Run() with an unknown log level should fail")
	}
}

func TestRunMainSkipsBadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs.jsonl")
	content := "{\"text\": \"good fox\"}\nnot json\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runApp(t, "--docs", path, "--query", "fox")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(stdout, `"fox": 1 result(s)`) {
		t.Errorf("unexpected output:\n%s", stdout)
	}
}
