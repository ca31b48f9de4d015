package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/4thel00z/diverse/internal"
)

func writeVectorsFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write vectors file: %v", err)
	}
	return path
}

func TestSelectCmdFixedK(t *testing.T) {
	chdirProject(t)
	a := newApp()
	path := writeVectorsFile(t, "vectors.json", `[[1, 0], [1, 0], [0, 1]]`)

	out, err := runCommand(t, NewSelectCmd(a.selectUC, a.selectCorpus), path, "-k", "2")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out)
	}
	if lines[0] != "0" || lines[1] != "2" {
		t.Errorf("expected picks 0 and 2, got %q", lines)
	}
}

func TestSelectCmdAutoShowsGains(t *testing.T) {
	chdirProject(t)
	a := newApp()
	path := writeVectorsFile(t, "vectors.json", `[[1, 0], [1, 0], [0, 1]]`)

	out, err := runCommand(t, NewSelectCmd(a.selectUC, a.selectCorpus), path)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out)
	}
	if lines[0] != "0  2.0000" {
		t.Errorf("expected gain on first line, got %q", lines[0])
	}
	if lines[1] != "2  1.0000" {
		t.Errorf("expected gain on second line, got %q", lines[1])
	}
}

func TestSelectCmdKeyedFile(t *testing.T) {
	chdirProject(t)
	a := newApp()
	path := writeVectorsFile(t, "vectors.jsonl", `{"key": "a", "vector": [1, 0]}
{"key": "b", "vector": [1, 0]}
{"key": "c", "vector": [0, 1]}`)

	out, err := runCommand(t, NewSelectCmd(a.selectUC, a.selectCorpus), path, "-k", "2")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "0  a" || lines[1] != "2  c" {
		t.Errorf("expected keyed picks, got %q", lines)
	}
}

func TestSelectCmdJSON(t *testing.T) {
	chdirProject(t)
	path := writeVectorsFile(t, "vectors.json", `[[1, 0], [1, 0], [0, 1]]`)

	out, err := runCommand(t, NewRootCmd("test", newApp()), "select", path, "-k", "2", "--json")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	var result struct {
		Picks []map[string]any `json:"picks"`
		Auto  bool             `json:"auto"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("unmarshal output: %v\n%s", err, out)
	}
	if result.Auto {
		t.Error("fixed k must not report auto")
	}
	if len(result.Picks) != 2 {
		t.Fatalf("expected 2 picks, got %d", len(result.Picks))
	}
	if idx, ok := result.Picks[0]["index"].(float64); !ok || idx != 0 {
		t.Errorf("unexpected first pick: %v", result.Picks[0])
	}
}

func TestSelectCmdFromCorpus(t *testing.T) {
	chdirProject(t)
	a := newApp()
	ctx := context.Background()

	seed := []struct {
		key string
		vec []float32
	}{
		{"a", []float32{1, 0}},
		{"b", []float32{1, 0}},
		{"c", []float32{0, 1}},
	}
	for _, s := range seed {
		if err := a.corpusAdd.Execute(ctx, internal.CorpusAddInput{Key: s.key, Vector: s.vec}); err != nil {
			t.Fatalf("seed %s: %v", s.key, err)
		}
	}

	out, err := runCommand(t, NewSelectCmd(a.selectUC, a.selectCorpus), "--corpus", "-k", "2")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "0  a" || lines[1] != "2  c" {
		t.Errorf("expected corpus picks, got %q", lines)
	}
}

func TestSelectCmdNoInput(t *testing.T) {
	chdirProject(t)
	a := newApp()

	_, err := runCommand(t, NewSelectCmd(a.selectUC, a.selectCorpus))
	if err == nil {
		t.Error("expected error without file or --corpus")
	}
}

func TestSelectCmdCorpusRejectsFileArg(t *testing.T) {
	chdirProject(t)
	a := newApp()
	path := writeVectorsFile(t, "vectors.json", `[[1, 0]]`)

	_, err := runCommand(t, NewSelectCmd(a.selectUC, a.selectCorpus), path, "--corpus")
	if err == nil {
		t.Error("expected error for --corpus with a file argument")
	}
}

func TestSelectInputFromNamedVectors(t *testing.T) {
	input := selectInputFrom([]internal.NamedVector{
		{Key: "a", Vector: []float32{1, 0}},
		{Vector: []float32{0, 1}},
	}, 1, "", 0, 0)

	if input.Keys == nil {
		t.Fatal("expected keys to be carried when any vector is named")
	}
	if input.Keys[0] != "a" || input.Keys[1] != "" {
		t.Errorf("unexpected keys: %v", input.Keys)
	}
}

func TestSelectInputFromUnnamedVectors(t *testing.T) {
	input := selectInputFrom([]internal.NamedVector{
		{Vector: []float32{1, 0}},
		{Vector: []float32{0, 1}},
	}, 1, "", 0, 0)

	if input.Keys != nil {
		t.Errorf("expected no keys for unnamed vectors, got %v", input.Keys)
	}
}
