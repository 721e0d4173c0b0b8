/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestMain(m *testing.M) {
	wd := mustGetwd()
	cmd := exec.Command("go", "build", "-o", "typings_test", ".")
	cmd.Dir = wd
	if out, err := cmd.CombinedOutput(); err != nil {
		panic("failed to build test binary: " + err.Error() + "\n" + string(out))
	}
	code := m.Run()
	_ = os.Remove(filepath.Join(wd, "typings_test"))
	os.Exit(code)
}

func mustGetwd() string {
	wd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return wd
}

func runCLI(t *testing.T, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()
	binary := filepath.Join(mustGetwd(), "typings_test")
	cmd := exec.Command(binary, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			t.Fatalf("Failed to run CLI: %v", err)
		}
	}

	return stdout, stderr, exitCode
}

func writeSimpleProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	must(t, os.WriteFile(filepath.Join(dir, "typings.json"), []byte(`{
		"name": "fixture",
		"main": "index.d.ts",
		"dependencies": {"widget": "npm:widget"}
	}`), 0o644))
	must(t, os.WriteFile(filepath.Join(dir, "index.d.ts"), []byte(`import { Foo } from "widget";
export function use(f: Foo): void;
`), 0o644))
	must(t, os.MkdirAll(filepath.Join(dir, "node_modules"), 0o755))
	must(t, os.WriteFile(filepath.Join(dir, "node_modules", "widget.d.ts"), []byte(`export interface Foo {}`), 0o644))
	return dir
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := runCLI(t, "version")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d\nstderr: %s", code, stderr)
	}
	if !strings.HasPrefix(stdout, "typings ") {
		t.Errorf("expected version output, got %q", stdout)
	}
}

func TestVersionJSONFormat(t *testing.T) {
	stdout, stderr, code := runCLI(t, "version", "--format", "json")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d\nstderr: %s", code, stderr)
	}
	var info map[string]string
	if err := json.Unmarshal([]byte(stdout), &info); err != nil {
		t.Fatalf("failed to parse JSON output: %v\nstdout: %s", err, stdout)
	}
	if _, ok := info["version"]; !ok {
		t.Errorf("expected a version field, got %v", info)
	}
}

func TestResolveJSON(t *testing.T) {
	dir := writeSimpleProject(t)

	stdout, stderr, code := runCLI(t, "resolve", "--package", dir)
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d\nstderr: %s", code, stderr)
	}

	var tree map[string]any
	if err := json.Unmarshal([]byte(stdout), &tree); err != nil {
		t.Fatalf("failed to parse JSON output: %v\nstdout: %s", err, stdout)
	}
	if tree["name"] != "fixture" {
		t.Errorf("expected root name fixture, got %v", tree["name"])
	}
	deps, ok := tree["dependencies"].(map[string]any)
	if !ok || deps["widget"] == nil {
		t.Errorf("expected a widget dependency in the resolved tree, got %v", tree["dependencies"])
	}
}

func TestCompileStdout(t *testing.T) {
	dir := writeSimpleProject(t)

	stdout, stderr, code := runCLI(t, "compile", "--package", dir)
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d\nstderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "declare module 'fixture~widget'") {
		t.Errorf("expected a namespaced widget block, got:\n%s", stdout)
	}
	if !strings.Contains(stdout, "declare module 'fixture'") {
		t.Errorf("expected the root alias block, got:\n%s", stdout)
	}
}

func TestCompileOutputFiles(t *testing.T) {
	dir := writeSimpleProject(t)
	mainOut := filepath.Join(dir, "out.d.ts")
	browserOut := filepath.Join(dir, "out.browser.d.ts")

	_, stderr, code := runCLI(t, "compile", "--package", dir, "--output-main", mainOut, "--output-browser", browserOut)
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d\nstderr: %s", code, stderr)
	}

	data, err := os.ReadFile(mainOut)
	if err != nil {
		t.Fatalf("expected main output file to be written: %v", err)
	}
	if !strings.Contains(string(data), "declare module 'fixture~widget'") {
		t.Errorf("expected namespaced output in %s, got:\n%s", mainOut, data)
	}
	if _, err := os.Stat(browserOut); err != nil {
		t.Errorf("expected browser output file to be written: %v", err)
	}
}

func TestCompileMissingProjectFails(t *testing.T) {
	dir := t.TempDir()
	_, stderr, code := runCLI(t, "compile", "--package", dir)
	if code == 0 {
		t.Fatalf("expected a nonzero exit code for a directory with no manifest, stderr: %s", stderr)
	}
}

func TestHelp(t *testing.T) {
	stdout, _, code := runCLI(t, "--help")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	for _, want := range []string{"compile", "resolve", "version"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected help output to mention %q, got:\n%s", want, stdout)
		}
	}
}
