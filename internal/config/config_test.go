// Package config tests configuration loading.
package config

import (
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func mapLookup(values map[string]string) lookupFunc {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func testLoader(t *testing.T, env map[string]string) *loader {
	t.Helper()
	return &loader{
		workDir: t.TempDir(),
		lookup:  mapLookup(env),
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if cfg.TasksFile != DefaultTasksFile {
		t.Errorf("TasksFile: got %q, want %q", cfg.TasksFile, DefaultTasksFile)
	}
	if cfg.Addr != DefaultAddr {
		t.Errorf("Addr: got %q, want %q", cfg.Addr, DefaultAddr)
	}
	if cfg.Lang != "en" {
		t.Errorf("Lang: got %q, want en", cfg.Lang)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("logging defaults: got %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadDefaultsResolveAgainstWorkDir(t *testing.T) {
	l := testLoader(t, nil)

	cws, err := l.load(flag.NewFlagSet("todo", flag.ContinueOnError), nil, true)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := cws.Config

	want := filepath.Join(l.workDir, DefaultTasksFile)
	if cfg.TasksFile != want {
		t.Errorf("TasksFile: got %q, want %q", cfg.TasksFile, want)
	}
	if cfg.ProjectRoot != l.workDir {
		t.Errorf("ProjectRoot: got %q, want %q", cfg.ProjectRoot, l.workDir)
	}
	for _, field := range configFields() {
		if cws.Sources[field] != SourceDefault {
			t.Errorf("source of %s: got %q, want default", field, cws.Sources[field])
		}
	}
	if cws.GetConfigFile() != "" {
		t.Errorf("expected no config file, got %q", cws.GetConfigFile())
	}
}

func TestLoadFromEnv(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	sources := map[string]ConfigSource{}

	loadFromEnv(cfg, mapLookup(map[string]string{
		"TODO_FILE":           "custom-tasks.json",
		"TODO_ADDR":           "127.0.0.1:9000",
		"TODO_LANG":           "zh-TW",
		"TODO_LOG_LEVEL":      "debug",
		"TODO_LOG_TIMESTAMPS": "yes",
		"TODO_LOG_FORMAT":     "",
	}), sources)

	if cfg.TasksFile != "custom-tasks.json" {
		t.Errorf("TasksFile: got %q, want custom-tasks.json", cfg.TasksFile)
	}
	if cfg.Addr != "127.0.0.1:9000" {
		t.Errorf("Addr: got %q", cfg.Addr)
	}
	if cfg.Lang != "zh-TW" {
		t.Errorf("Lang: got %q", cfg.Lang)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q", cfg.LogLevel)
	}
	if !cfg.LogTimestamps {
		t.Error("LogTimestamps: expected true")
	}
	if cfg.LogFormat != DefaultLogFormat {
		t.Errorf("empty env value should be ignored, LogFormat: got %q", cfg.LogFormat)
	}
	if sources["tasks_file"] != SourceEnv {
		t.Errorf("tasks_file source: got %q", sources["tasks_file"])
	}
	if _, ok := sources["log_format"]; ok {
		t.Error("log_format should not be marked as coming from the environment")
	}
}

func TestDotEnvLookup(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "TODO_TEST_DOTENV_ONLY=from-file\nTODO_TEST_DOTENV_BOTH=from-file\n")
	t.Setenv("TODO_TEST_DOTENV_BOTH", "from-env")

	lookup, err := dotEnvLookup(dir)
	if err != nil {
		t.Fatalf("dotEnvLookup: %v", err)
	}

	if v, ok := lookup("TODO_TEST_DOTENV_ONLY"); !ok || v != "from-file" {
		t.Errorf("TODO_TEST_DOTENV_ONLY: got %q, %v", v, ok)
	}
	if v, _ := lookup("TODO_TEST_DOTENV_BOTH"); v != "from-env" {
		t.Errorf("real environment should win over .env, got %q", v)
	}
	if _, ok := lookup("TODO_TEST_DOTENV_MISSING"); ok {
		t.Error("expected missing key to be absent")
	}
}

func TestDotEnvLookupMissingFile(t *testing.T) {
	lookup, err := dotEnvLookup(t.TempDir())
	if err != nil {
		t.Fatalf("missing .env should not be an error: %v", err)
	}
	if lookup == nil {
		t.Fatal("expected a lookup function")
	}
}

func TestLoadConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "todo.toml")
	writeFile(t, configFile, `tasks_file = "custom.json"
addr = ":8080"
log_caller = true
`)

	cfg := &Config{}
	setDefaults(cfg)
	sources := map[string]ConfigSource{}
	if err := loadConfigFile(cfg, configFile, sources, SourceProjFile); err != nil {
		t.Fatalf("loadConfigFile: %v", err)
	}

	if cfg.TasksFile != "custom.json" {
		t.Errorf("TasksFile: got %q, want custom.json", cfg.TasksFile)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr: got %q, want :8080", cfg.Addr)
	}
	if !cfg.LogCaller {
		t.Error("LogCaller: expected true")
	}
	if cfg.Lang != DefaultLang {
		t.Errorf("Lang should keep its default, got %q", cfg.Lang)
	}
	if sources["addr"] != SourceProjFile {
		t.Errorf("addr source: got %q", sources["addr"])
	}
	if _, ok := sources["lang"]; ok {
		t.Error("lang was not in the file and should not be tracked")
	}
}

func TestLoadConfigFileInvalid(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "todo.toml")
	writeFile(t, configFile, `tasks_file = [`)

	cfg := &Config{}
	if err := loadConfigFile(cfg, configFile, nil, SourceProjFile); err == nil {
		t.Error("expected TOML parse error")
	}
}

func TestLoadPriority(t *testing.T) {
	l := testLoader(t, map[string]string{"TODO_ADDR": ":7000"})

	userFile := filepath.Join(t.TempDir(), "todo.toml")
	writeFile(t, userFile, `lang = "zh-TW"
addr = ":6000"
log_level = "warn"
`)
	l.userConfig = userFile
	writeFile(t, filepath.Join(l.workDir, "todo.toml"), `log_level = "error"
tasks_file = "project.json"
`)

	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	cws, err := l.load(fs, []string{"-file", "flag.json", "add", "x"}, true)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := cws.Config

	if cfg.Lang != "zh-TW" {
		t.Errorf("Lang from user file: got %q", cfg.Lang)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("project file should override user file, LogLevel: got %q", cfg.LogLevel)
	}
	if cfg.Addr != ":7000" {
		t.Errorf("env should override files, Addr: got %q", cfg.Addr)
	}
	if cfg.TasksFile != filepath.Join(l.workDir, "flag.json") {
		t.Errorf("flag should override everything, TasksFile: got %q", cfg.TasksFile)
	}

	wantSources := map[string]ConfigSource{
		"lang":       SourceUserFile,
		"log_level":  SourceProjFile,
		"addr":       SourceEnv,
		"tasks_file": SourceFlag,
		"log_format": SourceDefault,
	}
	for field, want := range wantSources {
		if got := cws.Sources[field]; got != want {
			t.Errorf("source of %s: got %q, want %q", field, got, want)
		}
	}

	if len(cws.Files) != 2 {
		t.Fatalf("Files: got %v", cws.Files)
	}
	if cws.GetConfigFile() != filepath.Join(l.workDir, "todo.toml") {
		t.Errorf("GetConfigFile: got %q", cws.GetConfigFile())
	}
	if rest := fs.Args(); len(rest) != 2 || rest[0] != "add" {
		t.Errorf("remaining args: got %v", rest)
	}
}

func TestHiddenProjectConfigFile(t *testing.T) {
	l := testLoader(t, nil)
	writeFile(t, filepath.Join(l.workDir, ".todo.toml"), `addr = ":1234"`)

	cws, err := l.load(nil, nil, false)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cws.Config.Addr != ":1234" {
		t.Errorf("Addr: got %q, want :1234", cws.Config.Addr)
	}
	if cws.Sources != nil {
		t.Error("sources should not be tracked when not requested")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	t.Setenv("TODO_TEST_DIR", "/srv/todo")

	tests := []struct {
		input string
		want  string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"~", home},
		{"/absolute/path", "/absolute/path"},
		{"relative", "relative"},
		{"$TODO_TEST_DIR/tasks.json", "/srv/todo/tasks.json"},
	}
	if runtime.GOOS != "windows" {
		tests = append(tests, struct {
			input string
			want  string
		}{`~\test`, `~\test`})
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := expandPath(tt.input)
			if got != tt.want {
				t.Errorf("expandPath(%q): got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFlags(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	args := []string{"-addr", ":9999", "-log-level", "debug", "-log-timestamps"}
	if err := parseFlags(cfg, fs, args, nil); err != nil {
		t.Fatalf("parseFlags: %v", err)
	}

	if cfg.Addr != ":9999" {
		t.Errorf("Addr: got %q, want :9999", cfg.Addr)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want debug", cfg.LogLevel)
	}
	if !cfg.LogTimestamps {
		t.Error("LogTimestamps: expected true")
	}
	if cfg.TasksFile != DefaultTasksFile {
		t.Errorf("unset flag should keep value, TasksFile: got %q", cfg.TasksFile)
	}
}

func TestFinalizeConfigEmptyTasksFile(t *testing.T) {
	cfg := &Config{ProjectRoot: t.TempDir()}
	if err := finalizeConfig(cfg); err == nil {
		t.Error("expected error for empty tasks_file")
	}
}

func TestFinalizeConfigLogFile(t *testing.T) {
	root := t.TempDir()
	cfg := &Config{ProjectRoot: root, TasksFile: "/abs/tasks.json", LogFile: "todo.log"}
	if err := finalizeConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.TasksFile != "/abs/tasks.json" {
		t.Errorf("absolute TasksFile should be kept, got %q", cfg.TasksFile)
	}
	if cfg.LogFile != filepath.Join(root, "todo.log") {
		t.Errorf("LogFile: got %q", cfg.LogFile)
	}
}

func TestBoolFromString(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"on", true},
		{"0", false},
		{"false", false},
		{"", false},
		{"maybe", false},
	}

	for _, tt := range tests {
		if got := boolFromString(tt.in); got != tt.want {
			t.Errorf("boolFromString(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
