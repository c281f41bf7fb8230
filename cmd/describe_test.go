package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lepinkainen/imagetagger/gpt"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "configurations.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadRuntime(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	dir := t.TempDir()
	path := writeConfig(t,
		"prompt=Describe this image\n"+
			"source_folder="+dir+"\n"+
			"author_name=Jane Doe\n")

	cfg, logger, closer, err := loadRuntime(path)
	if err != nil {
		t.Fatalf("loadRuntime() error = %v", err)
	}
	if closer != nil {
		t.Error("Expected no closer when no log file is configured")
	}
	if logger == nil {
		t.Fatal("Expected a logger")
	}
	if cfg.SourceFolder != dir {
		t.Errorf("SourceFolder = %q, expected %q", cfg.SourceFolder, dir)
	}
	if cfg.DestinationFolder != dir {
		t.Errorf("DestinationFolder should default to the source folder, got %q", cfg.DestinationFolder)
	}
}

func TestLoadRuntime_MissingFile(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	_, _, _, err := loadRuntime(filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Error("Expected an error for a missing configuration file")
	}
}

func TestLoadRuntime_MissingAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	dir := t.TempDir()
	path := writeConfig(t, "prompt=Describe\nsource_folder="+dir+"\n")

	_, _, _, err := loadRuntime(path)
	if err == nil {
		t.Error("Expected an error when the API key is unset")
	}
}

func TestLoadRuntime_BadLogLevel(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	dir := t.TempDir()
	path := writeConfig(t,
		"prompt=Describe\nsource_folder="+dir+"\nlog_level=loud\n")

	_, _, _, err := loadRuntime(path)
	if err == nil {
		t.Error("Expected an error for an unsupported log level")
	}
}

func TestNewPipeline(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	dir := t.TempDir()
	path := writeConfig(t,
		"prompt=Describe this image\n"+
			"source_folder="+dir+"\n"+
			"author_name=Jane Doe\n"+
			"model=gpt-4o-mini\n")

	cfg, logger, _, err := loadRuntime(path)
	if err != nil {
		t.Fatalf("loadRuntime() error = %v", err)
	}

	p := newPipeline(cfg, logger, true, false)

	if p.Prompt != "Describe this image" {
		t.Errorf("Prompt = %q", p.Prompt)
	}
	if p.Author != "Jane Doe" {
		t.Errorf("Author = %q", p.Author)
	}
	if !p.UseCaptions || p.ShowBar {
		t.Errorf("UseCaptions/ShowBar = %v/%v, expected true/false", p.UseCaptions, p.ShowBar)
	}

	client, ok := p.Generator.(*gpt.Client)
	if !ok {
		t.Fatalf("Generator is %T, expected *gpt.Client", p.Generator)
	}
	if client.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q, expected the configured model", client.Model)
	}
	if client.APIKey != "test-key" {
		t.Errorf("APIKey = %q, expected the environment key", client.APIKey)
	}
}
