package batchconfig

import (
	"flag"
	"io/ioutil"
	"os"
	"testing"
)

func writeTempYaml(t *testing.T, body string) string {
	t.Helper()
	f, err := ioutil.TempFile("", "batchconfig-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString(body); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Remove(f.Name()) })
	return f.Name()
}

func TestLoadFromFlagsUsesYamlDefaults(t *testing.T) {
	path := writeTempYaml(t, "inputs:\n  - a.deflate\n  - b.deflate\noutput_dir: /tmp/out\nworkers: 4\ndigest: true\n")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.String("output-dir", "", "")
	fs.Int("workers", 1, "")
	fs.Bool("digest", false, "")

	cfg, err := LoadFromFlags(fs, path)
	if err != nil {
		t.Fatalf("LoadFromFlags: %v", err)
	}
	if len(cfg.Inputs) != 2 || cfg.Inputs[0] != "a.deflate" {
		t.Errorf("Inputs = %v", cfg.Inputs)
	}
	if cfg.OutputDir != "/tmp/out" || cfg.Workers != 4 || !cfg.Digest {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadFromFlagsFlagWinsOverYaml(t *testing.T) {
	path := writeTempYaml(t, "output_dir: /tmp/out\nworkers: 4\n")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.String("output-dir", "", "")
	fs.Int("workers", 1, "")
	fs.Bool("digest", false, "")
	if err := fs.Parse([]string{"-workers=9"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFlags(fs, path)
	if err != nil {
		t.Fatalf("LoadFromFlags: %v", err)
	}
	if cfg.Workers != 9 {
		t.Errorf("Workers = %d, want 9 (flag should win over yaml's 4)", cfg.Workers)
	}
	if cfg.OutputDir != "/tmp/out" {
		t.Errorf("OutputDir = %q, want yaml's value since no flag was set", cfg.OutputDir)
	}
}

func TestSetFlagsFromYaml(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.String("output-dir", "", "")
	if err := fs.Parse([]string{"-output-dir=/from/flag"}); err != nil {
		t.Fatal(err)
	}
	fs.String("other-name", "default", "")

	raw := []byte("OUTPUT_DIR: /from/yaml\nOTHER_NAME: set-by-yaml\n")
	if err := SetFlagsFromYaml(fs, raw); err != nil {
		t.Fatalf("SetFlagsFromYaml: %v", err)
	}
	if fs.Lookup("output-dir").Value.String() != "/from/flag" {
		t.Errorf("explicitly set flag was overwritten by yaml")
	}
	if fs.Lookup("other-name").Value.String() != "set-by-yaml" {
		t.Errorf("unset flag was not populated from yaml")
	}
}
