// Copyright 2014 CoreOS, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package batchconfig loads the configuration for a batch decode job from a
// YAML file, with values on the command line taking precedence over the
// file.
package batchconfig

import (
	"flag"
	"fmt"
	"io/ioutil"
	"strings"

	"gopkg.in/yaml.v2"
)

// Config describes one batch decode run: which files to decode, where to
// write the results, how many to run concurrently, and whether to print a
// content digest of each decoded payload.
type Config struct {
	Inputs    []string `yaml:"inputs"`
	OutputDir string   `yaml:"output_dir"`
	Workers   int      `yaml:"workers"`
	Digest    bool     `yaml:"digest"`
}

// LoadFromFlags reads the YAML file at yamlPath into a Config, then
// overrides it field-by-field with any flag on fs that the caller set
// explicitly on the command line -- a flag wins over the YAML value,
// mirroring SetFlagsFromYaml's precedence rule.
func LoadFromFlags(fs *flag.FlagSet, yamlPath string) (*Config, error) {
	raw, err := ioutil.ReadFile(yamlPath)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "inputs":
			cfg.Inputs = strings.Split(f.Value.String(), ",")
		case "output-dir":
			cfg.OutputDir = f.Value.String()
		case "workers":
			fmt.Sscanf(f.Value.String(), "%d", &cfg.Workers)
		case "digest":
			cfg.Digest = f.Value.String() == "true"
		}
	})
	return cfg, nil
}

// SetFlagsFromYaml goes through all registered flags in the given flagset,
// and if they are not already set it attempts to set their values from the
// YAML config. It will use the key REPLACE(UPPERCASE(flagname), '-', '_').
func SetFlagsFromYaml(fs *flag.FlagSet, rawYaml []byte) (err error) {
	conf := make(map[string]string)
	if err = yaml.Unmarshal(rawYaml, conf); err != nil {
		return
	}
	alreadySet := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		alreadySet[f.Name] = true
	})
	fs.VisitAll(func(f *flag.Flag) {
		if alreadySet[f.Name] {
			return
		}
		tag := strings.ToUpper(f.Name)
		tag = strings.Replace(tag, "-", "_", -1)
		if tag == "" {
			return
		}
		val, ok := conf[tag]
		if !ok {
			return
		}
		if serr := fs.Set(f.Name, val); serr != nil {
			err = fmt.Errorf("invalid value %q for %s: %v", val, tag, serr)
		}
	})
	return
}
