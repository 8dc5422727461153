// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
goflate inflates DEFLATE and gzip-wrapped files.

Usage:

	goflate [flags] file...
	goflate batch -config jobs.yaml
	goflate serve -ip 127.0.0.1 -port 8080

With no subcommand, goflate inflates each file argument (gzip-wrapped if it
has a .gz extension, raw DEFLATE otherwise) and writes the decoded bytes next
to it with the compressed extension stripped.

"batch" runs a YAML-configured set of files through a worker pool.

"serve" runs an HTTP server exposing POST /inflate, which decodes the
request body (honoring Content-Encoding: gzip) and returns the decoded
bytes.
*/
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/coreos/pkg/capnslog"
	"github.com/coreos/pkg/flagutil"
	"github.com/coreos/pkg/stop"
	"golang.org/x/crypto/blake2b"

	"github.com/coreos/goflate/batchconfig"
	"github.com/coreos/goflate/flate"
	"github.com/coreos/goflate/gzipframe"
	"github.com/coreos/goflate/httputil"
	"github.com/coreos/goflate/logging"
	"github.com/coreos/goflate/progressutil"
)

var plog = capnslog.NewPackageLogger("github.com/coreos/goflate", "goflate")

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "batch":
		runBatch(os.Args[2:])
	case "serve":
		runServe(os.Args[2:])
	default:
		runInflate(os.Args[1:])
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: goflate [flags] file...")
	fmt.Fprintln(os.Stderr, "       goflate batch -config jobs.yaml")
	fmt.Fprintln(os.Stderr, "       goflate serve -ip 127.0.0.1 -port 8080")
}

// configureLogging installs a journald formatter when requested and
// available, falling back to capnslog's glog-style formatter otherwise.
func configureLogging(journald bool) {
	logging.Configure(journald)
}

// decodeFile inflates a single file, dispatching on its extension, and
// returns the decoded bytes.
func decodeFile(path string) ([]byte, error) {
	src, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		out, _, err := gzipframe.Inflate(src)
		return out, err
	}
	return flate.InflateBytes(src)
}

// outputPathFor strips a .gz or .deflate suffix, or appends .out if neither
// is present, so decodeFile's output never overwrites its own input.
func outputPathFor(path string) string {
	switch {
	case strings.HasSuffix(path, ".gz"):
		return strings.TrimSuffix(path, ".gz")
	case strings.HasSuffix(path, ".deflate"):
		return strings.TrimSuffix(path, ".deflate")
	default:
		return path + ".out"
	}
}

func printDigest(path string, data []byte) {
	sum := blake2b.Sum256(data)
	fmt.Printf("%x  %s\n", sum, path)
}

func runInflate(args []string) {
	fs := flag.NewFlagSet("goflate", flag.ExitOnError)
	digest := fs.Bool("digest", false, "print a blake2b-256 digest of each decoded payload")
	journald := fs.Bool("journald", false, "log to the systemd journal when available")
	fs.Parse(args)

	configureLogging(*journald)

	files := fs.Args()
	if len(files) == 0 {
		usage()
		os.Exit(2)
	}

	status := 0
	for _, path := range files {
		out, err := decodeFile(path)
		if err != nil {
			plog.Errorf("%s: %v", path, err)
			status = 1
			continue
		}
		dst := outputPathFor(path)
		if err := ioutil.WriteFile(dst, out, 0644); err != nil {
			plog.Errorf("%s: %v", dst, err)
			status = 1
			continue
		}
		if *digest {
			printDigest(dst, out)
		}
	}
	os.Exit(status)
}

func runBatch(args []string) {
	fs := flag.NewFlagSet("goflate batch", flag.ExitOnError)
	configPath := fs.String("config", "", "path to a batch job YAML file")
	fs.String("output-dir", "", "directory to write decoded files into")
	fs.Int("workers", 1, "number of concurrent decodes")
	fs.Bool("digest", false, "print a blake2b-256 digest of each decoded payload")
	journald := fs.Bool("journald", false, "log to the systemd journal when available")
	fs.Parse(args)

	configureLogging(*journald)

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "goflate batch: -config is required")
		os.Exit(2)
	}
	cfg, err := batchconfig.LoadFromFlags(fs, *configPath)
	if err != nil {
		plog.Fatalf("loading %s: %v", *configPath, err)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	printer := progressutil.NewInflateProgressPrinter()
	trackers := make([]*progressutil.Tracker, len(cfg.Inputs))
	for i, in := range cfg.Inputs {
		total := int64(0)
		if fi, err := os.Stat(in); err == nil {
			// A conservative guess at the decoded size, mirroring flate's own
			// starting-capacity heuristic for InflateBytes.
			total = fi.Size() * 3
		}
		tr, err := printer.AddCopy(in, total)
		if err != nil {
			plog.Fatalf("progress tracking: %v", err)
		}
		trackers[i] = tr
	}
	go printer.PrintAndWait(os.Stderr, 200*time.Millisecond, nil)

	group := stop.NewGroup()
	jobs := make(chan int, len(cfg.Inputs))
	for i := range cfg.Inputs {
		jobs <- i
	}
	close(jobs)

	failed := make(chan error, len(cfg.Inputs))
	for w := 0; w < cfg.Workers; w++ {
		stopCh := make(chan struct{})
		doneCh := make(chan struct{})
		group.AddFunc(func() <-chan struct{} {
			close(stopCh)
			return doneCh
		})
		go func() {
			defer close(doneCh)
			for {
				select {
				case i, ok := <-jobs:
					if !ok {
						return
					}
					runBatchJob(cfg, i, trackers[i], failed)
				case <-stopCh:
					return
				}
			}
		}()
	}

	for range cfg.Inputs {
		if err := <-failed; err != nil {
			plog.Errorf("batch job failed: %v", err)
			<-group.Stop()
			os.Exit(1)
		}
	}
}

func runBatchJob(cfg *batchconfig.Config, i int, tr *progressutil.Tracker, failed chan<- error) {
	path := cfg.Inputs[i]
	src, err := ioutil.ReadFile(path)
	if err != nil {
		failed <- err
		return
	}

	var out []byte
	if strings.HasSuffix(path, ".gz") {
		out, _, err = gzipframe.Inflate(src)
	} else {
		out, err = flate.InflateWithProgress(nil, src, tr.Update)
	}
	if err != nil {
		failed <- err
		return
	}

	dst := filepath.Join(cfg.OutputDir, filepath.Base(outputPathFor(path)))
	if err := ioutil.WriteFile(dst, out, 0644); err != nil {
		failed <- err
		return
	}
	if cfg.Digest {
		printDigest(dst, out)
	}
	failed <- nil
}

func runServe(args []string) {
	fs := flag.NewFlagSet("goflate serve", flag.ExitOnError)
	var listenIP flagutil.IPv4Flag
	fs.Var(&listenIP, "ip", "IPv4 address to bind (default 0.0.0.0)")
	port := fs.Int("port", 8080, "TCP port to bind")
	journald := fs.Bool("journald", false, "log to the systemd journal when available")
	fs.Parse(args)

	configureLogging(*journald)

	if listenIP.String() == "<nil>" {
		listenIP.Set("0.0.0.0")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/inflate", handleInflate)
	addr := fmt.Sprintf("%s:%d", listenIP.IP().String(), *port)
	plog.Infof("listening on %s", addr)
	plog.Fatal(http.ListenAndServe(addr, &httputil.LoggingMiddleware{Next: mux}))
}

func handleInflate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var out []byte
	if r.Header.Get("Content-Encoding") == "gzip" {
		out, _, err = gzipframe.Inflate(body)
	} else {
		out, err = flate.InflateBytes(body)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(out)
}
