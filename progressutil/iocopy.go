// Copyright 2016 CoreOS Inc
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

// Package progressutil prints a live-updating progress bar for one or more
// concurrent decode operations.
package progressutil

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

// ErrAlreadyStarted is returned by AddCopy or PrintAndWait once PrintAndWait
// has already been called on this printer.
var ErrAlreadyStarted = errors.New("progressutil: already started")

// Tracker receives progress updates for one named decode. flate.ProgressFunc
// matches Update's signature, so a Tracker can be passed to
// flate.InflateWithProgress directly.
type Tracker struct {
	name    string
	total   int64
	current int64
}

// Update records n, the current logical length of the decoded output. It is
// safe to call from the goroutine performing the decode while PrintAndWait
// runs concurrently.
func (t *Tracker) Update(n int) {
	atomic.StoreInt64(&t.current, int64(n))
}

// InflateProgressPrinter prints a bar per tracked decode, refreshed on an
// interval, until every tracked decode reaches its total or the caller
// cancels.
type InflateProgressPrinter struct {
	mu       sync.Mutex
	trackers []*Tracker
	started  bool
}

// NewInflateProgressPrinter returns a printer with no tracked copies.
func NewInflateProgressPrinter() *InflateProgressPrinter {
	return &InflateProgressPrinter{}
}

// AddCopy registers a new named decode of the given total size (the
// compressed input's expected decoded length; 0 if unknown) and returns a
// Tracker to report its progress through. It returns ErrAlreadyStarted if
// PrintAndWait has already begun printing.
func (p *InflateProgressPrinter) AddCopy(name string, total int64) (*Tracker, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return nil, ErrAlreadyStarted
	}
	t := &Tracker{name: name, total: total}
	p.trackers = append(p.trackers, t)
	return t, nil
}

// PrintAndWait prints one line per tracked decode to w every interval,
// rewriting the previous block of lines in place, until every tracker
// reaches its total or cancel is signaled. It returns ErrAlreadyStarted if
// called more than once on the same printer.
func (p *InflateProgressPrinter) PrintAndWait(w io.Writer, interval time.Duration, cancel <-chan struct{}) error {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return ErrAlreadyStarted
	}
	p.started = true
	trackers := append([]*Tracker(nil), p.trackers...)
	p.mu.Unlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	printed := 0
	render := func() {
		if printed > 0 {
			fmt.Fprintf(w, "\033[%dA", printed)
		}
		for _, t := range trackers {
			cur := atomic.LoadInt64(&t.current)
			fmt.Fprintf(w, "%s: %s\n", t.name, sizeString(cur, t.total))
		}
		printed = len(trackers)
	}

	for {
		render()
		if allDone(trackers) {
			return nil
		}
		select {
		case <-ticker.C:
		case <-cancel:
			return nil
		}
	}
}

func allDone(trackers []*Tracker) bool {
	for _, t := range trackers {
		if t.total <= 0 {
			continue
		}
		if atomic.LoadInt64(&t.current) < t.total {
			return false
		}
	}
	return true
}

func sizeString(current, total int64) string {
	if total <= 0 {
		return ByteUnitStr(current)
	}
	return ByteUnitStr(current) + " / " + ByteUnitStr(total)
}

// ByteUnitStr renders n bytes using the largest binary unit (B, KiB, MiB,
// GiB, TiB) that keeps the number at or above 1.
func ByteUnitStr(n int64) string {
	units := []string{"B", "KiB", "MiB", "GiB", "TiB"}
	f := float64(n)
	i := 0
	for f >= 1024 && i < len(units)-1 {
		f /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%d %s", n, units[i])
	}
	return fmt.Sprintf("%.1f %s", f, units[i])
}
