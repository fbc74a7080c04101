/*
 * Fastbin - Zero-copy Binary Records
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
)

const maxStatusLength = 128

type status struct {
	lock sync.RWMutex

	startTime time.Time
	kind      string

	built     uint64
	verified  uint64
	stored    uint64
	retrieved uint64
	bytes     uint64
}

func newStatus(kind string) *status {
	return &status{startTime: time.Now(), kind: kind}
}

func (s *status) String() string {
	s.lock.RLock()
	defer s.lock.RUnlock()

	duration := time.Since(s.startTime)

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return fmt.Sprintf("duration %s, heapAlloc %d MiB, %d %ss built, %d verified, %d stored, %d retrieved, %d KiB written",
		duration.Truncate(time.Second).String(),
		m.Alloc/1024/1024,
		s.built,
		s.kind,
		s.verified,
		s.stored,
		s.retrieved,
		s.bytes/1024,
	)
}

func (s *status) incBuilt(size int) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.built++
	s.bytes += uint64(size)
}

func (s *status) incVerified() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.verified++
}

func (s *status) incStored() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.stored++
}

func (s *status) incRetrieved() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.retrieved++
}

func (s *status) Write() {
	writeStatus(s.String())
}

func writeStatus(status string) {
	// Clear old status
	s := fmt.Sprintf("\r%s\r", strings.Repeat(" ", maxStatusLength))
	_, _ = io.WriteString(os.Stdout, s)

	// Write new status
	_, _ = io.WriteString(os.Stdout, status)
}

// updateStatus writes s every few seconds until ctx is done.
func updateStatus(ctx context.Context, s *status) {
	s.Write()

	ticker := time.NewTicker(3 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Write()

		case <-ctx.Done():
			s.Write()
			fmt.Fprintf(os.Stdout, "\n")
			return
		}
	}
}
