package jsbld

import (
	"io"
	"sync"
)

// SyncWriter returns a writer that serializes writes to w. Concurrent jobs
// that share a task's output use it so their lines do not interleave mid-write.
func SyncWriter(w io.Writer) io.Writer {
	return &syncWriter{w: w}
}

type syncWriter struct {
	sync.Mutex
	w io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.Lock()
	defer s.Unlock()
	return s.w.Write(p)
}
