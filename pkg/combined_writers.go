package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter duplicates writes to all of its writers, like io.MultiWriter,
// but keeps writing to the rest when one of them fails.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		Writers: append([]io.Writer(nil), writers...),
	}
}

func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var err error
	for _, w := range cw.Writers {
		written, werr := w.Write(p)
		if werr == nil && written != len(p) {
			werr = io.ErrShortWrite
		}
		err = multierr.Append(err, werr)
	}
	if err != nil {
		return 0, err
	}
	return len(p), nil
}
