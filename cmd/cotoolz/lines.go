package main

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/webriots/cotoolz"
)

const stdinPath = "-"

// lineReader is a pull iterator over the lines of a reader. Read
// errors end the iteration and are kept for the caller to inspect.
type lineReader struct {
	name string
	rc   io.ReadCloser
	sc   *bufio.Scanner
	err  error
}

func newLineReader(name string, rc io.ReadCloser) *lineReader {
	return &lineReader{name: name, rc: rc, sc: bufio.NewScanner(rc)}
}

func (r *lineReader) Next() (string, bool) {
	if r.sc.Scan() {
		return r.sc.Text(), true
	}
	if err := r.sc.Err(); err != nil {
		r.err = errors.Wrapf(err, "read %s", r.name)
	}
	return "", false
}

func (r *lineReader) Close() error {
	return r.rc.Close()
}

// sources holds the line readers opened for one command run, wrapped
// as coroutines in argument order.
type sources struct {
	readers []*lineReader
	coros   []cotoolz.Coroutine[struct{}, string]
}

func openSources(paths []string, stdin io.Reader, log *zap.Logger) (*sources, error) {
	s := new(sources)
	for _, path := range paths {
		var rc io.ReadCloser
		if path == stdinPath {
			rc = io.NopCloser(stdin)
		} else {
			f, err := os.Open(path)
			if err != nil {
				_ = s.close()
				return nil, errors.Wrapf(err, "open %s", path)
			}
			rc = f
		}
		log.Debug("opened source", zap.String("path", path))

		r := newLineReader(path, rc)
		s.readers = append(s.readers, r)
		s.coros = append(s.coros, cotoolz.Iter[struct{}, string](r))
	}
	return s, nil
}

// err returns the first read error hit by any reader.
func (s *sources) err() error {
	for _, r := range s.readers {
		if r.err != nil {
			return r.err
		}
	}
	return nil
}

// close closes sources that were opened but never handed to a
// combinator.
func (s *sources) close() error {
	var err error
	for _, c := range s.coros {
		err = multierr.Append(err, c.Close())
	}
	return err
}
