package nativefunc

import (
	"fmt"

	"github.com/quackscience/duckdb-extension-clickhouse-native/projection"
)

// Scan fills chunk with up to chunk.Capacity() rows, pulling from the
// current block and advancing to the next one via the reader when the
// current block is drained. It reports 0 rows with a nil error once the
// file is exhausted; the host interprets that as end of scan.
func (s *ScanState) Scan(chunk projection.Chunk) (int, error) {
	if s.exhausted {
		chunk.SetLen(0)

		return 0, nil
	}

	if !s.started {
		s.started = true
		s.current = s.data.first
	}

	for {
		if s.current == nil {
			s.exhausted = true
			chunk.SetLen(0)

			return 0, nil
		}

		if s.cursor.Done(s.current) {
			next, err := s.data.reader.Next()
			if err != nil {
				s.exhausted = true

				return 0, fmt.Errorf("nativefunc.Scan: %w", err)
			}

			s.current = next
			s.cursor = projection.Cursor{}

			continue
		}

		n, err := projection.Fill(s.current, &s.cursor, s.data.Schema, chunk)
		if err != nil {
			s.exhausted = true

			return 0, fmt.Errorf("nativefunc.Scan: %w", err)
		}

		return n, nil
	}
}
