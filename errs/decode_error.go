package errs

import "fmt"

// DecodeError carries a sentinel error kind together with the byte offset
// in the input stream where the failure was detected, so the host can
// surface "kind + short message + byte offset" per the error handling design.
type DecodeError struct {
	Op     string // component and operation, e.g. "block.Reader.Next"
	Offset int64  // byte offset within the file, -1 if not meaningful
	Err    error  // the underlying error, normally wrapping a sentinel from errs.go
}

func (e *DecodeError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("chnative [%s] at offset %d: %s", e.Op, e.Offset, e.Err)
	}

	return fmt.Sprintf("chnative [%s]: %s", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Wrap builds a DecodeError for op/offset/err, returning nil if err is nil.
func Wrap(op string, offset int64, err error) error {
	if err == nil {
		return nil
	}

	return &DecodeError{Op: op, Offset: offset, Err: err}
}
