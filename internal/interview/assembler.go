package interview

import (
	"errors"
	"io"
	"strings"
)

// assemblerChunkSize is the read size for one pull from the response body.
const assemblerChunkSize = 4096

// Assembler consumes the raw incremental body of a streamed chat response
// and accumulates the decoded text. Exhaustion of the byte stream is the
// only completion signal; there is no sentinel in the payload.
//
// The Assembler never touches the message ledger: each Next result is
// folded into the transcript by the event loop, so ledger mutations stay on
// the single update goroutine even though pulls run on command goroutines.
// At most one pull may be in flight per session; the caller enforces this
// by issuing the next pull only after the previous result was applied.
type Assembler struct {
	body    io.ReadCloser
	decoder StreamDecoder
	buf     strings.Builder
	done    bool
}

// NewAssembler creates an Assembler reading from body. The Assembler owns
// body and closes it when the stream ends or fails.
func NewAssembler(body io.ReadCloser) *Assembler {
	return &Assembler{body: body}
}

// Next reads one chunk and returns the accumulated text so far. done is
// true once the stream is exhausted. On error the partial text decoded up
// to that point is still returned; it is never rolled back. In every
// terminal case (done or error) the body is closed.
func (a *Assembler) Next() (text string, done bool, err error) {
	if a.done {
		return a.buf.String(), true, nil
	}

	chunk := make([]byte, assemblerChunkSize)
	n, readErr := a.body.Read(chunk)
	if n > 0 {
		a.buf.WriteString(a.decoder.Decode(chunk[:n]))
	}

	if readErr != nil {
		a.done = true
		_ = a.body.Close()
		if errors.Is(readErr, io.EOF) {
			a.buf.WriteString(a.decoder.Flush())
			return a.buf.String(), true, nil
		}
		return a.buf.String(), true, readErr
	}

	return a.buf.String(), false, nil
}

// Text returns the text accumulated so far.
func (a *Assembler) Text() string {
	return a.buf.String()
}

// Close releases the underlying body early, for session teardown while a
// pull may still be in flight. It only closes the body, which is safe
// against a concurrent Read and unblocks it; all other state stays owned
// by Next.
func (a *Assembler) Close() error {
	return a.body.Close()
}
