package interview

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkReader yields one predefined chunk per Read call, then io.EOF.
type chunkReader struct {
	chunks [][]byte
	err    error // returned after the chunks are exhausted, instead of EOF
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		return 0, io.EOF
	}
	n := copy(p, r.chunks[0])
	if n < len(r.chunks[0]) {
		r.chunks[0] = r.chunks[0][n:]
	} else {
		r.chunks = r.chunks[1:]
	}
	return n, nil
}

func (r *chunkReader) Close() error { return nil }

// drain pulls the assembler to completion the way the update loop does:
// each result is folded into the ledger before the next pull, and stream
// ownership is released at the terminal pull.
func drain(t *testing.T, iv *Interview, a *Assembler) (string, error) {
	t.Helper()
	for i := 0; i < 100; i++ {
		text, done, err := a.Next()
		if text != "" {
			iv.ExtendAssistant(text)
		}
		if done || err != nil {
			iv.FinishStream()
			return text, err
		}
	}
	t.Fatal("assembler never finished")
	return "", nil
}

func TestAssemblerFoldsChunksIntoSingleEntry(t *testing.T) {
	iv := NewWithClock("sess-1", func() time.Time { return time.Unix(0, 0) })
	iv.AppendUser("Hello")

	body := &chunkReader{chunks: [][]byte{[]byte("Hi"), []byte(" there"), []byte("!")}}
	text, err := drain(t, iv, NewAssembler(body))
	require.NoError(t, err)
	assert.Equal(t, "Hi there!", text)

	msgs := iv.Snapshot()
	require.Len(t, msgs, 2)
	assert.Equal(t, Message{Role: RoleUser, Content: "Hello"}, msgs[0])
	assert.Equal(t, Message{Role: RoleAssistant, Content: "Hi there!"}, msgs[1])
}

func TestAssemblerHandlesRuneSplitAcrossChunks(t *testing.T) {
	iv := NewWithClock("sess-1", func() time.Time { return time.Unix(0, 0) })
	iv.AppendUser("Hello")

	raw := []byte("Grüße 🎯")
	body := &chunkReader{chunks: [][]byte{raw[:3], raw[3:5], raw[5:9], raw[9:]}}
	text, err := drain(t, iv, NewAssembler(body))
	require.NoError(t, err)
	assert.Equal(t, "Grüße 🎯", text)
	require.Equal(t, 2, iv.Messages())
}

func TestAssemblerKeepsPartialTextOnStreamFailure(t *testing.T) {
	iv := NewWithClock("sess-1", func() time.Time { return time.Unix(0, 0) })
	iv.AppendUser("Hello")

	netErr := errors.New("connection reset")
	body := &chunkReader{chunks: [][]byte{[]byte("partial answ")}, err: netErr}
	text, err := drain(t, iv, NewAssembler(body))
	require.ErrorIs(t, err, netErr)
	assert.Equal(t, "partial answ", text)

	// The partial text already rendered stays in place, not rolled back.
	msgs := iv.Snapshot()
	require.Len(t, msgs, 2)
	assert.Equal(t, "partial answ", msgs[1].Content)
}

func TestAssemblerEmptyStreamAppendsNothing(t *testing.T) {
	iv := NewWithClock("sess-1", func() time.Time { return time.Unix(0, 0) })
	iv.AppendUser("Hello")

	body := &chunkReader{}
	text, err := drain(t, iv, NewAssembler(body))
	require.NoError(t, err)
	assert.Equal(t, "", text)
	assert.Equal(t, 1, iv.Messages())
}

func TestAssemblerNextAfterDoneIsStable(t *testing.T) {
	body := &chunkReader{chunks: [][]byte{[]byte("done")}}
	a := NewAssembler(body)
	for {
		_, done, err := a.Next()
		require.NoError(t, err)
		if done {
			break
		}
	}

	text, done, err := a.Next()
	assert.True(t, done)
	assert.NoError(t, err)
	assert.Equal(t, "done", text)
}

func TestSnapshotSafeWhileStreamDrains(t *testing.T) {
	// Pulls run on command goroutines while the update loop keeps reading
	// the ledger for rendering. Next must not touch the ledger, so draining
	// concurrently with Snapshot is race-free (verified under -race).
	iv := NewWithClock("sess-1", func() time.Time { return time.Unix(0, 0) })
	iv.AppendUser("Hello")

	chunks := make([][]byte, 50)
	for i := range chunks {
		chunks[i] = []byte("chunk ")
	}
	a := NewAssembler(&chunkReader{chunks: chunks})

	results := make(chan string, 1)
	go func() {
		for {
			text, done, err := a.Next()
			if done || err != nil {
				results <- text
				return
			}
		}
	}()

	for {
		select {
		case text := <-results:
			iv.ExtendAssistant(text)
			iv.FinishStream()
			msgs := iv.Snapshot()
			require.Len(t, msgs, 2)
			assert.Equal(t, text, msgs[1].Content)
			return
		default:
			_ = iv.Snapshot()
		}
	}
}