package commands

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

type closeRecorder struct {
	bytes.Buffer
	closed   bool
	closeErr error
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return c.closeErr
}

func TestWriteAndClose_ReportsCloseError(t *testing.T) {
	diskFull := errors.New("no space left on device")
	wc := &closeRecorder{closeErr: diskFull}

	err := writeAndClose(wc, func(w io.Writer) error {
		_, err := io.WriteString(w, "id,name\n")
		return err
	})
	assert.ErrorIs(t, err, diskFull)
	assert.True(t, wc.closed)
}

func TestWriteAndClose_WriteErrorWins(t *testing.T) {
	boom := errors.New("encode failed")
	wc := &closeRecorder{closeErr: errors.New("close failed")}

	err := writeAndClose(wc, func(io.Writer) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.True(t, wc.closed)
}

func TestWriteAndClose_OK(t *testing.T) {
	wc := &closeRecorder{}
	err := writeAndClose(wc, func(w io.Writer) error {
		_, err := io.WriteString(w, "ok")
		return err
	})
	assert.NoError(t, err)
	assert.Equal(t, "ok", wc.String())
}
