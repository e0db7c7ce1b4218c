package termesc

import (
	"bufio"
	"io"
)

// A ConsoleReader splits terminal input into tokens: single characters, and whole escape
// sequences for keys and mouse events.
type ConsoleReader struct {
	r *bufio.Reader
}

func NewConsoleReader(r io.Reader) *ConsoleReader { return &ConsoleReader{r: bufio.NewReader(r)} }

// ReadToken returns the next token from the input.
//
// An escape character not immediately followed by '[' in the data already read is
// returned on its own, since that is what a lone press of the Escape key looks like.
func (c *ConsoleReader) ReadToken() (string, error) {
	r, _, err := c.r.ReadRune()
	if err != nil {
		return "", err
	}
	if r != '\x1B' {
		return string(r), nil
	}
	if c.r.Buffered() == 0 {
		return "\x1B", nil
	}
	if b, err := c.r.Peek(1); err != nil || b[0] != '[' {
		return "\x1B", nil
	}
	c.r.ReadByte()
	token := []byte(csi)
	b, err := c.r.ReadByte()
	if err != nil {
		return string(token), err
	}
	token = append(token, b)
	if b == 'M' {
		// xterm mouse events carry three raw bytes after the M.
		for i := 0; i < 3; i++ {
			if b, err = c.r.ReadByte(); err != nil {
				return string(token), err
			}
			token = append(token, b)
		}
		return string(token), nil
	}
	for !isFinalByte(b) {
		if b, err = c.r.ReadByte(); err != nil {
			return string(token), err
		}
		token = append(token, b)
	}
	return string(token), nil
}

// Control sequences end with a byte in the range @ to ~.
func isFinalByte(b byte) bool { return b >= 0x40 && b <= 0x7E }
