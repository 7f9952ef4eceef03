package hub

import (
	"sync"

	"github.com/google/uuid"
)

// LocalConn is an in-process connection backed by a buffered channel.
type LocalConn struct {
	id       string
	username string

	mu     sync.Mutex
	ch     chan Message
	closed bool
}

func NewLocalConn(username string, buffer int) *LocalConn {
	return &LocalConn{
		id:       uuid.NewString(),
		username: username,
		ch:       make(chan Message, max(buffer, 1)),
	}
}

func (c *LocalConn) ID() string       { return c.id }
func (c *LocalConn) Username() string { return c.username }

func (c *LocalConn) Send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	select {
	case c.ch <- msg:
		return nil
	default:
		return ErrSlowConsumer
	}
}

// Messages is closed once the connection closes.
func (c *LocalConn) Messages() <-chan Message {
	return c.ch
}

func (c *LocalConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.ch)
	}
}
