// Package bufpool recycles the buffers request bodies are encoded into.
package bufpool

import (
	"bytes"
	"sync"
)

// maxRetained bounds the capacity of a buffer kept for reuse.
const maxRetained = 1 << 20

type Pool struct {
	p sync.Pool
}

func New() *Pool {
	p := new(Pool)
	p.p.New = func() interface{} {
		return &Buffer{pool: p}
	}
	return p
}

// Get returns an empty buffer. Close hands it back.
func (p *Pool) Get() *Buffer {
	return p.p.Get().(*Buffer)
}

func (p *Pool) put(b *Buffer) {
	if b.Cap() > maxRetained {
		return
	}
	b.Reset()
	p.p.Put(b)
}

// Buffer is a bytes.Buffer owned by a Pool.
type Buffer struct {
	bytes.Buffer
	pool *Pool
}

// Close returns b to its pool, b must not be used afterwards.
func (b *Buffer) Close() error {
	b.pool.put(b)
	return nil
}
