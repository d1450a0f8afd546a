package concurrency

const (
	// DefaultMax default max in-flight goroutines
	DefaultMax = 64
)

// DefaultGoLimit shared limiter
var DefaultGoLimit = NewGoLimit(DefaultMax)

// GoLimit bounds the number of goroutines running at once
type GoLimit struct {
	ch chan struct{}
}

// NewGoLimit new go limit
func NewGoLimit(max int) *GoLimit {
	return &GoLimit{
		ch: make(chan struct{}, max),
	}
}

// Add acquire a slot, blocking while max are in flight
func (g *GoLimit) Add() {
	g.ch <- struct{}{}
}

// Done release a slot
func (g *GoLimit) Done() {
	<-g.ch
}

// Close close chan
func (g *GoLimit) Close() {
	close(g.ch)
}
