package scene

import (
	"fmt"
	"strconv"
	"strings"
)

// NamingContext hands out default element names ("Button1", "Button2", ...)
// with one counter per kind. Each document owns its own context.
type NamingContext struct {
	counters map[Kind]int
}

// NewNamingContext creates a context with all counters at zero.
func NewNamingContext() *NamingContext {
	return &NamingContext{counters: make(map[Kind]int)}
}

// Next returns the next unused default name for kind.
func (n *NamingContext) Next(kind Kind) string {
	if n.counters == nil {
		n.counters = make(map[Kind]int)
	}
	n.counters[kind]++
	return fmt.Sprintf("%s%d", kind.Label(), n.counters[kind])
}

// Observe bumps the counter for kind past name when name follows the
// default pattern, so loaded documents do not receive duplicate names.
func (n *NamingContext) Observe(kind Kind, name string) {
	prefix := kind.Label()
	if !strings.HasPrefix(name, prefix) {
		return
	}
	num, err := strconv.Atoi(name[len(prefix):])
	if err != nil || num <= 0 {
		return
	}
	if n.counters == nil {
		n.counters = make(map[Kind]int)
	}
	if num > n.counters[kind] {
		n.counters[kind] = num
	}
}

// Reset sets every counter back to zero.
func (n *NamingContext) Reset() {
	n.counters = make(map[Kind]int)
}
