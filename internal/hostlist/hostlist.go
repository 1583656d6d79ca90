// Package hostlist accumulates resolved IP addresses in discovery order,
// dropping duplicates.
package hostlist

// List is an ordered set of IP address strings. The zero value is ready
// to use.
type List struct {
	addrs []string
	seen  map[string]bool
}

// Add appends addr unless it is already present. It returns false for a
// duplicate so the caller can emit exactly one warning per repeat.
func (l *List) Add(addr string) bool {
	if l.seen == nil {
		l.seen = make(map[string]bool)
	}
	if l.seen[addr] {
		return false
	}
	l.seen[addr] = true
	l.addrs = append(l.addrs, addr)
	return true
}

// Addrs returns the accumulated addresses in insertion order.
func (l *List) Addrs() []string { return l.addrs }

// Len returns the number of unique addresses accumulated.
func (l *List) Len() int { return len(l.addrs) }
