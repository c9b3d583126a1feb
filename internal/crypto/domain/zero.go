package domain

// Zero overwrites a byte slice with zeros so key material does not linger in memory.
func Zero(b []byte) {
	clear(b)
}

// ZeroAll zeroes every slice passed to it.
func ZeroAll(bs ...[]byte) {
	for _, b := range bs {
		Zero(b)
	}
}
