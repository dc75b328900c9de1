package utils

const (
	// NODETOL is the coordinate tolerance used when matching mesh vertices
	// against nominal boundary locations
	NODETOL = 1.e-12
)
