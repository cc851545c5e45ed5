package linker

import "errors"

// Construction-time configuration errors returned by New.
var (
	// ErrUnknownClusterMethod is returned when Method names neither
	// built-in backend and CustomFunc is nil.
	ErrUnknownClusterMethod = errors.New("linker: clustering method must be \"dbscan\", \"hdbscan\", or a CustomFunc")
	// ErrInvalidEps is returned when Eps is not strictly positive.
	ErrInvalidEps = errors.New("linker: eps must be greater than zero")
	// ErrInvalidMinClusterSize is returned when MinClusterSize < 1.
	ErrInvalidMinClusterSize = errors.New("linker: minClSz must be at least 1")
	// ErrInvalidMemoryDepth is returned when MemoryDepth < 1.
	ErrInvalidMemoryDepth = errors.New("linker: nPrev must be at least 1")
	// ErrInvalidPropagationThreshold is returned when PropagationThreshold < 0.
	ErrInvalidPropagationThreshold = errors.New("linker: propagationThreshold must be non-negative")
)
