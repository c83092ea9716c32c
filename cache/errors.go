package cache

import "errors"

var (
	CacheNotFound = errors.New("seed cache not found")
	CacheMismatch = errors.New("seed cache length mismatch, rebuild required")
	CacheCorrupt  = errors.New("seed cache corrupt")
	InvalidBits   = errors.New("invalid number of bits to generate")
)
