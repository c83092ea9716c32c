package generators

import "errors"

var (
	InvalidLength  = errors.New("invalid sequence length")
	InvalidPattern = errors.New("invalid search pattern")
)
