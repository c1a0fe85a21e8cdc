package planning

import "errors"

var (
	ErrRunInProgress = errors.New("an optimization run is already in progress")
	ErrRunNotFound   = errors.New("optimization run not found")
)
