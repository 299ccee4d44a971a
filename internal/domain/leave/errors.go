package leave

import "errors"

var (
	ErrLeaveNotFound = errors.New("leave application not found")
)
