package remote

import "errors"

var ErrApplicationNotFound = errors.New("remote work application not found")
