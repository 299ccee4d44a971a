package attendance

import "errors"

var ErrInvalidReportMonth = errors.New("invalid report month")
