package conversion

import "errors"

var ErrReadUpload = errors.New("failed to read upload")
