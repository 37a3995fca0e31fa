package domain

import "errors"

// ErrTransport is returned by sheets.Client operations when the spreadsheet
// store answers with a non-2xx status or cannot be reached at all.
// The workflow does not catch it; a spreadsheet failure aborts the run.
var ErrTransport = errors.New("transport error")
