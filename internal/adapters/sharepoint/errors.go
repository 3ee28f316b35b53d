package sharepoint

import "errors"

// Sentinel kinds for Graph API failures.
var (
	ErrToken    = errors.New("token fetch failed")
	ErrSite     = errors.New("site resolve failed")
	ErrDrive    = errors.New("drive resolve failed")
	ErrDownload = errors.New("file download failed")
)
