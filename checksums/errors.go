package checksums

import "fmt"

var (
	// ErrUnresolvableDistfile is returned when neither the port nor its
	// last sub-port lists a distfile URL with checksums.
	ErrUnresolvableDistfile = fmt.Errorf("cannot determine distfiles")

	// ErrDownload is the base error for DownloadError.
	ErrDownload = fmt.Errorf("download failed")
)

// UnresolvableError names the candidates that were tried.
type UnresolvableError struct {
	Name  string
	Tried []string
}

// Error implements the error interface
func (e *UnresolvableError) Error() string {
	return fmt.Sprintf("port distfiles %s provides no output (tried %v)", e.Name, e.Tried)
}

// Unwrap allows errors.Is(err, ErrUnresolvableDistfile) to work correctly
func (e *UnresolvableError) Unwrap() error {
	return ErrUnresolvableDistfile
}

// DownloadError reports a failed fetch of a new distfile.
type DownloadError struct {
	URL string
	Err error
}

// Error implements the error interface
func (e *DownloadError) Error() string {
	return fmt.Sprintf("couldn't determine the new url %s (%v); modify the url and use the --url flag to set it manually", e.URL, e.Err)
}

// Unwrap returns ErrDownload so errors.Is works; the transport error is
// kept in Err for logging.
func (e *DownloadError) Unwrap() error {
	return ErrDownload
}
