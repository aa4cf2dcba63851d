package checksums

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/crypto/ripemd160"

	"go-seaport/log"
)

// Download describes a fetched distfile.
type Download struct {
	URL      string
	Filename string
	SHA256   string
	RMD160   string
	Size     int64
}

// Set returns the download as a checksum set.
func (d *Download) Set() Set {
	return Set{URL: d.URL, SHA256: d.SHA256, RMD160: d.RMD160, Size: strconv.FormatInt(d.Size, 10)}
}

// FetchOptions controls a single Fetch.
type FetchOptions struct {
	// Relocate, when set, receives the downloaded file before the
	// temporary directory is removed.
	Relocate func(ctx context.Context, file, filename string) error
}

// Fetcher downloads distfiles and computes their checksums.
type Fetcher struct {
	Client    *http.Client
	UserAgent string
	TempDir   string // parent of the scoped download dir, os.TempDir() when empty
	Logger    log.LibraryLogger
}

// NewFetcher creates a Fetcher whose client gives up after timeout.
func NewFetcher(timeout time.Duration, logger log.LibraryLogger) *Fetcher {
	return &Fetcher{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: "seaport",
		Logger:    log.OrNoOp(logger),
	}
}

// Fetch downloads rawURL into a scoped temporary directory, hashing it
// with SHA-256 and RIPEMD-160 on the way. The directory is removed on
// every return path.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, opts FetchOptions) (*Download, error) {
	logger := log.OrNoOp(f.Logger)
	logger.Info("Downloading from %s", rawURL)

	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		if err == nil {
			err = fmt.Errorf("unsupported url")
		}
		return nil, &DownloadError{URL: rawURL, Err: err}
	}

	dir, err := os.MkdirTemp(f.TempDir, "seaport-download-")
	if err != nil {
		return nil, fmt.Errorf("failed to create download directory: %w", err)
	}
	defer os.RemoveAll(dir)

	filename := path.Base(u.Path)
	if filename == "/" || filename == "." || filename == "" {
		filename = "download"
	}
	dest := filepath.Join(dir, filename)

	d, err := f.download(ctx, u.String(), dest)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &DownloadError{URL: rawURL, Err: err}
	}
	d.URL = rawURL
	d.Filename = filename

	if opts.Relocate != nil {
		if err := opts.Relocate(ctx, dest, filename); err != nil {
			return d, fmt.Errorf("failed to relocate %s: %w", filename, err)
		}
	}
	return d, nil
}

func (f *Fetcher) download(ctx context.Context, rawURL, dest string) (*Download, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	out, err := os.Create(dest)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	sha, rmd, size, err := Sum(io.TeeReader(resp.Body, out))
	if err != nil {
		return nil, err
	}
	if err := out.Close(); err != nil {
		return nil, err
	}
	return &Download{SHA256: sha, RMD160: rmd, Size: size}, nil
}

// Sum returns the SHA-256 and RIPEMD-160 digests of r and its size.
func Sum(r io.Reader) (sha, rmd string, size int64, err error) {
	s := sha256.New()
	m := ripemd160.New()
	size, err = io.Copy(io.MultiWriter(s, m), r)
	if err != nil {
		return "", "", 0, err
	}
	return hex.EncodeToString(s.Sum(nil)), hex.EncodeToString(m.Sum(nil)), size, nil
}
