package checksums

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-seaport/environment"
)

const (
	abcSHA256 = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	abcRMD160 = "8eb208f7e05d987a9b044a8e98c6b087f15a0bfc"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/gping-0.2.tar.gz":
			w.Write([]byte("abc"))
		case "/slow.tar.gz":
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte("abc"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetcher_Fetch(t *testing.T) {
	srv := newServer(t)
	tmp := t.TempDir()
	f := NewFetcher(5*time.Second, nil)
	f.TempDir = tmp

	d, err := f.Fetch(context.Background(), srv.URL+"/gping-0.2.tar.gz", FetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, abcSHA256, d.SHA256)
	assert.Equal(t, abcRMD160, d.RMD160)
	assert.Equal(t, int64(3), d.Size)
	assert.Equal(t, "gping-0.2.tar.gz", d.Filename)
	assert.Equal(t, "3", d.Set().Size)

	entries, _ := os.ReadDir(tmp)
	assert.Empty(t, entries, "download directory must be removed")
}

func TestFetcher_Errors(t *testing.T) {
	srv := newServer(t)
	tmp := t.TempDir()
	f := NewFetcher(5*time.Second, nil)
	f.TempDir = tmp

	for _, u := range []string{
		srv.URL + "/missing.tar.gz",
		"I_don't_exist_and_so_will_fail",
		"ftp://example.org/file.tgz",
	} {
		_, err := f.Fetch(context.Background(), u, FetchOptions{})
		require.Error(t, err, u)
		assert.True(t, errors.Is(err, ErrDownload), u)
		assert.Contains(t, err.Error(), "--url")
	}

	entries, _ := os.ReadDir(tmp)
	assert.Empty(t, entries, "download directory must be removed on failure")
}

func TestFetcher_Timeout(t *testing.T) {
	srv := newServer(t)
	f := NewFetcher(50*time.Millisecond, nil)
	f.TempDir = t.TempDir()

	_, err := f.Fetch(context.Background(), srv.URL+"/slow.tar.gz", FetchOptions{})
	assert.True(t, errors.Is(err, ErrDownload))
}

func TestFetcher_Cancelled(t *testing.T) {
	srv := newServer(t)
	f := NewFetcher(5*time.Second, nil)
	f.TempDir = t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Fetch(ctx, srv.URL+"/gping-0.2.tar.gz", FetchOptions{})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFetcher_Relocate(t *testing.T) {
	srv := newServer(t)
	distfiles := t.TempDir()
	r := &Relocator{Env: environment.NewMockEnvironment(), DistFilesPath: distfiles}
	f := NewFetcher(5*time.Second, nil)
	f.TempDir = t.TempDir()

	_, err := f.Fetch(context.Background(), srv.URL+"/gping-0.2.tar.gz", FetchOptions{Relocate: r.Func("gping")})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(distfiles, "gping", "gping-0.2.tar.gz"))
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))
}

func TestRelocator_SudoWhenNotWritable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can write everywhere")
	}
	base := t.TempDir()
	ro := filepath.Join(base, "distfiles")
	require.NoError(t, os.Mkdir(ro, 0555))
	t.Cleanup(func() { os.Chmod(ro, 0755) })

	mock := environment.NewMockEnvironment()
	r := &Relocator{Env: mock, DistFilesPath: ro}
	target, err := r.Install(context.Background(), "/tmp/x.tgz", "py39-base91", "x.tgz")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(ro, "py39-base91", "x.tgz"), target)
	assert.True(t, mock.Ran("sudo mkdir -p "+filepath.Join(ro, "py39-base91")))
	assert.True(t, mock.Ran("sudo cp /tmp/x.tgz "+target))
}

func TestSubdir(t *testing.T) {
	assert.Equal(t, "py39-base91", Subdir("py-base91", []string{"py38-base91", "py39-base91"}))
	assert.Equal(t, "py-base91", Subdir("py-base91", nil))
	assert.Equal(t, "gping", Subdir("gping", []string{"gping-devel"}))
}

func TestSum(t *testing.T) {
	sha, rmd, size, err := Sum(strings.NewReader("abc"))
	require.NoError(t, err)
	assert.Equal(t, abcSHA256, sha)
	assert.Equal(t, abcRMD160, rmd)
	assert.Equal(t, int64(3), size)
}
