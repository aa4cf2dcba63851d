package version

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-seaport/log"
	"go-seaport/port"
	"go-seaport/util"
)

type fakeLivecheck map[string]string

func (f fakeLivecheck) Livecheck(ctx context.Context, name string) (string, error) {
	out, ok := f[name]
	if !ok {
		return "", errors.New("no such port")
	}
	return out, nil
}

func TestParseLivecheck(t *testing.T) {
	tests := []struct {
		out  string
		want string
	}{
		{"gping seems to have been updated (port version: 0.1, new version: 0.2)\n", "0.2"},
		{"example-port seems to have been updated (port version: 2.0, new version: 2.1)", "2.1"},
		{"", ""},
		{"Error: no livecheck available\n", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLivecheck(tt.out), tt.out)
	}
}

func TestResolve_Livecheck(t *testing.T) {
	r := &Resolver{Livecheck: fakeLivecheck{
		"gping": "gping seems to have been updated (port version: 0.1, new version: 0.2)\n",
	}}
	v, err := r.Resolve(context.Background(), Request{Name: "gping", Current: "0.1"})
	require.NoError(t, err)
	assert.Equal(t, "0.2", v)
}

func TestResolve_UpToDate(t *testing.T) {
	r := &Resolver{}
	_, err := r.Resolve(context.Background(), Request{Name: "example-port", Current: "1.0", Override: "1.0"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpToDate))

	var upErr *UpToDateError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, "1.0", upErr.Version)

	r = &Resolver{Livecheck: fakeLivecheck{"example-port": ""}}
	_, err = r.Resolve(context.Background(), Request{Name: "example-port", Current: "2.0"})
	assert.True(t, errors.Is(err, ErrUpToDate), "empty livecheck means up-to-date")
}

func TestResolve_Override(t *testing.T) {
	r := &Resolver{}
	v, err := r.Resolve(context.Background(), Request{Name: "example-port", Current: "3.0", Override: "4.0"})
	require.NoError(t, err)
	assert.Equal(t, "4.0", v)
}

func TestResolve_NewPort(t *testing.T) {
	r := &Resolver{Livecheck: fakeLivecheck{}}
	v, err := r.Resolve(context.Background(), Request{Name: "example-port", Current: "2.1", Override: "9.9", IsNew: true})
	require.NoError(t, err)
	assert.Equal(t, "2.1", v)
}

func TestResolve_SubportFallback(t *testing.T) {
	r := &Resolver{Livecheck: fakeLivecheck{
		"py-base91":   "",
		"py39-base91": "py39-base91 seems to have been updated (port version: 1.0.1, new version: 1.0.2)",
	}}
	v, err := r.Resolve(context.Background(), Request{
		Name: "py-base91", Current: "1.0.1", Subports: []string{"py38-base91", "py39-base91"},
	})
	require.NoError(t, err)
	assert.Equal(t, "1.0.2", v)
}

func TestResolve_DevelConfirmation(t *testing.T) {
	ctx := context.Background()

	declined := &util.Answer{Reply: false}
	r := &Resolver{Confirm: declined}
	_, err := r.Resolve(ctx, Request{Name: "example-port", Current: "1.1", Override: "1.2-devel"})
	assert.True(t, errors.Is(err, port.ErrUserDeclined))
	assert.Len(t, declined.Prompts, 1)

	r = &Resolver{Confirm: &util.Answer{Reply: true}}
	v, err := r.Resolve(ctx, Request{Name: "example-port", Current: "1.1", Override: "1.2-devel"})
	require.NoError(t, err)
	assert.Equal(t, "1.2-devel", v)

	asked := &util.Answer{Reply: false}
	r = &Resolver{Confirm: asked}
	v, err = r.Resolve(ctx, Request{Name: "example-devel", Current: "1.1", Override: "1.2rc1"})
	require.NoError(t, err)
	assert.Equal(t, "1.2rc1", v)
	assert.Empty(t, asked.Prompts, "-devel ports are not asked")
}

func TestResolve_DowngradeWarning(t *testing.T) {
	mem := log.NewMemoryLogger()
	r := &Resolver{Logger: mem}
	_, err := r.Resolve(context.Background(), Request{Name: "gping", Current: "1.3.2", Override: "1.2.0"})
	require.NoError(t, err)
	assert.True(t, mem.HasMessageWithLevel("WARN", "older than the current version"))
}

func TestDowngrade(t *testing.T) {
	assert.True(t, Downgrade("2.0", "1.9"))
	assert.False(t, Downgrade("1.9", "2.0"))
	assert.False(t, Downgrade("2021a", "2020b"))
}

func TestIsDevel(t *testing.T) {
	for _, v := range []string{"2.0-alpha", "2.0beta1", "2.0rc1", "2.0.dev3", "unstable-2"} {
		assert.True(t, IsDevel(v), v)
	}
	assert.False(t, IsDevel("2.0.1"))
	assert.False(t, IsDevel("2.0-RC1"), "markers are case-sensitive")
}
