package portfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-seaport/environment"
)

func writePortfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Portfile")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestWorkingCopy_RestoreAfterWrite(t *testing.T) {
	ctx := context.Background()
	path := writePortfile(t, "version 0.1\n")

	wc, err := Open(path, environment.NewMockEnvironment(), true, nil)
	require.NoError(t, err)
	assert.Equal(t, "version 0.1\n", wc.Original())
	assert.False(t, wc.Live())

	require.NoError(t, wc.Write(ctx, "version 0.2\n"))
	assert.Equal(t, "version 0.2\n", readFile(t, path))
	assert.True(t, wc.Live())

	require.NoError(t, wc.Restore(ctx))
	assert.Equal(t, "version 0.1\n", readFile(t, path))
	assert.False(t, wc.Live())
	assert.True(t, wc.Touched())

	// Idempotent: a second restore does not touch the file again
	require.NoError(t, os.WriteFile(path, []byte("edited by user\n"), 0644))
	require.NoError(t, wc.Restore(ctx))
	assert.Equal(t, "edited by user\n", readFile(t, path))
}

func TestWorkingCopy_Persist(t *testing.T) {
	ctx := context.Background()
	path := writePortfile(t, "version 0.1\n")

	wc, err := Open(path, environment.NewMockEnvironment(), false, nil)
	require.NoError(t, err)
	require.NoError(t, wc.Write(ctx, "version 0.2\n"))
	wc.Persist()
	assert.False(t, wc.Live())

	require.NoError(t, wc.Restore(ctx))
	assert.Equal(t, "version 0.2\n", readFile(t, path))
}

func TestWorkingCopy_RestoreWithoutWrite(t *testing.T) {
	path := writePortfile(t, "version 0.1\n")
	wc, err := Open(path, environment.NewMockEnvironment(), false, nil)
	require.NoError(t, err)
	require.NoError(t, wc.Restore(context.Background()))
	assert.Equal(t, "version 0.1\n", readFile(t, path))
}

func TestWorkingCopy_SudoCopy(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can write read-only files")
	}
	ctx := context.Background()
	path := writePortfile(t, "version 0.1\n")
	require.NoError(t, os.Chmod(path, 0444))

	var staged string
	mock := environment.NewMockEnvironment()
	mock.On("sudo cp", environment.MockResponse{Do: func(cmd *environment.ExecCommand) {
		data, _ := os.ReadFile(cmd.Args[0])
		staged = string(data)
	}})

	wc, err := Open(path, mock, true, nil)
	require.NoError(t, err)
	require.NoError(t, wc.Write(ctx, "version 0.2\n"))

	assert.Equal(t, "version 0.2\n", staged)
	require.Len(t, mock.ExecuteCalls, 1)
	assert.Equal(t, path, mock.ExecuteCalls[0].Args[1])
	_, err = os.Stat(mock.ExecuteCalls[0].Args[0])
	assert.True(t, os.IsNotExist(err), "staging file must be removed")
}

func TestWorkingCopy_FailedWrite(t *testing.T) {
	path := writePortfile(t, "version 0.1\n")
	wc, err := Open(path, environment.NewMockEnvironment(), false, nil)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(filepath.Dir(path)))

	assert.Error(t, wc.Write(context.Background(), "version 0.2\n"))
	assert.False(t, wc.Touched())
	assert.False(t, wc.Live())
	assert.NoError(t, wc.Restore(context.Background()))
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "Portfile"), nil, false, nil)
	assert.Error(t, err)
}
