//go:build linux

package sampler

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/rileyhilliard/ptop/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vimStat = "26231 (vim) R 5392 7446 5392 34835 7446 4218880 32533 309516 26 82 1677 44 158 99 20 0 1 0 82375 56274944 1981 18446744073709551615 4194304 6294284 140736914091744 140736914087944 139965136429984 0 0 12288 1870679807 0 0 0 17 0 0 0 31 0 0 8391624 8481048 16420864 140736914093252 140736914093279 140736914093279 140736914096107 0\n"

const vimIO = `rchar: 750339
wchar: 818609
syscr: 7405
syscw: 5245
read_bytes: 1024
write_bytes: 2048
cancelled_write_bytes: -1024
`

// fakeProc lays out a minimal /proc tree under a temp dir.
func fakeProc(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestProcfsReader_Read(t *testing.T) {
	root := fakeProc(t, map[string]string{
		"26231/stat": vimStat,
		"26231/io":   vimIO,
	})

	r, err := newProcfsReaderAt(root)
	require.NoError(t, err)

	s, ok := r.Read(context.Background(), 26231)
	require.True(t, ok)

	assert.Equal(t, int32(26231), s.PID)
	assert.Equal(t, int32(5392), s.PPID)
	assert.Equal(t, "vim", s.Name)
	assert.InDelta(t, 17.21, s.CPUSeconds, 1e-9)
	assert.Equal(t, uint64(1981*os.Getpagesize()), s.RSSBytes)
	assert.Equal(t, uint64(1024), s.ReadBytes)
	assert.Equal(t, uint64(2048), s.WriteBytes)
}

func TestProcfsReader_UnreadableIOKeepsProcess(t *testing.T) {
	root := fakeProc(t, map[string]string{
		"26231/stat": vimStat,
	})

	r, err := newProcfsReaderAt(root)
	require.NoError(t, err)

	s, ok := r.Read(context.Background(), 26231)
	require.True(t, ok)
	assert.Equal(t, "vim", s.Name)
	assert.Zero(t, s.ReadBytes)
	assert.Zero(t, s.WriteBytes)
}

func TestProcfsReader_VanishedProcess(t *testing.T) {
	root := fakeProc(t, map[string]string{
		"26231/stat": vimStat,
	})

	r, err := newProcfsReaderAt(root)
	require.NoError(t, err)

	_, ok := r.Read(context.Background(), 4242)
	assert.False(t, ok)
}

func TestProcfsReader_Pids(t *testing.T) {
	root := fakeProc(t, map[string]string{
		"1/stat":     vimStat,
		"26231/stat": vimStat,
		"self/stat":  vimStat,
		"meminfo":    "MemTotal: 1 kB\n",
	})

	r, err := newProcfsReaderAt(root)
	require.NoError(t, err)

	pids, err := r.Pids(context.Background())
	require.NoError(t, err)
	sort.Slice(pids, func(i, j int) bool { return pids[i] < pids[j] })
	assert.Equal(t, []int32{1, 26231}, pids)
}

func TestNewProcfsReaderAt_MissingMount(t *testing.T) {
	_, err := newProcfsReaderAt(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrSample))
}
