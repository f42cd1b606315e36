package transaction

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithFilePromotesOnSuccess(t *testing.T) {
	final := filepath.Join(t.TempDir(), "out.vcf.gz")

	err := WithFile(final, func(tx string) error {
		return os.WriteFile(tx, []byte("content"), 0644)
	})
	require.NoError(t, err)

	content, err := os.ReadFile(final)
	require.NoError(t, err)
	assert.Equal(t, "content", string(content))
}

func TestWithFileLeavesNoTraceOnFailure(t *testing.T) {
	dir := t.TempDir()
	final := filepath.Join(dir, "out.vcf.gz")
	boom := errors.New("engine failed")

	err := WithFile(final, func(tx string) error {
		if werr := os.WriteFile(tx, []byte("partial"), 0644); werr != nil {
			return werr
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoFileExists(t, final)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no temporary files left behind")
}

func TestWithFileRejectsEmptyOutput(t *testing.T) {
	final := filepath.Join(t.TempDir(), "out.vcf.gz")

	err := WithFile(final, func(tx string) error { return nil })
	assert.Error(t, err)
	assert.NoFileExists(t, final)
}
