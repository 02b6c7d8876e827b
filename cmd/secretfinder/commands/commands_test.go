package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"thresholdsecret/commitment"
)

func run(t *testing.T, args ...string) (string, error) {
	out := &bytes.Buffer{}
	root := newRootCmd()
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestRecover_Files(t *testing.T) {
	out, err := run(t, "recover", "--strict",
		filepath.Join("testdata", "testcase1.json"),
		filepath.Join("testdata", "testcase2.json"))
	require.NoError(t, err)
	require.Equal(t, "Secret 1: 3\nSecret 2: 79836264049851\n", out)
}

// TestRecover_DefaultFiles runs recover without arguments from a directory
// holding the two default share files
func TestRecover_DefaultFiles(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir("testdata"))
	defer func() {
		require.NoError(t, os.Chdir(wd))
	}()

	out, err := run(t, "recover")
	require.NoError(t, err)
	require.Equal(t, "Secret 1: 3\nSecret 2: 79836264049851\n", out)
}

func TestRecover_Errors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	data := `{"keys": {"n": 3, "k": 3}, "1": {"base": "2", "value": "12"}, "2": {"base": "10", "value": "1"}, "3": {"base": "10", "value": "1"}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	_, err := run(t, "recover", path)
	require.Error(t, err)

	_, err = run(t, "recover", filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}

func TestSplit_RecoverVerify(t *testing.T) {
	dir := t.TempDir()
	shares := filepath.Join(dir, "shares.yaml")
	commit := filepath.Join(dir, "commitment.hex")
	archive := filepath.Join(dir, "archive")
	secret := "1234567890123456789012345678901234567890"

	out, err := run(t, "split", "--secret", secret, "--n", "6", "--k", "4",
		"--base", "2,16,36", "-o", shares, "--commitment", commit, "--archive", archive)
	require.NoError(t, err)
	require.Equal(t, "Split secret into 6 shares with threshold 4\n", out)

	out, err = run(t, "recover", "--strict", "--commitment", commit, shares)
	require.NoError(t, err)
	require.Equal(t, "Secret 1: "+secret+"\nCommitment verified\n", out)

	out, err = run(t, "verify", "--commitment", commit, shares)
	require.NoError(t, err)
	require.Equal(t, "All 6 shares match the commitment\n", out)

	// Four of the seven shards are enough
	for _, i := range []string{"0", "3", "5"} {
		require.NoError(t, os.Remove(filepath.Join(archive, "shard-"+i+".bin")))
	}
	out, err = run(t, "recover", "--archive", archive)
	require.NoError(t, err)
	require.Equal(t, "Secret 1: "+secret+"\n", out)

	// A commitment to another polynomial does not match
	other := filepath.Join(dir, "other.hex")
	_, err = run(t, "split", "--secret", "42", "--n", "6", "--k", "4", "-o", filepath.Join(dir, "other.json"), "--commitment", other)
	require.NoError(t, err)

	_, err = run(t, "verify", "--commitment", other, shares)
	require.ErrorIs(t, err, commitment.ErrCommitmentMismatch)

	_, err = run(t, "recover", "--commitment", other, shares)
	require.ErrorIs(t, err, commitment.ErrCommitmentMismatch)
}

func TestSplit_InvalidSecret(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "split", "--secret", "abc", "--n", "3", "--k", "2", "-o", filepath.Join(dir, "s.json"))
	require.Error(t, err)

	_, err = run(t, "split", "--secret", "10", "--n", "2", "--k", "3", "-o", filepath.Join(dir, "s.json"))
	require.Error(t, err)
}
