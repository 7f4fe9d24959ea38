package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCdkEnv(t *testing.T) {
	t.Setenv("CDK_DEPLOY_ACCOUNT", "")
	t.Setenv("CDK_DEPLOY_REGION", "")
	t.Setenv("CDK_DEFAULT_ACCOUNT", "")
	t.Setenv("CDK_DEFAULT_REGION", "")
	assert.Nil(t, CdkEnv())

	t.Setenv("CDK_DEFAULT_ACCOUNT", "111111111111")
	t.Setenv("CDK_DEFAULT_REGION", "eu-west-1")
	env := CdkEnv()
	require.NotNil(t, env)
	assert.Equal(t, "111111111111", *env.Account)
	assert.Equal(t, "eu-west-1", *env.Region)

	// deploy vars only win as a pair
	t.Setenv("CDK_DEPLOY_ACCOUNT", "222222222222")
	assert.Equal(t, "111111111111", *CdkEnv().Account)

	t.Setenv("CDK_DEPLOY_REGION", "us-east-1")
	env = CdkEnv()
	assert.Equal(t, "222222222222", *env.Account)
	assert.Equal(t, "us-east-1", *env.Region)
}

func TestGetProjectRootDir(t *testing.T) {
	t.Setenv("PROJECT_ROOT", "")
	root := GetProjectRootDir()
	_, err := os.Stat(filepath.Join(root, "go.mod"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "cmd", "queue-archiver", "main.go"))
	require.NoError(t, err)

	t.Setenv("PROJECT_ROOT", "/tmp/elsewhere/")
	assert.Equal(t, "/tmp/elsewhere", GetProjectRootDir())
	assert.Equal(t, "/tmp/elsewhere/cmd/x", ProjectPath("cmd", "x"))
}

func TestClimb(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker"), nil, 0o644))

	assert.Equal(t, dir, climb(nested, "marker"))
	assert.Equal(t, "", climb(nested, "no-such-marker-anywhere"))
}
