package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "store.db"))
	t.Setenv("UPLOAD_DIR", filepath.Join(dir, "uploads"))
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("GO_ENV", "dev")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSeed_DefaultFixturesTwice(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "categories: 4, subcategories: 24")

	// 2回目も同じ件数（slugで更新）
	out, err = run(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "stores: 0, products: 0")
}

func TestSeed_File(t *testing.T) {
	dir := setupEnv(t)
	file := filepath.Join(dir, "fixtures.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
categories:
  - name: Shoes
    slug: shoes
    subcategories:
      - { name: Low Tops, slug: low-tops }
stores:
  - name: Demo
    slug: demo
    owner_email: demo@example.com
    owner_password: demo-password-1
    products:
      - { name: Classic Low, price: "49.00", category: shoes, subcategory: low-tops }
`), 0o644))

	out, err := run(t, "seed", "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, "categories: 1, subcategories: 1, stores: 1, products: 1")
}

func TestCartsReap(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "carts", "reap", "--older-than", "720h")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted 0 guest carts")

	_, err = run(t, "carts", "reap", "--older-than", "0s")
	assert.Error(t, err)
}

func TestMigrate(t *testing.T) {
	setupEnv(t)
	out, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "schema is up to date (sqlite)")
}
