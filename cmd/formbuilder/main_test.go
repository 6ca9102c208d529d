package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/internal/auth"
	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeLayout(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contact.json")
	content := testsupport.MustSerialize(t, testsupport.ContactLayout(t))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRenderCommand(t *testing.T) {
	path := writeLayout(t)

	stdout, _, err := execute(t, "render", path, "--title", "Contact", "--action", "/submit")
	require.NoError(t, err)
	assert.Contains(t, stdout, `action="/submit"`)
	assert.Contains(t, stdout, "<h1>Contact</h1>")
	assert.Contains(t, stdout, `name="email"`)

	out := filepath.Join(t.TempDir(), "form.html")
	_, stderr, err := execute(t, "render", path, "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Written to")
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "<button", "preview has no submit control")
}

func TestRenderCommandMissingFile(t *testing.T) {
	_, _, err := execute(t, "render", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestExportCommand(t *testing.T) {
	path := writeLayout(t)

	stdout, _, err := execute(t, "export", path, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "type: TextField")

	yamlPath := filepath.Join(t.TempDir(), "contact.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(stdout), 0o644))
	fromYAML, _, err := execute(t, "export", yamlPath)
	require.NoError(t, err)
	fromJSON, _, err := execute(t, "export", path)
	require.NoError(t, err)
	assert.JSONEq(t, fromJSON, fromYAML)

	stdout, _, err = execute(t, "export", path, "--format", "openapi", "--share", "abc")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	paths := doc["paths"].(map[string]any)
	assert.Contains(t, paths, "/api/v1/public/forms/abc/submissions")

	_, _, err = execute(t, "export", path, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestFillCommandRejectsUnknownFormat(t *testing.T) {
	_, _, err := execute(t, "fill", writeLayout(t), "--format", "csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestTokenCommand(t *testing.T) {
	cfgPath := writeConfig(t, `
auth:
  secret: cli-secret
  issuer: formbuilder-test
`)

	stdout, _, err := execute(t, "token", "--config", cfgPath, "--user", "u1", "--name", "Ada")
	require.NoError(t, err)

	tokens, err := auth.NewTokens("cli-secret", "formbuilder-test", time.Hour)
	require.NoError(t, err)
	user, err := tokens.Parse(strings.TrimSpace(stdout))
	require.NoError(t, err)
	assert.Equal(t, auth.User{ID: "u1", Name: "Ada"}, user)

	_, _, err = execute(t, "token", "--config", cfgPath)
	require.Error(t, err)

	empty := writeConfig(t, "log:\n  level: info\n")
	_, _, err = execute(t, "token", "--config", empty, "--user", "u1")
	require.ErrorIs(t, err, auth.ErrMissingSecret)
}

func TestServeStopsOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Addr = "127.0.0.1:0"
	cfg.Server.Mode = "test"
	cfg.Database.DSN = "file:cli_serve?mode=memory&cache=shared"
	cfg.Database.MaxOpenConns = 1
	cfg.Auth.Secret = "serve-secret"

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- serve(ctx, &cfg, zap.NewNop()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop after cancellation")
	}
}
