package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/certalert-go/pkg/certalert/report"
	"github.com/xuri/excelize/v2"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	return cmd.ExecuteContext(context.Background())
}

func writeFixture(t *testing.T, dir string, days interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Código", "Empresa", "Dias", "Validade"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"A", "Co1", days, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)}))

	path := filepath.Join(dir, "dados.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func writeConfig(t *testing.T, dir, apiURL string) string {
	t.Helper()
	path := filepath.Join(dir, "certalert.toml")
	content := "[telegram]\napi_url = \"" + apiURL + "\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-1001")
}

func clearCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")
	os.Unsetenv("TELEGRAM_TOKEN")
	os.Unsetenv("TELEGRAM_CHAT_ID")
}

func telegramServer(t *testing.T, status int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestVersion(t *testing.T) {
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "certalert v"+Version+"\n", out.String())
}

func TestMissingCredentialsFails(t *testing.T) {
	clearCredentials(t)
	dir := t.TempDir()

	err := execute(t, filepath.Join(dir, "absent.xlsx"), "--env-file", filepath.Join(dir, ".env"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errReported))
	assert.Contains(t, err.Error(), "TELEGRAM_TOKEN")
}

func TestMissingCredentialsCheckedBeforeSettings(t *testing.T) {
	clearCredentials(t)
	dir := t.TempDir()
	cfg := filepath.Join(dir, "certalert.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[settings\nfile = 1"), 0o600))

	err := execute(t, writeFixture(t, dir, 2), "--config", cfg, "--env-file", filepath.Join(dir, ".env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_TOKEN")
	assert.NotContains(t, err.Error(), "certalert.toml")
}

func TestSendsReport(t *testing.T) {
	setCredentials(t)
	dir := t.TempDir()
	srv, calls := telegramServer(t, http.StatusOK)

	err := execute(t, writeFixture(t, dir, 3),
		"--config", writeConfig(t, dir, srv.URL),
		"--env-file", filepath.Join(dir, ".env"),
	)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNothingToSend(t *testing.T) {
	setCredentials(t)
	dir := t.TempDir()
	srv, calls := telegramServer(t, http.StatusOK)

	err := execute(t, writeFixture(t, dir, 30),
		"--config", writeConfig(t, dir, srv.URL),
		"--env-file", filepath.Join(dir, ".env"),
	)
	require.NoError(t, err)
	assert.Equal(t, int32(0), calls.Load())
}

func TestWindowFlag(t *testing.T) {
	setCredentials(t)
	dir := t.TempDir()
	srv, calls := telegramServer(t, http.StatusOK)

	err := execute(t, writeFixture(t, dir, 30),
		"--config", writeConfig(t, dir, srv.URL),
		"--env-file", filepath.Join(dir, ".env"),
		"--window", "30",
	)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())

	err = execute(t, writeFixture(t, dir, 30), "--window", "0", "--dry-run")
	require.Error(t, err)
}

func TestRunErrorsExitZeroUnlessStrict(t *testing.T) {
	setCredentials(t)
	dir := t.TempDir()
	srv, calls := telegramServer(t, http.StatusBadRequest)
	cfg := writeConfig(t, dir, srv.URL)
	envFile := filepath.Join(dir, ".env")
	fixture := writeFixture(t, dir, 1)
	missing := filepath.Join(dir, "absent.xlsx")

	require.NoError(t, execute(t, missing, "--config", cfg, "--env-file", envFile))
	require.Error(t, execute(t, missing, "--config", cfg, "--env-file", envFile, "--strict"))

	require.NoError(t, execute(t, fixture, "--config", cfg, "--env-file", envFile))
	err := execute(t, fixture, "--config", cfg, "--env-file", envFile, "--strict")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errReported))
	assert.Equal(t, int32(2), calls.Load())
}

func TestProcessingErrorExitZeroUnlessStrict(t *testing.T) {
	setCredentials(t)
	dir := t.TempDir()
	srv, calls := telegramServer(t, http.StatusOK)
	cfg := writeConfig(t, dir, srv.URL)
	envFile := filepath.Join(dir, ".env")

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Código", "Dias", "Validade"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"A", 2, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)}))
	path := filepath.Join(dir, "sem_empresa.xlsx")
	require.NoError(t, f.SaveAs(path))

	require.NoError(t, execute(t, path, "--config", cfg, "--env-file", envFile))

	err := execute(t, path, "--config", cfg, "--env-file", envFile, "--strict")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errReported))
	assert.True(t, errors.Is(err, report.ErrMissingColumn))
	assert.Equal(t, int32(0), calls.Load())
}

func TestDryRunNeedsNoCredentials(t *testing.T) {
	clearCredentials(t)
	dir := t.TempDir()

	err := execute(t, writeFixture(t, dir, 2), "--dry-run", "--env-file", filepath.Join(dir, ".env"))
	require.NoError(t, err)
}

func TestExplicitConfigMustExist(t *testing.T) {
	setCredentials(t)
	dir := t.TempDir()

	err := execute(t, writeFixture(t, dir, 2), "--config", filepath.Join(dir, "absent.toml"), "--dry-run")
	require.Error(t, err)
}
