package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"file_bridge_app_go/db"
	"file_bridge_app_go/models"
	"file_bridge_app_go/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestContentValidateEmbedded(t *testing.T) {
	out, err := run(t, "", "content", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "embedded content is valid")
	assert.Contains(t, out, "filebridge (default): 4 stats, 6 service tabs, 3 testimonials")
	assert.Contains(t, out, "bridgeglobal: 4 stats, 6 service tabs, 4 testimonials")
}

func TestContentScaffoldThenValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content", "site.yaml")

	out, err := run(t, "", "content", "scaffold", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	_, err = run(t, "", "content", "scaffold", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, "", "content", "scaffold", "--force", path)
	require.NoError(t, err)

	out, err = run(t, "", "content", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, path+" is valid")
}

func TestContentValidateReportsProblems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_variant: a\nvariants:\n  a:\n    brand:\n      name: A\n"), 0o644))

	_, err := run(t, "", "content", "validate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one testimonial is required")
}

func TestContentDiff(t *testing.T) {
	dir := t.TempDir()
	before := filepath.Join(dir, "before.yaml")
	after := filepath.Join(dir, "after.yaml")
	_, err := run(t, "", "content", "scaffold", before)
	require.NoError(t, err)

	edited := strings.Replace(string(mustRead(t, before)), "Bridge Global Tax Consultation", "Cross-Border Tax Consultation", 1)
	require.NoError(t, os.WriteFile(after, []byte(edited), 0o644))

	out, err := run(t, "", "content", "diff", before, before)
	require.NoError(t, err)
	assert.Contains(t, out, "No differences")

	out, err = run(t, "", "content", "diff", before, after)
	require.NoError(t, err)
	assert.Contains(t, out, "Cross-Border Tax Consultation")
}

func TestHashPasswordFromStdin(t *testing.T) {
	out, err := run(t, "correct horse battery staple\n", "hash-password")
	require.NoError(t, err)

	hash := strings.TrimSpace(out)
	assert.True(t, services.VerifyPassword(hash, "correct horse battery staple"))
}

func TestHashPasswordRejectsShortPassword(t *testing.T) {
	_, err := run(t, "short\n", "hash-password")
	assert.ErrorContains(t, err, "at least")
}

func TestConsultationsExportValidatesFlags(t *testing.T) {
	_, err := run(t, "", "consultations", "export", "--status", "archived", "--out", "x.xlsx")
	assert.ErrorContains(t, err, `unknown status "archived"`)

	_, err = run(t, "", "consultations", "export")
	assert.ErrorContains(t, err, "nothing to do")
}

func TestConsultationsExportWritesWorkbook(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_PATH", filepath.Join(dir, "app.db"))
	t.Setenv("ENVIRONMENT", "test")
	out := filepath.Join(dir, "export.xlsx")

	stdout, err := run(t, "", "consultations", "export", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Exported 0 requests to "+out)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func mustRead(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func TestConsultationsSetStatusAndHistory(t *testing.T) {
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "admin.db"))
	t.Setenv("ENVIRONMENT", "development")

	_, err := openDB()
	require.NoError(t, err)
	req, err := services.CreateConsultationRequest(db.DB, services.ConsultationInput{
		Name:         "Jane Doe",
		Email:        "jane@example.com",
		BusinessType: models.BusinessTypeSmallBusiness,
		Variant:      "filebridge",
	}, time.Now())
	require.NoError(t, err)
	require.NoError(t, db.Close())

	out, err := run(t, "", "consultations", "history", req.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "No history")

	out, err = run(t, "", "consultations", "set-status", req.ID, "contacted")
	require.NoError(t, err)
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "is now contacted")

	out, err = run(t, "", "consultations", "history", req.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Status changed from new to contacted")
	assert.Contains(t, out, "status: new -> contacted")
	assert.Contains(t, out, "cli")

	_, err = run(t, "", "consultations", "set-status", req.ID, "archived")
	assert.ErrorContains(t, err, `unknown status "archived"`)
}
