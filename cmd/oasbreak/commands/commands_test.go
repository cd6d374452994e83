package commands

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasbreak/differ"
	"github.com/erraggy/oasbreak/internal/report"
	"github.com/erraggy/oasbreak/internal/testutil"
	"github.com/erraggy/oasbreak/oaserrors"
)

// renamedItemPath drops /pets/{id} from the pet store fixture.
var renamedItemPath = strings.Replace(testutil.PetStoreYAML, "  /pets/{id}:", "  /pets/{petId}:", 1)

type runResult struct {
	stdout string
	stderr string
	err    error
}

// run executes the command tree with args and an isolated environment.
func run(t *testing.T, env map[string]string, args ...string) runResult {
	t.Helper()
	t.Chdir(t.TempDir())

	root := newRootCmd(func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return runResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestCheckNoBreakingChanges(t *testing.T) {
	prev := testutil.WriteTempFile(t, "old.yaml", testutil.PetStoreYAML)
	cur := testutil.WriteTempFile(t, "openapi.yaml", testutil.PetStoreYAML)
	out := filepath.Join(t.TempDir(), "github_output")

	res := run(t, nil, "check", "--spec", cur, "--previous", prev, "--github-output", out)
	require.NoError(t, res.err)
	assert.Equal(t, report.NoneFound+"\n", res.stdout)
	assert.Contains(t, res.stderr, "detecting breaking change types")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "breaking-changes-detected=false\n", string(data))
}

func TestCheckBreakingChanges(t *testing.T) {
	prev := testutil.WriteTempFile(t, "old.yaml", testutil.PetStoreYAML)
	cur := testutil.WriteTempFile(t, "openapi.yaml", renamedItemPath)
	out := filepath.Join(t.TempDir(), "github_output")

	res := run(t, map[string]string{"GITHUB_ACTIONS": "true", "GITHUB_OUTPUT": out},
		"check", "--spec", cur, "--previous", prev)
	require.Error(t, res.err)
	assert.True(t, errors.Is(res.err, ErrBreakingChanges))
	assert.Equal(t, report.HeaderFound+"\nremoved-paths: /pets/{id} was removed\n", res.stdout)
	assert.Contains(t, res.stderr, "::error title=removed-paths::/pets/{id} was removed")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "breaking-changes-detected=true\n", string(data))
}

func TestCheckRulesFlagFilters(t *testing.T) {
	prev := testutil.WriteTempFile(t, "old.yaml", testutil.PetStoreYAML)
	cur := testutil.WriteTempFile(t, "openapi.yaml", renamedItemPath)

	res := run(t, nil, "check", "-s", cur, "-p", prev, "--rules", "removed-http-methods,bogus")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "unsupported breaking change type ignored")
	assert.Contains(t, res.stderr, "rule=bogus")
}

func TestCheckJSONOutputFromEnv(t *testing.T) {
	prev := testutil.WriteTempFile(t, "old.yaml", testutil.PetStoreYAML)
	cur := testutil.WriteTempFile(t, "openapi.yaml", renamedItemPath)

	res := run(t, map[string]string{
		"INPUT_SPECFILENAME":        cur,
		"INPUT_BREAKINGCHANGETYPES": "removed-paths\n",
	}, "check", "--previous", prev, "-o", "json", "--annotations=false")
	require.ErrorIs(t, res.err, ErrBreakingChanges)
	assert.NotContains(t, res.stderr, "::error")

	var got differ.Result
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
	assert.Equal(t, []string{"removed-paths"}, got.Rules)
	require.Len(t, got.Findings, 1)
	assert.True(t, got.HasBreakingChanges)
}

func TestCheckFromGitHub(t *testing.T) {
	var gotAuth, gotRef string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/acme/api/contents/openapi.yaml" {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		gotRef = r.URL.Query().Get("ref")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"type":     "file",
			"path":     "openapi.yaml",
			"encoding": "base64",
			"content":  base64.StdEncoding.EncodeToString([]byte(testutil.PetStoreYAML)),
		})
	}))
	t.Cleanup(srv.Close)

	env := map[string]string{
		"INPUT_SPECFILENAME": "./openapi.yaml",
		"GITHUB_REPOSITORY":  "acme/api",
		"GITHUB_BASE_REF":    "main",
		"GITHUB_API_URL":     srv.URL,
		"INPUT_ACCESSTOKEN":  "ghs_token",
	}
	root := newRootCmd(func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})
	t.Chdir(filepath.Dir(testutil.WriteTempFile(t, "openapi.yaml", testutil.PetStoreYAML)))
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"check"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "Bearer ghs_token", gotAuth)
	assert.Equal(t, "main", gotRef)
	assert.Equal(t, report.NoneFound+"\n", stdout.String())
}

func TestCheckLoadFailures(t *testing.T) {
	cur := testutil.WriteTempFile(t, "openapi.yaml", testutil.PetStoreYAML)

	res := run(t, nil, "check", "--spec", cur, "--previous", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "unable to load spec from the base branch")
	assert.ErrorIs(t, res.err, oaserrors.ErrNotFound)

	res = run(t, nil, "check", "--spec", filepath.Join(t.TempDir(), "gone.yaml"), "--previous", cur)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "unable to load spec from current branch")
}

func TestCheckInvalidConfiguration(t *testing.T) {
	res := run(t, nil, "check")
	assert.ErrorIs(t, res.err, oaserrors.ErrConfig)

	res = run(t, nil, "check", "--spec", "openapi.yaml", "--previous", "old.yaml", "--output", "xml")
	assert.ErrorIs(t, res.err, oaserrors.ErrConfig)

	res = run(t, nil, "check", "--spec", "openapi.yaml")
	require.ErrorIs(t, res.err, oaserrors.ErrConfig)
	assert.Contains(t, res.err.Error(), "repository")
}

func TestCheckConfigFile(t *testing.T) {
	prev := testutil.WriteTempFile(t, "old.yaml", testutil.PetStoreYAML)
	cur := testutil.WriteTempFile(t, "openapi.yaml", renamedItemPath)
	cfgPath := testutil.WriteTempFile(t, "oasbreak.toml",
		"spec_filename = '"+cur+"'\nprevious_file = '"+prev+"'\nbreaking_change_types = ['response-removed']\n")

	res := run(t, nil, "check", "--config", cfgPath)
	require.NoError(t, res.err)
	assert.Equal(t, report.NoneFound+"\n", res.stdout)
}

func TestRulesCommand(t *testing.T) {
	res := run(t, nil, "rules")
	require.NoError(t, res.err)
	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	require.Len(t, lines, len(differ.Definitions()))
	assert.True(t, strings.HasPrefix(lines[0], "removed-paths"))
	assert.Contains(t, lines[0], "critical")

	res = run(t, nil, "rules", "-o", "json")
	require.NoError(t, res.err)
	var defs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &defs))
	assert.Equal(t, "removed-paths", defs[0]["name"])
	assert.Equal(t, "critical", defs[0]["severity"])

	res = run(t, nil, "rules", "-o", "yaml")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "name: removed-paths")

	res = run(t, nil, "rules", "-o", "csv")
	assert.ErrorIs(t, res.err, oaserrors.ErrConfig)
}

func TestConfigCommand(t *testing.T) {
	res := run(t, map[string]string{
		"INPUT_SPECFILENAME": "openapi.yaml",
		"INPUT_ACCESSTOKEN":  "ghs_secret",
	}, "config")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "openapi.yaml")
	assert.NotContains(t, res.stdout, "ghs_secret")
}

func TestVersionCommand(t *testing.T) {
	res := run(t, nil, "version")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "oasbreak version "))

	res = run(t, nil, "version", "--build")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Go Version:")
}

func TestUnknownCommandSuggests(t *testing.T) {
	res := run(t, nil, "chek")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "check")
}
