package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/lamplight/internal/config"
)

type apiStub struct {
	mu     sync.Mutex
	path   string
	method string
	form   url.Values
	query  url.Values

	status int
	body   string
}

func (s *apiStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	s.mu.Lock()
	s.path = r.URL.Path
	s.method = r.Method
	s.form = r.PostForm
	s.query = r.URL.Query()
	status, body := s.status, s.body
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func (s *apiStub) seen() (path, method string, form, query url.Values) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path, s.method, s.form, s.query
}

type result struct {
	code   int
	stdout string
	stderr string
}

// lamplight runs the CLI against a stub API answering every request with
// status and body.
func lamplight(t *testing.T, status int, body string, args ...string) (result, *apiStub) {
	t.Helper()
	stub := &apiStub{status: status, body: body}
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(config.EnvKey, "secret")
	t.Setenv(config.EnvLampID, "12")
	t.Setenv(config.EnvProject, "3")
	t.Setenv(config.EnvBaseURL, srv.URL+"/api/")

	cfgPath := filepath.Join(home, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log_level = \"error\"\n"), 0o600))

	var stdout, stderr bytes.Buffer
	full := append([]string{"--config", cfgPath}, args...)
	code := execute(context.Background(), full, &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}, stub
}

const peopleBody = `{"data":[
	{"id":7,"first_name":"Pat","surname":"Smith & Co","tags":["a","b"]},
	{"id":9,"first_name":"Sam","surname":"Jones","tags":[]}
]}`

func TestFetch_PrintsRenderedRecords(t *testing.T) {
	res, stub := lamplight(t, 200, peopleBody,
		"fetch", "people", "all", "--role", "user", "--template", "{surname}, {first_name}")

	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Smith & Co, Pat")
	assert.Contains(t, res.stdout, "Jones, Sam")
	assert.Contains(t, res.stdout, "2 records")

	path, method, _, query := stub.seen()
	assert.Equal(t, "/api/people/all/format/json", path)
	assert.Equal(t, http.MethodGet, method)
	assert.Equal(t, "user", query.Get("role"))
	assert.Equal(t, "secret", query.Get("key"))
	assert.Equal(t, "12", query.Get("lampid"))
	assert.Equal(t, "3", query.Get("project"))
}

func TestFetch_JSONKeepsFieldOrder(t *testing.T) {
	res, _ := lamplight(t, 200, peopleBody, "--json", "fetch", "people", "all")

	require.Equal(t, 0, res.code, res.stderr)
	out := res.stdout
	assert.Contains(t, out, `"type": "PeopleSummary"`)
	assert.Contains(t, out, `"status": 200`)
	first := strings.Index(out, `"first_name"`)
	surname := strings.Index(out, `"surname"`)
	require.NotEqual(t, -1, first)
	assert.Less(t, first, surname, "fields should keep server order")
	assert.Contains(t, out, `"surname": "Smith & Co"`)

	var decoded struct {
		Records []struct {
			ID     int            `json:"id"`
			Fields map[string]any `json:"fields"`
		} `json:"records"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Records, 2)
	assert.Equal(t, 7, decoded.Records[0].ID)
	assert.Equal(t, []any{"a", "b"}, decoded.Records[0].Fields["tags"])
	assert.Equal(t, []any{}, decoded.Records[1].Fields["tags"])
}

func TestFetch_ServerErrorExitsNonZero(t *testing.T) {
	res, _ := lamplight(t, 401, `{"error":401,"msg":"Bad key"}`, "fetch", "work", "all")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "error 401: Bad key")
	assert.NotContains(t, res.stderr, "lamplight:")
}

func TestFetch_InvalidRoleFailsBeforeRequest(t *testing.T) {
	res, stub := lamplight(t, 200, peopleBody, "fetch", "people", "all", "--role", "org")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "invalid role")
	path, _, _, _ := stub.seen()
	assert.Empty(t, path)
}

func TestFetch_ShortAndFullConflict(t *testing.T) {
	res, _ := lamplight(t, 200, peopleBody, "fetch", "people", "all", "--short", "--full")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "mutually exclusive")
}

func TestAttend_ReportsSavedID(t *testing.T) {
	res, stub := lamplight(t, 200, `{"data":42}`, "attend", "42", "pat@example.org")

	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "saved id 42")

	path, method, form, _ := stub.seen()
	assert.Equal(t, "/api/work/attend/format/json", path)
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "42", form.Get("id"))
	assert.Equal(t, "pat@example.org", form.Get("attendee"))
}

func TestAttend_RejectsBadWorkID(t *testing.T) {
	res, _ := lamplight(t, 200, `{"data":1}`, "attend", "zero", "pat")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "work id must be a positive number")
}

func TestReferral_SendsFields(t *testing.T) {
	res, stub := lamplight(t, 200, `{"data":{"id":88}}`,
		"referral", "--attendee", "17", "--workarea", "3",
		"--date", "2025-03-01 10:00", "--reason", "Self referral", "--field", "source=website")

	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "saved id 88")

	path, _, form, _ := stub.seen()
	assert.Equal(t, "/api/referral/add/format/json", path)
	assert.Equal(t, "17", form.Get("attendee"))
	assert.Equal(t, "3", form.Get("workareaid"))
	assert.Equal(t, "2025-03-01 10:00:00", form.Get("date_from"))
	assert.Equal(t, "Self referral", form.Get("referral_reason"))
	assert.Equal(t, "website", form.Get("source"))
}

func TestReferral_RequiresAttendee(t *testing.T) {
	res, stub := lamplight(t, 200, `{"data":1}`, "referral", "--reason", "x")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "attendee")
	path, _, _, _ := stub.seen()
	assert.Empty(t, path)
}

func TestProfile_AddAndUpdate(t *testing.T) {
	res, stub := lamplight(t, 200, `{"data":{"id":501}}`,
		"profile", "people", "--role", "user", "--field", "first_name=Pat")
	require.Equal(t, 0, res.code, res.stderr)
	path, _, form, _ := stub.seen()
	assert.Equal(t, "/api/people/add/format/json", path)
	assert.Equal(t, "user", form.Get("role"))
	assert.Equal(t, "Pat", form.Get("first_name"))

	res, stub = lamplight(t, 200, `{"data":{"id":501}}`,
		"profile", "orgs", "--id", "501", "--field", "name=Acme")
	require.Equal(t, 0, res.code, res.stderr)
	path, _, form, _ = stub.seen()
	assert.Equal(t, "/api/orgs/update/format/json", path)
	assert.Equal(t, "501", form.Get("id"))
}

func TestProfile_UnknownKind(t *testing.T) {
	res, _ := lamplight(t, 200, `{"data":1}`, "profile", "pets")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "unknown profile kind")
}

func TestRelate_MessageAcknowledgement(t *testing.T) {
	body := `{"msg":"Relationship added"}`

	res, _ := lamplight(t, 200, body, "relate", "5", "6", "2")
	assert.Equal(t, 1, res.code, "a bare message is not a success by default")
	assert.Contains(t, res.stderr, "error 1072")

	res, stub := lamplight(t, 200, body, "--ack-messages", "relate", "5", "6", "2")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "saved id 5")
	path, _, form, _ := stub.seen()
	assert.Equal(t, "/api/people/relationship/format/json", path)
	assert.Equal(t, "6", form.Get("related_profile_id"))
	assert.Equal(t, "2", form.Get("relationship_id"))
}

func TestGroup_FailureIsPrinted(t *testing.T) {
	res, stub := lamplight(t, 200, `{"error":300,"msg":"Group not found"}`,
		"group", "5", "77", "--notes", "Joined online", "--joined", "2024-06-01")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "failed: error 300: Group not found")

	_, _, form, _ := stub.seen()
	assert.Equal(t, "77", form.Get("group_id"))
	assert.Equal(t, "Joined online", form.Get("notes"))
	assert.Equal(t, "2024-06-01 00:00:00", form.Get("date_joined"))
}

func TestSubmission_JSONOutput(t *testing.T) {
	res, _ := lamplight(t, 200, `{"data":[{"id":1},{"id":2,"error":5,"msg":"Nope"}]}`,
		"--json", "profile", "family", "--field", "name=Smith")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stdout, `"success": false`)
	assert.Contains(t, res.stdout, `"message": "Nope"`)
}

func TestMissingCredentials(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{config.EnvKey, config.EnvLampID, config.EnvProject, config.EnvBaseURL} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	var stdout, stderr bytes.Buffer
	code := execute(context.Background(),
		[]string{"--config", filepath.Join(home, "none.toml"), "fetch", "work", "all"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "credentials")
}

func TestParsePairs(t *testing.T) {
	got, err := parsePairs([]string{"a=1", "b=x=y", "c="})
	require.NoError(t, err)
	assert.Equal(t, []pair{{"a", "1"}, {"b", "x=y"}, {"c", ""}}, got)

	_, err = parsePairs([]string{"novalue"})
	assert.Error(t, err)
	_, err = parsePairs([]string{"=1"})
	assert.Error(t, err)
}

func TestLogs_PrintsFilteredTail(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	logFile := filepath.Join(home, "lamplight.log")
	content := "2025-10-08T21:01:05.000Z\tINFO\tlamplight\tfirst\n" +
		"2025-10-08T21:01:06.000Z\tWARN\tlamplight\tsecond\n" +
		"2025-10-08T21:01:07.000Z\tERROR\tlamplight\tthird\n"
	require.NoError(t, os.WriteFile(logFile, []byte(content), 0o600))
	cfgPath := filepath.Join(home, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log_file = \""+logFile+"\"\n"), 0o600))

	var stdout, stderr bytes.Buffer
	code := execute(context.Background(),
		[]string{"--config", cfgPath, "logs", "--level", "warn", "-n", "1"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "third")
	assert.NotContains(t, stdout.String(), "second")
	assert.NotContains(t, stdout.String(), "first")
}

func TestLogs_RequiresLogFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	var stdout, stderr bytes.Buffer
	code := execute(context.Background(),
		[]string{"--config", filepath.Join(home, "none.toml"), "logs"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "no log_file configured")
}

func TestTemplate_SetListUnset(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	prefsPath := filepath.Join(home, "prefs.toml")
	run := func(args ...string) result {
		var stdout, stderr bytes.Buffer
		code := execute(context.Background(), append([]string{"--prefs", prefsPath}, args...), &stdout, &stderr)
		return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
	}

	res := run("template", "list")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "no templates set")

	res = run("template", "set", "PeopleSummary", "{surname}, {first_name}")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "saved template for PeopleSummary")

	res = run("template", "list")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "PeopleSummary")
	assert.Contains(t, res.stdout, "{surname}, {first_name}")

	res = run("template", "unset", "PeopleSummary")
	require.Equal(t, 0, res.code, res.stderr)
	res = run("template", "list")
	assert.Contains(t, res.stdout, "no templates set")

	res = run("template", "set", "Bad Type", "{id}")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "record type must be a single word")
}

func TestTemplate_UsedByFetch(t *testing.T) {
	home := t.TempDir()
	prefsPath := filepath.Join(home, "prefs.toml")
	require.NoError(t, os.WriteFile(prefsPath, []byte("[templates]\nPeopleSummary = \"{first_name}!\"\n"), 0o600))

	res, _ := lamplight(t, 200, peopleBody, "--prefs", prefsPath, "fetch", "people", "all", "--role", "user")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Pat!")
	assert.Contains(t, res.stdout, "Sam!")
}
