package router

import (
	"bytes"
	"context"
	"io"
	nethttp "net/http"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/forgegate/forgegate/internal/engine/service"
	"github.com/forgegate/forgegate/internal/pkg/gate"
	"github.com/forgegate/forgegate/internal/pkg/notifier"
	"github.com/forgegate/forgegate/internal/pkg/pipeline"
	"github.com/forgegate/forgegate/internal/pkg/runner"
	"github.com/forgegate/forgegate/internal/pkg/storage"
	pkghttp "github.com/forgegate/forgegate/pkg/http"
	"github.com/forgegate/forgegate/pkg/webhook"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-shared-secret"

type stubSource struct{}

func (stubSource) Checkout(_ context.Context, req pipeline.CheckoutRequest) error {
	if err := os.MkdirAll(req.Dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(req.Dir+"/file", []byte("src"), 0o644)
}

type stubRunner struct{}

func (stubRunner) Run(_ context.Context, req runner.Request) (*runner.Result, error) {
	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(req.OutputDir+"/app.jar", []byte("jar"), 0o644); err != nil {
		return nil, err
	}
	return &runner.Result{ExitCode: 0}, nil
}

type stubStorage struct{}

func (stubStorage) PutObject(_ context.Context, objectName string, r io.Reader, _ int64, _ string) (storage.ArtifactRef, error) {
	_, _ = io.Copy(io.Discard, r)
	return storage.ArtifactRef{Provider: "mem", Bucket: "b", Key: objectName}, nil
}

func (stubStorage) GetObject(context.Context, string) (io.ReadCloser, error) {
	return nil, os.ErrNotExist
}

func (stubStorage) Provider() string { return "mem" }

type stubNotifier struct{}

func (stubNotifier) Notify(context.Context, notifier.Job) {}

func newTestApp(t *testing.T) (*fiber.App, *gate.Registry, *pipeline.Store, *pipeline.Conf) {
	t.Helper()

	conf := &pipeline.Conf{
		RepoOwner:           "acme",
		RepoName:            "streams-infra",
		SharedSecret:        testSecret,
		ArtifactNamePattern: "*.jar",
		BuildCommand:        "make",
		WorkDir:             t.TempDir(),
	}
	conf.SetDefaults()
	require.NoError(t, conf.Validate())

	store := pipeline.NewStore()
	registry := gate.NewRegistry()
	orch := pipeline.New(conf, store, stubSource{}, stubRunner{}, stubStorage{}, stubNotifier{}, "http://gate.invalid")
	services := service.NewServices(conf, orch, store, registry)

	httpConf := &pkghttp.Http{}
	httpConf.SetDefaults()
	app := pkghttp.NewFiberApp(httpConf)
	NewRouter(services).RegisterRoutes(app)
	return app, registry, store, conf
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body []byte, header map[string]string) (*nethttp.Response, pkghttp.Response) {
	t.Helper()
	req, err := nethttp.NewRequest(method, target, bytes.NewReader(body))
	require.NoError(t, err)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope pkghttp.Response
	require.NoError(t, sonic.Unmarshal(raw, &envelope), string(raw))
	return resp, envelope
}

func pushBody(t *testing.T, ref string) []byte {
	t.Helper()
	body, err := sonic.Marshal(map[string]any{
		"ref":        ref,
		"after":      "deadbeefcafe",
		"repository": map[string]any{"name": "streams-infra", "owner": map[string]any{"name": "acme"}},
		"pusher":     map[string]any{"name": "dev"},
	})
	require.NoError(t, err)
	return body
}

func TestWebhookAccepted(t *testing.T) {
	app, _, store, conf := newTestApp(t)

	body := pushBody(t, "refs/heads/master")
	target := "/api/v1/webhooks/" + url.PathEscape(conf.PipelineId())
	resp, envelope := doJSON(t, app, nethttp.MethodPost, target, body, map[string]string{
		webhook.SignatureHeader: webhook.Sign(body, testSecret),
		"Content-Type":          "application/json",
	})

	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	detail, ok := envelope.Detail.(map[string]any)
	require.True(t, ok)
	execId, _ := detail["executionId"].(string)
	require.NotEmpty(t, execId)

	exec, err := store.Get(execId)
	require.NoError(t, err)
	assert.Equal(t, "webhook", exec.TriggeredBy)
	assert.Equal(t, "deadbeefcafe", exec.CommitSha)
}

func TestWebhookBadSignature(t *testing.T) {
	app, _, _, conf := newTestApp(t)

	body := pushBody(t, "refs/heads/master")
	target := "/api/v1/webhooks/" + url.PathEscape(conf.PipelineId())
	resp, _ := doJSON(t, app, nethttp.MethodPost, target, body, map[string]string{
		webhook.SignatureHeader: webhook.Sign(body, "wrong-secret"),
	})
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, nethttp.MethodPost, target, body, nil)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
}

func TestWebhookOffBranchAcknowledged(t *testing.T) {
	app, _, _, conf := newTestApp(t)

	body := pushBody(t, "refs/heads/feature-x")
	target := "/api/v1/webhooks/" + url.PathEscape(conf.PipelineId())
	resp, envelope := doJSON(t, app, nethttp.MethodPost, target, body, map[string]string{
		webhook.SignatureHeader: webhook.Sign(body, testSecret),
	})

	// Authentic but off-branch: 200, nothing started.
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Nil(t, envelope.Detail)
	assert.Contains(t, envelope.Message, "ignored")
}

func TestWebhookUnknownPipeline(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	body := pushBody(t, "refs/heads/master")
	resp, _ := doJSON(t, app, nethttp.MethodPost, "/api/v1/webhooks/nobody", body, map[string]string{
		webhook.SignatureHeader: webhook.Sign(body, testSecret),
	})
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
}

func TestGateSignalLifecycle(t *testing.T) {
	app, registry, _, _ := newTestApp(t)
	g := registry.Create(time.Minute)
	target := "/api/v1/gates/" + g.Handle()

	sig, _ := sonic.Marshal(gate.Signal{
		Status: gate.StatusSuccess, Reason: "Build Succeeded", UniqueId: "job-1",
	})

	// The sender does not set a Content-Type.
	resp, _ := doJSON(t, app, nethttp.MethodPut, target, sig, nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, gate.StateFiredSuccess, g.State())

	// Post-terminal signal: accepted, no state change.
	late, _ := sonic.Marshal(gate.Signal{
		Status: gate.StatusFailure, Reason: "late", UniqueId: "job-2",
	})
	resp, _ = doJSON(t, app, nethttp.MethodPut, target, late, nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, gate.StateFiredSuccess, g.State())

	// Diagnostics expose the first recorded signal.
	resp, envelope := doJSON(t, app, nethttp.MethodGet, target, nil, nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	detail, ok := envelope.Detail.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, string(gate.StateFiredSuccess), detail["state"])
	recorded, _ := detail["signal"].(map[string]any)
	require.NotNil(t, recorded)
	assert.Equal(t, "job-1", recorded["UniqueId"])
}

func TestGateSignalRejectsGarbage(t *testing.T) {
	app, registry, _, _ := newTestApp(t)
	g := registry.Create(time.Minute)
	target := "/api/v1/gates/" + g.Handle()

	resp, _ := doJSON(t, app, nethttp.MethodPut, target, []byte("{not json"), nil)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)

	body, _ := sonic.Marshal(gate.Signal{Status: "MAYBE", UniqueId: "job-1"})
	resp, _ = doJSON(t, app, nethttp.MethodPut, target, body, nil)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, gate.StateWaiting, g.State())
}

func TestGateUnknownHandle(t *testing.T) {
	app, _, _, _ := newTestApp(t)
	body, _ := sonic.Marshal(gate.Signal{Status: gate.StatusSuccess, UniqueId: "j"})

	resp, _ := doJSON(t, app, nethttp.MethodPut, "/api/v1/gates/"+strings.Repeat("x", 40), body, nil)
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, nethttp.MethodGet, "/api/v1/gates/"+strings.Repeat("x", 40), nil, nil)
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
}

func TestManualExecutionStartAndGet(t *testing.T) {
	app, _, _, conf := newTestApp(t)

	target := "/api/v1/executions/" + url.PathEscape(conf.PipelineId())
	resp, envelope := doJSON(t, app, nethttp.MethodPost, target,
		[]byte(`{"actor":"operator"}`), map[string]string{"Content-Type": "application/json"})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	detail, ok := envelope.Detail.(map[string]any)
	require.True(t, ok)
	execId, _ := detail["executionId"].(string)
	require.NotEmpty(t, execId)

	resp, envelope = doJSON(t, app, nethttp.MethodGet, "/api/v1/executions/"+execId, nil, nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	got, ok := envelope.Detail.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "manual", got["triggeredBy"])
}

func TestGetExecutionNotFound(t *testing.T) {
	app, _, _, _ := newTestApp(t)
	resp, _ := doJSON(t, app, nethttp.MethodGet, "/api/v1/executions/unknown", nil, nil)
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
}
