package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/nexpos-assistant/pkg/logger"
)

func TestParseCategory(t *testing.T) {
	assert.Equal(t, CategoryAddDevice, ParseCategory("add_device"))
	assert.Equal(t, CategoryAddDevice, ParseCategory(" Add Device "))
	assert.Equal(t, CategoryGeneral, ParseCategory("WEATHER"))
}

func TestParseClassification(t *testing.T) {
	cases := []struct {
		raw  string
		want Category
		ok   bool
	}{
		{`{"category":"DEVICE"}`, CategoryDevice, true},
		{`Sure! {"category": "report"} hope it helps`, CategoryReport, true},
		{`{"category":"SOMETHING"}`, CategoryGeneral, true},
		{`ALERT`, CategoryAlert, true},
		{`"HELP".`, CategoryHelp, true},
		{``, "", false},
		{`{"foo":"bar"}`, "", false},
		{`I think the user is asking about many different things here`, "", false},
	}
	for _, c := range cases {
		got, ok := parseClassification(c.raw)
		assert.Equal(t, c.ok, ok, c.raw)
		assert.Equal(t, c.want, got, c.raw)
	}
}

func TestDegenerate(t *testing.T) {
	assert.True(t, degenerate(""))
	assert.True(t, degenerate("ok"))
	assert.True(t, degenerate("⚠️ AI service unavailable: refused"))
	assert.False(t, degenerate("There are **2** devices online in Mumbai."))
}

func ollamaServer(t *testing.T, reply string, status int) (*httptest.Server, *ollamaRequest) {
	t.Helper()
	var got ollamaRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			w.WriteHeader(http.StatusOK)
		case "/api/generate":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(ollamaResponse{Response: reply, Done: true})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestOllamaClassify(t *testing.T) {
	srv, got := ollamaServer(t, `{"category":"MERCHANT"}`, http.StatusOK)
	a := NewAssistant(NewOllama(srv.URL, "test-model", nil))

	c, err := a.Classify(context.Background(), `show "merchants"`)
	require.NoError(t, err)
	assert.Equal(t, CategoryMerchant, c)
	assert.Equal(t, "test-model", got.Model)
	assert.False(t, got.Stream)
	assert.Contains(t, got.Prompt, `show \"merchants\"`)
	assert.Equal(t, "ollama:test-model", a.Model())

	assert.True(t, NewOllama(srv.URL, "", nil).Healthy(context.Background()))
}

func TestOllamaSynthesize(t *testing.T) {
	srv, got := ollamaServer(t, "Mumbai has **2** online devices right now.", http.StatusOK)
	a := NewAssistant(NewOllama(srv.URL, "m", nil))

	answer, err := a.Synthesize(context.Background(), "how many online in mumbai", "DEVICES:\n  POS-1001")
	require.NoError(t, err)
	assert.Equal(t, "Mumbai has **2** online devices right now.", answer)
	assert.Equal(t, "how many online in mumbai", got.Prompt)
	assert.Contains(t, got.System, "POS-1001")
}

func TestOllamaFailuresCollapseToUnavailable(t *testing.T) {
	log := logger.NewNop()

	srv, _ := ollamaServer(t, "x", http.StatusInternalServerError)
	a := NewAssistant(NewGuard(NewOllama(srv.URL, "m", nil), time.Second, 0, log))
	_, err := a.Classify(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrUnavailable)

	// porta fechada: conexão recusada
	closed := httptest.NewServer(http.NotFoundHandler())
	url := closed.URL
	closed.Close()
	a = NewAssistant(NewGuard(NewOllama(url, "m", nil), time.Second, 1, log))
	_, err = a.Synthesize(context.Background(), "q", "data")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, NewOllama(url, "m", nil).Healthy(context.Background()))

	srv, _ = ollamaServer(t, "ok", http.StatusOK)
	a = NewAssistant(NewGuard(NewOllama(srv.URL, "m", nil), time.Second, 0, log))
	_, err = a.Synthesize(context.Background(), "q", "data")
	assert.ErrorIs(t, err, ErrUnavailable)
}

type flakyBackend struct {
	calls atomic.Int32
	fail  int32
	delay time.Duration
}

func (f *flakyBackend) Name() string { return "flaky" }

func (f *flakyBackend) Complete(ctx context.Context, _ Request) (string, error) {
	n := f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if n <= f.fail {
		return "", errors.New("boom")
	}
	return "DEVICE", nil
}

func TestGuardRetriesOnce(t *testing.T) {
	f := &flakyBackend{fail: 1}
	g := NewGuard(f, time.Second, 5, logger.NewNop())

	text, err := g.Complete(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "DEVICE", text)
	assert.Equal(t, int32(2), f.calls.Load())

	f = &flakyBackend{fail: 10}
	g = NewGuard(f, time.Second, 1, logger.NewNop())
	_, err = g.Complete(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(2), f.calls.Load())
}

func TestGuardTimeout(t *testing.T) {
	f := &flakyBackend{delay: time.Second}
	g := NewGuard(f, 20*time.Millisecond, 0, logger.NewNop())

	start := time.Now()
	_, err := g.Complete(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestAnthropicComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var req anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "user", req.Messages[0].Role)

		_, _ = w.Write([]byte(`{"id":"msg_1","content":[{"type":"text","text":"{\"category\":\"ALERT\"}"}]}`))
	}))
	defer srv.Close()

	b, err := NewAnthropic("key", "", nil)
	require.NoError(t, err)
	b.endpoint = srv.URL

	c, err := NewAssistant(b).Classify(context.Background(), "any alerts?")
	require.NoError(t, err)
	assert.Equal(t, CategoryAlert, c)

	_, err = NewAnthropic("", "", nil)
	assert.Error(t, err)
}

func TestNewProvider(t *testing.T) {
	log := logger.NewNop()

	a, err := New(context.Background(), Config{Provider: "none"}, log)
	require.NoError(t, err)
	assert.Nil(t, a)

	a, err = New(context.Background(), Config{Provider: "ollama", Model: "m"}, log)
	require.NoError(t, err)
	assert.Equal(t, "ollama:m", a.Model())

	_, err = New(context.Background(), Config{Provider: "openai"}, log)
	assert.Error(t, err)

	_, err = New(context.Background(), Config{Provider: "gemini"}, log)
	assert.Error(t, err)
}
