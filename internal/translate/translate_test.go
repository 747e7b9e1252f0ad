package translate

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/cache"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu    sync.Mutex
	calls []string
	out   map[string]string
	err   error
}

func (f *fakeBackend) Translate(_ context.Context, text, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, text)
	if f.err != nil {
		return "", f.err
	}
	return f.out[text], nil
}

func TestIsArabic(t *testing.T) {
	assert.True(t, IsArabic("محاسب"))
	assert.True(t, IsArabic("مدير مبيعات - Cairo"))
	assert.False(t, IsArabic("Accountant"))
	assert.False(t, IsArabic("Senior Accountant محاسب"))
	assert.False(t, IsArabic("123 - ."))
	assert.False(t, IsArabic(""))
}

func TestBestEffort_Translate(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{out: map[string]string{"محاسب": "Accountant"}}
	tr := &BestEffort{Backend: backend, Cache: cache.NewMemory()}

	assert.Equal(t, "Accountant", tr.Translate(ctx, "محاسب"))
	assert.Equal(t, "Sales Manager", tr.Translate(ctx, "Sales Manager"), "english text is not sent")
	assert.Equal(t, "", tr.Translate(ctx, ""))

	assert.Equal(t, "Accountant", tr.Translate(ctx, "محاسب"))
	assert.Equal(t, []string{"محاسب"}, backend.calls, "second call is served from cache")
}

func TestBestEffort_FailureReturnsInput(t *testing.T) {
	tr := &BestEffort{Backend: &fakeBackend{err: errors.New("quota exceeded")}}
	assert.Equal(t, "محاسب", tr.Translate(context.Background(), "محاسب"))
}

func TestBestEffort_EmptyResultReturnsInput(t *testing.T) {
	tr := &BestEffort{Backend: &fakeBackend{out: map[string]string{}}}
	assert.Equal(t, "محاسب", tr.Translate(context.Background(), "محاسب"))
}

func TestBestEffort_NoBackend(t *testing.T) {
	tr := &BestEffort{}
	assert.Equal(t, "محاسب", tr.Translate(context.Background(), "محاسب"))
}

func TestBestEffort_Force(t *testing.T) {
	backend := &fakeBackend{out: map[string]string{"Comptable": "Accountant"}}
	tr := &BestEffort{Backend: backend, Force: true}
	assert.Equal(t, "Accountant", tr.Translate(context.Background(), "Comptable"))
}

func TestColumn_RowsLimitForcesFirstRows(t *testing.T) {
	backend := &fakeBackend{out: map[string]string{
		"Comptable": "Accountant",
		"محاسب":     "Accountant",
	}}
	tr := &BestEffort{Backend: backend}

	values := []string{"Comptable", "محاسب", "محاسب"}
	Column(context.Background(), tr, values, 2, 2)

	assert.Equal(t, []string{"Accountant", "Accountant", "محاسب"}, values)
	assert.False(t, tr.Force, "caller's translator is not modified")
}

func TestColumn_AllRowsDetect(t *testing.T) {
	backend := &fakeBackend{out: map[string]string{"محاسب": "Accountant"}}
	tr := &BestEffort{Backend: backend}

	values := []string{"Comptable", "محاسب"}
	Column(context.Background(), tr, values, 0, 0)

	assert.Equal(t, []string{"Comptable", "Accountant"}, values)
	assert.Len(t, backend.calls, 1)
}

type fakeClient struct {
	prompt string
	resp   string
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.prompt = prompt
	return f.resp, nil
}

func (f *fakeClient) Close() error { return nil }

func TestLLMBackend(t *testing.T) {
	client := &fakeClient{resp: "\"Accountant\"\n"}
	b := &LLMBackend{Client: client}

	out, err := b.Translate(context.Background(), "محاسب", "English")
	require.NoError(t, err)
	assert.Equal(t, "Accountant", out)
	assert.Contains(t, client.prompt, "محاسب")
}
