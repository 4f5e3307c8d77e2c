package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTranslation struct {
	DetectedSourceLanguage string `json:"detected_source_language"`
	Text                   string `json:"text"`
}

// counter records what the fake endpoint saw.
type counter struct {
	calls    int
	lastForm map[string][]string
	lastAuth string
}

// newFakeServer answers translate requests from a canned table keyed by
// the original text.
func newFakeServer(t *testing.T, answers map[string]fakeTranslation) (*httptest.Server, *counter) {
	cnt := &counter{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cnt.calls++
		require.NoError(t, r.ParseForm())
		cnt.lastForm = r.PostForm
		cnt.lastAuth = r.Header.Get("Authorization")

		var translations []fakeTranslation
		for _, text := range r.PostForm["text"] {
			ans, ok := answers[text]
			require.True(t, ok, "no canned answer for %q", text)
			translations = append(translations, ans)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"translations": translations})
	}))
	t.Cleanup(srv.Close)
	return srv, cnt
}

func TestTranslateEmptyBatchMakesNoNetworkCall(t *testing.T) {
	srv, cnt := newFakeServer(t, nil)
	c := NewClient("key", srv.URL)

	out, err := c.TranslateBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{}, out)
	assert.Zero(t, cnt.calls)
}

func TestTranslatePassThroughWithoutCredential(t *testing.T) {
	srv, cnt := newFakeServer(t, nil)
	c := NewClient("", srv.URL)

	in := []string{"hello", "こんにちは", "gg"}
	out, err := c.TranslateBatch(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Zero(t, cnt.calls)
}

func TestTranslateTagsAllowedSources(t *testing.T) {
	srv, cnt := newFakeServer(t, map[string]fakeTranslation{
		"hello": {DetectedSourceLanguage: "EN", Text: "こんにちは"},
	})
	c := NewClient("key", srv.URL)

	out, err := c.TranslateBatch(context.Background(), []string{"hello"})
	require.NoError(t, err)
	assert.Equal(t, []string{"[EN] こんにちは"}, out)

	assert.Equal(t, "DeepL-Auth-Key key", cnt.lastAuth)
	assert.Equal(t, []string{"hello"}, cnt.lastForm["text"])
	assert.Equal(t, []string{TargetLang}, cnt.lastForm["target_lang"])
}

func TestTranslateKeepsOriginalForDisallowedSource(t *testing.T) {
	srv, _ := newFakeServer(t, map[string]fakeTranslation{
		"こんにちは": {DetectedSourceLanguage: "JA", Text: "こんにちは"},
	})
	c := NewClient("key", srv.URL)

	out, err := c.TranslateBatch(context.Background(), []string{"こんにちは"})
	require.NoError(t, err)
	assert.Equal(t, []string{"こんにちは"}, out)
}

func TestTranslatePreservesOrderAndLength(t *testing.T) {
	srv, cnt := newFakeServer(t, map[string]fakeTranslation{
		"hello":   {DetectedSourceLanguage: "EN", Text: "やあ"},
		"你好":      {DetectedSourceLanguage: "ZH", Text: "こんにちは"},
		"안녕하세요":   {DetectedSourceLanguage: "KO", Text: "こんにちは"},
		"おはよう":    {DetectedSourceLanguage: "JA", Text: "おはよう"},
		"bonjour": {DetectedSourceLanguage: "FR", Text: "こんにちは"},
	})
	c := NewClient("key", srv.URL)

	in := []string{"hello", "你好", "안녕하세요", "おはよう", "bonjour"}
	out, err := c.TranslateBatch(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, []string{"[EN] やあ", "[ZH] こんにちは", "[KO] こんにちは", "おはよう", "bonjour"}, out)

	// All five lines went out as repeated form fields in input order.
	assert.Equal(t, in, cnt.lastForm["text"])
}

func TestTranslateCachesAcrossBatches(t *testing.T) {
	srv, cnt := newFakeServer(t, map[string]fakeTranslation{
		"hello": {DetectedSourceLanguage: "EN", Text: "やあ"},
		"new":   {DetectedSourceLanguage: "EN", Text: "新しい"},
	})
	c := NewClient("key", srv.URL)

	_, err := c.TranslateBatch(context.Background(), []string{"hello"})
	require.NoError(t, err)
	require.Equal(t, 1, cnt.calls)

	// Second batch: cached line resolved locally, only the new one is sent.
	out, err := c.TranslateBatch(context.Background(), []string{"hello", "new"})
	require.NoError(t, err)
	assert.Equal(t, []string{"[EN] やあ", "[EN] 新しい"}, out)
	assert.Equal(t, 2, cnt.calls)
	assert.Equal(t, []string{"new"}, cnt.lastForm["text"])

	// Fully cached batch makes no call at all.
	out, err = c.TranslateBatch(context.Background(), []string{"new", "hello"})
	require.NoError(t, err)
	assert.Equal(t, []string{"[EN] 新しい", "[EN] やあ"}, out)
	assert.Equal(t, 2, cnt.calls)
}

func TestTranslateRejectsLengthMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Two inputs, one answer: the positional mapping is unusable.
		json.NewEncoder(w).Encode(map[string]any{"translations": []fakeTranslation{
			{DetectedSourceLanguage: "EN", Text: "only one"},
		}})
	}))
	t.Cleanup(srv.Close)
	c := NewClient("key", srv.URL)

	_, err := c.TranslateBatch(context.Background(), []string{"a", "b"})
	assert.ErrorContains(t, err, "1 entries for 2 inputs")
}

func TestTranslateFailsWholeBatchOnHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)
	c := NewClient("key", srv.URL)

	out, err := c.TranslateBatch(context.Background(), []string{"hello"})
	assert.Nil(t, out)
	assert.ErrorContains(t, err, "429")
	// Nothing is cached after a failed batch.
	assert.Zero(t, c.CacheLen())
}

func TestTranslateFailsOnMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	t.Cleanup(srv.Close)
	c := NewClient("key", srv.URL)

	_, err := c.TranslateBatch(context.Background(), []string{"hello"})
	assert.ErrorContains(t, err, "decode")
}
