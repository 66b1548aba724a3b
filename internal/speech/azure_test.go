package speech

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hammamikhairi/recipeflow/internal/logger"
)

func TestAzureSynthesize(t *testing.T) {
	var gotBody, gotKey, gotFormat string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotKey = r.Header.Get("Ocp-Apim-Subscription-Key")
		gotFormat = r.Header.Get("X-Microsoft-OutputFormat")
		w.Write([]byte("RIFF-audio"))
	}))
	defer srv.Close()

	c := NewAzureClient("secret", "westeurope", logger.New(logger.LevelOff, nil),
		WithEndpoint(srv.URL),
		WithVoice("en-GB-SoniaNeural"),
	)
	audio, err := c.Synthesize(context.Background(), "Mac & Cheese <Step 1> is ready!")
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if string(audio) != "RIFF-audio" {
		t.Fatalf("unexpected audio %q", audio)
	}
	if gotKey != "secret" || gotFormat != DefaultAudioFormat {
		t.Fatalf("unexpected headers key=%q format=%q", gotKey, gotFormat)
	}
	if !strings.Contains(gotBody, "Mac &amp; Cheese &lt;Step 1&gt;") {
		t.Fatalf("text not escaped: %s", gotBody)
	}
	if !strings.Contains(gotBody, "name='en-GB-SoniaNeural'") {
		t.Fatalf("voice not set: %s", gotBody)
	}
}

func TestAzureErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewAzureClient("wrong", "westeurope", logger.New(logger.LevelOff, nil), WithEndpoint(srv.URL))
	_, err := c.Synthesize(context.Background(), "hello")
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Fatalf("expected a 401 error, got %v", err)
	}
}
