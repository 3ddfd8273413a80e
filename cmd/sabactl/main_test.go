package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sabadesa/sabadesa-be/internal/client"
)

func TestRun_Regions(t *testing.T) {
	var out bytes.Buffer
	c := client.New("http://unused", client.NewMemoryStore(client.Session{}))
	if err := run(context.Background(), c, "regions", []string{"-kecamatan", "soreang"}, &out); err != nil {
		t.Fatalf("regions: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "dapil:     JABAR 2-1") || !strings.Contains(got, "kecamatan: SOREANG") {
		t.Errorf("unexpected output:\n%s", got)
	}
	if !strings.Contains(got, "desa options:") {
		t.Errorf("expected desa options, got:\n%s", got)
	}
}

func TestRun_SuggestPrintsLabels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"kecamatan":"SOREANG","dapil":"JABAR 2-1","score":91.5,"reason":"target jauh"},
			{"kecamatan":"CILEUNYI","dapil":"JABAR 2-2","score":40,"reason":"stabil"}]`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	c := client.New(srv.URL, client.NewMemoryStore(client.Session{AccessToken: "a"}))
	if err := run(context.Background(), c, "suggest", nil, &out); err != nil {
		t.Fatalf("suggest: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Sering dikunjungi") || !strings.Contains(got, "Stabil") {
		t.Errorf("expected bucket labels, got:\n%s", got)
	}

	out.Reset()
	if err := run(context.Background(), c, "suggest", []string{"-status", "stable"}, &out); err != nil {
		t.Fatalf("suggest -status: %v", err)
	}
	if strings.Contains(out.String(), "SOREANG") {
		t.Errorf("status filter should drop SOREANG, got:\n%s", out.String())
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	c := client.New("http://unused", client.NewMemoryStore(client.Session{}))
	if err := run(context.Background(), c, "bogus", nil, &bytes.Buffer{}); err == nil {
		t.Fatal("expected an error for an unknown command")
	}
}
