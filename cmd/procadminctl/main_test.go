package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch {
		case strings.HasSuffix(r.URL.Path, "/attributes/Ready"):
			_, _ = w.Write([]byte(`{"value":true}`))
		case strings.HasSuffix(r.URL.Path, "/attributes/EmbeddedWebApplication"):
			_, _ = w.Write([]byte(`{"value":false}`))
		case strings.HasSuffix(r.URL.Path, "/operations/getProperty"):
			if strings.Contains(readBody(r), "foo.bar") {
				_, _ = w.Write([]byte(`{"value":"blam"}`))

				return
			}

			_, _ = w.Write([]byte(`{"value":null}`))
		case strings.HasSuffix(r.URL.Path, "/operations/shutdown"):
			w.WriteHeader(http.StatusAccepted)
			_, _ = w.Write([]byte(`{"status":"accepted"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(ts.Close)

	tests := []struct {
		name       string
		giveArgs   []string
		wantOut    string
		wantErr    error
		wantAnyErr bool
	}{
		{name: "ready", giveArgs: []string{"ready"}, wantOut: "true\n"},
		{name: "embedded", giveArgs: []string{"embedded"}, wantOut: "false\n"},
		{name: "property", giveArgs: []string{"property", "foo.bar"}, wantOut: "blam\n"},
		{name: "property not set", giveArgs: []string{"property", "nope"}, wantErr: errPropertyNotSet},
		{name: "property without key", giveArgs: []string{"property"}, wantErr: errUsage},
		{name: "shutdown", giveArgs: []string{"shutdown"}, wantOut: "shutdown requested\n"},
		{name: "wait-ready", giveArgs: []string{"--timeout=1s", "wait-ready"}, wantOut: "ready\n"},
		{name: "missing command", giveArgs: nil, wantErr: errUsage},
		{name: "unknown command", giveArgs: []string{"restart"}, wantErr: errUsage},
		{name: "unknown flag", giveArgs: []string{"--bogus", "ready"}, wantAnyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stdout, stderr bytes.Buffer

			args := append([]string{"--addr=" + ts.URL}, tt.giveArgs...)
			err := run(t.Context(), args, &stdout, &stderr)

			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.wantAnyErr:
				require.Error(t, err)
			default:
				require.NoError(t, err)
				require.Equal(t, tt.wantOut, stdout.String())
			}
		})
	}
}

func readBody(r *http.Request) string {
	var buf bytes.Buffer

	_, _ = buf.ReadFrom(r.Body)

	return buf.String()
}
