package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbernstein/nearbystops/internal/config"
	"github.com/bbernstein/nearbystops/internal/prompt"
	"github.com/bbernstein/nearbystops/pkg/http/client"
)

type fakeServices struct {
	postcodes     *httptest.Server
	tfl           *httptest.Server
	tflRequests   atomic.Int32
	postcodePaths chan string
}

func newFakeServices(t *testing.T, postcodeStatus int, stopsBody string) *fakeServices {
	t.Helper()

	f := &fakeServices{postcodePaths: make(chan string, 1)}

	f.postcodes = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.postcodePaths <- r.URL.Path
		w.WriteHeader(postcodeStatus)
		if postcodeStatus == http.StatusOK {
			_, _ = w.Write([]byte(`{"status":200,"result":{"latitude":51.5,"longitude":-0.1}}`))
		}
	}))
	t.Cleanup(f.postcodes.Close)

	f.tfl = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.tflRequests.Add(1)
		assert.Equal(t, "51.5", r.URL.Query().Get("lat"))
		assert.Equal(t, "-0.1", r.URL.Query().Get("lon"))
		assert.Equal(t, "test-key", r.URL.Query().Get("app_key"))
		_, _ = w.Write([]byte(stopsBody))
	}))
	t.Cleanup(f.tfl.Close)

	return f
}

func (f *fakeServices) config() *config.Config {
	return config.New(
		config.WithPostcodesBaseURL(f.postcodes.URL),
		config.WithTfLBaseURL(f.tfl.URL),
		config.WithTfLCredentials("test-id", "test-key"),
	)
}

func TestRun_EndToEnd(t *testing.T) {
	services := newFakeServices(t, http.StatusOK, `{"stopPoints":[`+
		`{"naptanId":"1","commonName":"Buckingham Palace Road"},`+
		`{"naptanId":"2","commonName":"Victoria Station"},`+
		`{"naptanId":"3","commonName":"Grosvenor Gardens"}]}`)

	var out bytes.Buffer
	err := run(context.Background(), services.config(), strings.NewReader("SW1A 1AA\n"), &out)
	require.NoError(t, err)

	assert.Equal(t, "/postcodes/SW1A1AA", <-services.postcodePaths)
	assert.Equal(t, int32(1), services.tflRequests.Load())
	assert.Equal(t,
		"\nEnter your postcode: Buckingham Palace Road\nVictoria Station\nGrosvenor Gardens\n",
		out.String())
}

func TestRun_TruncatesToStopCount(t *testing.T) {
	var body strings.Builder
	body.WriteString(`{"stopPoints":[`)
	for i := 0; i < 8; i++ {
		if i > 0 {
			body.WriteString(",")
		}
		body.WriteString(`{"naptanId":"id","commonName":"Stop"}`)
	}
	body.WriteString(`]}`)

	services := newFakeServices(t, http.StatusOK, body.String())

	var out bytes.Buffer
	err := run(context.Background(), services.config(), strings.NewReader("E1 1AA\n"), &out)
	require.NoError(t, err)

	assert.Equal(t, 5, strings.Count(out.String(), "Stop\n"))
}

func TestRun_GeocodeFailure(t *testing.T) {
	services := newFakeServices(t, http.StatusNotFound, `{"stopPoints":[]}`)

	var out bytes.Buffer
	err := run(context.Background(), services.config(), strings.NewReader("NOT A POSTCODE\n"), &out)
	require.Error(t, err)

	var statusErr *client.HTTPStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)

	assert.Equal(t, "/postcodes/NOTAPOSTCODE", <-services.postcodePaths)
	assert.Equal(t, int32(0), services.tflRequests.Load())
	assert.Equal(t, "\nEnter your postcode: ", out.String())
}

func TestRun_MalformedStops(t *testing.T) {
	services := newFakeServices(t, http.StatusOK, "not json")

	var out bytes.Buffer
	err := run(context.Background(), services.config(), strings.NewReader("SW1A 1AA\n"), &out)

	var malformedErr *client.MalformedResponseError
	require.True(t, errors.As(err, &malformedErr))
	assert.Equal(t, "\nEnter your postcode: ", out.String())
}

func TestRun_NoInput(t *testing.T) {
	services := newFakeServices(t, http.StatusOK, `{"stopPoints":[]}`)

	err := run(context.Background(), services.config(), strings.NewReader(""), &bytes.Buffer{})

	assert.ErrorIs(t, err, prompt.ErrNoInput)
	assert.Empty(t, services.postcodePaths)
	assert.Equal(t, int32(0), services.tflRequests.Load())
}
