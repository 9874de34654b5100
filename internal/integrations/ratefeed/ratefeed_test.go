package ratefeed

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedXML = `<?xml version="1.0" encoding="utf-8"?>
<RateFeed>
  <Rates>
    <Rate instrument="GSEC10Y"><Date>2026-10-14</Date><Value>6.42</Value></Rate>
    <Rate instrument="REPO"><Date>2026-10-16</Date><Value>5.50</Value></Rate>
    <Rate instrument="GSEC10Y"><Date>2026-10-16</Date><Value>6.38</Value></Rate>
    <Rate instrument="GSEC10Y"><Date>2026-10-15</Date><Value>6.40</Value></Rate>
  </Rates>
</RateFeed>`

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestGetBenchmarkRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GSEC10Y", r.URL.Query().Get("instrument"))
		assert.NotEmpty(t, r.URL.Query().Get("fromDate"))
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(feedXML))
	}))
	defer srv.Close()

	rate, err := NewClient(srv.URL, quietLogger()).GetBenchmarkRate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6.38, rate.Value)
	assert.Equal(t, "2026-10-16", rate.Date.Format("2006-01-02"))
}

func TestGetBenchmarkRate_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, quietLogger()).GetBenchmarkRate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestParse(t *testing.T) {
	c := NewClient("http://feed.invalid", quietLogger())
	tests := []struct {
		name string
		xml  string
		want string
	}{
		{"malformed", "<Rates><<Rate>", "failed to parse XML"},
		{"no instrument", `<F><Rates><Rate instrument="REPO"><Date>2026-10-16</Date><Value>5.5</Value></Rate></Rates></F>`, "no GSEC10Y rate"},
		{"bad value", `<F><Rates><Rate instrument="GSEC10Y"><Date>2026-10-16</Date><Value>n/a</Value></Rate></Rates></F>`, "failed to parse rate"},
		{"implausible", `<F><Rates><Rate instrument="GSEC10Y"><Date>2026-10-16</Date><Value>64</Value></Rate></Rates></F>`, "implausible"},
		{"missing date", `<F><Rates><Rate instrument="GSEC10Y"><Value>6.4</Value></Rate></Rates></F>`, "missing Date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.parse([]byte(tt.xml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
