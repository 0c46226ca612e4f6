package resumably

import (
	"net/http"
	"net/http/httputil"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// debugTransport dumps each request and response through the client's
// logger. Installed only when debug logging is requested, so RoundTrip
// does not re-check the flag.
//
// Dumps include headers and bodies, which may carry tokens and user data.
// Only enable in development or staging environments.
type debugTransport struct {
	base http.RoundTripper
	log  zerolog.Logger
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	if dump, err := httputil.DumpRequestOut(req, true); err == nil {
		dt.log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("dump", string(dump)).Msg("http request")
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		dt.log.Debug().Err(err).Str("url", req.URL.String()).Dur("elapsed", time.Since(start)).Msg("http request failed")
		return nil, err
	}

	if dump, err := httputil.DumpResponse(resp, true); err == nil {
		dt.log.Debug().Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Str("dump", string(dump)).Msg("http response")
	}
	return resp, nil
}

// debugLoggingRequested checks the environment knobs for HTTP debug
// logging. RESUMABLY_DEBUG targets this client; DEBUG is the general flag
// common in development workflows.
func debugLoggingRequested() bool {
	return os.Getenv("RESUMABLY_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
