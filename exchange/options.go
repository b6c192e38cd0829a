package exchange

import (
	"io"
	"net/http"
	"time"
)

type Options struct {
	Timeout         time.Duration
	FollowRedirects bool
	MaxRedirects    int
	SkipVerify      bool
	ForceHTTP1      bool
	Transport       http.RoundTripper

	// WarnWriter receives non-fatal assembly warnings. Defaults to
	// os.Stderr when nil.
	WarnWriter io.Writer
}
