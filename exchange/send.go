package exchange

import (
	"net/http"

	"github.com/httpr-cli/httpr/input"
	"github.com/pkg/errors"
)

// SendRequest assembles the request and performs the single
// send/receive exchange. Assembly fully completes before any network
// activity, so a classification or file-read failure never reaches
// the wire.
func SendRequest(request *input.Request, options *Options) (*http.Response, error) {
	client, err := BuildHTTPClient(options)
	if err != nil {
		return nil, err
	}
	r, err := BuildHTTPRequest(request, options, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(r)
	if err != nil {
		return nil, errors.Wrap(err, "sending HTTP request")
	}

	return resp, nil
}
