package httpclientx

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/ooni/onionoo/internal/model"
)

// ErrRequestFailed indicates that the server returned a status code
// outside of the 2xx range. We still read the response body, which
// usually contains a human readable explanation of the failure.
type ErrRequestFailed struct {
	// Body is the response body.
	Body []byte

	// StatusCode is the status code that failed.
	StatusCode int
}

// Error implements error.
func (err *ErrRequestFailed) Error() string {
	return fmt.Sprintf("httpx: request failed with status %d", err.StatusCode)
}

// GetRaw sends a GET request to epnt and returns the response body, which is
// never nil on success.
func GetRaw(ctx context.Context, epnt *Endpoint, config *Config) ([]byte, error) {
	return OverlappedIgnoreIndex(NewOverlappedGetRaw(config).Run(ctx, epnt))
}

// getRaw is the function run by the overlapped GET.
func getRaw(ctx context.Context, epnt *Endpoint, config *Config) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, epnt.URL, nil)
	if err != nil {
		return nil, err
	}
	return do(ctx, req, epnt, config)
}

// do performs the HTTP transaction and returns the response body.
func do(ctx context.Context, req *http.Request, epnt *Endpoint, config *Config) ([]byte, error) {
	// set the headers we always send
	req.Header.Set("Accept", model.HTTPHeaderAccept)
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("User-Agent", config.UserAgent)

	logger := model.ValidLoggerOrDefault(config.Logger)
	logger.Debugf("httpclientx: %s %s...", req.Method, epnt.URL)
	rawrespbody, err := doWithoutLogging(ctx, req, config)
	logger.Debugf("httpclientx: %s %s... %s", req.Method, epnt.URL, model.ErrorToStringOrOK(err))
	return rawrespbody, err
}

func doWithoutLogging(ctx context.Context, req *http.Request, config *Config) ([]byte, error) {
	// get the response
	resp, err := config.Client.Do(req)

	// handle the case of failure
	if err != nil {
		return nil, err
	}

	// make sure we release the connection
	defer resp.Body.Close()

	// handle the case of a gzip encoded body
	var baseReader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(baseReader)
		if err != nil {
			return nil, err
		}
		defer gzipReader.Close()
		baseReader = gzipReader
	}

	// read the response body without exceeding the size limit
	limitReader := io.LimitReader(baseReader, config.maxResponseBodySize())
	rawrespbody, err := io.ReadAll(limitReader)

	// handle the case of failure
	if err != nil {
		return nil, err
	}

	// make sure the context did not expire while we were reading
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// handle the case of HTTP error
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ErrRequestFailed{
			Body:       NilSafetyAvoidNilBytesSlice(rawrespbody),
			StatusCode: resp.StatusCode,
		}
	}

	// make sure we replace a nil slice with an empty slice
	return NilSafetyAvoidNilBytesSlice(rawrespbody), nil
}
