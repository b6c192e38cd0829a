package exchange

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/httpr-cli/httpr/input"
	"github.com/httpr-cli/httpr/version"
	"github.com/pkg/errors"
)

// FileError reports a form file that could not be read during
// assembly. The whole request is abandoned; no partial form is sent.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("failed to read file '%s': %v", e.Path, e.Err)
}

func (e *FileError) Cause() error  { return e.Err }
func (e *FileError) Unwrap() error { return e.Err }

// Methods whose requests carry no body; body fields aimed at them are
// dropped with a warning instead of failing the invocation.
var bodylessMethods = map[input.Method]bool{
	"GET":     true,
	"HEAD":    true,
	"OPTIONS": true,
}

// BuildHTTPRequest assembles a transport-ready *http.Request from the
// parsed invocation. Auth is applied first, then the items in command
// line order: headers additively, query parameters appended to the
// URL preserving order and duplicates, body fields and form files
// folded into one body whose encoding DetectBodyType chose. When
// trace is non-nil every applied header, query pair, file and the
// final body are echoed into it.
func BuildHTTPRequest(request *input.Request, options *Options, trace *Trace) (*http.Request, error) {
	warn := options.WarnWriter
	if warn == nil {
		warn = os.Stderr
	}

	header := make(http.Header)
	if request.Auth != nil {
		value := request.Auth.HeaderValue()
		header.Add("Authorization", value)
		trace.AddHeader("Authorization", value)
	}

	var bodyFields []input.Item
	var files []input.Item
	var queryParams []input.Item
	for _, item := range request.Items {
		switch item.Kind {
		case input.HeaderItem:
			header.Add(item.Key, item.Value)
			trace.AddHeader(item.Key, item.Value)
		case input.QueryParamItem:
			queryParams = append(queryParams, item)
			trace.AddQueryParam(item.Key, item.Value)
		case input.BodyItem:
			if bodylessMethods[request.Method] {
				fmt.Fprintf(warn, "Warning: ignoring body field '%s' in %s request\n",
					item.Key, request.Method)
			} else {
				bodyFields = append(bodyFields, item)
			}
		case input.FormFileItem:
			files = append(files, item)
			trace.AddFile(item.Key, item.Value)
		}
	}

	bodyType := input.DetectBodyType(request.Items)
	if bodyType == input.JSONBody && len(bodyFields) == 0 {
		// Every body field was dropped.
		bodyType = input.EmptyBody
	}
	trace.SetBodyType(bodyType, len(files), len(bodyFields))

	bodyTuple, err := buildHTTPBody(bodyType, bodyFields, files, trace)
	if err != nil {
		return nil, err
	}

	if header.Get("Content-Type") == "" && bodyTuple.contentType != "" {
		header.Set("Content-Type", bodyTuple.contentType)
		trace.AddHeader("Content-Type", bodyTuple.contentType)
	}
	if header.Get("User-Agent") == "" {
		header.Set("User-Agent", fmt.Sprintf("httpr/%s", version.Current()))
	}
	if header.Get("X-Powered-By") == "" {
		header.Set("X-Powered-By", "Go")
	}

	r := http.Request{
		Method:        string(request.Method),
		URL:           buildURL(request.URL, queryParams),
		Header:        header,
		Host:          header.Get("Host"),
		Body:          bodyTuple.body,
		ContentLength: bodyTuple.contentLength,
	}
	return &r, nil
}

// buildURL appends the query parameter items to the URL's raw query,
// keeping the original query, the item order and any duplicate keys.
func buildURL(base *url.URL, queryParams []input.Item) *url.URL {
	u := *base
	var b strings.Builder
	b.WriteString(u.RawQuery)
	for _, item := range queryParams {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(item.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(item.Value))
	}
	u.RawQuery = b.String()
	return &u
}

type bodyTuple struct {
	body          io.ReadCloser
	contentLength int64
	contentType   string
}

func buildHTTPBody(bodyType input.BodyType, bodyFields, files []input.Item, trace *Trace) (bodyTuple, error) {
	switch bodyType {
	case input.EmptyBody:
		return bodyTuple{}, nil
	case input.JSONBody:
		return buildJSONBody(bodyFields, trace)
	case input.MultipartBody:
		return buildMultipartBody(bodyFields, files)
	default:
		return bodyTuple{}, errors.Errorf("unknown body type: %v", bodyType)
	}
}

func buildJSONBody(bodyFields []input.Item, trace *Trace) (bodyTuple, error) {
	// All values stay JSON strings; no numeric or boolean inference.
	obj := map[string]string{}
	for _, field := range bodyFields {
		obj[field.Key] = field.Value
	}
	body, err := json.Marshal(obj)
	if err != nil {
		return bodyTuple{}, errors.Wrap(err, "marshaling JSON of HTTP body")
	}
	trace.SetBody(string(body))
	return bodyTuple{
		body:          ioutil.NopCloser(bytes.NewReader(body)),
		contentLength: int64(len(body)),
		contentType:   "application/json",
	}, nil
}

// buildMultipartBody writes one text part per retained body field and
// one file part per form file, both in item order. Files are read
// sequentially and the first failure aborts the whole assembly.
func buildMultipartBody(bodyFields, files []input.Item) (bodyTuple, error) {
	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)

	for _, field := range bodyFields {
		if err := writer.WriteField(field.Key, field.Value); err != nil {
			return bodyTuple{}, errors.Wrapf(err, "writing form field '%s'", field.Key)
		}
	}

	for _, file := range files {
		data, err := ioutil.ReadFile(file.Value)
		if err != nil {
			return bodyTuple{}, &FileError{Path: file.Value, Err: err}
		}
		part, err := writer.CreatePart(filePartHeader(file.Key, file.Value))
		if err != nil {
			return bodyTuple{}, errors.Wrapf(err, "creating form part '%s'", file.Key)
		}
		if _, err := part.Write(data); err != nil {
			return bodyTuple{}, errors.Wrapf(err, "writing form part '%s'", file.Key)
		}
	}

	if err := writer.Close(); err != nil {
		return bodyTuple{}, errors.Wrap(err, "finishing multipart form")
	}
	return bodyTuple{
		body:          ioutil.NopCloser(bytes.NewReader(buffer.Bytes())),
		contentLength: int64(buffer.Len()),
		contentType:   writer.FormDataContentType(),
	}, nil
}

func filePartHeader(key, path string) textproto.MIMEHeader {
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%s; filename=%s`,
		quoteFormValue(key), quoteFormValue(filepath.Base(path))))
	header.Set("Content-Type", mimeType)
	return header
}

var formValueEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func quoteFormValue(s string) string {
	return `"` + formValueEscaper.Replace(s) + `"`
}
