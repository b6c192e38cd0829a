package exchange

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/httpr-cli/httpr/input"
	"github.com/logrusorgru/aurora"
)

// Trace accumulates an echo of the request while the assembler builds
// it. It records, it never decides: body type, content type and header
// values all arrive from BuildHTTPRequest. A nil *Trace is valid and
// ignores every call, so non-verbose invocations pay nothing.
type Trace struct {
	method      string
	url         string
	headers     []tracePair
	queryParams []tracePair
	body        string
	hasBody     bool
	files       []tracePair
	bodyType    input.BodyType
	fileCount   int
	fieldCount  int
	aurora      aurora.Aurora
}

type tracePair struct {
	key   string
	value string
}

func NewTrace(method, url string, enableColor bool) *Trace {
	return &Trace{
		method: method,
		url:    url,
		aurora: aurora.NewAurora(enableColor),
	}
}

func (t *Trace) AddHeader(key, value string) {
	if t == nil {
		return
	}
	t.headers = append(t.headers, tracePair{key, value})
}

func (t *Trace) AddQueryParam(key, value string) {
	if t == nil {
		return
	}
	t.queryParams = append(t.queryParams, tracePair{key, value})
}

func (t *Trace) AddFile(key, path string) {
	if t == nil {
		return
	}
	t.files = append(t.files, tracePair{key, path})
}

func (t *Trace) SetBody(body string) {
	if t == nil {
		return
	}
	t.body = body
	t.hasBody = true
}

func (t *Trace) SetBodyType(bodyType input.BodyType, fileCount, fieldCount int) {
	if t == nil {
		return
	}
	t.bodyType = bodyType
	t.fileCount = fileCount
	t.fieldCount = fieldCount
}

// maskAuthorization hides the middle of credential values longer
// than 20 characters. Shorter values are shown as-is.
func maskAuthorization(value string) string {
	if len(value) > 20 {
		return value[:10] + "..." + value[len(value)-5:]
	}
	return value
}

// Print renders the accumulated request echo: a summary of what the
// assembler decided, the request line and Host derived from the full
// URL, the headers in application order, the files, and the body
// (pretty-printed when it parses as JSON).
func (t *Trace) Print(w io.Writer) {
	if t == nil {
		return
	}
	au := t.aurora

	fmt.Fprintf(w, "%s %s\n", au.Yellow("Detected body type:"), t.bodyType)
	fmt.Fprintf(w, "%s %d files, %d body fields\n",
		au.Yellow("Request contains:"), t.fileCount, t.fieldCount)

	prefix := au.Bold(au.Cyan(">"))
	path, host := t.splitURL()
	fmt.Fprintf(w, "%s %s %s %s\n", prefix, au.Cyan(t.method), au.Cyan(path), au.Cyan("HTTP/1.1"))
	if host != "" {
		fmt.Fprintf(w, "%s %s: %s\n", prefix, au.Cyan("Host"), host)
	}

	for _, h := range t.headers {
		value := h.value
		if strings.EqualFold(h.key, "Authorization") {
			value = maskAuthorization(value)
		}
		fmt.Fprintf(w, "%s %s: %s\n", prefix, au.Cyan(h.key), value)
	}

	if len(t.files) > 0 {
		fmt.Fprintf(w, "%s\n", prefix)
		fmt.Fprintf(w, "%s %s\n", prefix, au.Yellow("Files:"))
		for _, f := range t.files {
			fmt.Fprintf(w, "%s %s @ %s\n", prefix, au.Cyan(f.key), filepath.Base(f.value))
		}
	}

	fmt.Fprintf(w, "%s\n", prefix)

	if t.hasBody {
		for _, line := range prettyJSONLines(t.body) {
			fmt.Fprintf(w, "%s %s\n", prefix, au.Cyan(line))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w)
}

// splitURL reconstructs the full URL including the collected query
// parameters, then separates it into path?query and host for the
// request line.
func (t *Trace) splitURL() (string, string) {
	fullURL := t.url
	if len(t.queryParams) > 0 {
		pairs := make([]string, 0, len(t.queryParams))
		for _, p := range t.queryParams {
			pairs = append(pairs, p.key+"="+p.value)
		}
		separator := "?"
		if strings.Contains(fullURL, "?") {
			separator = "&"
		}
		fullURL = fullURL + separator + strings.Join(pairs, "&")
	}

	u, err := url.Parse(fullURL)
	if err != nil {
		return fullURL, ""
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path = path + "?" + u.RawQuery
	}
	return path, u.Host
}

// prettyJSONLines reformats a JSON body for line-by-line echoing. A
// body that does not parse is returned as a single raw line.
func prettyJSONLines(body string) []string {
	var v interface{}
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		return []string{body}
	}
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return []string{body}
	}
	return strings.Split(string(pretty), "\n")
}
