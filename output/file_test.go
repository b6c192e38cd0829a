package output

import (
	"io/ioutil"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func mustParseURL(t *testing.T, rawurl string) *url.URL {
	u, err := url.Parse(rawurl)
	if err != nil {
		t.Fatalf("failed to parse URL: %s", err)
	}
	return u
}

func responseWithHeader(header http.Header) *http.Response {
	return &http.Response{Header: header}
}

func TestFilenameFromURL(t *testing.T) {
	testCases := []struct {
		url      string
		expected string
	}{
		{"https://example.com/file.zip", "file.zip"},
		{"https://example.com/path/to/document.pdf", "document.pdf"},
		{"https://example.com/path/", "path"},
		{"https://example.com/", "index.html"},
		{"https://example.com", "index.html"},
		{"https://example.com/a/b/c/d/file.txt", "file.txt"},
		{"https://example.com/downloads/myfile", "myfile"},
	}
	for _, tt := range testCases {
		actual := filenameFromURL(mustParseURL(t, tt.url))
		if actual != tt.expected {
			t.Errorf("filenameFromURL(%q): expected=%q, actual=%q", tt.url, tt.expected, actual)
		}
	}
}

func TestFilenameFromHeader(t *testing.T) {
	testCases := []struct {
		title              string
		contentDisposition string
		expected           string
	}{
		{
			title:              "Plain filename",
			contentDisposition: `attachment; filename="report.pdf"`,
			expected:           "report.pdf",
		},
		{
			title:              "Unquoted filename",
			contentDisposition: `attachment; filename=data.csv`,
			expected:           "data.csv",
		},
		{
			title:              "Extended filename",
			contentDisposition: `attachment; filename*=UTF-8''r%C3%A9sum%C3%A9.txt`,
			expected:           "r%C3%A9sum%C3%A9.txt",
		},
		{
			title:              "No filename at all",
			contentDisposition: `inline`,
			expected:           "",
		},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			resp := responseWithHeader(http.Header{"Content-Disposition": []string{tt.contentDisposition}})
			actual := filenameFromHeader(resp)
			if actual != tt.expected {
				t.Errorf("unexpected filename: expected=%q, actual=%q", tt.expected, actual)
			}
		})
	}

	if filenameFromHeader(responseWithHeader(http.Header{})) != "" {
		t.Error("missing header should yield an empty name")
	}
}

func TestNewFileWriterResolutionOrder(t *testing.T) {
	u := mustParseURL(t, "https://example.com/archive.zip")
	resp := responseWithHeader(http.Header{
		"Content-Disposition": []string{`attachment; filename="fromheader.bin"`},
	})

	// The output flag wins over everything.
	writer := NewFileWriter(u, resp, &Options{OutputFile: "explicit.out", Overwrite: true})
	if writer.Filename() != "explicit.out" {
		t.Errorf("unexpected filename: %v", writer.Filename())
	}

	// Then Content-Disposition.
	writer = NewFileWriter(u, resp, &Options{Overwrite: true})
	if writer.Filename() != "fromheader.bin" {
		t.Errorf("unexpected filename: %v", writer.Filename())
	}

	// Then the URL path.
	writer = NewFileWriter(u, responseWithHeader(http.Header{}), &Options{Overwrite: true})
	if writer.Filename() != "archive.zip" {
		t.Errorf("unexpected filename: %v", writer.Filename())
	}
}

func TestMakeNonOverlappingFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "download.bin")

	// Nothing exists yet; the name is untouched.
	if actual := makeNonOverlappingFilename(path); actual != path {
		t.Errorf("unexpected path: %v", actual)
	}

	// Occupy the name; the suffix counts up past existing copies.
	if err := os.WriteFile(path, nil, 0600); err != nil {
		t.Fatal(err)
	}
	if actual := makeNonOverlappingFilename(path); actual != path+".1" {
		t.Errorf("unexpected path: %v", actual)
	}
	if err := os.WriteFile(path+".1", nil, 0600); err != nil {
		t.Fatal(err)
	}
	if actual := makeNonOverlappingFilename(path); actual != path+".2" {
		t.Errorf("unexpected path: %v", actual)
	}
}

func TestDownload(t *testing.T) {
	dir := t.TempDir()
	content := strings.Repeat("x", 100000)
	resp := &http.Response{
		Header:        http.Header{},
		Body:          ioutil.NopCloser(strings.NewReader(content)),
		ContentLength: int64(len(content)),
	}

	writer := NewFileWriter(mustParseURL(t, "https://example.com/big.dat"), resp,
		&Options{OutputFile: filepath.Join(dir, "big.dat"), Overwrite: true})
	writer.progress = ioutil.Discard

	written, err := writer.Download(resp)
	if err != nil {
		t.Fatalf("unexpected error: err=%v", err)
	}
	if written != int64(len(content)) {
		t.Errorf("unexpected size: expected=%d, actual=%d", len(content), written)
	}

	saved, err := os.ReadFile(filepath.Join(dir, "big.dat"))
	if err != nil {
		t.Fatal(err)
	}
	if string(saved) != content {
		t.Error("saved content differs from the response body")
	}
}
