package output

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"code.cloudfoundry.org/bytefmt"
	"github.com/pkg/errors"
)

// FileWriter saves a response body to local storage, resolving the
// target filename from the output flag, the Content-Disposition
// header, or the URL path, in that order.
type FileWriter struct {
	fullPath string
	progress io.Writer
}

func NewFileWriter(u *url.URL, resp *http.Response, options *Options) *FileWriter {
	fullPath := options.OutputFile
	if fullPath == "" {
		fullPath = filenameFromHeader(resp)
	}
	if fullPath == "" {
		fullPath = filenameFromURL(u)
	}

	if !options.Overwrite {
		fullPath = makeNonOverlappingFilename(fullPath)
	}

	return &FileWriter{
		fullPath: fullPath,
		progress: os.Stderr,
	}
}

// filenameFromHeader extracts a name from Content-Disposition,
// honoring both the plain filename= form and the RFC 5987
// filename*= form.
func filenameFromHeader(resp *http.Response) string {
	contentDisposition := resp.Header.Get("Content-Disposition")
	if contentDisposition == "" {
		return ""
	}

	for _, part := range strings.Split(contentDisposition, ";") {
		part = strings.TrimSpace(part)

		if name, ok := cutPrefix(part, "filename*="); ok {
			if idx := strings.LastIndex(name, "''"); idx != -1 {
				name = name[idx+2:]
			}
			if name != "" {
				return name
			}
		}
		if name, ok := cutPrefix(part, "filename="); ok {
			name = strings.Trim(name, `"'`)
			if name != "" {
				return name
			}
		}
	}
	return ""
}

func cutPrefix(s, prefix string) (string, bool) {
	if !strings.HasPrefix(s, prefix) {
		return s, false
	}
	return s[len(prefix):], true
}

// filenameFromURL takes the last non-empty path segment, falling back
// to index.html for root paths.
func filenameFromURL(u *url.URL) string {
	segments := strings.Split(u.Path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return path.Base(segments[i])
		}
	}
	return "index.html"
}

func makeNonOverlappingFilename(path string) string {
	_, err := os.Stat(path)
	if err == nil {
		re := regexp.MustCompile(`\.(\d+)$`)
		newPath := re.ReplaceAllStringFunc(path, func(index string) string {
			i, err := strconv.Atoi(strings.TrimPrefix(index, "."))
			if err != nil {
				panic(err)
			}
			i++
			return fmt.Sprintf(".%d", i)
		})
		if path == newPath {
			path = fmt.Sprintf("%s.%d", path, 1)
		} else {
			path = newPath
		}
		path = makeNonOverlappingFilename(path)
	}
	return path
}

// Download streams the response body to the resolved file, echoing
// progress to stderr. Returns the number of bytes written.
func (f *FileWriter) Download(resp *http.Response) (int64, error) {
	file, err := os.Create(f.fullPath)
	if err != nil {
		return 0, errors.Wrapf(err, "creating '%s'", f.fullPath)
	}
	defer file.Close()

	contentLength := resp.ContentLength

	buf := make([]byte, 32*1024)
	var totalWritten int64

	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, err := file.Write(buf[:n]); err != nil {
				return totalWritten, errors.Wrapf(err, "writing '%s'", f.fullPath)
			}
			totalWritten += int64(n)
			f.printProgress(totalWritten, contentLength)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return totalWritten, errors.Wrap(readErr, "reading response body")
		}
	}

	fmt.Fprintf(f.progress, "\nDownloaded %s (%s)\n",
		f.Filename(), bytefmt.ByteSize(uint64(totalWritten)))
	return totalWritten, nil
}

func (f *FileWriter) printProgress(written, contentLength int64) {
	if contentLength > 0 {
		fmt.Fprintf(f.progress, "\rDownloading %s  %s / %s (%d%%)",
			f.Filename(),
			bytefmt.ByteSize(uint64(written)),
			bytefmt.ByteSize(uint64(contentLength)),
			written*100/contentLength)
	} else {
		fmt.Fprintf(f.progress, "\rDownloading %s  %s",
			f.Filename(), bytefmt.ByteSize(uint64(written)))
	}
}

func (f *FileWriter) Filename() string {
	return filepath.Base(f.fullPath)
}
