package output

import (
	"io"
	"net/http"
)

type Printer interface {
	PrintStatusLine(resp *http.Response) error
	PrintHeader(header http.Header) error
	PrintBody(body io.Reader, contentType string) error
}

// NewPrinter picks the pretty printer when color is on, the plain one
// otherwise.
func NewPrinter(writer io.Writer, options *Options) Printer {
	if options.EnableColor {
		return NewPrettyPrinter(PrettyPrinterConfig{
			Writer:      writer,
			EnableColor: true,
		})
	}
	return NewPlainPrinter(writer)
}
