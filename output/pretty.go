package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"sort"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
)

type PrettyPrinter struct {
	writer        io.Writer
	plain         Printer
	aurora        aurora.Aurora
	headerPalette *HeaderPalette
	jsonPalette   *JSONPalette
	indentWidth   int
}

type HeaderPalette struct {
	Proto          aurora.Color
	Status         aurora.Color
	FieldName      aurora.Color
	FieldValue     aurora.Color
	FieldSeparator aurora.Color
}

var defaultHeaderPalette = HeaderPalette{
	Proto:          aurora.BlueFg,
	Status:         aurora.BrownFg | aurora.BoldFm,
	FieldName:      aurora.WhiteFg,
	FieldValue:     aurora.CyanFg,
	FieldSeparator: aurora.WhiteFg,
}

type JSONPalette struct {
	Key     aurora.Color
	String  aurora.Color
	Number  aurora.Color
	Boolean aurora.Color
	Null    aurora.Color
	Symbol  aurora.Color
}

var defaultJSONPalette = JSONPalette{
	Key:     aurora.BlueFg,
	String:  aurora.BrownFg,
	Number:  aurora.CyanFg,
	Boolean: aurora.RedFg | aurora.BoldFm,
	Null:    aurora.RedFg | aurora.BoldFm,
	Symbol:  aurora.WhiteFg,
}

type PrettyPrinterConfig struct {
	Writer      io.Writer
	EnableColor bool
}

func NewPrettyPrinter(config PrettyPrinterConfig) Printer {
	return &PrettyPrinter{
		writer:        config.Writer,
		plain:         NewPlainPrinter(config.Writer),
		aurora:        aurora.NewAurora(config.EnableColor),
		headerPalette: &defaultHeaderPalette,
		jsonPalette:   &defaultJSONPalette,
		indentWidth:   4,
	}
}

func (p *PrettyPrinter) PrintStatusLine(resp *http.Response) error {
	fmt.Fprintf(p.writer, "%s %s\n",
		p.aurora.Colorize(resp.Proto, p.headerPalette.Proto),
		p.aurora.Colorize(resp.Status, p.headerPalette.Status))
	return nil
}

func (p *PrettyPrinter) PrintHeader(header http.Header) error {
	var names []string
	for name := range header {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, value := range header[name] {
			fmt.Fprintf(p.writer, "%s%s %s\n",
				p.aurora.Colorize(name, p.headerPalette.FieldName),
				p.aurora.Colorize(":", p.headerPalette.FieldSeparator),
				p.aurora.Colorize(value, p.headerPalette.FieldValue))
		}
	}

	fmt.Fprintln(p.writer)
	return nil
}

func isJSON(contentType string) bool {
	contentType = strings.TrimSpace(contentType)

	semicolon := strings.Index(contentType, ";")
	if semicolon != -1 {
		contentType = contentType[:semicolon]
	}

	return contentType == "application/json"
}

func (p *PrettyPrinter) PrintBody(body io.Reader, contentType string) error {
	// Fallback to PlainPrinter when the body is not JSON
	if !isJSON(contentType) {
		return p.plain.PrintBody(body, contentType)
	}

	content, err := ioutil.ReadAll(body)
	if err != nil {
		return errors.Wrap(err, "reading response body")
	}

	if !json.Valid(content) {
		// Declared JSON but does not parse; print as-is.
		_, err = p.writer.Write(content)
		return err
	}

	decoder := json.NewDecoder(bytes.NewReader(content))
	decoder.UseNumber()
	if err := p.printJSONValue(decoder, 0); err != nil {
		return errors.Wrap(err, "formatting JSON body")
	}
	fmt.Fprintln(p.writer)
	fmt.Fprintln(p.writer)
	return nil
}

// printJSONValue walks the token stream, coloring each token and
// keeping the document's key order.
func (p *PrettyPrinter) printJSONValue(decoder *json.Decoder, depth int) error {
	token, err := decoder.Token()
	if err != nil {
		return err
	}

	au := p.aurora
	palette := p.jsonPalette
	switch token := token.(type) {
	case json.Delim:
		switch token {
		case '{':
			if !decoder.More() {
				if _, err := decoder.Token(); err != nil {
					return err
				}
				fmt.Fprint(p.writer, au.Colorize("{}", palette.Symbol))
				return nil
			}
			fmt.Fprintln(p.writer, au.Colorize("{", palette.Symbol))
			for decoder.More() {
				keyToken, err := decoder.Token()
				if err != nil {
					return err
				}
				encodedKey, err := json.Marshal(keyToken)
				if err != nil {
					return err
				}
				p.printIndent(depth + 1)
				fmt.Fprintf(p.writer, "%s%s ",
					au.Colorize(string(encodedKey), palette.Key),
					au.Colorize(":", palette.Symbol))
				if err := p.printJSONValue(decoder, depth+1); err != nil {
					return err
				}
				if decoder.More() {
					fmt.Fprint(p.writer, au.Colorize(",", palette.Symbol))
				}
				fmt.Fprintln(p.writer)
			}
			if _, err := decoder.Token(); err != nil {
				return err
			}
			p.printIndent(depth)
			fmt.Fprint(p.writer, au.Colorize("}", palette.Symbol))
		case '[':
			if !decoder.More() {
				if _, err := decoder.Token(); err != nil {
					return err
				}
				fmt.Fprint(p.writer, au.Colorize("[]", palette.Symbol))
				return nil
			}
			fmt.Fprintln(p.writer, au.Colorize("[", palette.Symbol))
			for decoder.More() {
				p.printIndent(depth + 1)
				if err := p.printJSONValue(decoder, depth+1); err != nil {
					return err
				}
				if decoder.More() {
					fmt.Fprint(p.writer, au.Colorize(",", palette.Symbol))
				}
				fmt.Fprintln(p.writer)
			}
			if _, err := decoder.Token(); err != nil {
				return err
			}
			p.printIndent(depth)
			fmt.Fprint(p.writer, au.Colorize("]", palette.Symbol))
		}
	case string:
		encoded, err := json.Marshal(token)
		if err != nil {
			return err
		}
		fmt.Fprint(p.writer, au.Colorize(string(encoded), palette.String))
	case json.Number:
		fmt.Fprint(p.writer, au.Colorize(token.String(), palette.Number))
	case bool:
		fmt.Fprint(p.writer, au.Colorize(fmt.Sprintf("%v", token), palette.Boolean))
	case nil:
		fmt.Fprint(p.writer, au.Colorize("null", palette.Null))
	}
	return nil
}

func (p *PrettyPrinter) printIndent(depth int) {
	fmt.Fprint(p.writer, strings.Repeat(" ", depth*p.indentWidth))
}
