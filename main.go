package httpr

import (
	"bufio"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"os"

	"github.com/httpr-cli/httpr/exchange"
	"github.com/httpr-cli/httpr/flags"
	"github.com/httpr-cli/httpr/input"
	"github.com/httpr-cli/httpr/output"
	"github.com/httpr-cli/httpr/timing"
	"github.com/httpr-cli/httpr/version"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

func Main() error {
	// Parse flags
	args, flagSet, optionSet, err := flags.Parse(os.Args)
	if err != nil {
		return err
	}
	if optionSet.PrintVersion {
		fmt.Printf("httpr %s\n", version.Current())
		return nil
	}
	if optionSet.PrintLicense {
		version.PrintLicenses(os.Stdout)
		return nil
	}

	// Parse positional arguments
	request, err := input.ParseArgs(args)
	if _, ok := errors.Cause(err).(*input.UsageError); ok {
		flagSet.PrintUsage(os.Stderr)
		return err
	}
	if err != nil {
		return err
	}
	request.Auth = optionSet.Auth

	var timer *timing.Timer
	var trace *exchange.Trace
	if optionSet.Verbose {
		timer = timing.Start()
		trace = exchange.NewTrace(string(request.Method), request.URL.String(),
			isatty.IsTerminal(os.Stderr.Fd()))
	}

	// Assembly fully completes before any network activity; the echo
	// below reflects exactly what goes on the wire.
	httpRequest, err := exchange.BuildHTTPRequest(request, &optionSet.ExchangeOptions, trace)
	if err != nil {
		return err
	}
	trace.Print(os.Stderr)

	// Send request and receive response
	client, err := exchange.BuildHTTPClient(&optionSet.ExchangeOptions)
	if err != nil {
		return err
	}
	resp, err := client.Do(httpRequest)
	if err != nil {
		return errors.Wrap(err, "sending HTTP request")
	}
	defer resp.Body.Close()
	timer.RecordFirstByte()

	if optionSet.OutputOptions.Download || optionSet.OutputOptions.OutputFile != "" {
		writer := output.NewFileWriter(request.URL, resp, &optionSet.OutputOptions)
		if _, err := writer.Download(resp); err != nil {
			return err
		}
	} else if err := printResponse(resp, &optionSet.OutputOptions); err != nil {
		return err
	}

	timer.Finish()
	timer.PrintSummary(os.Stdout, optionSet.OutputOptions.EnableColor)
	return nil
}

func printResponse(resp *http.Response, options *output.Options) error {
	writer := bufio.NewWriter(os.Stdout)
	defer writer.Flush()
	printer := output.NewPrinter(writer, options)

	switch options.Filter {
	case output.FilterHeadersOnly:
		if err := printer.PrintStatusLine(resp); err != nil {
			return err
		}
		if err := printer.PrintHeader(resp.Header); err != nil {
			return err
		}
		// The body still has to be drained so the timing covers it.
		if _, err := io.Copy(ioutil.Discard, resp.Body); err != nil {
			return errors.Wrap(err, "reading response body")
		}
		return nil
	case output.FilterBodyOnly:
		return printer.PrintBody(resp.Body, resp.Header.Get("Content-Type"))
	default:
		if err := printer.PrintStatusLine(resp); err != nil {
			return err
		}
		if err := printer.PrintHeader(resp.Header); err != nil {
			return err
		}
		writer.Flush()
		return printer.PrintBody(resp.Body, resp.Header.Get("Content-Type"))
	}
}
