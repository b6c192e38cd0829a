package flags

import (
	"io"
	"os"
	"regexp"
	"time"

	"github.com/httpr-cli/httpr/exchange"
	"github.com/httpr-cli/httpr/input"
	"github.com/httpr-cli/httpr/output"
	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt"
	"github.com/pkg/errors"
)

var reNumber = regexp.MustCompile(`^[0-9.]+$`)

type FlagSet interface {
	Args() []string
	PrintUsage(w io.Writer)
}

type OptionSet struct {
	Verbose         bool
	Auth            input.Auth
	ExchangeOptions exchange.Options
	OutputOptions   output.Options
	PrintVersion    bool
	PrintLicense    bool
}

type terminalInfo struct {
	stdoutIsTerminal bool
	stderrIsTerminal bool
}

// Parse reads the command line (including the program name in
// args[0]) and returns the remaining positional arguments together
// with the typed option set.
func Parse(args []string) ([]string, FlagSet, *OptionSet, error) {
	return parse(args, terminalInfo{
		stdoutIsTerminal: isatty.IsTerminal(os.Stdout.Fd()),
		stderrIsTerminal: isatty.IsTerminal(os.Stderr.Fd()),
	})
}

func parse(args []string, term terminalInfo) ([]string, FlagSet, *OptionSet, error) {
	optionSet := &OptionSet{}
	exchangeOptions := &optionSet.ExchangeOptions
	outputOptions := &optionSet.OutputOptions

	var authFlag string
	var authPrompt bool
	var headersOnly, bodyOnly bool
	timeout := "30"
	maxRedirects := 10

	if len(args) == 0 {
		args = []string{"httpr"}
	}

	flagSet := getopt.New()
	flagSet.SetParameters("[METHOD] URL [REQUEST_ITEM [REQUEST_ITEM ...]]")
	flagSet.StringVarLong(&authFlag, "auth", 'a', "credentials: USER[:PASS], bearer:TOKEN, or a known token prefix")
	flagSet.BoolVarLong(&authPrompt, "auth-prompt", 0, "prompt for the basic auth password")
	flagSet.BoolVarLong(&optionSet.Verbose, "verbose", 'v', "print request details and timing")
	flagSet.StringVarLong(&timeout, "timeout", 0, "request timeout in seconds or as a duration string")
	flagSet.BoolVarLong(&exchangeOptions.FollowRedirects, "follow", 'F', "follow redirects")
	flagSet.IntVarLong(&maxRedirects, "max-redirects", 0, "maximum number of redirects to follow")
	flagSet.BoolVarLong(&exchangeOptions.SkipVerify, "skip-verify", 0, "skip TLS certificate verification")
	flagSet.BoolVarLong(&exchangeOptions.ForceHTTP1, "http1", 0, "force HTTP/1.1")
	flagSet.BoolVarLong(&headersOnly, "headers", 0, "print only response headers")
	flagSet.BoolVarLong(&bodyOnly, "body", 0, "print only response body")
	flagSet.BoolVarLong(&outputOptions.Download, "download", 'd', "save response body to a file")
	flagSet.StringVarLong(&outputOptions.OutputFile, "output", 'o', "output file path")
	flagSet.BoolVarLong(&outputOptions.Overwrite, "overwrite", 0, "overwrite an existing output file")
	flagSet.BoolVarLong(&optionSet.PrintVersion, "version", 0, "print version and exit")
	flagSet.BoolVarLong(&optionSet.PrintLicense, "license", 0, "print licenses of dependencies and exit")
	flagSet.Parse(args)

	// --timeout
	d, err := parseDurationOrSeconds(timeout)
	if err != nil {
		return nil, nil, nil, err
	}
	exchangeOptions.Timeout = d
	exchangeOptions.MaxRedirects = maxRedirects

	// --auth
	if authFlag != "" {
		auth, err := input.ParseAuth(authFlag)
		if err != nil {
			return nil, nil, nil, errors.Wrap(err, "parsing --auth")
		}
		if basic, ok := auth.(input.BasicAuth); ok && basic.Password == nil && authPrompt {
			password, err := askPassword(basic.Username)
			if err != nil {
				return nil, nil, nil, err
			}
			basic.Password = &password
			auth = basic
		}
		optionSet.Auth = auth
	} else if authPrompt {
		return nil, nil, nil, errors.New("--auth-prompt requires --auth")
	}

	// --headers / --body
	if headersOnly && bodyOnly {
		return nil, nil, nil, errors.New("--headers and --body cannot be used together")
	}
	switch {
	case headersOnly:
		outputOptions.Filter = output.FilterHeadersOnly
	case bodyOnly:
		outputOptions.Filter = output.FilterBodyOnly
	case !term.stdoutIsTerminal:
		// Piped output gets the bare body.
		outputOptions.Filter = output.FilterBodyOnly
	default:
		outputOptions.Filter = output.FilterAll
	}

	outputOptions.EnableColor = term.stdoutIsTerminal

	return flagSet.Args(), flagSet, optionSet, nil
}

func parseDurationOrSeconds(timeout string) (time.Duration, error) {
	if reNumber.MatchString(timeout) {
		timeout += "s"
	}
	d, err := time.ParseDuration(timeout)
	if err != nil {
		return time.Duration(0), errors.Errorf("value of --timeout must be a number or duration string: %v", timeout)
	}
	return d, nil
}
