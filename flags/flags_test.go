package flags

import (
	"reflect"
	"testing"
	"time"

	"github.com/httpr-cli/httpr/input"
	"github.com/httpr-cli/httpr/output"
)

func TestParseDefaults(t *testing.T) {
	args, _, optionSet, err := parse([]string{"httpr"}, terminalInfo{
		stdoutIsTerminal: true,
		stderrIsTerminal: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}

	if len(args) != 0 {
		t.Errorf("unexpected returned args: %v", args)
	}
	if optionSet.ExchangeOptions.Timeout != 30*time.Second {
		t.Errorf("unexpected timeout: %v", optionSet.ExchangeOptions.Timeout)
	}
	if optionSet.ExchangeOptions.MaxRedirects != 10 {
		t.Errorf("unexpected max redirects: %v", optionSet.ExchangeOptions.MaxRedirects)
	}
	if optionSet.OutputOptions.Filter != output.FilterAll {
		t.Errorf("unexpected filter: %v", optionSet.OutputOptions.Filter)
	}
	if !optionSet.OutputOptions.EnableColor {
		t.Errorf("color should be enabled on a terminal")
	}
	if optionSet.Verbose {
		t.Errorf("verbose should default to off")
	}
}

func TestParsePipedStdout(t *testing.T) {
	_, _, optionSet, err := parse([]string{"httpr"}, terminalInfo{
		stdoutIsTerminal: false,
	})
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	if optionSet.OutputOptions.Filter != output.FilterBodyOnly {
		t.Errorf("piped stdout should print the body only: %v", optionSet.OutputOptions.Filter)
	}
	if optionSet.OutputOptions.EnableColor {
		t.Errorf("color should be disabled when piped")
	}
}

func TestParseFilterFlags(t *testing.T) {
	_, _, optionSet, err := parse([]string{"httpr", "--headers"}, terminalInfo{stdoutIsTerminal: true})
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	if optionSet.OutputOptions.Filter != output.FilterHeadersOnly {
		t.Errorf("unexpected filter: %v", optionSet.OutputOptions.Filter)
	}

	_, _, optionSet, err = parse([]string{"httpr", "--body"}, terminalInfo{stdoutIsTerminal: true})
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	if optionSet.OutputOptions.Filter != output.FilterBodyOnly {
		t.Errorf("unexpected filter: %v", optionSet.OutputOptions.Filter)
	}

	_, _, _, err = parse([]string{"httpr", "--headers", "--body"}, terminalInfo{stdoutIsTerminal: true})
	if err == nil {
		t.Errorf("--headers together with --body should be rejected")
	}
}

func TestParseAuthFlag(t *testing.T) {
	_, _, optionSet, err := parse([]string{"httpr", "--auth", "alice:secret"}, terminalInfo{})
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	basic, ok := optionSet.Auth.(input.BasicAuth)
	if !ok {
		t.Fatalf("expected basic auth, got %T", optionSet.Auth)
	}
	if basic.Username != "alice" || basic.Password == nil || *basic.Password != "secret" {
		t.Errorf("unexpected credentials: %+v", basic)
	}

	_, _, _, err = parse([]string{"httpr", "--auth", ":nope"}, terminalInfo{})
	if err == nil {
		t.Errorf("empty username should be rejected")
	}

	_, _, _, err = parse([]string{"httpr", "--auth-prompt"}, terminalInfo{})
	if err == nil {
		t.Errorf("--auth-prompt without --auth should be rejected")
	}
}

func TestParseTimeout(t *testing.T) {
	_, _, optionSet, err := parse([]string{"httpr", "--timeout", "5"}, terminalInfo{})
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	if optionSet.ExchangeOptions.Timeout != 5*time.Second {
		t.Errorf("unexpected timeout: %v", optionSet.ExchangeOptions.Timeout)
	}

	_, _, optionSet, err = parse([]string{"httpr", "--timeout", "1m30s"}, terminalInfo{})
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	if optionSet.ExchangeOptions.Timeout != 90*time.Second {
		t.Errorf("unexpected timeout: %v", optionSet.ExchangeOptions.Timeout)
	}

	_, _, _, err = parse([]string{"httpr", "--timeout", "bogus"}, terminalInfo{})
	if err == nil {
		t.Errorf("invalid timeout should be rejected")
	}
}

func TestParsePositionalArgs(t *testing.T) {
	args, _, _, err := parse([]string{"httpr", "-v", "POST", "http://example.com", "name=alice"},
		terminalInfo{})
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	expected := []string{"POST", "http://example.com", "name=alice"}
	if !reflect.DeepEqual(expected, args) {
		t.Errorf("unexpected args: expected=%v, actual=%v", expected, args)
	}
}
