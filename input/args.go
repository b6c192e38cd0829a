package input

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var (
	reMethod = regexp.MustCompile(`^[a-zA-Z]+$`)
	reScheme = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+-.]*://`)
)

// The methods the CLI accepts. Anything else is a usage error.
var knownMethods = map[Method]bool{
	"GET":     true,
	"POST":    true,
	"PUT":     true,
	"PATCH":   true,
	"DELETE":  true,
	"HEAD":    true,
	"OPTIONS": true,
}

// UsageError marks errors that should be reported together with the
// command usage.
type UsageError string

func (e *UsageError) Error() string {
	return string(*e)
}

func newUsageError(message string) error {
	u := UsageError(message)
	return errors.WithStack(&u)
}

// ParseArgs turns the positional arguments ([METHOD] URL
// [REQUEST_ITEM ...]) into a Request. When METHOD is omitted it is
// guessed from the items: POST if anything would form a body, GET
// otherwise.
func ParseArgs(args []string) (*Request, error) {
	var argMethod string
	var argURL string
	var argItems []string
	switch len(args) {
	case 0:
		return nil, newUsageError("URL is required")
	case 1:
		argURL = args[0]
	default:
		if reMethod.MatchString(args[0]) {
			argMethod = args[0]
			argURL = args[1]
			argItems = args[2:]
		} else {
			argURL = args[0]
			argItems = args[1:]
		}
	}

	request := Request{}

	u, err := parseURL(argURL)
	if err != nil {
		return nil, err
	}
	request.URL = u

	for _, arg := range argItems {
		item, err := ParseItem(arg)
		if err != nil {
			return nil, err
		}
		request.Items = append(request.Items, item)
	}

	if argMethod != "" {
		method, err := parseMethod(argMethod)
		if err != nil {
			return nil, err
		}
		request.Method = method
	} else {
		request.Method = guessMethod(&request)
	}

	return &request, nil
}

func parseMethod(s string) (Method, error) {
	method := Method(strings.ToUpper(s))
	if !knownMethods[method] {
		return "", newUsageError("unknown METHOD: " + s)
	}
	return method, nil
}

func guessMethod(request *Request) Method {
	if DetectBodyType(request.Items) == EmptyBody {
		return Method("GET")
	}
	return Method("POST")
}

func parseURL(s string) (*url.URL, error) {
	defaultScheme := "http"
	defaultHost := "localhost"

	// ex) :8080/hello or /hello
	if strings.HasPrefix(s, ":") || strings.HasPrefix(s, "/") {
		s = defaultHost + s
	}

	// ex) example.com/hello
	if !reScheme.MatchString(s) {
		s = defaultScheme + "://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return nil, newUsageError("Invalid URL: " + s)
	}
	u.Host = strings.TrimSuffix(u.Host, ":")
	if u.Path == "" {
		u.Path = "/"
	}
	return u, nil
}
