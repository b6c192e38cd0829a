package input

import "net/url"

// Request holds everything the CLI layer collected for a single
// invocation: the method, the target URL, the classified request
// items in the order they appeared on the command line, and the
// optional credentials.
type Request struct {
	Method Method
	URL    *url.URL
	Items  []Item
	Auth   Auth
}

type Method string

// ItemKind tags the four shapes a request item can take.
type ItemKind int

const (
	HeaderItem ItemKind = iota
	QueryParamItem
	BodyItem
	FormFileItem
)

func (k ItemKind) String() string {
	switch k {
	case HeaderItem:
		return "header"
	case QueryParamItem:
		return "query parameter"
	case BodyItem:
		return "body field"
	case FormFileItem:
		return "form file"
	default:
		return "unknown"
	}
}

// Item is one classified request item. Value holds the header value,
// query value or body value; for FormFileItem it holds the file path.
// Command-line order is preserved through assembly.
type Item struct {
	Kind  ItemKind
	Key   string
	Value string
}

// BodyType is the content-encoding strategy derived from the item
// list. It is recomputed from the items, never stored alongside them.
type BodyType int

const (
	EmptyBody BodyType = iota
	JSONBody
	MultipartBody
)

func (b BodyType) String() string {
	switch b {
	case JSONBody:
		return "JSON"
	case MultipartBody:
		return "multipart"
	default:
		return "none"
	}
}

// DetectBodyType reduces the item list to a body type. A form file
// always forces multipart, even when plain body fields are present;
// those fields become text parts of the same form.
func DetectBodyType(items []Item) BodyType {
	hasBody := false
	for _, item := range items {
		switch item.Kind {
		case FormFileItem:
			return MultipartBody
		case BodyItem:
			hasBody = true
		}
	}
	if hasBody {
		return JSONBody
	}
	return EmptyBody
}
