package input

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrEmptyKey is returned when an item's key trims to nothing.
	ErrEmptyKey = errors.New("key cannot be empty")
	// ErrEmptyValue is returned when a form file's path trims to nothing.
	ErrEmptyValue = errors.New("file path cannot be empty")
	// ErrInvalidFormat is returned when a token matches none of the
	// four item patterns.
	ErrInvalidFormat = errors.New("expected KEY:VALUE, KEY==VALUE, KEY=VALUE or KEY@FILE")
)

// ParseItem classifies one raw command-line token into an Item.
//
// The patterns are tried in a fixed order and the order is load
// bearing:
//
//	KEY@FILE    form file, only when no '=' or ':' precedes the '@'
//	KEY:VALUE   header
//	KEY==VALUE  query parameter
//	KEY=VALUE   body field
//
// The file-upload guard keeps values that merely contain an '@'
// (email=me@example.com) out of the form-file branch. ':' is tried
// before '=' because it cannot appear in either of the other
// operators, and "==" before "=" because the longest operator must
// match first. Splits always happen at the first occurrence, so the
// value side may contain further operator characters.
func ParseItem(token string) (Item, error) {
	if at := strings.IndexByte(token, '@'); at >= 0 {
		prefix := token[:at]
		if !strings.ContainsAny(prefix, "=:") {
			key := strings.TrimSpace(prefix)
			path := strings.TrimSpace(token[at+1:])
			if key == "" {
				return Item{}, errors.Wrapf(ErrEmptyKey, "form file %q", token)
			}
			if path == "" {
				return Item{}, errors.Wrapf(ErrEmptyValue, "form file %q", token)
			}
			return Item{Kind: FormFileItem, Key: key, Value: path}, nil
		}
	}

	if colon := strings.IndexByte(token, ':'); colon >= 0 {
		key := strings.TrimSpace(token[:colon])
		if key == "" {
			return Item{}, errors.Wrapf(ErrEmptyKey, "header %q", token)
		}
		return Item{Kind: HeaderItem, Key: key, Value: strings.TrimSpace(token[colon+1:])}, nil
	}

	if eq := strings.Index(token, "=="); eq >= 0 {
		key := strings.TrimSpace(token[:eq])
		if key == "" {
			return Item{}, errors.Wrapf(ErrEmptyKey, "query parameter %q", token)
		}
		return Item{Kind: QueryParamItem, Key: key, Value: strings.TrimSpace(token[eq+2:])}, nil
	}

	if eq := strings.IndexByte(token, '='); eq >= 0 {
		key := strings.TrimSpace(token[:eq])
		if key == "" {
			return Item{}, errors.Wrapf(ErrEmptyKey, "body field %q", token)
		}
		return Item{Kind: BodyItem, Key: key, Value: strings.TrimSpace(token[eq+1:])}, nil
	}

	return Item{}, errors.Wrapf(ErrInvalidFormat, "invalid request item %q", token)
}

// String renders the item back in its command-line form.
func (i Item) String() string {
	switch i.Kind {
	case HeaderItem:
		return i.Key + ":" + i.Value
	case QueryParamItem:
		return i.Key + "==" + i.Value
	case BodyItem:
		return i.Key + "=" + i.Value
	case FormFileItem:
		return i.Key + "@" + i.Value
	default:
		return i.Key
	}
}
