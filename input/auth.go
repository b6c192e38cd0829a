package input

import (
	"encoding/base64"
	"strings"

	"github.com/pkg/errors"
)

// Auth is either basic or bearer credentials. HeaderValue returns the
// value the assembler puts in the Authorization header.
type Auth interface {
	HeaderValue() string
}

// BasicAuth carries a username and an optional password. A nil
// password ("user") and an empty one ("user:") encode differently, so
// the distinction is kept.
type BasicAuth struct {
	Username string
	Password *string
}

func (a BasicAuth) HeaderValue() string {
	credentials := a.Username
	if a.Password != nil {
		credentials = a.Username + ":" + *a.Password
	}
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials))
}

type BearerAuth struct {
	Token string
}

func (a BearerAuth) HeaderValue() string {
	return "Bearer " + a.Token
}

// Token prefixes that identify a bare bearer token: GitHub, GitLab
// and Stripe key formats.
var bearerTokenPrefixes = []string{"ghp_", "gho_", "ghs_", "ghu_", "glpat-", "sk_"}

// ParseAuth parses the --auth argument:
//
//	bearer:TOKEN or Bearer:TOKEN   explicit bearer
//	ghp_... glpat-... sk_...       recognized token, bearer
//	USERNAME                       basic auth without password
//	USERNAME:PASSWORD              basic auth (PASSWORD may contain ':')
func ParseAuth(s string) (Auth, error) {
	if strings.HasPrefix(s, "bearer:") || strings.HasPrefix(s, "Bearer:") {
		token := s[len("bearer:"):]
		if token == "" {
			return nil, errors.New("bearer token cannot be empty")
		}
		return BearerAuth{Token: token}, nil
	}

	for _, prefix := range bearerTokenPrefixes {
		if strings.HasPrefix(s, prefix) {
			return BearerAuth{Token: s}, nil
		}
	}

	username, password, hasPassword := strings.Cut(s, ":")
	if username == "" {
		return nil, errors.New("username cannot be empty")
	}
	if !hasPassword {
		return BasicAuth{Username: username}, nil
	}
	return BasicAuth{Username: username, Password: &password}, nil
}
