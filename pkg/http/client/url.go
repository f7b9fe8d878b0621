package client

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// QueryParameter is a single name/value query-string entry. Value may be a
// string or any integer or floating point number.
type QueryParameter struct {
	Name  string
	Value any
}

// redactedParams are query parameters whose values never appear in logs or errors.
var redactedParams = map[string]bool{
	"app_key": true,
}

// BuildURL resolves endpoint against the root of baseOrigin and appends params
// as query-string entries in the order given. Repeated names are all kept.
// endpoint is always taken as a literal path; characters such as '%', '?' and
// '#' are escaped rather than interpreted.
func BuildURL(baseOrigin, endpoint string, params []QueryParameter) (string, error) {
	base, err := url.Parse(baseOrigin)
	if err != nil {
		return "", NewInvalidURLError(baseOrigin, err)
	}
	if !base.IsAbs() || base.Host == "" {
		return "", NewInvalidURLError(baseOrigin, errors.New("not an absolute origin"))
	}

	root := &url.URL{Scheme: base.Scheme, User: base.User, Host: base.Host, Path: "/"}
	u := root.ResolveReference(&url.URL{Path: endpoint})

	if len(params) > 0 {
		var sb strings.Builder
		sb.WriteString(u.RawQuery)
		for _, p := range params {
			if sb.Len() > 0 {
				sb.WriteByte('&')
			}
			sb.WriteString(url.QueryEscape(p.Name))
			sb.WriteByte('=')
			sb.WriteString(url.QueryEscape(formatValue(p.Value)))
		}
		u.RawQuery = sb.String()
	}

	return u.String(), nil
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// redactURL hides the values of credential parameters. Unparseable input is returned unchanged.
func redactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.RawQuery == "" {
		return rawURL
	}

	parts := strings.Split(u.RawQuery, "&")
	changed := false
	for i, part := range parts {
		name, value, found := strings.Cut(part, "=")
		if !found || value == "" {
			continue
		}
		if key, err := url.QueryUnescape(name); err == nil && redactedParams[key] {
			parts[i] = name + "=REDACTED"
			changed = true
		}
	}
	if !changed {
		return rawURL
	}
	u.RawQuery = strings.Join(parts, "&")
	return u.String()
}
