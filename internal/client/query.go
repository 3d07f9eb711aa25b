package client

import (
	"fmt"
	"net/url"
	"strconv"
)

// query builds URL parameters, dropping zero values.
type query url.Values

func (q query) setString(key, v string) query {
	if v != "" {
		url.Values(q).Set(key, v)
	}
	return q
}

func (q query) setInt(key string, v int) query {
	if v != 0 {
		url.Values(q).Set(key, strconv.Itoa(v))
	}
	return q
}

func (q query) setBool(key string, v *bool) query {
	if v != nil {
		url.Values(q).Set(key, strconv.FormatBool(*v))
	}
	return q
}

func (q query) values() url.Values {
	if len(q) == 0 {
		return nil
	}
	return url.Values(q)
}

// pathf formats a request path, escaping every argument as a path segment.
func pathf(format string, args ...any) string {
	escaped := make([]any, len(args))
	for i, arg := range args {
		escaped[i] = url.PathEscape(fmt.Sprint(arg))
	}
	return fmt.Sprintf(format, escaped...)
}
