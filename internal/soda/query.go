package soda

import (
	"fmt"
	"net/url"
	"strconv"
)

// Query holds SODA query parameters ($select, $where, $order, $limit,
// $offset or plain column filters) as raw strings. Values are kept
// verbatim; percent-encoding happens only when the URL is built.
// Mutators return copies, so a Query handed to the client never changes
// under it.
type Query struct {
	params map[string]string
}

func NewQuery() Query {
	return Query{params: make(map[string]string)}
}

// QueryFromMap builds a Query from a plain parameter mapping, as loaded
// from the datasets file.
func QueryFromMap(params map[string]string) Query {
	q := NewQuery()
	for k, v := range params {
		q.params[k] = v
	}
	return q
}

func (q Query) with(key, value string) Query {
	params := make(map[string]string, len(q.params)+1)
	for k, v := range q.params {
		params[k] = v
	}
	params[key] = value
	return Query{params: params}
}

func (q Query) Select(expr string) Query {
	return q.with("$select", expr)
}

func (q Query) Where(clause string) Query {
	return q.with("$where", clause)
}

func (q Query) Order(expr string) Query {
	return q.with("$order", expr)
}

func (q Query) Limit(n int) Query {
	return q.with("$limit", strconv.Itoa(n))
}

func (q Query) Offset(n int) Query {
	return q.with("$offset", strconv.Itoa(n))
}

// Filter sets a plain column equality filter, e.g. Filter("statuscurrent",
// "Completed"). No SODA syntax validation happens here or anywhere else;
// a malformed clause comes back from the server as a RequestError.
func (q Query) Filter(column string, value string) Query {
	return q.with(column, value)
}

func (q Query) Params() map[string]string {
	params := make(map[string]string, len(q.params))
	for k, v := range q.params {
		params[k] = v
	}
	return params
}

func (q Query) IsEmpty() bool {
	return len(q.params) == 0
}

// Encode returns the percent-encoded query string, parameters sorted by
// key. Decoding it with url.ParseQuery yields the original values.
func (q Query) Encode() string {
	values := url.Values{}
	for k, v := range q.params {
		values.Set(k, v)
	}
	return values.Encode()
}

// URL appends the encoded parameters to the endpoint. Parameters already
// present on the endpoint are kept unless the query overrides them.
func (q Query) URL(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}

	values := u.Query()
	for k, v := range q.params {
		values.Set(k, v)
	}
	u.RawQuery = values.Encode()

	return u.String(), nil
}
