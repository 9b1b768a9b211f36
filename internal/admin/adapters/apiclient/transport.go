package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	errBuildRequest = "failed to build http request"
	errReadResponse = "failed to read response body"
)

// Doer - транспорт HTTP. *http.Client удовлетворяет интерфейсу.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// transportHandler - базовая стадия конвейера: отправляет запрос через Doer.
// Ошибки Doer возвращаются без обертки.
func transportHandler(doer Doer, base *url.URL) Handler {
	return func(ctx context.Context, req *Request) (*Response, error) {
		target, err := resolveURL(base, req)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errBuildRequest, err)
		}

		var body io.Reader
		if req.Body != nil {
			body = bytes.NewReader(req.Body)
		}

		httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errBuildRequest, err)
		}
		if req.Header != nil {
			httpReq.Header = req.Header.Clone()
		}

		httpResp, err := doer.Do(httpReq)
		if err != nil {
			return nil, err
		}
		defer httpResp.Body.Close()

		data, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errReadResponse, err)
		}

		return &Response{
			StatusCode: httpResp.StatusCode,
			Header:     httpResp.Header,
			Body:       data,
		}, nil
	}
}

func resolveURL(base *url.URL, req *Request) (string, error) {
	var u *url.URL
	if strings.HasPrefix(req.Path, "http://") || strings.HasPrefix(req.Path, "https://") {
		parsed, err := url.Parse(req.Path)
		if err != nil {
			return "", err
		}
		u = parsed
	} else {
		if base == nil {
			return "", fmt.Errorf("%w: relative path %q without base url", ErrInvalidBaseURL, req.Path)
		}
		path, rawQuery, _ := strings.Cut(req.Path, "?")
		u = &url.URL{
			Scheme:   base.Scheme,
			Host:     base.Host,
			Path:     strings.TrimRight(base.Path, "/") + "/" + strings.TrimLeft(path, "/"),
			RawQuery: rawQuery,
		}
	}

	if len(req.Query) > 0 {
		q := u.Query()
		for k, values := range req.Query {
			for _, v := range values {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, raw)
	}
	return u, nil
}
