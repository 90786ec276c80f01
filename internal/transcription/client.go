package transcription

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

const DefaultEndpoint = "https://api.openai.com/v1/audio/transcriptions"

type HTTPClient struct {
	endpoint string
	client   *http.Client
}

// NewHTTPClient: пустой endpoint — OpenAI, nil client — &http.Client{} без таймаута.
func NewHTTPClient(endpoint string, client *http.Client) *HTTPClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPClient{
		endpoint: endpoint,
		client:   client,
	}
}

// Send делает ровно один POST. Сетевые ошибки отдаются как есть, без ретраев.
func (c *HTTPClient) Send(ctx context.Context, wr WireRequest) (RawResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(wr.Body))
	if err != nil {
		return RawResponse{}, transportError(err)
	}
	for k, vs := range wr.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return RawResponse{}, transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return RawResponse{}, transportError(err)
	}

	return RawResponse{StatusCode: resp.StatusCode, Body: body}, nil
}

func transportError(err error) *Error {
	return &Error{Kind: KindTransport, Message: err.Error(), Err: err}
}
