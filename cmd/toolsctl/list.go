package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

func newClient(baseURL string, timeout time.Duration) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
}

func runList(ctx context.Context, client *resty.Client, raw bool, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	resp, err := client.R().SetContext(ctx).Get("/api/tools")
	if err != nil {
		return fmt.Errorf("list tools: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		detail := gjson.GetBytes(resp.Body(), "message").String()
		if detail == "" {
			detail = strings.TrimSpace(resp.String())
		}
		return fmt.Errorf("http %d: %s", resp.StatusCode(), detail)
	}

	body := resp.Body()
	if !gjson.ValidBytes(body) {
		return fmt.Errorf("response is not valid JSON")
	}
	if !raw {
		body = []byte(gjson.GetBytes(body, "@pretty").Raw)
	}
	_, err = fmt.Fprintln(out, string(body))
	return err
}
