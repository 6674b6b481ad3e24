package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// FileUpload is one file to push to the image service.
type FileUpload struct {
	Filename string
	Content  io.Reader
}

func (c *Client) upload(ctx context.Context, path, field string, files []FileUpload) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := w.CreateFormFile(field, f.Filename)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &UnreachableError{Err: err}
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}

// UploadProductImages pushes a batch of product images and returns one
// url/filename pair per file, in upload order.
func (c *Client) UploadProductImages(ctx context.Context, files []FileUpload) ([]UploadedFile, error) {
	body, err := c.upload(ctx, "/api/v1/images/products/upload", "files", files)
	if err != nil {
		return nil, err
	}
	var out []UploadedFile
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UploadProfileImage(ctx context.Context, file FileUpload) (UploadedFile, error) {
	var out UploadedFile
	body, err := c.upload(ctx, "/api/v1/images/profiles/upload", "file", []FileUpload{file})
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(body, &out)
	return out, err
}
