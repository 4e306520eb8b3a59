package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Request bodies are capped at 1MB.
const maxBodyBytes = 1 << 20

// bindJSON decodes a request body strictly: unknown fields are rejected so
// clients cannot touch server-managed fields like id or createdAt.
func bindJSON(c *gin.Context, dst any) error {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

// bindJSONLenient decodes a request body without rejecting unknown fields.
// Used by the AI passthrough endpoints, which accept whole client-side
// objects and pick out the fields they need.
func bindJSONLenient(c *gin.Context, dst any) error {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	return json.NewDecoder(body).Decode(dst)
}
