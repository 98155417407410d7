package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// MaxBodyBytes bounds every JSON request body
const MaxBodyBytes = 64 * 1024

// bindJSON reads a size-limited body, decodes it with sonic and runs the
// struct's binding tags
func bindJSON(c *gin.Context, v interface{}) error {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes))
	if err != nil {
		return fmt.Errorf("request body exceeds %d bytes or could not be read", MaxBodyBytes)
	}
	if err := sonic.Unmarshal(body, v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return binding.Validator.ValidateStruct(v)
}

// renderJSON encodes with sonic; used for the larger batch payloads
func renderJSON(c *gin.Context, status int, v interface{}) {
	data, err := sonic.Marshal(v)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(status, "application/json; charset=utf-8", data)
}
