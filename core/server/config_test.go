package server_test

import (
	"testing"
	"time"

	"fleet-report/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_BodyLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"Configured", 4, 4 * 1024 * 1024},
		{"Zero", 0, 16 * 1024 * 1024},
		{"Negative", -1, 16 * 1024 * 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{BodyLimitMB: tt.limit}
			assert.Equal(t, tt.want, c.BodyLimit())
		})
	}
}

func TestConfig_ReadTimeout(t *testing.T) {
	assert.Equal(t, 5*time.Second, server.Config{ReadTimeoutSeconds: 5}.ReadTimeout())
	assert.Equal(t, 60*time.Second, server.Config{}.ReadTimeout())
}
