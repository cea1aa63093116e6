package api

import (
	"fmt"
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"townhub-backend/internal/models"
)

func TestFutureDateValidation(t *testing.T) {
	registerValidations()

	body := func(deadline time.Time) []byte {
		return []byte(fmt.Sprintf(
			`{"question":"q","options":["a","b"],"deadline":%q}`,
			deadline.Format(time.RFC3339)))
	}

	var req models.CreatePollRequest
	err := binding.JSON.BindBody(body(time.Now().Add(time.Hour)), &req)
	require.NoError(t, err)
	assert.Equal(t, "q", req.Question)

	req = models.CreatePollRequest{}
	err = binding.JSON.BindBody(body(time.Now().Add(-time.Hour)), &req)
	assert.Error(t, err)
}
