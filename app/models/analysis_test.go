package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ethioagri/gebeya/app/models"
)

func TestFormatSeverity_Buckets(t *testing.T) {
	assert.Equal(t, "Very Mild", models.FormatSeverity(0))
	assert.Equal(t, "Very Mild", models.FormatSeverity(2))
	assert.Equal(t, "Mild", models.FormatSeverity(3))
	assert.Equal(t, "Moderate", models.FormatSeverity(5))
	assert.Equal(t, "Severe", models.FormatSeverity(7))
	assert.Equal(t, "Very Severe", models.FormatSeverity(9))
	assert.Equal(t, "Very Severe", models.FormatSeverity(10))
}
