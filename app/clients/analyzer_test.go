package clients_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethioagri/gebeya/app/clients"
	"github.com/ethioagri/gebeya/pkg/testkit"
)

func TestAnalyzer_Success(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.On("POST", "/api/analyze", 200, `{
		"disease_type": "leaf rust",
		"severity_level": 6,
		"affected_area_percentage": 32.5,
		"crop_type": "wheat",
		"filename": "leaf.jpg",
		"response_time_ms": 840
	}`)
	defer mt.Install()()

	a := clients.NewAnalyzer("http://analyzer.test")
	result, err := a.Analyze(context.Background(), "leaf.jpg", "image/jpeg", []byte("fake-jpeg-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "leaf rust", result.DiseaseType)
	assert.Equal(t, 6, result.SeverityLevel)
	assert.Equal(t, 32.5, result.AffectedAreaPercentage)
	assert.Equal(t, "wheat", result.CropType)
}

func TestAnalyzer_EmptyFileRejectedLocally(t *testing.T) {
	mt := testkit.NewMockTransport()
	defer mt.Install()()

	a := clients.NewAnalyzer("http://analyzer.test")
	_, err := a.Analyze(context.Background(), "leaf.jpg", "image/jpeg", nil)

	var ve *clients.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "no file provided", ve.Message)
	assert.Zero(t, mt.Calls("", ""))
}

func TestAnalyzer_NonImageRejectedLocally(t *testing.T) {
	mt := testkit.NewMockTransport()
	defer mt.Install()()

	a := clients.NewAnalyzer("http://analyzer.test")
	_, err := a.Analyze(context.Background(), "notes.pdf", "application/pdf", []byte("%PDF-1.4"))

	var ve *clients.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "file must be an image", ve.Message)
	assert.Zero(t, mt.Calls("", ""))
}

func TestAnalyzer_OversizedFileRejectedLocally(t *testing.T) {
	mt := testkit.NewMockTransport()
	defer mt.Install()()

	a := clients.NewAnalyzer("http://analyzer.test")
	oversized := bytes.Repeat([]byte{0xFF}, clients.MaxUploadBytes+1)
	_, err := a.Analyze(context.Background(), "huge.jpg", "image/jpeg", oversized)

	var ve *clients.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "file size must be less than 10MB", ve.Message)
	assert.Zero(t, mt.Calls("", ""))
}

func TestAnalyzer_DetailErrorBody(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.On("POST", "/api/analyze", 503, `{"detail":"Analysis service not configured"}`)
	defer mt.Install()()

	a := clients.NewAnalyzer("http://analyzer.test")
	_, err := a.Analyze(context.Background(), "leaf.jpg", "image/jpeg", []byte("fake"))

	var re *clients.RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 503, re.Status)
	assert.Equal(t, "Analysis service not configured", re.Message)
}

func TestAnalyzer_UnusableErrorBodyFallsBack(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.On("POST", "/api/analyze", 500, "<html>oops</html>")
	defer mt.Install()()

	a := clients.NewAnalyzer("http://analyzer.test")
	_, err := a.Analyze(context.Background(), "leaf.jpg", "image/jpeg", []byte("fake"))

	var re *clients.RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "analysis failed with status 500", re.Message)
}

func TestAnalyzer_SendsMultipartFile(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.On("POST", "/api/analyze", 200, `{"disease_type":"healthy","severity_level":0}`)
	defer mt.Install()()

	a := clients.NewAnalyzer("http://analyzer.test")
	_, err := a.Analyze(context.Background(), "leaf.jpg", "image/jpeg", []byte("fake-jpeg-bytes"))
	require.NoError(t, err)

	body := string(mt.LastBody())
	assert.Contains(t, body, `name="file"`)
	assert.Contains(t, body, `filename="leaf.jpg"`)
	assert.Contains(t, body, "fake-jpeg-bytes")
}

func TestAnalyzer_Health(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.On("GET", "/api/health", 200, `{
		"status": "healthy",
		"message": "Crop analysis service is running",
		"openrouter_configured": true,
		"max_file_size_mb": 10
	}`)
	defer mt.Install()()

	a := clients.NewAnalyzer("http://analyzer.test")
	health, err := a.Health(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "healthy", health.Status)
	assert.True(t, health.Configured)
	assert.Equal(t, 10, health.MaxFileSizeMB)
}
