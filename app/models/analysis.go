package models

// AnalysisResult is the crop-disease report returned by the analyzer.
// SeverityLevel is a 0–10 integer scale.
type AnalysisResult struct {
	DiseaseType            string  `json:"disease_type"`
	SeverityLevel          int     `json:"severity_level"`
	AffectedAreaPercentage float64 `json:"affected_area_percentage"`
	CropType               string  `json:"crop_type"`
	Filename               string  `json:"filename"`
	ResponseTimeMs         float64 `json:"response_time_ms"`
}

// AnalyzerHealth is the analyzer's health-check response.
type AnalyzerHealth struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	Configured    bool   `json:"openrouter_configured"`
	MaxFileSizeMB int    `json:"max_file_size_mb"`
}

// FormatSeverity maps the 0–10 severity scale to a human label.
func FormatSeverity(severity int) string {
	switch {
	case severity <= 2:
		return "Very Mild"
	case severity <= 4:
		return "Mild"
	case severity <= 6:
		return "Moderate"
	case severity <= 8:
		return "Severe"
	default:
		return "Very Severe"
	}
}
