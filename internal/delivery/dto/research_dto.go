package dto

type ResearchStatsResponse struct {
	TotalPatients      int   `json:"total_patients"`
	TotalConsultations int64 `json:"total_consultations"`
}

// ExportFile is a rendered export ready to be sent as a download.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

type AnalysisResponse struct {
	PatientID string `json:"patient_id"`
	Summary   string `json:"summary"`
}
