package domain

// ReportAnswers is the per-year singleton holding the six narrative answers
// rendered verbatim into the annual report. A missing document reads as six
// empty strings.
type ReportAnswers struct {
	Year int    `json:"year" dynamodbav:"year"`
	P1   string `json:"p1" dynamodbav:"p1"`
	P2   string `json:"p2" dynamodbav:"p2"`
	P3   string `json:"p3" dynamodbav:"p3"`
	P4   string `json:"p4" dynamodbav:"p4"`
	P5   string `json:"p5" dynamodbav:"p5"`
	P6   string `json:"p6" dynamodbav:"p6"`
}

type PutReportAnswersRequest struct {
	P1 string `json:"p1"`
	P2 string `json:"p2"`
	P3 string `json:"p3"`
	P4 string `json:"p4"`
	P5 string `json:"p5"`
	P6 string `json:"p6"`
}

type GenerateReportRequest struct {
	Year int `json:"year" validate:"omitempty,min=2000,max=2200"`
}

// GenerateReportResponse carries the rendered document as a single base64
// string so browser clients can trigger a download without a second request.
type GenerateReportResponse struct {
	FileContents string `json:"file_contents"`
}
