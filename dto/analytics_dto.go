package dto

import "github.com/alloylab/models"

// ReportWindow is the resolved date range echoed back to the view
type ReportWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// OperatorStats is one row of the per-operator breakdown
type OperatorStats struct {
	OperatorID     uint    `json:"operatorId"`
	Name           string  `json:"name"`
	Total          int64   `json:"total"`
	Success        int64   `json:"success"`
	Fail           int64   `json:"fail"`
	InProgress     int64   `json:"inProgress"`
	SuccessPercent float64 `json:"successPercent"`
}

// OverviewReport is the director dashboard for a window
type OverviewReport struct {
	Window         ReportWindow        `json:"window"`
	Total          int64               `json:"total"`
	Success        int64               `json:"success"`
	Fail           int64               `json:"fail"`
	InProgress     int64               `json:"inProgress"`
	SuccessPercent float64             `json:"successPercent"`
	Operators      []OperatorStats     `json:"operators"`
	Experiments    []models.Experiment `json:"experiments"`
}

// EmployeeReport is the single-operator view
type EmployeeReport struct {
	Window          ReportWindow  `json:"window"`
	SelectedID      uint          `json:"selectedId"`
	SuccessCount    int64         `json:"successCount"`
	FailureCount    int64         `json:"failureCount"`
	InProgressCount int64         `json:"inProgressCount"`
	SuccessRate     float64       `json:"successRate"`
	Employees       []models.User `json:"employees"`
}

// ChartSeries holds parallel composition values for both experiments
type ChartSeries struct {
	Elements []string  `json:"elements"`
	Values1  []float64 `json:"values1"`
	Values2  []float64 `json:"values2"`
}

// CompositionWarning flags an element above its configured threshold
type CompositionWarning struct {
	Experiment int     `json:"experiment"`
	Element    string  `json:"element"`
	Value      float64 `json:"value"`
	Threshold  float64 `json:"threshold"`
	Message    string  `json:"message"`
}

// CompositionDifference describes how an element changed from experiment 1 to 2
type CompositionDifference struct {
	Element   string  `json:"element"`
	Direction string  `json:"direction"`
	Delta     float64 `json:"delta"`
	From      float64 `json:"from"`
	To        float64 `json:"to"`
	Message   string  `json:"message"`
}

// ComparisonResult is the chart-ready payload for two experiments
type ComparisonResult struct {
	Chart       ChartSeries             `json:"chart"`
	ID1         uint                    `json:"id1"`
	ID2         uint                    `json:"id2"`
	Notes       []string                `json:"notes"`
	Warnings    []CompositionWarning    `json:"warnings"`
	Differences []CompositionDifference `json:"differences"`
	Matches     []string                `json:"matches"`
}
