package project

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDailyReport(t *testing.T) *Report {
	t.Helper()
	r, err := NewReport(1, "Week 4 pour", ReportTypeDaily, time.Now().UTC(), "Slab poured", 35, nil, false, 9)
	require.NoError(t, err)
	return r
}

func TestNewReport_ValidInput(t *testing.T) {
	r := newDailyReport(t)

	assert.Equal(t, uint(1), r.ProjectID())
	assert.Equal(t, "Week 4 pour", r.Title())
	assert.Equal(t, ReportTypeDaily, r.ReportType())
	assert.Equal(t, 35.0, r.ProgressPercent())
	assert.NotNil(t, r.Recommendations())
	assert.Empty(t, r.Recommendations())
	assert.False(t, r.Approved())
	assert.Equal(t, uint(9), r.SubmittedBy())
}

func TestNewReport_InvalidInput(t *testing.T) {
	now := time.Now().UTC()
	tests := []struct {
		name       string
		projectID  uint
		title      string
		reportType ReportType
		progress   float64
		submitter  uint
		wantErr    string
	}{
		{"missing project", 0, "t", ReportTypeDaily, 0, 1, "project ID is required"},
		{"empty title", 1, "", ReportTypeDaily, 0, 1, "title is required"},
		{"bad type", 1, "t", "Hourly", 0, 1, "invalid report type"},
		{"progress too low", 1, "t", ReportTypeDaily, -1, 1, "progress percent"},
		{"progress too high", 1, "t", ReportTypeDaily, 101, 1, "progress percent"},
		{"missing submitter", 1, "t", ReportTypeDaily, 0, 0, "submitter is required"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := NewReport(tc.projectID, tc.title, tc.reportType, now, "", tc.progress, nil, false, tc.submitter)
			assert.Error(t, err)
			assert.Nil(t, r)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestReport_Update(t *testing.T) {
	r := newDailyReport(t)
	title := "Week 5 pour"
	progress := 42.5
	rt := ReportTypeWeekly

	require.NoError(t, r.Update(&title, nil, &rt, nil, &progress, []string{"cure 7 days"}))
	assert.Equal(t, title, r.Title())
	assert.Equal(t, ReportTypeWeekly, r.ReportType())
	assert.Equal(t, progress, r.ProgressPercent())
	assert.Equal(t, []string{"cure 7 days"}, r.Recommendations())
	assert.Equal(t, 2, r.Version())
}

func TestReport_Update_InvalidProgress(t *testing.T) {
	r := newDailyReport(t)
	progress := 120.0

	assert.Error(t, r.Update(nil, nil, nil, nil, &progress, nil))
	assert.Equal(t, 35.0, r.ProgressPercent())
}

func TestReport_Approve(t *testing.T) {
	r, err := NewReport(1, "Milestone 1", ReportTypeMilestone, time.Now().UTC(), "", 50, nil, true, 9)
	require.NoError(t, err)

	require.NoError(t, r.Approve())
	assert.True(t, r.Approved())
}

func TestReport_Approve_NotRequired(t *testing.T) {
	r := newDailyReport(t)

	assert.Error(t, r.Approve())
	assert.False(t, r.Approved())
}
