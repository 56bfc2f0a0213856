package session

import (
	"testing"

	"VizChat/internal/chart"
)

func TestSessionHistory(t *testing.T) {
	s := New("abc", true)
	if s.ID != "abc" || !s.AutoDetect || s.StartTime.IsZero() {
		t.Fatalf("new session = %+v", s)
	}

	s.AddMessage("user", "show me a pie chart", "")
	s.AddMessage("assistant", "done", "charts/pie-1.html")
	entry := s.AddChart(chart.Pie, 4, "Pie Chart - Sample Data", SourceSample)

	if len(s.Messages) != 2 || s.Messages[1].ChartPath != "charts/pie-1.html" {
		t.Errorf("messages = %+v", s.Messages)
	}
	if len(s.ChartHistory) != 1 || s.ChartHistory[0] != entry {
		t.Errorf("history = %+v", s.ChartHistory)
	}
	if entry.Type != chart.Pie || entry.RowCount != 4 || entry.Timestamp.IsZero() {
		t.Errorf("entry = %+v", entry)
	}

	s.Clear()
	if len(s.Messages) != 0 || len(s.ChartHistory) != 0 || s.ID != "abc" {
		t.Errorf("after clear: %+v", s)
	}
}
