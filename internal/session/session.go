package session

import (
	"time"

	"VizChat/internal/chart"
)

// SourceSample marks charts drawn from synthesized sample data
const SourceSample = "sample"

// Message represents a single chat message
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	// ChartPath is set on assistant messages that produced a chart
	ChartPath string `json:"chart_path,omitempty"`
}

// ChartEntry records one chart created in a session
type ChartEntry struct {
	Type      chart.Type `json:"type"`
	Timestamp time.Time  `json:"timestamp"`
	RowCount  int        `json:"data_rows"`
	Title     string     `json:"title"`
	// Source is SourceSample or the path of the uploaded file
	Source string `json:"source"`
}

// Session represents a chat session
type Session struct {
	ID           string       `json:"id"`
	StartTime    time.Time    `json:"start_time"`
	AutoDetect   bool         `json:"auto_detect"`
	Messages     []Message    `json:"messages"`
	ChartHistory []ChartEntry `json:"chart_history"`
}

// New creates an empty session
func New(id string, autoDetect bool) *Session {
	return &Session{
		ID:           id,
		StartTime:    time.Now(),
		AutoDetect:   autoDetect,
		Messages:     []Message{},
		ChartHistory: []ChartEntry{},
	}
}

// AddMessage appends a message stamped with the current time
func (s *Session) AddMessage(role, content, chartPath string) Message {
	msg := Message{Role: role, Content: content, Timestamp: time.Now(), ChartPath: chartPath}
	s.Messages = append(s.Messages, msg)
	return msg
}

// AddChart appends a chart history entry
func (s *Session) AddChart(t chart.Type, rows int, title, source string) ChartEntry {
	entry := ChartEntry{Type: t, Timestamp: time.Now(), RowCount: rows, Title: title, Source: source}
	s.ChartHistory = append(s.ChartHistory, entry)
	return entry
}

// Clear drops messages and chart history but keeps the session identity
func (s *Session) Clear() {
	s.Messages = []Message{}
	s.ChartHistory = []ChartEntry{}
}
