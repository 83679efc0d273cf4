package domain

import (
	"strconv"
	"time"
)

// RiskLevel is the server-supplied risk classification of a forecast point
// or of a whole analysis.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// Color is the display colour used for a risk level on summary cards.
func (r RiskLevel) Color() string {
	switch r {
	case RiskCritical:
		return "#ef4444"
	case RiskHigh:
		return "#f97316"
	case RiskMedium:
		return "#eab308"
	case RiskLow:
		return "#22c55e"
	default:
		return "#6b7280"
	}
}

type ConfidenceInterval struct {
	Lower int `json:"lower"`
	Upper int `json:"upper"`
}

type ForecastPoint struct {
	Timestamp          string             `json:"timestamp"`
	PredictedCount     int                `json:"predicted_count"`
	UtilizationRate    float64            `json:"utilization_rate"`
	RiskLevel          RiskLevel          `json:"risk_level"`
	ConfidenceInterval ConfidenceInterval `json:"confidence_interval"`
}

// Forecast is ordered by ascending timestamp and treated as immutable once
// received.
type Forecast []ForecastPoint

// Window returns at most the first n points.
func (f Forecast) Window(n int) Forecast {
	if n < 0 {
		n = 0
	}
	if len(f) < n {
		return f
	}
	return f[:n]
}

type CurrentMetrics struct {
	CCTVCount        int     `json:"cctv_count"`
	TerminalCapacity int     `json:"terminal_capacity"`
	UtilizationRate  float64 `json:"utilization_rate"`
	Timestamp        string  `json:"timestamp"`
	ActiveFlights    *int    `json:"active_flights,omitempty"`
	ArrivingFlights  *int    `json:"arriving_flights,omitempty"`
	DepartingFlights *int    `json:"departing_flights,omitempty"`
}

type AnalysisResult struct {
	CurrentMetrics  CurrentMetrics `json:"current_metrics"`
	Forecast        Forecast       `json:"forecast"`
	InsightsText    string         `json:"gemini_insights"`
	RiskLevel       RiskLevel      `json:"risk_level"`
	Recommendations []string       `json:"recommendations"`
}

type Health struct {
	Status           string `json:"status"`
	GeminiConfigured bool   `json:"gemini_configured"`
}

// Healthy reports whether the service declared itself healthy.
func (h Health) Healthy() bool { return h.Status == "healthy" }

// FlightSchedule and AnalyzeRequest use pointers so that fields which did
// not parse as integers are sent as null.
type FlightSchedule struct {
	ActiveFlights    *int `json:"active_flights"`
	ArrivingFlights  *int `json:"arriving_flights"`
	DepartingFlights *int `json:"departing_flights"`
}

type AnalyzeRequest struct {
	CCTVCount        *int           `json:"cctv_count"`
	TerminalCapacity *int           `json:"terminal_capacity"`
	FlightSchedule   FlightSchedule `json:"flight_schedule"`
	Timestamp        string         `json:"timestamp"`
}

// ManualInput holds the operator's form fields as typed.
type ManualInput struct {
	CCTVCount        string `json:"cctv_count" form:"cctv_count"`
	TerminalCapacity string `json:"terminal_capacity" form:"terminal_capacity"`
	ActiveFlights    string `json:"active_flights" form:"active_flights"`
	ArrivingFlights  string `json:"arriving_flights" form:"arriving_flights"`
	DepartingFlights string `json:"departing_flights" form:"departing_flights"`
}

func DefaultManualInput() ManualInput {
	return ManualInput{
		CCTVCount:        "450",
		TerminalCapacity: "1000",
		ActiveFlights:    "25",
		ArrivingFlights:  "15",
		DepartingFlights: "10",
	}
}

// Request converts the form into the wire request stamped with now.
func (m ManualInput) Request(now time.Time) AnalyzeRequest {
	return AnalyzeRequest{
		CCTVCount:        parseCount(m.CCTVCount),
		TerminalCapacity: parseCount(m.TerminalCapacity),
		FlightSchedule: FlightSchedule{
			ActiveFlights:    parseCount(m.ActiveFlights),
			ArrivingFlights:  parseCount(m.ArrivingFlights),
			DepartingFlights: parseCount(m.DepartingFlights),
		},
		Timestamp: now.UTC().Format(time.RFC3339Nano),
	}
}

func parseCount(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// TelemetrySample is one reading published on the telemetry topic.
type TelemetrySample struct {
	SourceID         string    `json:"source_id"`
	Timestamp        time.Time `json:"timestamp"`
	CCTVCount        int       `json:"cctv_count"`
	TerminalCapacity int       `json:"terminal_capacity"`
	ActiveFlights    int       `json:"active_flights"`
	ArrivingFlights  int       `json:"arriving_flights"`
	DepartingFlights int       `json:"departing_flights"`
}

// ManualInput renders the sample as pre-filled form fields.
func (s TelemetrySample) ManualInput() ManualInput {
	return ManualInput{
		CCTVCount:        strconv.Itoa(s.CCTVCount),
		TerminalCapacity: strconv.Itoa(s.TerminalCapacity),
		ActiveFlights:    strconv.Itoa(s.ActiveFlights),
		ArrivingFlights:  strconv.Itoa(s.ArrivingFlights),
		DepartingFlights: strconv.Itoa(s.DepartingFlights),
	}
}
