package analytics

import (
	"fmt"
	"math"
	"time"
)

// Horizon is the number of monthly points projected past the last observation.
const Horizon = 6

// ProjectedPoint is one row of a forecast chart. Historical rows carry Actual
// and Trend; the last historical row also carries Forecast = Actual so the
// projected line starts where history ends. Predicted rows carry Trend and
// Forecast only.
type ProjectedPoint struct {
	Period       string `json:"period"`
	Label        string `json:"label"`
	Index        int    `json:"index"`
	Actual       *int64 `json:"actual,omitempty"`
	Trend        *int64 `json:"trend,omitempty"`
	Forecast     *int64 `json:"forecast,omitempty"`
	IsPrediction bool   `json:"is_prediction"`
}

// ForecastResult is the fitted line and the chart rows built from it.
type ForecastResult struct {
	Points      []ProjectedPoint `json:"points"`
	AnnualTrend int64            `json:"annual_trend"`
	Slope       float64          `json:"slope"`
	Intercept   float64          `json:"intercept"`
	// Fitted is false when the series is too short to fit a line. Points then
	// mirror the input and no projection is appended.
	Fitted bool `json:"fitted"`
}

// Predictions returns only the projected rows.
func (f ForecastResult) Predictions() []ProjectedPoint {
	out := make([]ProjectedPoint, 0, Horizon)
	for _, p := range f.Points {
		if p.IsPrediction {
			out = append(out, p)
		}
	}
	return out
}

type forecastOptions struct {
	anchor time.Time
}

// ForecastOption configures Forecast.
type ForecastOption func(*forecastOptions)

// WithAnchor supplies the month future labels count from when the last
// period of the series is not a parseable date. Without it such labels are
// rendered as "<last>+k".
func WithAnchor(t time.Time) ForecastOption {
	return func(o *forecastOptions) {
		o.anchor = t
	}
}

// Forecast fits an ordinary least squares line to (Index, Actual) and extends
// it Horizon months past the last point.
//
//	slope      = (n·Σxy − Σx·Σy) / (n·Σx² − (Σx)²)
//	intercept  = (Σy − slope·Σx) / n
//	trend[i]   = round(slope·i + intercept)
//	forecast_k = max(0, round(slope·(last+k) + intercept))
//	annual     = round(slope × 12)
func Forecast(series []TimeSeriesPoint, opts ...ForecastOption) ForecastResult {
	var o forecastOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	slope, intercept, ok := fitLine(series)
	if !ok {
		return ForecastResult{Points: unfitted(series)}
	}

	points := make([]ProjectedPoint, 0, len(series)+Horizon)
	for _, p := range series {
		points = append(points, ProjectedPoint{
			Period: p.Period,
			Label:  p.Label,
			Index:  p.Index,
			Actual: ptr(p.Actual),
			Trend:  ptr(roundInt(slope*float64(p.Index) + intercept)),
		})
	}

	last := series[len(series)-1]
	points[len(points)-1].Forecast = ptr(last.Actual)

	for k := 1; k <= Horizon; k++ {
		index := last.Index + k
		value := max(0, roundInt(slope*float64(index)+intercept))
		period, label := futurePeriod(last.Period, k, o.anchor)
		points = append(points, ProjectedPoint{
			Period:       period,
			Label:        label,
			Index:        index,
			Trend:        ptr(value),
			Forecast:     ptr(value),
			IsPrediction: true,
		})
	}

	return ForecastResult{
		Points:      points,
		AnnualTrend: roundInt(slope * 12),
		Slope:       slope,
		Intercept:   intercept,
		Fitted:      true,
	}
}

func fitLine(series []TimeSeriesPoint) (slope, intercept float64, ok bool) {
	n := float64(len(series))
	if len(series) < 2 {
		return 0, 0, false
	}

	var sumX, sumY, sumXY, sumXX float64
	for _, p := range series {
		x, y := float64(p.Index), float64(p.Actual)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denominator := n*sumXX - sumX*sumX
	if denominator == 0 {
		return 0, 0, false
	}
	slope = (n*sumXY - sumX*sumY) / denominator
	intercept = (sumY - slope*sumX) / n
	return slope, intercept, true
}

func unfitted(series []TimeSeriesPoint) []ProjectedPoint {
	points := make([]ProjectedPoint, len(series))
	for i, p := range series {
		points[i] = ProjectedPoint{
			Period: p.Period,
			Label:  p.Label,
			Index:  p.Index,
			Actual: ptr(p.Actual),
		}
	}
	return points
}

func futurePeriod(lastPeriod string, k int, anchor time.Time) (period, label string) {
	base, ok := ParsePeriod(lastPeriod)
	if !ok {
		if anchor.IsZero() {
			s := fmt.Sprintf("%s+%d", lastPeriod, k)
			return s, s
		}
		base = time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, time.UTC)
	}
	next := addMonths(base, k)
	return next.Format(periodLayout), next.Format(labelLayout)
}

// roundInt rounds halves toward positive infinity, so -0.5 becomes 0 and
// -1.5 becomes -1.
func roundInt(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

func ptr(v int64) *int64 {
	return &v
}
