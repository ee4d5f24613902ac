package service

import (
	"bytes"
	"fmt"
	"html"

	"hepatotrack/internal/domain/entity"
	"hepatotrack/pkg/clinical"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const noChartData = "Sin datos para mostrar"

type metricSeries struct {
	name  string
	value func(c entity.Consultation) interface{}
}

type trendChart struct {
	title  string
	unit   string
	colors []string
	series []metricSeries
	lines  []opts.MarkLineNameYAxisItem
}

func required(f func(c entity.Consultation) float64) func(c entity.Consultation) interface{} {
	return func(c entity.Consultation) interface{} { return f(c) }
}

// optional leaves a gap in the line for absent measurements.
func optional(f func(c entity.Consultation) *float64) func(c entity.Consultation) interface{} {
	return func(c entity.Consultation) interface{} {
		if v := f(c); v != nil {
			return *v
		}
		return nil
	}
}

var trendCharts = []trendChart{
	{
		title:  "Evolución de Fibrosis (kPa) y Esteatosis (CAP)",
		colors: []string{"#ef4444", "#f59e0b"},
		series: []metricSeries{
			{"Rigidez (kPa)", required(func(c entity.Consultation) float64 { return c.Stiffness })},
			{"CAP (dB/m)", optional(func(c entity.Consultation) *float64 { return c.CAP })},
		},
	},
	{
		title:  "Función Hepática (U/L)",
		unit:   "U/L",
		colors: []string{"#3b82f6", "#8b5cf6"},
		series: []metricSeries{
			{"ALT", required(func(c entity.Consultation) float64 { return c.ALT })},
			{"AST", required(func(c entity.Consultation) float64 { return c.AST })},
		},
	},
	{
		title:  "Evolución de FIB-4 Score",
		colors: []string{"#6366f1"},
		series: []metricSeries{
			{"FIB-4", func(c entity.Consultation) interface{} {
				if c.FIB4 == nil {
					return 0.0
				}
				return *c.FIB4
			}},
		},
		lines: []opts.MarkLineNameYAxisItem{
			{Name: fmt.Sprintf("Bajo Riesgo (<%.2f)", clinical.FIB4LowRiskBelow), YAxis: clinical.FIB4LowRiskBelow},
			{Name: fmt.Sprintf("Alto Riesgo (>%.2f)", clinical.FIB4HighRiskAbove), YAxis: clinical.FIB4HighRiskAbove},
		},
	},
	{
		title:  "Tendencia de Peso (kg)",
		unit:   "kg",
		colors: []string{"#10b981"},
		series: []metricSeries{
			{"Peso (kg)", required(func(c entity.Consultation) float64 { return c.Weight })},
		},
	},
	{
		title:  "Evolución del IMC",
		unit:   "kg/m²",
		colors: []string{"#0ea5e9"},
		series: []metricSeries{
			{"IMC", required(func(c entity.Consultation) float64 { return c.BMI })},
		},
	},
}

// ChartService renders a patient's consultation history as trend charts.
type ChartService struct{}

func NewChartService() *ChartService {
	return &ChartService{}
}

// Render returns a standalone HTML page. consultations must already be in
// ascending date order.
func (s *ChartService) Render(patient entity.Patient, consultations []entity.Consultation) (string, error) {
	if len(consultations) == 0 {
		return fmt.Sprintf("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>%s</title></head><body><p>%s</p></body></html>",
			html.EscapeString(patient.FirstName+" "+patient.LastName), noChartData), nil
	}

	xAxis := make([]string, 0, len(consultations))
	for _, c := range consultations {
		xAxis = append(xAxis, c.Date.Format("Jan 2, 06"))
	}

	page := components.NewPage()
	page.PageTitle = patient.FirstName + " " + patient.LastName
	for _, tc := range trendCharts {
		page.AddCharts(buildLine(tc, xAxis, consultations))
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return "", fmt.Errorf("render charts: %w", err)
	}
	return buf.String(), nil
}

func buildLine(tc trendChart, xAxis []string, consultations []entity.Consultation) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: tc.title,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(len(tc.series) > 1),
			Top:  "bottom",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: tc.unit,
		}),
		charts.WithColorsOpts(opts.Colors(tc.colors)),
	)

	line.SetXAxis(xAxis)
	for _, ms := range tc.series {
		data := make([]opts.LineData, 0, len(consultations))
		for _, c := range consultations {
			data = append(data, opts.LineData{Value: ms.value(c)})
		}
		line.AddSeries(ms.name, data)
	}

	seriesOpts := []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{
			Smooth:     opts.Bool(true),
			ShowSymbol: opts.Bool(true),
		}),
	}
	if len(tc.lines) > 0 {
		seriesOpts = append(seriesOpts, charts.WithMarkLineNameYAxisItemOpts(tc.lines...))
	}
	line.SetSeriesOptions(seriesOpts...)

	return line
}
