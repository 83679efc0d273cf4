// Command heatmap prints the zone congestion grid for a forecast to the
// terminal, either from the prediction service's simulate endpoint or from a
// saved analysis JSON file.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/airflow-ai/congestion-dashboard/internal/api"
	"github.com/airflow-ai/congestion-dashboard/internal/config"
	"github.com/airflow-ai/congestion-dashboard/internal/congestion"
	"github.com/airflow-ai/congestion-dashboard/internal/domain"
)

const cellWidth = 9

var (
	zoneStyle   = lipgloss.NewStyle().Bold(true).Width(22)
	headerStyle = lipgloss.NewStyle().Bold(true).Width(cellWidth).Align(lipgloss.Center)
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	pflag.String("api", "", "prediction service base URL (defaults to PREDICTION_API_URL)")
	pflag.String("file", "", "read an analysis result from this JSON file instead of calling the service")
	pflag.Int("slots", congestion.HorizonSlots, "number of forecast slots to show")
	pflag.Parse()

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		log.Fatal().Err(err).Msg("bind flags")
	}

	res, err := loadResult(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("no forecast")
	}

	f := res.Forecast.Window(viper.GetInt("slots"))
	h := congestion.BuildHeatmap(f, domain.DefaultZones(), 0, config.DisplayLocation())
	fmt.Println(render(h, res.RiskLevel))
}

func loadResult(ctx context.Context) (*domain.AnalysisResult, error) {
	if path := viper.GetString("file"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var res domain.AnalysisResult
		if err := json.Unmarshal(b, &res); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return &res, nil
	}

	base := viper.GetString("api")
	if base == "" {
		base = config.PredictionAPIURL()
	}
	client := api.New(api.Options{BaseURL: base, Timeout: config.PredictionTimeout()})
	return client.Simulate(ctx)
}

func render(h congestion.Heatmap, risk domain.RiskLevel) string {
	if h.CellCount() == 0 {
		return "No forecast data."
	}

	var b strings.Builder
	title := titleStyle.Foreground(lipgloss.Color(risk.Color())).
		Render(fmt.Sprintf("Terminal zone congestion (overall risk %s)", risk))
	b.WriteString(title)
	b.WriteString("\n")

	header := []string{zoneStyle.Render("Zone")}
	for _, slot := range h.TimeSlots {
		header = append(header, headerStyle.Render(slot))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	b.WriteString("\n")

	for _, row := range h.Rows {
		line := []string{zoneStyle.Render(row.Zone.Name)}
		for _, c := range row.Cells {
			text := c.Value()
			if g := c.Glyph(); g != "" {
				text += " " + g
			}
			line = append(line, lipgloss.NewStyle().
				Width(cellWidth).
				Align(lipgloss.Center).
				Foreground(lipgloss.Color("#ffffff")).
				Background(lipgloss.Color(c.Color)).
				Render(text))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, line...))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	legend := make([]string, 0, len(h.Legend))
	for _, e := range h.Legend {
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(e.Color)).Render("  ")
		legend = append(legend, swatch+" "+e.Label+"  ")
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, legend...))
	return b.String()
}
