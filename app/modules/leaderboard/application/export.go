package leaderboardservice

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"github.com/xuri/excelize/v2"

	leaderboarddomain "github.com/storyweave/storyweave-backend/app/modules/leaderboard/domain"
)

// ExportXLSX renders the top of the board for a timeframe as a spreadsheet.
func (s *LeaderboardService) ExportXLSX(ctx context.Context, tf leaderboarddomain.Timeframe, limit int) ([]byte, error) {
	ranked, err := s.GetTopEntries(ctx, tf, limit, 0)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Leaderboard"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Position", "User ID", "Score", "Published Stories", "Total Views", "Total Likes", "Average Rating"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, re := range ranked {
		values := []any{
			re.Position,
			re.Entry.UserID.String(),
			re.Score,
			re.Entry.Metrics.PublishedStories,
			re.Entry.Metrics.TotalViews,
			re.Entry.Metrics.TotalLikes,
			re.Entry.Metrics.AverageRating,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderRankChart produces a PNG line chart of a user's rank history for one
// timeframe. The Y axis is inverted so position 1 sits at the top.
func (s *LeaderboardService) RenderRankChart(ctx context.Context, userID uuid.UUID, tf leaderboarddomain.Timeframe, since time.Time) ([]byte, error) {
	history, err := s.repo.GetRankHistory(ctx, userID, tf, since)
	if err != nil {
		return nil, err
	}
	if len(history) < 2 {
		return renderNoDataPlaceholder()
	}

	xValues := make([]time.Time, len(history))
	yValues := make([]float64, len(history))
	for i, record := range history {
		xValues[i] = record.RecordedAt
		yValues[i] = float64(record.Position)
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Rank",
				XValues: xValues,
				YValues: yValues,
				Style: chart.Style{
					StrokeColor: drawing.ColorBlue,
					StrokeWidth: 2,
					DotWidth:    4,
					DotColor:    drawing.ColorBlue,
				},
			},
		},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02"),
		},
		YAxis: chart.YAxis{
			Name: "Position",
			Range: &chart.ContinuousRange{
				Descending: true,
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder() ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "Not enough rank history yet"
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(drawing.ColorBlack)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
