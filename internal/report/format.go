package report

import (
	"fmt"
	"strings"
)

// dateFormat renders period bounds.
const dateFormat = "2006-01-02 15:04"

// Format renders a summary as plain text.
func Format(s *Summary) string {
	var b strings.Builder

	if s.Input != "" {
		fmt.Fprintf(&b, "Input: %s\n\n", s.Input)
	}

	b.WriteString(formatOptions(s))
	b.WriteString("\n")
	b.WriteString(formatGrid(s))
	b.WriteString("\n")
	b.WriteString(formatSediment(s))

	if s.Roads != nil {
		b.WriteString("\n")
		b.WriteString(formatRoads(s))
	}
	if s.Schedule != nil {
		b.WriteString("\n")
		b.WriteString(formatSchedule(s))
	}
	return b.String()
}

func formatOptions(s *Summary) string {
	var b strings.Builder
	b.WriteString("Processes:\n")
	rows := []struct {
		name string
		on   bool
	}{
		{"mass wasting", s.Options.MassWasting},
		{"surface erosion", s.Options.SurfaceErosion},
		{"road routing", s.Options.RoadRouting},
		{"channel routing", s.Options.ChannelRouting},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "  %-16s %s\n", r.name, onOff(r.on))
	}
	return b.String()
}

func formatGrid(s *Summary) string {
	g := s.Geometry
	return fmt.Sprintf("Grid:\n  coarse %dx%d @ %g\n  fine   %dx%d @ %g\n",
		g.NX, g.NY, g.DY, g.NXFine, g.NYFine, g.DMASS)
}

func formatSediment(s *Summary) string {
	var b strings.Builder
	p := s.Parameters
	b.WriteString("Sediment:\n")
	fmt.Fprintf(&b, "  max iterations   %g\n", p.MaxIterations)
	fmt.Fprintf(&b, "  channel D50/D90  %g / %g\n", p.Channel.D50, p.Channel.D90)
	fmt.Fprintf(&b, "  debris D50/D90   %g / %g\n", p.Debris.D50, p.Debris.D90)

	ds := make([]string, len(s.Diameters))
	for i, d := range s.Diameters {
		ds[i] = fmt.Sprintf("%.4g", d)
	}
	fmt.Fprintf(&b, "  diameters        %s\n", strings.Join(ds, ", "))
	return b.String()
}

func formatRoads(s *Summary) string {
	return fmt.Sprintf("Road cells: %d (series length %d)\n", len(s.Roads.Cells), s.Roads.SeriesLength)
}

func formatSchedule(s *Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Erosion periods: %d\n", len(s.Schedule.Periods))
	for i, p := range s.Schedule.Periods {
		fmt.Fprintf(&b, "  %2d  %s  ->  %s\n", i+1, p.Start.Format(dateFormat), p.End.Format(dateFormat))
	}
	for _, pair := range s.Schedule.Overlapping {
		fmt.Fprintf(&b, "  note: periods %d and %d overlap\n", pair[0]+1, pair[1]+1)
	}
	return b.String()
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
