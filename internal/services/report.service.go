package services

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"healthtracker/internal/models"
	"healthtracker/internal/types"
	"healthtracker/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/go-pdf/fpdf"
	"gorm.io/datatypes"
)

const (
	ReportTitle    = "Health Tracker Report"
	ReportFilename = "HealthReport.pdf"

	reportMargin = 40.0
)

var ErrReportGeneration = errors.New("report generation failed")

type LineStyle int

const (
	LineTitle LineStyle = iota
	LineHeading
	LineSummary
	LineEntry
	LineSpacer
)

// ReportLine is one rendered line of the report before PDF encoding.
type ReportLine struct {
	Style LineStyle
	Text  string
}

type lineFormat struct {
	size      float64
	style     string
	align     string
	lineScale float64
}

var lineFormats = map[LineStyle]lineFormat{
	LineTitle:   {size: 22, style: "", align: "C", lineScale: 1.2},
	LineHeading: {size: 16, style: "U", align: "L", lineScale: 1.2},
	LineSummary: {size: 12, style: "", align: "L", lineScale: 1.2},
	LineEntry:   {size: 11, style: "", align: "L", lineScale: 1.2},
}

type ReportService struct {
	log logger.Logger
	now func() time.Time
}

func NewReportService() *ReportService {
	return &ReportService{
		log: logger.New("ReportService"),
		now: time.Now,
	}
}

// Report is a fully assembled document waiting to be written out.
type Report struct {
	doc   *fpdf.Fpdf
	Pages int
	Lines int
}

// Write encodes the document to w. Nothing is written if assembly failed.
func (r *Report) Write(w io.Writer) error {
	if err := r.doc.Output(w); err != nil {
		return fmt.Errorf("%w: %v", ErrReportGeneration, err)
	}
	return nil
}

// Generate lays out the whole report in memory so that any layout error is
// known before the first byte reaches the client.
func (s *ReportService) Generate(
	records types.TrackerRecords,
	summary types.AnalysisSummary,
) (*Report, error) {
	log := s.log.Function("Generate")

	lines := s.ReportLines(records, summary)

	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetMargins(reportMargin, reportMargin, reportMargin)
	doc.SetAutoPageBreak(true, reportMargin)
	doc.SetTitle(ReportTitle, true)
	doc.SetCreator("healthtracker", true)
	doc.SetCreationDate(s.now())
	doc.AddPage()

	translate := doc.UnicodeTranslatorFromDescriptor("")

	for _, line := range lines {
		if line.Style == LineSpacer {
			doc.Ln(lineFormats[LineSummary].size)
			continue
		}

		format := lineFormats[line.Style]
		doc.SetFont("Helvetica", format.style, format.size)
		doc.MultiCell(0, format.size*format.lineScale, translate(line.Text), "", format.align, false)
	}

	doc.Close()
	if doc.Err() {
		return nil, log.Err("failed to assemble report", fmt.Errorf("%w: %v", ErrReportGeneration, doc.Error()))
	}

	log.Info("Report assembled", "pages", doc.PageCount(), "lines", len(lines))

	return &Report{doc: doc, Pages: doc.PageCount(), Lines: len(lines)}, nil
}

// ReportLines renders the report content in its fixed section order: title,
// summary and trends, then the symptom, meal, medication and mood listings.
func (s *ReportService) ReportLines(
	records types.TrackerRecords,
	summary types.AnalysisSummary,
) []ReportLine {
	lines := []ReportLine{
		{Style: LineTitle, Text: ReportTitle},
		{Style: LineSpacer},
		{Style: LineHeading, Text: "Summary & Trends"},
		{Style: LineSummary, Text: fmt.Sprintf("Total Symptoms: %d", summary.SymptomSummary.Total)},
		{Style: LineSummary, Text: "Most Common Symptoms: " + formatMostCommon(summary.SymptomSummary.MostCommon)},
		{Style: LineSummary, Text: fmt.Sprintf("Medication Days: %d", summary.MedicationSummary.AdherenceDays)},
		{Style: LineSummary, Text: "Mood Breakdown: " + formatMoodBreakdown(summary.MoodSummary.ByMood, records.Moods)},
		{Style: LineSpacer},
	}

	lines = append(lines, ReportLine{Style: LineHeading, Text: "Symptoms"})
	for i, symptom := range records.Symptoms {
		lines = append(lines, entryLine(i, symptom.Date, symptom.Description, string(symptom.Severity), symptom.Notes))
	}
	lines = append(lines, ReportLine{Style: LineSpacer})

	lines = append(lines, ReportLine{Style: LineHeading, Text: "Meals"})
	for i, meal := range records.Meals {
		lines = append(lines, entryLine(i, meal.Date, meal.Meal, "", meal.Notes))
	}
	lines = append(lines, ReportLine{Style: LineSpacer})

	lines = append(lines, ReportLine{Style: LineHeading, Text: "Medications"})
	for i, medication := range records.Medications {
		lines = append(lines, entryLine(i, medication.Date, medication.Medication, medication.Dose, medication.Notes))
	}
	lines = append(lines, ReportLine{Style: LineSpacer})

	lines = append(lines, ReportLine{Style: LineHeading, Text: "Mood Log"})
	for i, mood := range records.Moods {
		lines = append(lines, entryLine(i, mood.Date, mood.Mood, "", ""))
	}

	return lines
}

// entryLine formats "{n}. {YYYY-MM-DD} - {primary}[ ({secondary})][ - {notes}]".
func entryLine(index int, date datatypes.Date, primary, secondary, notes string) ReportLine {
	var b strings.Builder
	fmt.Fprintf(&b, "%d. %s - %s", index+1, utils.DayKey(date), primary)
	if secondary != "" {
		fmt.Fprintf(&b, " (%s)", secondary)
	}
	if notes != "" {
		b.WriteString(" - ")
		b.WriteString(notes)
	}
	return ReportLine{Style: LineEntry, Text: b.String()}
}

func formatMostCommon(mostCommon []types.SymptomCount) string {
	parts := make([]string, 0, len(mostCommon))
	for _, entry := range mostCommon {
		parts = append(parts, fmt.Sprintf("%s (%d)", entry.Description, entry.Count))
	}
	return strings.Join(parts, ", ")
}

// formatMoodBreakdown lists moods in the order they first appear in the
// mood log; moods missing from the log follow alphabetically.
func formatMoodBreakdown(byMood map[string]int, moods []*models.MoodRecord) string {
	order := make([]string, 0, len(byMood))
	seen := make(map[string]bool, len(byMood))

	for _, mood := range moods {
		if _, ok := byMood[mood.Mood]; ok && !seen[mood.Mood] {
			seen[mood.Mood] = true
			order = append(order, mood.Mood)
		}
	}

	var rest []string
	for mood := range byMood {
		if !seen[mood] {
			rest = append(rest, mood)
		}
	}
	sort.Strings(rest)
	order = append(order, rest...)

	parts := make([]string, 0, len(order))
	for _, mood := range order {
		parts = append(parts, fmt.Sprintf("%s: %d", mood, byMood[mood]))
	}
	return strings.Join(parts, ", ")
}
