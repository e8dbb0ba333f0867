package services

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"alfredoptarigan/resume-insights/internal/models"
)

const (
	minScore = 0
	maxScore = 100
)

var leadingIntPattern = regexp.MustCompile(`^\s*([+-]?\d+)`)

// Normalize interprets a raw model reply for the given task. Only the ATS
// path can fail; the line-oriented paths always produce a result.
func Normalize(kind models.TaskKind, raw string) (models.TaskResult, error) {
	switch kind {
	case models.TaskResumeAnalysis:
		return ParseResumeAnalysis(raw), nil
	case models.TaskAtsScore:
		return ParseAtsScore(raw)
	case models.TaskJobMatch:
		return ParseJobMatch(raw), nil
	case models.TaskSkillPath:
		return ParseSkillPath(raw), nil
	default:
		return nil, fmt.Errorf("unknown task kind %q", kind)
	}
}

// ParseAtsScore reads the JSON object requested by the ATS prompt.
// Out-of-range scores are clamped to [0,100].
func ParseAtsScore(raw string) (*models.AtsScoreResult, error) {
	jsonStr := extractJSON(raw)
	if !gjson.Valid(jsonStr) {
		return nil, fmt.Errorf("%w: reply is not valid JSON", models.ErrMalformedResponse)
	}

	doc := gjson.Parse(jsonStr)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: reply is not a JSON object", models.ErrMalformedResponse)
	}

	score := doc.Get("score")
	if score.Type != gjson.Number {
		return nil, fmt.Errorf("%w: score is missing or not a number", models.ErrMalformedResponse)
	}

	return &models.AtsScoreResult{
		Score:           clampFloatScore(score.Float()),
		MissingKeywords: stringList(doc.Get("missing_keywords")),
		QuickFixes:      stringList(doc.Get("quick_fixes")),
	}, nil
}

// ParseJobMatch takes the leading integer of the first non-blank line as the
// score (0 when absent) and classifies the rest as headings or bullets.
func ParseJobMatch(raw string) *models.JobMatchResult {
	result := &models.JobMatchResult{Narrative: []models.Line{}}

	lines := nonBlankLines(raw)
	if len(lines) == 0 {
		return result
	}

	result.Score = clampScore(leadingInt(lines[0]))
	for _, line := range lines[1:] {
		kind := models.LineBullet
		if strings.Contains(line, ":") {
			kind = models.LineHeading
		}
		result.Narrative = append(result.Narrative, models.Line{Kind: kind, Text: line})
	}

	return result
}

func ParseResumeAnalysis(raw string) *models.ResumeAnalysisResult {
	sections := []models.Line{}
	for _, line := range nonBlankLines(raw) {
		switch {
		case strings.Contains(line, ":") && !strings.HasPrefix(line, "-"):
			sections = append(sections, models.Line{Kind: models.LineHeading, Text: line})
		case strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•"):
			sections = append(sections, models.Line{Kind: models.LineBullet, Text: stripMarker(line, "-", "•")})
		default:
			sections = append(sections, models.Line{Kind: models.LineProse, Text: line})
		}
	}
	return &models.ResumeAnalysisResult{Sections: sections}
}

func ParseSkillPath(raw string) *models.SkillPathResult {
	sections := []models.Line{}
	for _, line := range nonBlankLines(raw) {
		switch {
		case strings.HasSuffix(line, ":") || strings.HasPrefix(line, "MISSING"):
			sections = append(sections, models.Line{Kind: models.LineHeading, Text: line})
		case strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*"):
			sections = append(sections, models.Line{Kind: models.LineBullet, Text: stripMarker(line, "-", "*")})
		default:
			sections = append(sections, models.Line{Kind: models.LineProse, Text: line})
		}
	}
	return &models.SkillPathResult{Sections: sections}
}

// extractJSON removes markdown code fences and cuts the text down to its
// outermost JSON object, if there is one.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		return text[start : end+1]
	}
	return text
}

func stringList(value gjson.Result) []string {
	list := []string{}
	if !value.IsArray() {
		return list
	}
	for _, item := range value.Array() {
		if s := strings.TrimSpace(item.String()); s != "" {
			list = append(list, s)
		}
	}
	return list
}

// nonBlankLines splits on newlines, trims each line and drops blank ones.
func nonBlankLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func stripMarker(line string, markers ...string) string {
	for _, m := range markers {
		if strings.HasPrefix(line, m) {
			return strings.TrimSpace(strings.TrimPrefix(line, m))
		}
	}
	return line
}

func leadingInt(line string) int {
	m := leadingIntPattern.FindStringSubmatch(line)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if errors.Is(err, strconv.ErrRange) {
		if strings.HasPrefix(m[1], "-") {
			return minScore
		}
		return maxScore
	}
	if err != nil {
		return 0
	}
	return n
}

func clampScore(score int) int {
	return max(minScore, min(maxScore, score))
}

// clampFloatScore clamps before converting; int() of an out-of-range float
// is implementation defined.
func clampFloatScore(score float64) int {
	if math.IsNaN(score) {
		return minScore
	}
	return int(math.Round(math.Max(minScore, math.Min(maxScore, score))))
}
