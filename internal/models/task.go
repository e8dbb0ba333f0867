package models

import (
	"encoding/json"
	"strings"
)

type TaskKind string

const (
	TaskResumeAnalysis TaskKind = "resume_analysis"
	TaskAtsScore       TaskKind = "ats_score"
	TaskJobMatch       TaskKind = "job_match"
	TaskSkillPath      TaskKind = "skill_path"
)

type RequestStatus string

const (
	StatusIdle      RequestStatus = "idle"
	StatusInFlight  RequestStatus = "in_flight"
	StatusSucceeded RequestStatus = "succeeded"
	StatusFailed    RequestStatus = "failed"
)

// TaskRequest is one of ResumeAnalysisRequest, AtsScoreRequest,
// JobMatchRequest or SkillPathRequest.
type TaskRequest interface {
	Kind() TaskKind
	Validate() error
}

type ResumeAnalysisRequest struct {
	Text string
}

func (ResumeAnalysisRequest) Kind() TaskKind { return TaskResumeAnalysis }

func (r ResumeAnalysisRequest) Validate() error {
	if isBlank(r.Text) {
		return NewValidationError("Upload your resume first.")
	}
	return nil
}

type AtsScoreRequest struct {
	Text string
}

func (AtsScoreRequest) Kind() TaskKind { return TaskAtsScore }

func (r AtsScoreRequest) Validate() error {
	if isBlank(r.Text) {
		return NewValidationError("Upload resume first.")
	}
	return nil
}

type JobMatchRequest struct {
	ResumeText string
	JobText    string
}

func (JobMatchRequest) Kind() TaskKind { return TaskJobMatch }

func (r JobMatchRequest) Validate() error {
	if isBlank(r.ResumeText) || isBlank(r.JobText) {
		return NewValidationError("Please upload resume + job description.")
	}
	return nil
}

type SkillPathRequest struct {
	CurrentSkills string
	TargetRole    string
}

func (SkillPathRequest) Kind() TaskKind { return TaskSkillPath }

func (r SkillPathRequest) Validate() error {
	if isBlank(r.CurrentSkills) || isBlank(r.TargetRole) {
		return NewValidationError("Please enter skills and target role.")
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

type LineKind string

const (
	LineHeading LineKind = "heading"
	LineBullet  LineKind = "bullet"
	LineProse   LineKind = "prose"
)

// Line is one classified line of a free-text model reply.
type Line struct {
	Kind LineKind `json:"kind"`
	Text string   `json:"text"`
}

func (l Line) Display() string {
	if l.Kind == LineBullet {
		return "• " + l.Text
	}
	return l.Text
}

// MarshalJSON adds the rendered form so clients need not know the bullet
// convention.
func (l Line) MarshalJSON() ([]byte, error) {
	type line Line
	return json.Marshal(struct {
		line
		Display string `json:"display"`
	}{line(l), l.Display()})
}

// TaskResult mirrors TaskRequest: one concrete result type per task kind.
type TaskResult interface {
	Kind() TaskKind
}

type ResumeAnalysisResult struct {
	Sections []Line `json:"sections"`
}

func (ResumeAnalysisResult) Kind() TaskKind { return TaskResumeAnalysis }

type AtsScoreResult struct {
	Score           int      `json:"score"`
	MissingKeywords []string `json:"missing_keywords"`
	QuickFixes      []string `json:"quick_fixes"`
}

func (AtsScoreResult) Kind() TaskKind { return TaskAtsScore }

type JobMatchResult struct {
	Score     int    `json:"score"`
	Narrative []Line `json:"narrative"`
}

func (JobMatchResult) Kind() TaskKind { return TaskJobMatch }

type SkillPathResult struct {
	Sections []Line `json:"sections"`
}

func (SkillPathResult) Kind() TaskKind { return TaskSkillPath }
