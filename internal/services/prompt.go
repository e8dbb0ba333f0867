package services

import (
	"fmt"

	"alfredoptarigan/resume-insights/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// Build dispatches on the request kind. Inputs are embedded verbatim; the
// caller validates them first.
func (pb *PromptBuilder) Build(req models.TaskRequest) (string, error) {
	switch r := req.(type) {
	case models.ResumeAnalysisRequest:
		return pb.BuildResumeAnalysisPrompt(r.Text), nil
	case models.AtsScoreRequest:
		return pb.BuildAtsScorePrompt(r.Text), nil
	case models.JobMatchRequest:
		return pb.BuildJobMatchPrompt(r.ResumeText, r.JobText), nil
	case models.SkillPathRequest:
		return pb.BuildSkillPathPrompt(r.CurrentSkills, r.TargetRole), nil
	default:
		return "", fmt.Errorf("no prompt template for request %T", req)
	}
}

// BuildResumeAnalysisPrompt creates the short plain-text resume review prompt
func (pb *PromptBuilder) BuildResumeAnalysisPrompt(resumeText string) string {
	return fmt.Sprintf(`You are an expert ATS scanner.
Give a VERY SHORT, SUPER CLEAR analysis of this resume.

Keep it under 250 words. DO NOT use stars, bold, markdown, or long paragraphs.

Structure:
- ATS Score
- Missing Skills
- Top Issues
- Improvements
- Strong Points
- Short Summary Rewrite

Resume:
%s
`, resumeText)
}

// BuildAtsScorePrompt asks for a single JSON object
func (pb *PromptBuilder) BuildAtsScorePrompt(resumeText string) string {
	return fmt.Sprintf(`You are an ATS scoring engine.
Analyze this resume and return ONLY a JSON object:

{
  "score": number (0-100),
  "missing_keywords": ["skill1","skill2"],
  "quick_fixes": ["short suggestion 1","short suggestion 2"]
}

Resume:
%s
`, resumeText)
}

func (pb *PromptBuilder) BuildJobMatchPrompt(resumeText, jobText string) string {
	return fmt.Sprintf(`You are a resume to job description matcher.
Compare the following RESUME and JOB DESCRIPTION.
Return VERY SHORT, CLEAN text. No markdown.

RETURN STRICT FORMAT:
MATCH SCORE (0-100) as a bare number on the first line
MISSING KEYWORDS (comma list)
MATCHED SKILLS (comma list)
3 MAIN GAPS
3 IMPROVED BULLET POINTS FOR RESUME
FINAL ADVICE (1 short paragraph)

==== RESUME ====
%s

==== JOB DESCRIPTION ====
%s
`, resumeText, jobText)
}

func (pb *PromptBuilder) BuildSkillPathPrompt(currentSkills, targetRole string) string {
	return fmt.Sprintf(`You are a career coach.
Generate a concise, premium, easy-to-understand skill gap & learning path.

OUTPUT FORMAT (NO MARKDOWN, ONLY CLEAN TEXT):

MISSING SKILLS
TOP 5 PRIORITY SKILLS
30-DAY LEARNING ROADMAP
WEEKLY GOALS
PROJECT TO BUILD
FINAL ADVICE

Current Skills:
%s

Target Role:
%s
`, currentSkills, targetRole)
}
