package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/clarityplus/kiosk/internal/kiosk/analysis"
	"github.com/clarityplus/kiosk/internal/kiosk/enrollment"
	"github.com/clarityplus/kiosk/internal/kiosk/session"
)

func (m Model) View() string {
	var body string
	switch m.state.Mode {
	case session.ModeEnrollment:
		body = m.viewEnrollment()
	case session.ModeAnalysis:
		body = m.viewAnalysis()
	default:
		body = m.viewIdle()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Clarity+ Wellness Kiosk"))
	b.WriteString("\n")
	b.WriteString(panelStyle.Render(body))
	if m.actionErr != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.actionErr))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) viewIdle() string {
	var b strings.Builder
	if m.state.Scanning {
		b.WriteString("Looking for a face...\n")
	} else {
		b.WriteString("Step up to the camera to begin.\n")
	}
	if m.state.Notice != "" {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(m.state.Notice))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewEnrollment() string {
	w := m.state.Wizard
	var b strings.Builder

	switch w.Stage {
	case enrollment.StageWelcome:
		b.WriteString("Welcome! Enroll your face to track your wellness.\n")
		b.WriteString(subtleStyle.Render("Press enter to begin."))

	case enrollment.StageName:
		b.WriteString("What should we call you?\n\n")
		b.WriteString(m.nameInput.View())

	case enrollment.StageCapture:
		fmt.Fprintf(&b, "Hi %s. Pose %d of %d: %s.\n\n", w.Name, w.Samples+1, w.Poses, posePrompt(w.Samples))
		b.WriteString(poseBar(w.Samples, w.Poses))
		b.WriteString("\n")
		b.WriteString(subtleStyle.Render("Hold the pose and press enter."))

	case enrollment.StageProcessing:
		b.WriteString("Processing your enrollment...\n")

	case enrollment.StageSuccess:
		b.WriteString(successStyle.Render("You're enrolled!"))
	}

	if w.Err != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(w.Err))
	}
	return b.String()
}

func (m Model) viewAnalysis() string {
	var b strings.Builder
	if u := m.state.User; u != nil {
		fmt.Fprintf(&b, "Hello, %s.\n\n", u.Name)
	}

	a := m.state.Analysis
	switch a.State {
	case analysis.StatePending:
		b.WriteString("Analyzing your wellness...\n")

	case analysis.StateFailed:
		b.WriteString(errorStyle.Render("Analysis failed."))
		b.WriteString("\n")
		b.WriteString(subtleStyle.Render("Press r to retry."))

	case analysis.StateReady:
		r := a.Result
		overall := lipgloss.NewStyle().Bold(true).Foreground(scoreColor(r.OverallScore))
		fmt.Fprintf(&b, "Overall score: %s\n\n", overall.Render(fmt.Sprintf("%.1f", r.OverallScore)))
		b.WriteString(metricLine("Skin", r.Scores.Skin, r.WeightsUsed["skin"]))
		b.WriteString(metricLine("Posture", r.Scores.Posture, r.WeightsUsed["posture"]))
		b.WriteString(metricLine("Eyes", r.Scores.Eyes, r.WeightsUsed["eyes"]))
		b.WriteString(metricLine("Thermal", r.Scores.Thermal, r.WeightsUsed["thermal"]))
		if r.CapturedImage != "" {
			b.WriteString("\n")
			b.WriteString(subtleStyle.Render("Reference frame captured."))
		}

	default:
		b.WriteString("Preparing your session...\n")
	}
	return b.String()
}

// metricLine renders one wellness metric with its scoring weight. A missing
// metric is shown as unavailable rather than as a zero score.
func metricLine(name string, v *float64, weight float64) string {
	if v == nil {
		return fmt.Sprintf("  %-8s %s\n", name, subtleStyle.Render("n/a"))
	}
	s := scoreStyle.Foreground(scoreColor(*v))
	return fmt.Sprintf("  %-8s %s %s\n", name,
		s.Render(fmt.Sprintf("%5.1f", *v)),
		subtleStyle.Render(fmt.Sprintf("(weight %.0f%%)", weight*100)))
}

// posePrompt names the capture pose for the given zero-based sample index.
func posePrompt(i int) string {
	prompts := []string{"look straight ahead", "tilt your chin down", "tilt your chin up"}
	if i < len(prompts) {
		return prompts[i]
	}
	return "look straight ahead"
}

func poseBar(done, total int) string {
	marks := make([]string, 0, total)
	for i := 0; i < total; i++ {
		if i < done {
			marks = append(marks, successStyle.Render("●"))
		} else {
			marks = append(marks, subtleStyle.Render("○"))
		}
	}
	return strings.Join(marks, " ")
}

func (m Model) helpLine() string {
	switch m.state.Mode {
	case session.ModeEnrollment:
		return "enter confirm · esc back · ctrl+c quit"
	case session.ModeAnalysis:
		return "enter done · r retry · q quit"
	default:
		return "e enroll · q quit"
	}
}
