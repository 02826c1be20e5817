package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/txprep/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SpinnerProgressReporter implements progress reporting with a spinner
type SpinnerProgressReporter struct {
	spinner        *spinner.Spinner
	out            io.Writer
	stages         []stageInfo
	currentStage   string
	stageStartTime time.Time
}

type stageInfo struct {
	Stage     string
	StartTime time.Time
	EndTime   time.Time
	Status    string
	Message   string
}

// stageLabels names the stages shown in the spinner line. Stages missing
// here are tracked but not displayed.
var stageLabels = map[string]string{
	string(usecase.StateFeeDataFetched): "Fee data",
	string(usecase.StateValidated):      "Validated",
	string(usecase.StateGasEstimated):   "Gas estimate",
	string(usecase.StatePrepared):       "Prepared",
	string(usecase.StateUnchanged):      "Rejected",
}

var titleCaser = cases.Title(language.English)

// NewSpinnerProgressReporter creates a new spinner-based progress reporter
// writing to stderr
func NewSpinnerProgressReporter() *SpinnerProgressReporter {
	return NewSpinnerProgressReporterTo(os.Stderr)
}

// NewSpinnerProgressReporterTo creates a spinner-based progress reporter
// writing to out
func NewSpinnerProgressReporterTo(out io.Writer) *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerProgressReporter{
		spinner: s,
		out:     out,
		stages:  []stageInfo{},
	}
}

// OnProgress handles progress events
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Stage != "" && event.Stage != r.currentStage {
		r.reportStage(event.Stage, event.Spinner)
	}

	if event.Spinner {
		if !r.spinner.Active() {
			r.spinner.Start()
		}
	} else if r.spinner.Active() {
		r.spinner.Stop()
	}

	if len(r.stages) > 0 && event.Message != "" {
		r.stages[len(r.stages)-1].Message = event.Message
	}
	r.updateSpinnerDisplay()
}

func (r *SpinnerProgressReporter) reportStage(stage string, running bool) {
	// Complete previous stage if any
	if r.currentStage != "" {
		r.completeCurrentStage()
	}

	status := "running"
	if !running {
		status = "completed"
		if stage == string(usecase.StateUnchanged) {
			status = "failed"
		}
	}

	r.currentStage = stage
	r.stageStartTime = time.Now()
	r.stages = append(r.stages, stageInfo{
		Stage:     stage,
		StartTime: r.stageStartTime,
		Status:    status,
	})
	if !running {
		r.stages[len(r.stages)-1].EndTime = r.stageStartTime
	}
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.pause(func() {
		fmt.Fprintln(r.out, color.New(color.FgCyan).Sprint(message))
	})
}

// Error prints an error message
func (r *SpinnerProgressReporter) Error(message string) {
	r.pause(func() {
		fmt.Fprintln(r.out, color.New(color.FgRed).Sprint(message))
	})
}

// pause stops the spinner around fn so output doesn't interleave
func (r *SpinnerProgressReporter) pause(fn func()) {
	wasActive := r.spinner != nil && r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}
	fn()
	if wasActive {
		r.spinner.Start()
	}
}

// completeCurrentStage marks the current stage as completed
func (r *SpinnerProgressReporter) completeCurrentStage() {
	if len(r.stages) > 0 {
		idx := len(r.stages) - 1
		if r.stages[idx].Status == "running" {
			r.stages[idx].EndTime = time.Now()
			r.stages[idx].Status = "completed"
		}
	}
}

// Summary returns the rendered stage line
func (r *SpinnerProgressReporter) Summary() string {
	var parts []string

	for _, stage := range r.stages {
		label, ok := stageLabels[stage.Stage]
		if !ok {
			continue
		}

		var icon string
		var stageColor *color.Color
		switch stage.Status {
		case "completed":
			icon = "✓"
			stageColor = color.New(color.FgGreen)
		case "running":
			icon = "●"
			stageColor = color.New(color.FgYellow)
		case "failed":
			icon = "✗"
			stageColor = color.New(color.FgRed)
		default:
			icon = "○"
			stageColor = color.New(color.FgWhite)
		}

		duration := ""
		if !stage.EndTime.IsZero() && stage.EndTime.After(stage.StartTime) {
			duration = fmt.Sprintf(" (%s)", stage.EndTime.Sub(stage.StartTime).Round(time.Millisecond))
		} else if stage.Status == "running" {
			duration = fmt.Sprintf(" (%s)", time.Since(stage.StartTime).Round(time.Second))
		}

		part := fmt.Sprintf("%s %s%s", icon, stageColor.Sprint(label), duration)
		if stage.Message != "" {
			part += " " + stage.Message
		}
		parts = append(parts, part)
	}

	return strings.Join(parts, " → ")
}

// updateSpinnerDisplay updates the spinner suffix with stage information
func (r *SpinnerProgressReporter) updateSpinnerDisplay() {
	r.spinner.Suffix = " " + r.Summary()
}

// StageLabel returns the display label for a pipeline stage
func StageLabel(stage string) string {
	if label, ok := stageLabels[stage]; ok {
		return label
	}
	return titleCaser.String(strings.ReplaceAll(stage, "-", " "))
}

// Ensure SpinnerProgressReporter implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
