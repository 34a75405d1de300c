package ui

import (
	"bytes"
	"strings"
	"testing"
)

func testBatchRunner(buf *bytes.Buffer, verbose bool) *BatchRunner {
	return NewBatchRunner(BatchRunnerConfig{
		Title:   "Batch IP Migration",
		Command: "onvifcfg apply",
		Params: map[string]string{
			"Cameras": "2",
			"Gateway": "10.0.0.1",
		},
		TotalCameras: 2,
		StepNames:    []string{"192.168.1.64 -> 10.0.0.11", "192.168.1.65 -> 10.0.0.12"},
		Verbose:      verbose,
		Output:       buf,
	})
}

func TestBatchRunnerStartPrintsHeader(t *testing.T) {
	var buf bytes.Buffer
	r := testBatchRunner(&buf, false)

	r.Start()

	out := buf.String()
	if !strings.Contains(out, "BATCH IP MIGRATION") {
		t.Errorf("Expected title in header, got:\n%s", out)
	}
	if !strings.Contains(out, "onvifcfg apply") {
		t.Errorf("Expected command in header, got:\n%s", out)
	}
}

func TestBatchRunnerStepLines(t *testing.T) {
	var buf bytes.Buffer
	r := testBatchRunner(&buf, false)
	onStep := r.OnStep()

	onStep(1, "192.168.1.64 -> 10.0.0.11", StepRunning, "")
	onStep(1, "192.168.1.64 -> 10.0.0.11", StepComplete, "")
	onStep(2, "192.168.1.65 -> 10.0.0.12", StepRunning, "")
	onStep(2, "192.168.1.65 -> 10.0.0.12", StepFailed, "authentication failed")

	out := buf.String()
	if !strings.Contains(out, "[1/2]") || !strings.Contains(out, "[2/2]") {
		t.Errorf("Expected step counters, got:\n%s", out)
	}
	if !strings.Contains(out, "192.168.1.64 -> 10.0.0.11") {
		t.Errorf("Expected step name, got:\n%s", out)
	}
	if !strings.Contains(out, "authentication failed") {
		t.Errorf("Expected failure message on the step line, got:\n%s", out)
	}
}

func TestBatchRunnerFinishAllSucceeded(t *testing.T) {
	var buf bytes.Buffer
	r := testBatchRunner(&buf, false)

	r.Start()
	buf.Reset()
	r.Finish(2, 0, map[string]string{"Log": "ip_change_20240115_103000.log"})

	out := buf.String()
	if !strings.Contains(out, "SUCCESS") {
		t.Errorf("Expected success box, got:\n%s", out)
	}
	if !strings.Contains(out, "2/2") {
		t.Errorf("Expected tally, got:\n%s", out)
	}
	if !strings.Contains(out, "ip_change_20240115_103000.log") {
		t.Errorf("Expected the log path detail, got:\n%s", out)
	}
}

func TestBatchRunnerFinishAllFailed(t *testing.T) {
	var buf bytes.Buffer
	r := testBatchRunner(&buf, false)

	r.Start()
	buf.Reset()
	r.Finish(0, 2, nil)

	out := buf.String()
	if !strings.Contains(out, "FAILED") {
		t.Errorf("Expected failure box, got:\n%s", out)
	}
	if !strings.Contains(out, "Troubleshooting") {
		t.Errorf("Expected troubleshooting tips, got:\n%s", out)
	}
}

func TestBatchRunnerFinishMixedIsWarning(t *testing.T) {
	var buf bytes.Buffer
	r := testBatchRunner(&buf, false)

	r.Start()
	buf.Reset()
	r.Finish(1, 1, nil)

	out := buf.String()
	if !strings.Contains(out, "WARNING") {
		t.Errorf("Expected warning box for a partial run, got:\n%s", out)
	}
	if !strings.Contains(out, "1/2") {
		t.Errorf("Expected tally, got:\n%s", out)
	}
}

func TestBatchRunnerVerboseResponses(t *testing.T) {
	var buf bytes.Buffer
	r := testBatchRunner(&buf, true)

	r.Start()
	r.AddResponse("<tds:RebootNeeded>true</tds:RebootNeeded>")
	r.AddResponse("") // empty responses are dropped
	buf.Reset()
	r.Finish(2, 0, nil)

	out := buf.String()
	if !strings.Contains(out, "RebootNeeded") {
		t.Errorf("Expected captured response in verbose output, got:\n%s", out)
	}
	if strings.Count(out, "SOAP Response") != 1 {
		t.Errorf("Expected exactly one response box, got:\n%s", out)
	}
}
