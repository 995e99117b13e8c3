package alertness

import (
	"testing"

	"ALERTNESS/go-backend/internal/landmarks"
)

type countingDispatcher struct {
	calls int
}

func (d *countingDispatcher) Emit() { d.calls++ }

type recordingSink struct {
	transitions []Transition
}

func (s *recordingSink) Notify(t Transition) { s.transitions = append(s.transitions, t) }

func frame(ear float64) []landmarks.Face {
	return []landmarks.Face{landmarks.Synthetic(ear)}
}

func skipFrame() []landmarks.Face {
	f := landmarks.Synthetic(0.10)
	f[landmarks.RightEye[2]] = nil
	return []landmarks.Face{f}
}

func newTestMachine() (*Machine, *countingDispatcher, *recordingSink) {
	d := &countingDispatcher{}
	s := &recordingSink{}
	return NewMachine(DefaultConfig(), d, s), d, s
}

func TestNewStateIsWaitingAndAlert(t *testing.T) {
	m, _, _ := newTestMachine()
	st := m.State()
	if st.Detection != Waiting || st.Alert != Alert || st.ClosedFrames != 0 || st.AlertPlayed {
		t.Errorf("unexpected initial state %+v", st)
	}
}

func TestHysteresis(t *testing.T) {
	m, d, _ := newTestMachine()

	for k := 1; k <= DefaultClosedFrameDebounce; k++ {
		tr := m.ProcessFrame(frame(0.10))
		if tr.Alert != Alert {
			t.Fatalf("frame %d: alert state %v before debounce exceeded", k, tr.Alert)
		}
		if tr.ClosedFrames != k {
			t.Fatalf("frame %d: closed frames %d", k, tr.ClosedFrames)
		}
	}
	if d.calls != 0 {
		t.Fatalf("emit called %d times before debounce exceeded", d.calls)
	}

	tr := m.ProcessFrame(frame(0.10))
	if tr.Alert != Drowsy || !tr.AlertChanged {
		t.Fatalf("expected transition to drowsy, got %+v", tr)
	}
}

// Scenario A: sixteen closed frames alert exactly once, on the sixteenth.
func TestScenarioSixteenClosedFrames(t *testing.T) {
	m, d, _ := newTestMachine()

	for i := 1; i <= 16; i++ {
		tr := m.ProcessFrame(frame(0.10))
		wantEmits := 0
		wantAlert := Alert
		if i == 16 {
			wantEmits = 1
			wantAlert = Drowsy
		}
		if d.calls != wantEmits {
			t.Fatalf("frame %d: emit calls = %d, want %d", i, d.calls, wantEmits)
		}
		if tr.Alert != wantAlert {
			t.Fatalf("frame %d: alert = %v, want %v", i, tr.Alert, wantAlert)
		}
	}
	if st := m.State(); !st.AlertPlayed || st.Detection != EyesClosed {
		t.Errorf("unexpected state %+v", st)
	}
}

// Scenario B: an open frame after the alert ends the episode.
func TestScenarioOpenFrameEndsEpisode(t *testing.T) {
	m, d, _ := newTestMachine()
	for i := 0; i < 16; i++ {
		m.ProcessFrame(frame(0.10))
	}

	tr := m.ProcessFrame(frame(0.30))
	st := m.State()
	if st.Detection != EyesOpen || st.ClosedFrames != 0 || st.AlertPlayed || st.Alert != Alert {
		t.Errorf("unexpected state after open frame %+v", st)
	}
	if !tr.AlertChanged || !tr.DetectionChanged {
		t.Errorf("expected both statuses to change, got %+v", tr)
	}
	if d.calls != 1 {
		t.Errorf("emit calls = %d, want 1", d.calls)
	}
}

// Scenario C: alternating blinks never alert.
func TestScenarioBlinkingNeverAlerts(t *testing.T) {
	m, d, _ := newTestMachine()

	for i := 1; i <= 100; i++ {
		ear := 0.30
		if i%2 == 1 {
			ear = 0.10
		}
		tr := m.ProcessFrame(frame(ear))
		if tr.ClosedFrames > 1 {
			t.Fatalf("frame %d: closed frames %d", i, tr.ClosedFrames)
		}
		if tr.Alert != Alert {
			t.Fatalf("frame %d: alert state %v", i, tr.Alert)
		}
	}
	if d.calls != 0 {
		t.Errorf("emit calls = %d, want 0", d.calls)
	}
}

// Scenario D: losing the face mid-run resets the count.
func TestScenarioFaceLossResetsRun(t *testing.T) {
	m, d, _ := newTestMachine()

	for i := 1; i <= 16; i++ {
		if i == 10 {
			m.ProcessFrame(nil)
			continue
		}
		m.ProcessFrame(frame(0.10))
	}

	if d.calls != 0 {
		t.Errorf("emit calls = %d, want 0", d.calls)
	}
	if got := m.State().ClosedFrames; got != 6 {
		t.Errorf("closed frames = %d, want 6", got)
	}
}

func TestAtMostOneAlertPerEpisode(t *testing.T) {
	m, d, _ := newTestMachine()

	for i := 0; i < 200; i++ {
		tr := m.ProcessFrame(frame(0.05))
		if i >= DefaultClosedFrameDebounce && tr.Alert != Drowsy {
			t.Fatalf("frame %d: drowsy state dropped mid-episode", i+1)
		}
	}
	if d.calls != 1 {
		t.Fatalf("emit calls = %d, want 1", d.calls)
	}

	m.ProcessFrame(frame(0.40))
	for i := 0; i < 16; i++ {
		m.ProcessFrame(frame(0.05))
	}
	if d.calls != 2 {
		t.Errorf("emit calls after second episode = %d, want 2", d.calls)
	}
}

func TestNoFaceResetsAfterLongRun(t *testing.T) {
	m, _, _ := newTestMachine()
	for i := 0; i < 500; i++ {
		m.ProcessFrame(frame(0.05))
	}

	tr := m.ProcessFrame([]landmarks.Face{})
	st := m.State()
	if st.ClosedFrames != 0 || st.AlertPlayed || st.Alert != Alert || st.Detection != NoFace {
		t.Errorf("unexpected state after face loss %+v", st)
	}
	if !tr.AlertChanged {
		t.Errorf("expected alert state change on face loss")
	}
}

func TestIncompleteFaceIsNoFace(t *testing.T) {
	m, _, _ := newTestMachine()
	for i := 0; i < 5; i++ {
		m.ProcessFrame(frame(0.05))
	}

	short := landmarks.Synthetic(0.05)[:100]
	m.ProcessFrame([]landmarks.Face{short})
	if st := m.State(); st.Detection != NoFace || st.ClosedFrames != 0 {
		t.Errorf("unexpected state %+v", st)
	}
}

func TestSkipFramesAreInvisible(t *testing.T) {
	m, d, s := newTestMachine()

	for i := 0; i < 10; i++ {
		m.ProcessFrame(frame(0.10))
	}
	before := m.State()
	notified := len(s.transitions)

	for i := 0; i < 50; i++ {
		tr := m.ProcessFrame(skipFrame())
		if tr.Processed {
			t.Fatalf("skip frame reported as processed")
		}
	}
	if after := m.State(); after != before {
		t.Fatalf("skip frames changed state: %+v -> %+v", before, after)
	}
	if len(s.transitions) != notified {
		t.Fatalf("skip frames notified the sink")
	}

	for i := 0; i < 6; i++ {
		m.ProcessFrame(frame(0.10))
	}
	if d.calls != 1 {
		t.Errorf("emit calls = %d, want 1 after run resumed past skips", d.calls)
	}
}

func TestReEmitGuard(t *testing.T) {
	m, d, _ := newTestMachine()
	for i := 0; i < 16; i++ {
		m.ProcessFrame(frame(0.10))
	}

	c := landmarks.Classify(frame(0.10))
	m.Observe(c)
	m.Observe(c)
	if d.calls != 1 {
		t.Errorf("emit calls = %d, want 1", d.calls)
	}
}

func TestSinkOnlyNotifiedOnChange(t *testing.T) {
	m, _, s := newTestMachine()

	for i := 0; i < 5; i++ {
		m.ProcessFrame(frame(0.30))
	}
	for i := 0; i < 20; i++ {
		m.ProcessFrame(frame(0.10))
	}
	m.ProcessFrame(nil)
	m.ProcessFrame(nil)

	want := []struct {
		alert     AlertState
		detection DetectionStatus
	}{
		{Alert, EyesOpen},
		{Alert, EyesClosed},
		{Drowsy, EyesClosed},
		{Alert, NoFace},
	}

	if len(s.transitions) != len(want) {
		t.Fatalf("got %d notifications, want %d: %+v", len(s.transitions), len(want), s.transitions)
	}
	for i, w := range want {
		got := s.transitions[i]
		if got.Alert != w.alert || got.Detection != w.detection {
			t.Errorf("notification %d = %v/%v, want %v/%v", i, got.Alert, got.Detection, w.alert, w.detection)
		}
	}
}

func TestCustomThresholds(t *testing.T) {
	d := &countingDispatcher{}
	m := NewMachine(Config{EARThreshold: 0.25, ClosedFrameDebounce: 2}, d, nil)

	m.ProcessFrame(frame(0.22))
	m.ProcessFrame(frame(0.22))
	if d.calls != 0 {
		t.Fatalf("alerted before debounce exceeded")
	}
	m.ProcessFrame(frame(0.22))
	if d.calls != 1 {
		t.Errorf("emit calls = %d, want 1", d.calls)
	}
}

func TestThresholdBoundary(t *testing.T) {
	m, _, _ := newTestMachine()

	if tr := m.ProcessFrame(frame(0.209)); tr.Detection != EyesClosed {
		t.Errorf("ear just below threshold classified %v", tr.Detection)
	}
	if tr := m.ProcessFrame(frame(0.211)); tr.Detection != EyesOpen {
		t.Errorf("ear just above threshold classified %v", tr.Detection)
	}
}

func TestZeroWidthEyeIsSkipped(t *testing.T) {
	m, d, s := newTestMachine()

	for i := 0; i < 5; i++ {
		m.ProcessFrame(frame(0.10))
	}
	before := m.State()
	notified := len(s.transitions)

	collapsed := landmarks.Synthetic(0.10)
	corner := *collapsed[landmarks.LeftEye[0]]
	collapsed[landmarks.LeftEye[3]] = &corner

	tr := m.ProcessFrame([]landmarks.Face{collapsed})
	if tr.Processed {
		t.Fatalf("zero-width eye was processed: %+v", tr)
	}
	if m.State() != before {
		t.Errorf("state changed: %+v, want %+v", m.State(), before)
	}
	if len(s.transitions) != notified {
		t.Errorf("sink notified for a skipped frame")
	}

	// The closed run continues where it left off.
	tr = m.ProcessFrame(frame(0.10))
	if tr.ClosedFrames != 6 || d.calls != 0 {
		t.Errorf("closed frames = %d, emits = %d after skip", tr.ClosedFrames, d.calls)
	}
}
