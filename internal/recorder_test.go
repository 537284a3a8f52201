package internal

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeStream is an in-memory capture stream fed by the test.
type fakeStream struct {
	chunks chan []byte
	closed bool
}

func newFakeStream() *fakeStream {
	return &fakeStream{chunks: make(chan []byte, 16)}
}

func (s *fakeStream) Chunks() <-chan []byte { return s.chunks }

func (s *fakeStream) Push(chunk []byte) { s.chunks <- chunk }

func (s *fakeStream) Close() error {
	if !s.closed {
		s.closed = true
		close(s.chunks)
	}
	return nil
}

type fakeDevice struct {
	acquireErr error
	acquires   int
	stream     *fakeStream
}

func (d *fakeDevice) Acquire(ctx context.Context) (CaptureStream, error) {
	d.acquires++
	if d.acquireErr != nil {
		return nil, d.acquireErr
	}
	d.stream = newFakeStream()
	return d.stream, nil
}

func TestRecorder_StartStop(t *testing.T) {
	device := &fakeDevice{}
	recorder := NewRecorder(device)

	if err := recorder.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !recorder.Recording() {
		t.Error("Recording() = false after Start()")
	}

	device.stream.Push([]byte("chunk1"))
	device.stream.Push([]byte("chunk2"))

	payload, err := recorder.Stop()
	if err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if recorder.Recording() {
		t.Error("Recording() = true after Stop()")
	}
	if !device.stream.closed {
		t.Error("Stop() must release the device")
	}

	mimeType, data, err := ParseDataURI(payload)
	if err != nil {
		t.Fatalf("Stop() payload is not a valid data URI: %v", err)
	}
	if mimeType != "audio/webm" {
		t.Errorf("Payload MIME type = %q, want audio/webm", mimeType)
	}
	if string(data) != "chunk1chunk2" {
		t.Errorf("Payload = %q, want joined chunks", data)
	}
}

func TestRecorder_StopWhileIdleIsNoop(t *testing.T) {
	device := &fakeDevice{}
	recorder := NewRecorder(device)

	payload, err := recorder.Stop()
	if err != nil {
		t.Errorf("Stop() while idle error = %v, want nil", err)
	}
	if payload != "" {
		t.Errorf("Stop() while idle payload = %q, want empty", payload)
	}
	if device.acquires != 0 {
		t.Error("Stop() while idle must not acquire the device")
	}
}

func TestRecorder_StartWhileCapturing(t *testing.T) {
	device := &fakeDevice{}
	recorder := NewRecorder(device)

	if err := recorder.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	err := recorder.Start(context.Background())
	if !errors.Is(err, ErrAlreadyRecording) {
		t.Errorf("Second Start() error = %v, want ErrAlreadyRecording", err)
	}
	if device.acquires != 1 {
		t.Errorf("Device acquired %d times, want 1", device.acquires)
	}

	if _, err := recorder.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
}

func TestRecorder_DeviceUnavailable(t *testing.T) {
	device := &fakeDevice{acquireErr: &DeviceError{Reason: "denied", Err: errors.New("permission denied")}}
	recorder := NewRecorder(device)

	err := recorder.Start(context.Background())
	var deviceErr *DeviceError
	if !errors.As(err, &deviceErr) {
		t.Fatalf("Start() error = %v, want *DeviceError", err)
	}
	if deviceErr.Reason != "denied" {
		t.Errorf("DeviceError reason = %q, want denied", deviceErr.Reason)
	}
	if recorder.Recording() {
		t.Error("Recorder must stay idle after a failed Start()")
	}

	// A failed acquisition must not block a later successful one.
	device.acquireErr = nil
	if err := recorder.Start(context.Background()); err != nil {
		t.Fatalf("Start() after device recovery error = %v", err)
	}
	if _, err := recorder.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
}

func TestRecorder_CancelledRecordingYieldsEmptyPayload(t *testing.T) {
	device := &fakeDevice{}
	recorder := NewRecorder(device)

	if err := recorder.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Stop without pushing any chunks: an empty transcript, not an error.
	payload, err := recorder.Stop()
	if err != nil {
		t.Errorf("Stop() with empty buffer error = %v, want nil", err)
	}
	if payload != "" {
		t.Errorf("Stop() with empty buffer payload = %q, want empty", payload)
	}
	if !device.stream.closed {
		t.Error("Device must be released even for an empty recording")
	}
}

func TestRecorder_RestartAfterStop(t *testing.T) {
	device := &fakeDevice{}
	recorder := NewRecorder(device)

	for i := 0; i < 3; i++ {
		if err := recorder.Start(context.Background()); err != nil {
			t.Fatalf("Start() #%d error = %v", i+1, err)
		}
		device.stream.Push([]byte("audio"))
		payload, err := recorder.Stop()
		if err != nil {
			t.Fatalf("Stop() #%d error = %v", i+1, err)
		}
		if !strings.HasPrefix(payload, "data:audio/webm;base64,") {
			t.Errorf("Stop() #%d payload = %q, want audio data URI", i+1, payload)
		}
	}
	if device.acquires != 3 {
		t.Errorf("Device acquired %d times, want 3", device.acquires)
	}
}
