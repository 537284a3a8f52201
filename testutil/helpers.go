package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/aqsawaikar-droid/CloudWhisper/internal"
)

// FakeAnalysis is a scriptable AnalysisService
type FakeAnalysis struct {
	mu     sync.Mutex
	Result *internal.AnalysisResult
	Err    error
	Block  chan struct{} // when set, Analyze waits until it is closed
	Calls  []internal.AnalysisRequest
}

// Analyze records the request and returns the scripted result
func (f *FakeAnalysis) Analyze(ctx context.Context, req internal.AnalysisRequest) (*internal.AnalysisResult, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, req)
	block := f.Block
	f.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Result, nil
}

// CallCount returns how many times Analyze was invoked
func (f *FakeAnalysis) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

// FakeTitles is a scriptable TitleService
type FakeTitles struct {
	mu    sync.Mutex
	Title string
	Err   error
	Delay time.Duration
	Calls []string
}

// GenerateTitle records the message and returns the scripted title
func (f *FakeTitles) GenerateTitle(ctx context.Context, message string) (string, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, message)
	f.mu.Unlock()
	if f.Delay > 0 {
		select {
		case <-time.After(f.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.Err != nil {
		return "", f.Err
	}
	return f.Title, nil
}

// CallCount returns how many times GenerateTitle was invoked
func (f *FakeTitles) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

// FakeTranscriber is a scriptable TranscriptionService
type FakeTranscriber struct {
	mu         sync.Mutex
	Transcript string
	Err        error
	Calls      []string
}

// Transcribe records the payload and returns the scripted transcript
func (f *FakeTranscriber) Transcribe(ctx context.Context, audioDataURI string) (string, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, audioDataURI)
	f.mu.Unlock()
	if f.Err != nil {
		return "", f.Err
	}
	return f.Transcript, nil
}

// FakeDevice is a scriptable CaptureDevice whose streams are fed by the test
type FakeDevice struct {
	mu           sync.Mutex
	AcquireErr   error
	AcquireCount int
	Stream       *FakeStream
}

// Acquire returns a fresh fake stream or the scripted error
func (f *FakeDevice) Acquire(ctx context.Context) (internal.CaptureStream, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.AcquireCount++
	if f.AcquireErr != nil {
		return nil, f.AcquireErr
	}
	f.Stream = NewFakeStream()
	return f.Stream, nil
}

// Acquires returns how many times the device was acquired
func (f *FakeDevice) Acquires() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.AcquireCount
}

// FakeStream is an in-memory CaptureStream
type FakeStream struct {
	mu     sync.Mutex
	chunks chan []byte
	closed bool
}

// NewFakeStream creates a fake capture stream
func NewFakeStream() *FakeStream {
	return &FakeStream{chunks: make(chan []byte, 16)}
}

// Push feeds one audio chunk into the stream
func (s *FakeStream) Push(chunk []byte) {
	s.chunks <- chunk
}

// Chunks returns the chunk channel
func (s *FakeStream) Chunks() <-chan []byte {
	return s.chunks
}

// Close releases the stream; it is safe to call more than once
func (s *FakeStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.chunks)
	}
	return nil
}

// Closed reports whether the stream has been released
func (s *FakeStream) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
