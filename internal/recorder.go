package internal

import (
	"bytes"
	"context"
	"errors"
	"sync"
)

// audioMIMEType is the encoding the capture pipeline produces.
const audioMIMEType = "audio/webm"

// CaptureDevice is the microphone boundary. Acquire claims the device
// exclusively; a denied permission or missing device fails with a
// *DeviceError and is never retried here.
type CaptureDevice interface {
	Acquire(ctx context.Context) (CaptureStream, error)
}

// CaptureStream delivers encoded audio chunks from an acquired device.
// Closing the stream releases the device and closes the chunk channel.
type CaptureStream interface {
	Chunks() <-chan []byte
	Close() error
}

// NoMicrophone is the capture device used where no real microphone backend is
// wired up. Acquire always fails with a *DeviceError; the caller reports it
// and the user falls back to typed input.
type NoMicrophone struct{}

// Acquire always reports the device as unavailable.
func (NoMicrophone) Acquire(ctx context.Context) (CaptureStream, error) {
	return nil, &DeviceError{Reason: "unavailable", Err: errors.New("no audio capture backend on this platform")}
}

type recorderState int

const (
	recorderIdle recorderState = iota
	recorderCapturing
	recorderFinalizing
)

// Recorder owns the lifecycle of a microphone capture session:
// idle -> capturing -> finalizing -> idle. At most one session is active at a
// time; the chunk buffer is owned by the session and discarded when it ends.
type Recorder struct {
	device CaptureDevice

	mu     sync.Mutex
	state  recorderState
	stream CaptureStream
	buf    [][]byte
	done   chan struct{}
}

// NewRecorder creates a Recorder over the given capture device.
func NewRecorder(device CaptureDevice) *Recorder {
	return &Recorder{device: device}
}

// Recording reports whether a capture session is active.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state == recorderCapturing
}

// Start acquires the microphone and begins buffering audio chunks. Returns
// ErrAlreadyRecording if a session is already active, or a *DeviceError if
// the device cannot be acquired.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != recorderIdle {
		return ErrAlreadyRecording
	}

	stream, err := r.device.Acquire(ctx)
	if err != nil {
		if _, ok := err.(*DeviceError); ok {
			return err
		}
		return &DeviceError{Reason: "unavailable", Err: err}
	}

	r.state = recorderCapturing
	r.stream = stream
	r.buf = nil
	r.done = make(chan struct{})

	go r.collect(stream, r.done)

	return nil
}

// collect drains the stream's chunk channel into the session buffer. It runs
// until the stream is closed; only Stop reads the buffer, and only after the
// collector has finished.
func (r *Recorder) collect(stream CaptureStream, done chan struct{}) {
	defer close(done)
	for chunk := range stream.Chunks() {
		if len(chunk) > 0 {
			r.buf = append(r.buf, chunk)
		}
	}
}

// Stop ends the capture session: the device is released on every path, the
// buffered chunks are flushed into one encoded payload, and the recorder
// returns to idle. Called while idle it is a no-op returning an empty
// payload. An empty buffer (cancelled recording) also yields an empty
// payload, not an error.
func (r *Recorder) Stop() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != recorderCapturing {
		return "", nil
	}

	r.state = recorderFinalizing
	defer func() {
		r.stream = nil
		r.buf = nil
		r.done = nil
		r.state = recorderIdle
	}()

	// Closing the stream releases the device and unblocks the collector.
	if err := r.stream.Close(); err != nil {
		LogWarn("Failed to close capture stream: %v", err)
	}
	<-r.done

	if len(r.buf) == 0 {
		return "", nil
	}

	var joined bytes.Buffer
	for _, chunk := range r.buf {
		joined.Write(chunk)
	}

	return EncodeDataURI(audioMIMEType, joined.Bytes()), nil
}
