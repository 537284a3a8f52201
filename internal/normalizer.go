package internal

import (
	"context"
	"strings"
)

// PendingTurn is the transient aggregate of user input composed before
// submission: typed text, an optional image payload, and any transcript
// appended from a completed recording. It is discarded on submission or
// cancel.
type PendingTurn struct {
	Text         string
	ImageDataURI string
}

// Normalizer merges typed text, transcribed audio, and an optional image into
// one canonical turn payload.
type Normalizer struct {
	transcriber TranscriptionService
}

// NewNormalizer creates a Normalizer using the given transcription service.
func NewNormalizer(transcriber TranscriptionService) *Normalizer {
	return &Normalizer{transcriber: transcriber}
}

// AttachAudio transcribes an encoded audio payload and appends the transcript
// to the turn's text, space-joined and trimmed. On transcription failure the
// existing text is left untouched and the error is returned; the caller
// treats it as non-fatal and may still submit. An empty payload is ignored.
func (n *Normalizer) AttachAudio(ctx context.Context, turn *PendingTurn, audioDataURI string) error {
	if audioDataURI == "" {
		return nil
	}

	transcript, err := n.transcriber.Transcribe(ctx, audioDataURI)
	if err != nil {
		LogWarn("Transcription failed: %v", err)
		return err
	}

	turn.Text = JoinTranscript(turn.Text, transcript)
	return nil
}

// Finalize validates and canonicalizes a pending turn for submission. A turn
// with neither text nor image is rejected with ErrEmptyTurn; it must never
// produce a message. Image payloads pass through byte-identical.
func (n *Normalizer) Finalize(turn *PendingTurn) (*PendingTurn, error) {
	text := strings.TrimSpace(turn.Text)
	if text == "" && turn.ImageDataURI == "" {
		return nil, ErrEmptyTurn
	}

	return &PendingTurn{
		Text:         text,
		ImageDataURI: turn.ImageDataURI,
	}, nil
}

// JoinTranscript appends a transcript fragment to existing text, trimmed and
// single-space-joined.
func JoinTranscript(text, transcript string) string {
	text = strings.TrimSpace(text)
	transcript = strings.TrimSpace(transcript)
	if text == "" {
		return transcript
	}
	if transcript == "" {
		return text
	}
	return text + " " + transcript
}
