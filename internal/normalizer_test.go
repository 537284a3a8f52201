package internal

import (
	"context"
	"errors"
	"testing"
)

type fakeTranscriber struct {
	transcript string
	err        error
	calls      []string
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioDataURI string) (string, error) {
	f.calls = append(f.calls, audioDataURI)
	if f.err != nil {
		return "", f.err
	}
	return f.transcript, nil
}

func TestJoinTranscript(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		transcript string
		want       string
	}{
		{"both present", "fix this", "server is down", "fix this server is down"},
		{"empty text", "", "server is down", "server is down"},
		{"empty transcript", "fix this", "", "fix this"},
		{"both empty", "", "", ""},
		{"whitespace trimmed", "  fix this  ", "  server is down  ", "fix this server is down"},
		{"whitespace only transcript", "fix this", "   ", "fix this"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JoinTranscript(tt.text, tt.transcript)
			if got != tt.want {
				t.Errorf("JoinTranscript(%q, %q) = %q, want %q", tt.text, tt.transcript, got, tt.want)
			}
		})
	}
}

func TestNormalizer_AttachAudio(t *testing.T) {
	transcriber := &fakeTranscriber{transcript: "the database is timing out"}
	normalizer := NewNormalizer(transcriber)

	turn := &PendingTurn{Text: "please check"}
	if err := normalizer.AttachAudio(context.Background(), turn, "data:audio/webm;base64,AAAA"); err != nil {
		t.Fatalf("AttachAudio() error = %v", err)
	}
	if turn.Text != "please check the database is timing out" {
		t.Errorf("Text = %q, want joined transcript", turn.Text)
	}
	if len(transcriber.calls) != 1 {
		t.Errorf("Transcribe called %d times, want 1", len(transcriber.calls))
	}
}

func TestNormalizer_AttachAudioEmptyPayloadIgnored(t *testing.T) {
	transcriber := &fakeTranscriber{transcript: "should not appear"}
	normalizer := NewNormalizer(transcriber)

	turn := &PendingTurn{Text: "typed text"}
	if err := normalizer.AttachAudio(context.Background(), turn, ""); err != nil {
		t.Fatalf("AttachAudio() error = %v", err)
	}
	if turn.Text != "typed text" {
		t.Errorf("Text = %q, want unchanged", turn.Text)
	}
	if len(transcriber.calls) != 0 {
		t.Error("Transcribe must not be called for an empty payload")
	}
}

func TestNormalizer_AttachAudioFailureKeepsText(t *testing.T) {
	transcriber := &fakeTranscriber{err: &ServiceError{Service: "transcription", Err: errors.New("model unavailable")}}
	normalizer := NewNormalizer(transcriber)

	turn := &PendingTurn{Text: "typed text"}
	err := normalizer.AttachAudio(context.Background(), turn, "data:audio/webm;base64,AAAA")
	var serviceErr *ServiceError
	if !errors.As(err, &serviceErr) {
		t.Fatalf("AttachAudio() error = %v, want *ServiceError", err)
	}
	if turn.Text != "typed text" {
		t.Errorf("Text = %q, want untouched after transcription failure", turn.Text)
	}
}

func TestNormalizer_Finalize(t *testing.T) {
	normalizer := NewNormalizer(&fakeTranscriber{})

	tests := []struct {
		name    string
		turn    PendingTurn
		want    PendingTurn
		wantErr error
	}{
		{
			name: "text only",
			turn: PendingTurn{Text: "  check the logs  "},
			want: PendingTurn{Text: "check the logs"},
		},
		{
			name: "image only",
			turn: PendingTurn{ImageDataURI: "data:image/png;base64,iVBOR"},
			want: PendingTurn{ImageDataURI: "data:image/png;base64,iVBOR"},
		},
		{
			name: "text and image",
			turn: PendingTurn{Text: "what is this", ImageDataURI: "data:image/png;base64,iVBOR"},
			want: PendingTurn{Text: "what is this", ImageDataURI: "data:image/png;base64,iVBOR"},
		},
		{
			name:    "empty",
			turn:    PendingTurn{},
			wantErr: ErrEmptyTurn,
		},
		{
			name:    "whitespace only",
			turn:    PendingTurn{Text: "   \n\t  "},
			wantErr: ErrEmptyTurn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizer.Finalize(&tt.turn)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Finalize() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Finalize() error = %v", err)
			}
			if got.Text != tt.want.Text {
				t.Errorf("Text = %q, want %q", got.Text, tt.want.Text)
			}
			if got.ImageDataURI != tt.want.ImageDataURI {
				t.Errorf("ImageDataURI = %q, want %q", got.ImageDataURI, tt.want.ImageDataURI)
			}
		})
	}
}
