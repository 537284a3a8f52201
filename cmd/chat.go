package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aqsawaikar-droid/CloudWhisper/internal"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	chatConversationID string
	chatDemo           bool
	chatMessage        string
	chatImagePath      string
)

var (
	// Styles for chat command
	assistantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true)
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start or resume a conversation",
	Long: `Start an interactive conversation with CloudWhisper, or resume an
existing one with --conversation.

Inside the session:
  /image <path>   attach a screenshot to the next message
  /record         start dictating through the microphone
  /stop           stop dictating and transcribe
  /send           submit an image-only message
  /quit           leave the session

A plain line of text submits it as the next message. Use --message for a
single non-interactive turn.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, cleanup, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := cmd.Context()
		gemini, err := internal.NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return fmt.Errorf("failed to initialize AI backend: %w", err)
		}
		defer func() {
			if err := gemini.Close(); err != nil {
				internal.LogWarn("Failed to close AI client: %v", err)
			}
		}()

		orchCfg := internal.OrchestratorConfig{
			Store:           store,
			Analysis:        gemini,
			Titles:          gemini,
			UserID:          cfg.UserID,
			AnalysisTimeout: cfg.AnalysisTimeout(),
			TitleTimeout:    cfg.TitleTimeout(),
		}
		if chatDemo {
			orchCfg.Logs = internal.SampleLogs
			orchCfg.Metrics = internal.SampleMetrics
		}
		orch := internal.NewOrchestrator(orchCfg)
		defer orch.Close()

		session := &chatSession{
			out:            cmd.OutOrStdout(),
			orch:           orch,
			normalizer:     internal.NewNormalizer(gemini),
			recorder:       internal.NewRecorder(internal.NoMicrophone{}),
			conversationID: chatConversationID,
		}

		if chatMessage != "" || chatImagePath != "" {
			return session.submitOnce(ctx, chatMessage, chatImagePath)
		}

		return session.run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVar(&chatConversationID, "conversation", "", "Resume an existing conversation by id")
	chatCmd.Flags().BoolVar(&chatDemo, "demo", false, "Feed canned sample logs and metrics to the analysis")
	chatCmd.Flags().StringVarP(&chatMessage, "message", "m", "", "Submit a single message and exit")
	chatCmd.Flags().StringVar(&chatImagePath, "image", "", "Attach a screenshot file to the message")
}

// chatSession holds the state of one interactive chat run.
type chatSession struct {
	out            io.Writer
	orch           *internal.Orchestrator
	normalizer     *internal.Normalizer
	recorder       *internal.Recorder
	conversationID string
	pendingImage   string
	transcript     string
}

func (s *chatSession) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format, args...)
}

// run drives the interactive loop until EOF or /quit.
func (s *chatSession) run(ctx context.Context) error {
	if s.conversationID == "" {
		s.printf("%s %s\n\n", assistantStyle.Render("cloudwhisper>"), internal.Greeting)
	}
	s.printf("%s\n\n", hintStyle.Render("Type a message, or /image <path>, /record, /stop, /send, /quit."))

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		s.printf("%s ", promptStyle.Render("you>"))
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case line == "/quit" || line == "/exit":
			return nil
		case line == "/record":
			s.startRecording(ctx)
		case line == "/stop":
			s.stopRecording(ctx)
		case line == "/send":
			s.submit(ctx, "")
		case strings.HasPrefix(line, "/image "):
			s.attachImage(strings.TrimSpace(strings.TrimPrefix(line, "/image ")))
		case strings.HasPrefix(line, "/"):
			s.printf("%s\n", noticeStyle.Render("Unknown command: "+line))
		default:
			s.submit(ctx, line)
		}
	}

	return scanner.Err()
}

// submitOnce handles the non-interactive --message / --image path.
func (s *chatSession) submitOnce(ctx context.Context, message, imagePath string) error {
	if imagePath != "" {
		s.attachImage(imagePath)
		if s.pendingImage == "" {
			return fmt.Errorf("failed to attach image %s", imagePath)
		}
	}

	turn, err := s.normalizer.Finalize(&internal.PendingTurn{
		Text:         message,
		ImageDataURI: s.pendingImage,
	})
	if err != nil {
		return err
	}

	result, err := s.orch.SubmitTurn(ctx, turn, s.conversationID)
	if err != nil {
		return err
	}

	s.printf("%s %s\n", assistantStyle.Render("cloudwhisper>"), result.AssistantMessage.Text)
	if result.AnalysisFailed {
		s.printf("%s\n", noticeStyle.Render("The analysis could not be completed; please resubmit."))
	}
	s.printf("%s\n", hintStyle.Render("conversation: "+result.ConversationID))
	return nil
}

// submit sends the composed turn (typed line + pending transcript + pending
// image) through the orchestrator.
func (s *chatSession) submit(ctx context.Context, line string) {
	turn, err := s.normalizer.Finalize(&internal.PendingTurn{
		Text:         internal.JoinTranscript(s.transcript, line),
		ImageDataURI: s.pendingImage,
	})
	if err != nil {
		if errors.Is(err, internal.ErrEmptyTurn) {
			s.printf("%s\n", noticeStyle.Render("Nothing to send: type a message or attach an image first."))
			return
		}
		s.printf("%s\n", noticeStyle.Render("Could not submit: "+err.Error()))
		return
	}

	var result *internal.TurnResult
	err = internal.ShowProgress(ctx, "CloudWhisper is thinking...", func() error {
		var submitErr error
		result, submitErr = s.orch.SubmitTurn(ctx, turn, s.conversationID)
		return submitErr
	})
	if err != nil {
		s.printf("%s\n", noticeStyle.Render("Could not submit: "+err.Error()))
		return
	}

	// The pending turn is discarded once submitted.
	s.pendingImage = ""
	s.transcript = ""
	s.conversationID = result.ConversationID

	s.printf("\n%s %s\n\n", assistantStyle.Render("cloudwhisper>"), result.AssistantMessage.Text)
	if result.AnalysisFailed {
		s.printf("%s\n\n", noticeStyle.Render("The analysis could not be completed; please resubmit."))
	}
}

func (s *chatSession) attachImage(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		s.printf("%s\n", noticeStyle.Render("Could not read image: "+err.Error()))
		return
	}

	mimeType := mimeTypeForImage(path)
	s.pendingImage = internal.EncodeDataURI(mimeType, data)
	s.printf("%s\n", hintStyle.Render("Attached "+filepath.Base(path)+" to the next message."))
}

func (s *chatSession) startRecording(ctx context.Context) {
	if err := s.recorder.Start(ctx); err != nil {
		if errors.Is(err, internal.ErrAlreadyRecording) {
			s.printf("%s\n", noticeStyle.Render("Already recording; use /stop to finish."))
			return
		}
		s.printf("%s\n", noticeStyle.Render("Microphone unavailable: "+err.Error()))
		return
	}
	s.printf("%s\n", hintStyle.Render("Recording... use /stop to finish."))
}

func (s *chatSession) stopRecording(ctx context.Context) {
	payload, err := s.recorder.Stop()
	if err != nil {
		s.printf("%s\n", noticeStyle.Render("Recording failed: "+err.Error()))
		return
	}
	if payload == "" {
		s.printf("%s\n", hintStyle.Render("Nothing recorded."))
		return
	}

	turn := &internal.PendingTurn{Text: s.transcript}
	if err := s.normalizer.AttachAudio(ctx, turn, payload); err != nil {
		// Non-fatal: typed text and image still submit without the transcript.
		s.printf("%s\n", noticeStyle.Render("Transcription failed; continue with typed text."))
		return
	}
	s.transcript = turn.Text
	s.printf("%s\n", hintStyle.Render("Transcribed: "+s.transcript))
}

// mimeTypeForImage guesses the MIME type from the filename, defaulting to PNG.
func mimeTypeForImage(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/png"
	}
}
