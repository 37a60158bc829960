// Package speech converts voice-message audio to text. Transcoding goes
// through an external ffmpeg binary and recognition through the Google
// Speech-to-Text API; both are treated as black boxes by the rest of the
// system.
package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os/exec"
	"strconv"

	"google.golang.org/api/option"
	speech "google.golang.org/api/speech/v1"
)

// ErrNoSpeech is returned when the recognizer produced no transcript for the
// given audio.
var ErrNoSpeech = errors.New("could not understand audio")

// Transcriber converts raw voice-message audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Config configures the Google transcriber.
type Config struct {
	CredentialsPath string
	Language        string
	SampleRateHertz int
	FFmpegPath      string
}

// GoogleTranscriber implements Transcriber on top of the Google
// Speech-to-Text v1 API.
type GoogleTranscriber struct {
	service *speech.Service
	cfg     Config
}

// NewGoogleTranscriber builds the API client. With an empty credentials path
// the client falls back to application default credentials.
func NewGoogleTranscriber(ctx context.Context, cfg Config) (*GoogleTranscriber, error) {
	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}
	service, err := speech.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech service: %w", err)
	}
	if cfg.Language == "" {
		cfg.Language = "ru-RU"
	}
	if cfg.SampleRateHertz == 0 {
		cfg.SampleRateHertz = 48000
	}
	if cfg.FFmpegPath == "" {
		cfg.FFmpegPath = "ffmpeg"
	}
	return &GoogleTranscriber{service: service, cfg: cfg}, nil
}

// Transcribe transcodes the audio to LINEAR16 and sends it for recognition.
func (t *GoogleTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	wav, err := t.transcode(ctx, audio)
	if err != nil {
		return "", fmt.Errorf("failed to transcode audio: %w", err)
	}

	resp, err := t.service.Speech.Recognize(&speech.RecognizeRequest{
		Config: &speech.RecognitionConfig{
			Encoding:        "LINEAR16",
			SampleRateHertz: int64(t.cfg.SampleRateHertz),
			LanguageCode:    t.cfg.Language,
		},
		Audio: &speech.RecognitionAudio{
			Content: base64.StdEncoding.EncodeToString(wav),
		},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("speech recognition request failed: %w", err)
	}

	for _, result := range resp.Results {
		for _, alt := range result.Alternatives {
			if alt.Transcript != "" {
				return alt.Transcript, nil
			}
		}
	}
	return "", ErrNoSpeech
}

// transcode pipes the voice note (OGG/Opus from Telegram) through ffmpeg into
// a single-channel LINEAR16 WAV at the configured sample rate.
func (t *GoogleTranscriber) transcode(ctx context.Context, audio []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, t.cfg.FFmpegPath,
		"-i", "pipe:0",
		"-f", "wav",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(t.cfg.SampleRateHertz),
		"-ac", "1",
		"pipe:1",
	)
	cmd.Stdin = bytes.NewReader(audio)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg: %w: %s", err, stderr.String())
	}
	return out.Bytes(), nil
}
