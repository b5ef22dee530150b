package audio

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// contentTypeFormats maps declared content types to container formats.
// Matched by substring so values like "audio/webm;codecs=opus" resolve.
var contentTypeFormats = map[string]string{
	"audio/webm":  "webm",
	"video/webm":  "webm",
	"audio/ogg":   "ogg",
	"audio/mp4":   "mp4",
	"audio/mpeg":  "mp3",
	"audio/wav":   "wav",
	"audio/x-wav": "wav",
	"audio/flac":  "flac",
}

var extensionFormats = map[string]string{
	"webm": "webm",
	"ogg":  "ogg",
	"mp4":  "mp4",
	"m4a":  "mp4",
	"mp3":  "mp3",
	"wav":  "wav",
	"flac": "flac",
}

// Normalizer converts arbitrary uploaded audio into canonical mono
// 16 kHz 16-bit PCM WAV files. Decoding is delegated to ffmpeg, the
// same backend browser-recorded webm/ogg uploads need everywhere.
type Normalizer struct {
	TempDir    string
	FFmpegPath string
}

func NewNormalizer(tempDir string) *Normalizer {
	return &Normalizer{TempDir: tempDir, FFmpegPath: "ffmpeg"}
}

// DetectFormat resolves the container format of an uploaded blob.
// Priority: magic bytes, then declared content type, then filename
// extension, then webm (what browser recorders produce by default).
func DetectFormat(data []byte, contentType, filename string) string {
	if len(data) >= 12 {
		switch {
		case bytes.Equal(data[:4], []byte{0x1A, 0x45, 0xDF, 0xA3}):
			return "webm"
		case bytes.Equal(data[:4], []byte("OggS")):
			return "ogg"
		case bytes.Equal(data[:4], []byte("fLaC")):
			return "flac"
		case bytes.Equal(data[:3], []byte("ID3")) || bytes.Equal(data[:2], []byte{0xFF, 0xFB}):
			return "mp3"
		case bytes.Equal(data[4:8], []byte("ftyp")):
			return "mp4"
		case bytes.Equal(data[:4], []byte("RIFF")):
			return "wav"
		}
	}

	for key, format := range contentTypeFormats {
		if strings.Contains(contentType, key) {
			return format
		}
	}

	if i := strings.LastIndex(filename, "."); i >= 0 {
		if format, ok := extensionFormats[strings.ToLower(filename[i+1:])]; ok {
			return format
		}
	}
	return "webm"
}

// Normalize writes the upload to a uniquely-named temp file as
// canonical WAV. Already-canonical WAV input is written verbatim with
// no decode. When decoding fails the raw bytes are persisted under the
// detected format's extension instead: audio evaluation is best-effort,
// so conversion failure degrades rather than aborting the request.
// Every call allocates exactly one file; the caller deletes it.
func (n *Normalizer) Normalize(data []byte, contentType, filename string) (string, error) {
	format := DetectFormat(data, contentType, filename)

	logrus.WithFields(logrus.Fields{
		"filename":     filename,
		"content_type": contentType,
		"bytes":        len(data),
		"format":       format,
	}).Debug("audio upload received")

	if IsWAV(data) {
		wavPath := n.tempPath("wav")
		if err := os.WriteFile(wavPath, data, 0o644); err != nil {
			return "", fmt.Errorf("write wav: %w", err)
		}
		return wavPath, nil
	}

	wavPath, err := n.decode(data, format)
	if err == nil {
		return wavPath, nil
	}
	logrus.WithError(err).WithField("format", format).Warn("audio conversion failed, keeping raw upload")

	rawPath := n.tempPath(format)
	if werr := os.WriteFile(rawPath, data, 0o644); werr != nil {
		return "", fmt.Errorf("write raw audio: %w", werr)
	}
	return rawPath, nil
}

// decode shells out to ffmpeg to resample/downmix the blob to the
// canonical waveform. The detected format reaches ffmpeg as the input
// file's extension, which it uses as a demuxer hint.
func (n *Normalizer) decode(data []byte, format string) (string, error) {
	inPath := n.tempPath(format)
	if err := os.WriteFile(inPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write decode input: %w", err)
	}
	defer os.Remove(inPath)

	outPath := n.tempPath("wav")
	cmd := exec.Command(n.FFmpegPath,
		"-hide_banner", "-loglevel", "error",
		"-y", "-i", inPath,
		"-ac", strconv.Itoa(CanonicalChannels),
		"-ar", strconv.Itoa(CanonicalSampleRate),
		"-c:a", "pcm_s16le",
		"-f", "wav",
		outPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		os.Remove(outPath)
		return "", fmt.Errorf("ffmpeg %s decode: %v: %s", format, err, strings.TrimSpace(stderr.String()))
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		os.Remove(outPath)
		return "", fmt.Errorf("read decoded wav: %w", err)
	}
	if header, perr := ParseHeader(out); perr != nil || !header.Canonical() {
		os.Remove(outPath)
		return "", fmt.Errorf("decoded output is not canonical wav")
	}
	return outPath, nil
}

func (n *Normalizer) tempPath(ext string) string {
	return filepath.Join(n.TempDir, uuid.NewString()+"."+ext)
}
