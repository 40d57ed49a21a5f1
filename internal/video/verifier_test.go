// internal/video/verifier_test.go
package video

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"loan-workers/internal/common/logger"
)

// scriptRunner writes the output file for ffmpeg calls and returns canned
// output for everything else.
type scriptRunner struct {
	ffmpegErr   error
	skipFrame   bool
	detectorOut []byte
	detectorErr error

	calls [][]string
}

func (r *scriptRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	r.calls = append(r.calls, append([]string{name}, args...))
	if name == "ffmpeg" {
		if r.ffmpegErr != nil {
			return nil, []byte("moov atom not found"), r.ffmpegErr
		}
		if !r.skipFrame {
			if err := os.WriteFile(args[len(args)-1], []byte("png"), 0o600); err != nil {
				return nil, nil, err
			}
		}
		return nil, nil, nil
	}
	return r.detectorOut, nil, r.detectorErr
}

type MockFaceDetector struct {
	mock.Mock
}

func (m *MockFaceDetector) DetectFaces(ctx context.Context, framePath string) (int, error) {
	args := m.Called(ctx, framePath)
	return args.Int(0), args.Error(1)
}

func TestFrameExtractor_FirstFrame(t *testing.T) {
	dir := t.TempDir()
	runner := &scriptRunner{}
	fe := NewFrameExtractor("", dir, runner)

	frame, cleanup, err := fe.FirstFrame(context.Background(), "/uploads/answer.mp4")
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"ffmpeg", "-hide_banner", "-loglevel", "error", "-y", "-i", "/uploads/answer.mp4", "-frames:v", "1", frame}, runner.calls[0])
	_, err = os.Stat(frame)
	require.NoError(t, err)

	cleanup()
	_, err = os.Stat(frame)
	assert.True(t, os.IsNotExist(err))
}

func TestFrameExtractor_Errors(t *testing.T) {
	t.Run("ffmpeg fails", func(t *testing.T) {
		fe := NewFrameExtractor("ffmpeg", t.TempDir(), &scriptRunner{ffmpegErr: errors.New("exit status 1")})
		_, _, err := fe.FirstFrame(context.Background(), "/uploads/broken.mp4")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "moov atom not found")
	})

	t.Run("no frame written", func(t *testing.T) {
		fe := NewFrameExtractor("ffmpeg", t.TempDir(), &scriptRunner{skipFrame: true})
		_, _, err := fe.FirstFrame(context.Background(), "/uploads/empty.mp4")
		assert.Error(t, err)
	})
}

func TestCommandDetector_DetectFaces(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		err     error
		want    int
		wantErr bool
	}{
		{name: "one face", out: "120 80 64 64\n", want: 1},
		{name: "two faces", out: "120 80 64 64\n10 10 32 32\n", want: 2},
		{name: "no face", out: "", want: 0},
		{name: "blank lines ignored", out: "\n  \n", want: 0},
		{name: "detector fails", err: errors.New("exit status 2"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &scriptRunner{detectorOut: []byte(tt.out), detectorErr: tt.err}
			d := NewCommandDetector("", []string{"--cascade", "frontal"}, runner)

			got, err := d.DetectFaces(context.Background(), "/tmp/frame.png")

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, []string{"facedetect", "--cascade", "frontal", "/tmp/frame.png"}, runner.calls[0])
		})
	}
}

func TestVerifier_VerifyFace(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		runner    *scriptRunner
		faces     int
		detectErr error
		want      bool
		detects   bool
	}{
		{name: "face found", path: "/v/a.mp4", runner: &scriptRunner{}, faces: 1, want: true, detects: true},
		{name: "no face", path: "/v/a.webm", runner: &scriptRunner{}, faces: 0, want: false, detects: true},
		{name: "upper case extension", path: "/v/a.MOV", runner: &scriptRunner{}, faces: 3, want: true, detects: true},
		{name: "unsupported format", path: "/v/a.avi", runner: &scriptRunner{}, want: false},
		{name: "ffmpeg error", path: "/v/a.mp4", runner: &scriptRunner{ffmpegErr: errors.New("exit status 1")}, want: false},
		{name: "detector error", path: "/v/a.mp4", runner: &scriptRunner{}, detectErr: errors.New("boom"), want: false, detects: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detector := new(MockFaceDetector)
			if tt.detects {
				detector.On("DetectFaces", mock.Anything, mock.AnythingOfType("string")).Return(tt.faces, tt.detectErr)
			}

			v := NewVerifier(NewFrameExtractor("ffmpeg", t.TempDir(), tt.runner), detector, nil, logger.NewTestLogger(t))

			assert.Equal(t, tt.want, v.VerifyFace(context.Background(), tt.path))
			detector.AssertExpectations(t)
			if !tt.detects {
				detector.AssertNotCalled(t, "DetectFaces", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestVerifier_Supported(t *testing.T) {
	v := NewVerifier(nil, nil, []string{".mp4", "MKV"}, logger.NewNoOpLogger())

	assert.True(t, v.Supported("x.mp4"))
	assert.True(t, v.Supported("x.mkv"))
	assert.False(t, v.Supported("x.webm"))
	assert.False(t, v.Supported("noext"))
}
