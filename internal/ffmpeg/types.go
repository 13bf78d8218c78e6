package ffmpeg

import "time"

// VideoInfo contains metadata about a video file
type VideoInfo struct {
	FilePath     string
	Duration     time.Duration
	Width        int
	Height       int
	FPS          float64
	Bitrate      int64
	VideoCodec   string
	HasAudio     bool
	AudioCodec   string
	AudioBitrate int64
}

// Progress represents ffmpeg progress data
type Progress struct {
	Frame   int
	FPS     float64
	Bitrate string
	Time    string
	Speed   string
}

// RunOptions configures ffmpeg execution
type RunOptions struct {
	Args            []string
	ProgressHandler func(*Progress)
	LogHandler      func(line string)
}

// Default encoding settings
const (
	DefaultCRF           = 23
	DefaultPreset        = "medium"
	DefaultVideoCodec    = "libx264"
	DefaultAudioCodec    = "aac"
	DefaultPixelFormat   = "yuv420p"
	DefaultAudioRate     = 48000
	DefaultAudioChannels = 2
)

// EncodeSettings is shared by every segment of one render so that the
// pieces can be concatenated
type EncodeSettings struct {
	VideoCodec string
	AudioCodec string
	CRF        int
	Preset     string
}

// withDefaults fills unset fields
func (s EncodeSettings) withDefaults() EncodeSettings {
	if s.VideoCodec == "" {
		s.VideoCodec = DefaultVideoCodec
	}
	if s.AudioCodec == "" {
		s.AudioCodec = DefaultAudioCodec
	}
	if s.CRF == 0 {
		s.CRF = DefaultCRF
	}
	if s.Preset == "" {
		s.Preset = DefaultPreset
	}
	return s
}

// RenderOptions configures RenderEditList
type RenderOptions struct {
	WorkDir string
	FadeIn  time.Duration
	Spacer  time.Duration
	// Transition is how long the first color clip after the last
	// monochrome one takes to regain its saturation
	Transition   time.Duration
	Workers      int
	Encode       EncodeSettings
	ShowProgress bool

	// Info skips probing the input when the caller already has it
	Info *VideoInfo
}

// ProgressFunc is a callback for progress updates during ffmpeg operations.
// Called periodically with progress information as the operation executes.
type ProgressFunc func(*Progress)
