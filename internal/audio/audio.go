// Package audio dispatches interrupting voice cues when a hair-pulling
// trigger is confirmed. Playback runs through an external player binary and
// never blocks the detection loop.
package audio

import (
	"log"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// DefaultPhrases are spoken when no recorded audio files are available and
// the platform has a speech command.
var DefaultPhrases = []string{
	"You're stronger than this urge!",
	"Keep your hands free!",
	"You've got this, stay strong!",
	"Take a deep breath and relax.",
}

// Dispatcher receives trigger notifications. Implementations must not block
// the caller.
type Dispatcher interface {
	// Dispatch is called once per confirmed trigger with its timestamp.
	Dispatch(ts time.Time)

	// Close stops the dispatcher and releases resources.
	Close() error
}

// playerCandidates are tried in order when locating an audio player binary.
var playerCandidates = []string{"afplay", "paplay", "aplay", "mpg123", "ffplay"}

// PlayerDispatcher plays a random cue from an audio directory via an
// external player, falling back to spoken phrases where the platform
// supports it. Requests arriving while a cue is already playing are dropped;
// back-to-back cues would only annoy.
type PlayerDispatcher struct {
	audioDir string
	player   string
	phrases  []string
	queue    chan time.Time
	wg       sync.WaitGroup
	once     sync.Once
}

// NewPlayerDispatcher creates a dispatcher reading cue files from audioDir.
// The phrase list is used for speech fallback; pass nil for DefaultPhrases.
func NewPlayerDispatcher(audioDir string, phrases []string) *PlayerDispatcher {
	if len(phrases) == 0 {
		phrases = DefaultPhrases
	}

	d := &PlayerDispatcher{
		audioDir: audioDir,
		player:   findPlayer(),
		phrases:  phrases,
		queue:    make(chan time.Time, 1),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

// Dispatch queues one cue. Never blocks; a cue already queued or playing
// absorbs this trigger.
func (d *PlayerDispatcher) Dispatch(ts time.Time) {
	select {
	case d.queue <- ts:
	default:
	}
}

// Close stops the playback goroutine. Pending cues are dropped.
func (d *PlayerDispatcher) Close() error {
	d.once.Do(func() { close(d.queue) })
	d.wg.Wait()
	return nil
}

func (d *PlayerDispatcher) run() {
	defer d.wg.Done()
	for range d.queue {
		d.play()
	}
}

func (d *PlayerDispatcher) play() {
	if file := d.randomAudioFile(); file != "" && d.player != "" {
		if err := exec.Command(d.player, file).Run(); err != nil {
			log.Printf("Error playing audio file %s: %v", file, err)
		}
		return
	}

	// No audio files: speak a phrase where the platform allows it.
	phrase := d.randomPhrase()
	if phrase == "" {
		return
	}
	if runtime.GOOS == "darwin" {
		if err := exec.Command("say", phrase).Run(); err != nil {
			log.Printf("Error speaking phrase: %v", err)
		}
		return
	}
	if path, err := exec.LookPath("espeak"); err == nil {
		if err := exec.Command(path, phrase).Run(); err != nil {
			log.Printf("Error speaking phrase: %v", err)
		}
		return
	}
	log.Printf("Audio cue (no player available): %s", phrase)
}

// randomAudioFile returns a random .mp3/.wav from the audio directory, or
// empty when none exist.
func (d *PlayerDispatcher) randomAudioFile() string {
	if d.audioDir == "" {
		return ""
	}

	entries, err := os.ReadDir(d.audioDir)
	if err != nil {
		return ""
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.ToLower(e.Name())
		if strings.HasSuffix(name, ".mp3") || strings.HasSuffix(name, ".wav") {
			files = append(files, filepath.Join(d.audioDir, e.Name()))
		}
	}
	if len(files) == 0 {
		return ""
	}
	return files[rand.Intn(len(files))]
}

func (d *PlayerDispatcher) randomPhrase() string {
	if len(d.phrases) == 0 {
		return ""
	}
	return d.phrases[rand.Intn(len(d.phrases))]
}

// findPlayer locates an installed audio player binary.
func findPlayer() string {
	for _, candidate := range playerCandidates {
		if path, err := exec.LookPath(candidate); err == nil {
			return path
		}
	}
	return ""
}
