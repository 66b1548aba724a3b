// RecipeFlow is a terminal cooking guide: browse a recipe catalog, open a
// recipe, tick off steps and run step timers while you cook.
//
// Usage:
//
//	recipeflow [-verbose] [-quiet] [-catalog recipes.yaml] [-voice]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/recipeflow/internal/catalog"
	"github.com/hammamikhairi/recipeflow/internal/conversation"
	"github.com/hammamikhairi/recipeflow/internal/display"
	"github.com/hammamikhairi/recipeflow/internal/domain"
	"github.com/hammamikhairi/recipeflow/internal/events"
	"github.com/hammamikhairi/recipeflow/internal/logger"
	"github.com/hammamikhairi/recipeflow/internal/session"
	"github.com/hammamikhairi/recipeflow/internal/speech"
	"github.com/hammamikhairi/recipeflow/internal/timer"
)

// Environment overrides, usually set in .env.
const (
	EnvCatalog  = "RECIPEFLOW_CATALOG"   // catalog file instead of the built-in one
	EnvLogLevel = "RECIPEFLOW_LOG_LEVEL" // off, normal or verbose
)

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".recipeflow-logs/recipeflow.log", "file to write logs to (use \"stderr\" to log to console)")
	catalogPath := flag.String("catalog", os.Getenv(EnvCatalog), "YAML or JSON recipe catalog (default: built-in)")
	tick := flag.Duration("tick", time.Second, "timer cadence; each pulse takes one second off every running timer")
	reminders := flag.Duration("remind-every", 2*time.Minute, "spoken reminder interval for running timers (0 disables)")
	noSound := flag.Bool("no-sound", false, "disable chimes and text-to-speech")
	cacheDir := flag.String("cache-dir", ".recipeflow-cache", "directory for the TTS audio cache (empty keeps it in memory)")
	voice := flag.Bool("voice", false, "enable voice input via local Whisper STT")
	whisperBin := flag.String("whisper-bin", "whisper-cli", "path to the whisper-cpp CLI binary")
	whisperModel := flag.String("whisper-model", "bin/ggml-small.bin", "path to the Whisper GGML model file")
	recordSecs := flag.Int("record-secs", 1, "seconds per voice recording chunk")
	flag.Parse()

	logLevel, err := logger.ParseLevel(os.Getenv(EnvLogLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %s: %v\n", EnvLogLevel, err)
	}
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Logs go to a file by default so the prompt stays clean.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		if dir := filepath.Dir(*logFile); dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Third-party libs (the whisper transcriber) log through the standard
	// package; send that to the same place.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src, err := loadCatalog(*catalogPath, log.Named("catalog"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// The UI reads timers from the session, and the session's events go
	// through the notifier that prints on the UI. Break the cycle with a
	// late-bound source.
	var sess *session.Session
	ui := display.NewUI(timerSourceFunc(func() []domain.Timer {
		if sess == nil {
			return nil
		}
		return sess.Timers()
	}))

	recorder := conversation.NewRecorder(conversation.NewCLINotifier(log, ui.PrintChat, ui.PrintUrgent), 20)
	var notifier domain.Notifier = recorder

	var v *speech.Voice
	if !*noSound {
		v = buildVoice(ctx, *cacheDir, log.Named("speech"))
		if v != nil {
			notifier = speech.NewSpeakingNotifier(recorder, v, log.Named("speech"))
		}
	}

	dispatcher := events.NewDispatcher(notifier, log.Named("events"))
	go dispatcher.Run(ctx)

	sess, err = session.New(ctx, src, log.Named("session"),
		session.WithCadence(timer.NewTicker(log.Named("cadence"), timer.WithTickInterval(*tick))),
		session.WithEvents(dispatcher),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer sess.Close()

	watcher := events.NewWatcher(sess, notifier, log.Named("watcher"),
		events.WithReminderEvery(*reminders),
	)
	go watcher.Run(ctx)

	var ear *speech.Ear
	if *voice {
		if _, err := os.Stat(*whisperModel); err != nil {
			fmt.Fprintf(os.Stderr, "error: whisper model not found at %s\n", *whisperModel)
			os.Exit(1)
		}
		const sttDir = ".recipeflow-stt"
		os.MkdirAll(sttDir, 0o755)
		rec := speech.NewWhisperTranscriber(*whisperBin, *whisperModel, sttDir, log.Named("ear"))
		ear = speech.NewEar(rec, v, log.Named("ear"),
			speech.WithChunkDuration(time.Duration(*recordSecs)*time.Second),
		)
		go ear.Run(ctx)
		log.Info("voice input enabled (bin=%s, model=%s, chunk=%ds)", *whisperBin, *whisperModel, *recordSecs)
	}

	app := &cliApp{
		session:  sess,
		parser:   conversation.NewKeywordParser(log.Named("parser")),
		recorder: recorder,
		voice:    v,
		ear:      ear,
		log:      log,
		ui:       ui,
	}

	fmt.Println(display.RenderBanner())
	if ear != nil {
		fmt.Println(display.BannerStyle.Render("  Voice mode ON. Say \"Hey Chef\" then a command, or type."))
	}
	fmt.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	go func() {
		ui.WaitReady()
		app.run(ctx)
		ui.Quit()
	}()

	// Bubble Tea owns the terminal until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
}

type timerSourceFunc func() []domain.Timer

func (f timerSourceFunc) Timers() []domain.Timer { return f() }

func loadCatalog(path string, log *logger.Logger) (*catalog.MemorySource, error) {
	if path == "" {
		return catalog.NewMemorySource(log)
	}
	log.Info("loading catalog from %s", path)
	return catalog.LoadFile(path, log)
}

// buildVoice opens the audio device and, when Azure credentials are set,
// attaches TTS. Returns nil when no audio device is available.
func buildVoice(ctx context.Context, cacheDir string, log *logger.Logger) *speech.Voice {
	player, err := speech.NewPlayer(log)
	if err != nil {
		log.Error("audio player init failed, sound disabled: %v", err)
		return nil
	}

	var opts []speech.VoiceOption
	key := os.Getenv(speech.EnvAzureSpeechKey)
	region := os.Getenv(speech.EnvAzureSpeechRegion)
	if key != "" && region != "" {
		var azureOpts []speech.AzureOption
		if name := os.Getenv(speech.EnvAzureSpeechVoice); name != "" {
			azureOpts = append(azureOpts, speech.WithVoice(name))
		}
		tts := speech.NewAzureClient(key, region, log, azureOpts...)
		opts = append(opts,
			speech.WithSynthesizer(tts),
			speech.WithCache(speech.NewAudioCache(tts.Voice(), cacheDir, log)),
		)
		log.Info("TTS enabled (voice=%s, region=%s)", tts.Voice(), region)
	} else {
		log.Info("TTS disabled: set %s and %s to enable; chimes only", speech.EnvAzureSpeechKey, speech.EnvAzureSpeechRegion)
	}

	v := speech.NewVoice(player, log, opts...)
	v.Start(ctx)
	return v
}
