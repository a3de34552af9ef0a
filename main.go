package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordduel/internal/config"
	"github.com/robalobadob/wordduel/internal/daily"
	"github.com/robalobadob/wordduel/internal/game"
	"github.com/robalobadob/wordduel/internal/httpserver"
	"github.com/robalobadob/wordduel/internal/store"
	"github.com/robalobadob/wordduel/internal/telemetry"
	"github.com/robalobadob/wordduel/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.OTelEnabled {
		shutdown, err := telemetry.Setup(ctx, "wordduel")
		if err != nil {
			log.Warn().Err(err).Msg("tracing disabled")
		} else {
			defer func() {
				sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdown(sctx)
			}()
		}
	}

	// The server answers immediately; rounds reject secrets and guesses as
	// invalid until the list is in.
	dict := &words.Dictionary{}
	go func() {
		list, err := words.Load(cfg.WordsFile)
		if err != nil {
			log.Warn().Err(err).Str("file", cfg.WordsFile).Msg("failed to load word list")
			return
		}
		dict.Replace(list)
		log.Info().Int("words", dict.Len()).Msg("word list loaded")
	}()

	var picker game.Picker = words.RandomPicker{}
	if cfg.SoloPicker == config.PickerDaily {
		picker = daily.Picker{Salt: cfg.DailySalt}
	}

	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, dict, picker, httpserver.Options{
		ClientOrigin:  cfg.ClientOrigin,
		SessionSecret: cfg.SessionSecret,
		TokenTTL:      cfg.SessionTTL,
		RevealStep:    cfg.RevealStep,
	})
	go srv.RunSweeper(ctx, cfg.SessionTTL)

	hs := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = hs.Shutdown(sctx)
	}()

	log.Info().Str("port", cfg.Port).Str("picker", cfg.SoloPicker).Msg("starting wordduel server")
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}
}
