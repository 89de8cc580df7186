package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"

	"zift.local/internal/api"
	"zift.local/internal/app"
	"zift.local/internal/config"
	"zift.local/internal/debugsrv"
	"zift.local/internal/identity"
	ncli "zift.local/internal/notion"
	"zift.local/internal/resume"
	"zift.local/internal/session"
	"zift.local/internal/shell"
	"zift.local/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	log.Println("=== Zift Startup Sanity ===")
	log.Println("API base URL:                 ", cfg.APIBaseURL)
	log.Println("Resume parser:                ", cfg.ResumeParserURL)
	log.Println("SQLite file:                  ", cfg.DBPath)
	log.Println("Google sign-in:               ", cfg.GoogleEnabled())
	if cfg.NotionEnabled() {
		log.Println("Using Notion DB ID (norm):   ", cfg.NotionDBID)
		log.Println("Using Notion Token (masked): ", config.Mask(cfg.NotionToken))
	}
	if cfg.DebugAddr != "" {
		log.Println("Debug HTTP:                   ", cfg.DebugAddr)
	}
	log.Println("===========================")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// SQLite
	db, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()

	st := store.New(db)
	if err := st.Migrate(ctx); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("SQLite ready at:", cfg.DBPath)

	sess := session.New(st)
	client := api.New(cfg.APIBaseURL, cfg.HTTPTimeout, sess)
	uploader := resume.NewUploader(cfg.ResumeParserURL, cfg.HTTPTimeout, client)

	var google identity.IDTokenSource
	if cfg.GoogleEnabled() {
		google = identity.NewGoogleSignIn(cfg.GoogleClientID, cfg.GoogleClientSecret, func(verificationURL, userCode string) {
			color.New(color.FgCyan, color.Bold).Fprintf(os.Stdout, "\nOpen %s and enter code %s\n", verificationURL, userCode)
		})
	}

	// Notion client + ping
	var (
		nc       *ncli.Client
		exporter *ncli.Exporter
	)
	if cfg.NotionEnabled() {
		nc = ncli.New(cfg.NotionToken, cfg.NotionDBID)
		pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if err := nc.Ping(pingCtx); err != nil {
			log.Printf("Notion ping failed: %v", err)
		} else {
			log.Println("Notion connection OK.")
		}
		cancel()
		exporter = ncli.NewExporter(nc, client, st)
	}

	a := app.New(client, sess, google)
	a.OnModeChange = func(m app.Mode) { log.Printf("[app] mode %s", m) }
	a.Start(ctx)

	if cfg.DebugAddr != "" {
		srv := debugsrv.New(a, sess, nc, exporter)
		go func() {
			if err := srv.Listen(ctx, cfg.DebugAddr); err != nil {
				log.Printf("debug server: %v", err)
			}
		}()
	}

	sh := shell.New(shell.Deps{
		App:            a,
		API:            client,
		Session:        sess,
		Resume:         uploader,
		Exporter:       exporter,
		SearchDebounce: cfg.SearchDebounce,
	}, os.Stdin, os.Stdout)
	if err := sh.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
