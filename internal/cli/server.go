package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"tg-quiz-webapp/internal/app"
	"tg-quiz-webapp/internal/config"
	"tg-quiz-webapp/internal/domain"
	"tg-quiz-webapp/internal/infra/file"
	"tg-quiz-webapp/internal/infra/memory"
	pgstore "tg-quiz-webapp/internal/infra/postgres"
	redisstore "tg-quiz-webapp/internal/infra/redis"
	"tg-quiz-webapp/internal/infra/sqlite"
	"tg-quiz-webapp/internal/telegram"
	transport "tg-quiz-webapp/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the backend and the bot.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz API server (and the Telegram bot when a token is configured)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8000"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	loader := questionLoader(cfg, pool)
	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	var questions app.QuestionRepository
	if redisClient != nil {
		questions = redisstore.NewQuestionRepository(redisClient, loader, quizTTL)
	} else {
		questions = memory.NewQuestionRepository(loader, quizTTL)
	}

	var progress app.ProgressStore
	switch {
	case pool != nil:
		progress = pgstore.NewProgressStore(pool)
	case cfg.SQLite.Path != "":
		store, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		progress = store
	case redisClient != nil:
		progress = redisstore.NewProgressStore(redisClient)
	default:
		log.Printf("no database configured, progress is kept in memory")
		progress = memory.NewProgressStore()
	}

	service := app.NewQuizService(questions, progress, cfg.Quiz.SetID)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	transport.NewAPIHandler(service).Register(mux)
	mux.HandleFunc("/ws/stats", transport.NewWSHandler(service).ServeWS)
	if cfg.Server.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(cfg.Server.StaticDir)))
	}

	if cfg.Telegram.Token != "" {
		bot, err := telegram.NewBot(cfg.Telegram.Token, cfg.Telegram.WebAppURL, service)
		if err != nil {
			return err
		}
		go bot.Start(ctx)
	}

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return server.Shutdown(shutdownCtx)
}

// questionLoader prefers Postgres, then the YAML file, then the built-in set.
// An unseeded Postgres table falls through to the file or built-in set.
func questionLoader(cfg config.Config, pool *pgxpool.Pool) memory.QuestionLoader {
	local := localQuestionLoader(cfg)
	if pool != nil {
		return memory.NewFallbackQuestionLoader(pgstore.NewQuestionLoader(pool), local)
	}
	return local
}

func localQuestionLoader(cfg config.Config) memory.QuestionLoader {
	if path := cfg.Quiz.QuestionsFile; path != "" {
		if _, err := os.Stat(path); err == nil {
			return file.NewQuestionLoader(path)
		}
		log.Printf("questions file %s not found, using built-in questions", path)
	}
	return memory.NewStaticQuestionLoader(defaultSet(cfg))
}

func fileOrDefaultQuestionSet(ctx context.Context, cfg config.Config) (domain.QuestionSet, error) {
	if path := cfg.Quiz.QuestionsFile; path != "" {
		if _, err := os.Stat(path); err == nil {
			return file.NewQuestionLoader(path).LoadQuestionSet(ctx, setID(cfg))
		}
	}
	return defaultSet(cfg), nil
}

func defaultSet(cfg config.Config) domain.QuestionSet {
	set := domain.DefaultQuestionSet()
	set.ID = setID(cfg)
	return set
}

func setID(cfg config.Config) string {
	if cfg.Quiz.SetID != "" {
		return cfg.Quiz.SetID
	}
	return domain.DefaultQuestionSet().ID
}
