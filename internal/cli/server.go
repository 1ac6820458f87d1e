package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"buzzer-board-service/internal/app"
	"buzzer-board-service/internal/config"
	"buzzer-board-service/internal/domain"
	"buzzer-board-service/internal/infra/memory"
	pgloader "buzzer-board-service/internal/infra/postgres"
	redisinfra "buzzer-board-service/internal/infra/redis"
	transport "buzzer-board-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

const defaultBoardID = "demo-board"

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the buzzer round server",
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
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	boardID := cfg.Board.ID
	if boardID == "" {
		boardID = defaultBoardID
	}

	var loader memory.BoardLoader = memory.NewStaticBoardLoader(sampleBoards(boardID))
	if pool != nil {
		loader = pgloader.NewBoardLoader(pool)
	}

	boardTTL := config.TTLDuration(cfg.Board.TTL, 10*time.Minute)
	var boardRepo app.BoardRepository
	if redisClient != nil {
		boardRepo = redisinfra.NewBoardRepository(redisClient, loader, boardTTL)
	} else {
		boardRepo = memory.NewBoardRepository(loader, boardTTL)
	}

	var mirror app.ScoreMirror
	if redisClient != nil {
		mirror = redisinfra.NewScoreMirror(redisClient, config.TTLDuration(cfg.Redis.TTL, 24*time.Hour))
	}

	service := app.NewGameService(boardRepo, mirror)
	if err := service.LoadSession(ctx, boardID); err != nil {
		return err
	}
	for _, team := range cfg.Board.Teams {
		if err := service.CreateTeam(ctx, team); err != nil {
			return err
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	transport.NewHandler(service).Register(mux)
	mux.HandleFunc("/ws/host", transport.NewHostFeed(service).ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting buzzer board service on :%s (board %s)", finalPort, boardID)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleBoards provides a ready-to-play board for demos; configure Postgres
// to load real boards instead.
func sampleBoards(boardID string) map[string]domain.Board {
	return map[string]domain.Board{
		boardID: {
			ID:    boardID,
			Title: "The Grand Prize",
			Categories: []domain.Category{
				{
					Name: "Geography",
					Questions: map[int]domain.Question{
						10: {Prompt: "Which city is the capital of France?", Answers: []string{"Paris", "Berlin", "Rome", "Madrid"}, CorrectIndex: 0},
						20: {Prompt: "Which river flows through Budapest?", Answers: []string{"Danube", "Elbe", "Thames", "Rhine"}, CorrectIndex: 0},
						30: {Prompt: "Which continent has the most countries?", Answers: []string{"Africa", "Europe", "Asia", "South America"}, CorrectIndex: 0},
					},
				},
				{
					Name: "Science",
					Questions: map[int]domain.Question{
						10: {Prompt: "What is the chemical formula of water?", Answers: []string{"H2O", "CO2", "NaCl", "O2"}, CorrectIndex: 0},
						20: {Prompt: "How many planets does our solar system have?", Answers: []string{"8", "7", "9", "10"}, CorrectIndex: 0},
						30: {Prompt: "What is the process by which plants turn light into energy?", Answers: []string{"Photosynthesis", "Fermentation", "Metabolism", "Osmosis"}, CorrectIndex: 0},
					},
				},
				{
					Name: "Sports",
					Questions: map[int]domain.Question{
						10: {Prompt: "How many players per football team are on the pitch?", Answers: []string{"11", "9", "10", "12"}, CorrectIndex: 0},
						20: {Prompt: "In which sport is Serena Williams a legend?", Answers: []string{"Tennis", "Basketball", "Golf", "Athletics"}, CorrectIndex: 0},
						30: {Prompt: "Which country hosted the 2016 Olympic Games?", Answers: []string{"Brazil", "China", "Great Britain", "Greece"}, CorrectIndex: 0},
					},
				},
			},
		},
	}
}
