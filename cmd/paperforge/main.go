package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/Avi0425/Paper-Forge-AI/internal/assistant"
	"github.com/Avi0425/Paper-Forge-AI/internal/citation"
	"github.com/Avi0425/Paper-Forge-AI/internal/config"
	"github.com/Avi0425/Paper-Forge-AI/internal/corpus"
	"github.com/Avi0425/Paper-Forge-AI/internal/filestore"
	"github.com/Avi0425/Paper-Forge-AI/internal/handler"
	"github.com/Avi0425/Paper-Forge-AI/internal/job"
	"github.com/Avi0425/Paper-Forge-AI/internal/middleware"
	"github.com/Avi0425/Paper-Forge-AI/internal/repo"
	"github.com/Avi0425/Paper-Forge-AI/internal/schedule"
	"github.com/Avi0425/Paper-Forge-AI/internal/service"
)

func main() {
	var configPath string
	var seedDir string

	rootCmd := &cobra.Command{
		Use:   "paperforge",
		Short: "paperforge analysis server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run paperforge server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			return runServer(cfg)
		},
	}
	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")

	seedCmd := &cobra.Command{
		Use:   "seed-corpus",
		Short: "load reference documents from a directory into the corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if seedDir == "" {
				return fmt.Errorf("--dir is required")
			}
			return seedCorpus(cfg, seedDir)
		},
	}
	seedCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	seedCmd.Flags().StringVar(&seedDir, "dir", "", "directory of .txt/.md reference documents")

	rootCmd.AddCommand(runCmd, seedCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		return nil, fmt.Errorf("--config is required")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger.Init(
		cfg.LogConfig.File,
		cfg.LogConfig.Level,
		int(cfg.LogConfig.FileCount),
		int(cfg.LogConfig.FileSize),
		int(cfg.LogConfig.KeepDays),
		cfg.LogConfig.Console,
	)
	logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))
	return cfg, nil
}

func runServer(cfg *config.Config) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("db_path", cfg.DBPath),
		zap.String("citation_source", cfg.Citation.Source),
		zap.String("assistant", cfg.Assistant.Provider),
	)

	db, err := repo.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}

	projectRepo := repo.NewProjectRepo(db)
	sessionRepo := repo.NewSessionRepo(db)
	corpusRepo := repo.NewCorpusRepo(db)

	source, err := citation.NewSource(cfg.Citation.Source, cfg.Citation.Data)
	if err != nil {
		return fmt.Errorf("init citation source: %w", err)
	}
	source = citation.WrapLRUCache(source, cfg.Citation.CacheSize, time.Duration(cfg.Citation.CacheTTLMinutes)*time.Minute)

	responder, err := assistant.NewResponder(cfg.Assistant.Provider, cfg.Assistant.Data)
	if err != nil {
		return fmt.Errorf("init assistant: %w", err)
	}

	store, err := filestore.New(cfg.FileStore)
	if err != nil {
		return fmt.Errorf("init file store: %w", err)
	}

	matcher, err := corpus.New(cfg.Corpus.Provider, corpus.CreateArgs{
		Sources:     corpusRepo,
		MinRunWords: cfg.Corpus.MinRunWords,
		Data:        cfg.Corpus.Data,
	})
	if err != nil {
		return fmt.Errorf("init corpus provider: %w", err)
	}

	citationService := service.NewCitationService(source, cfg.Citation.SuggestLimit)
	plagiarismService := service.NewPlagiarismService(matcher)
	projectService := service.NewProjectService(projectRepo)
	workflowService := service.NewWorkflowService(citationService, plagiarismService, projectService)
	chatService := service.NewChatService(sessionRepo, responder, time.Duration(cfg.Assistant.TimeoutSeconds)*time.Second)
	corpusService := service.NewCorpusService(corpusRepo)
	exportService := service.NewExportService(store)

	deps := handler.RouterDeps{
		Projects:  handler.NewProjectHandler(projectService, workflowService, plagiarismService, exportService),
		Citations: handler.NewCitationHandler(citationService),
		Chat:      handler.NewChatHandler(chatService),
		Corpus:    handler.NewCorpusHandler(corpusService),
		Artifacts: handler.NewArtifactHandler(store),
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSAllowlist),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	retention := time.Duration(cfg.Jobs.SessionRetentionDays) * 24 * time.Hour
	if err := scheduler.AddJob(job.NewSessionCleanupJob(chatService, retention), cfg.Jobs.SessionCleanupCron); err != nil {
		return fmt.Errorf("schedule session cleanup: %w", err)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}

func seedCorpus(cfg *config.Config, dir string) error {
	db, err := repo.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	corpusService := service.NewCorpusService(repo.NewCorpusRepo(db))

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir: %w", err)
	}
	ctx := context.Background()
	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".txt" && ext != ".md" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		if _, err := corpusService.Add(ctx, entry.Name(), string(data)); err != nil {
			return fmt.Errorf("add %s: %w", entry.Name(), err)
		}
		loaded++
	}
	logutil.GetLogger(ctx).Info("corpus seeded", zap.Int("documents", loaded), zap.String("dir", dir))
	return nil
}
