package main

import (
	"context"
	"crypto/rsa"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tablero-app/tablero/internal/application/auth"
	"github.com/tablero-app/tablero/internal/application/authz"
	"github.com/tablero-app/tablero/internal/application/boards"
	"github.com/tablero-app/tablero/internal/application/comments"
	"github.com/tablero-app/tablero/internal/application/labels"
	"github.com/tablero-app/tablero/internal/application/ports"
	"github.com/tablero-app/tablero/internal/application/projects"
	"github.com/tablero-app/tablero/internal/application/tasks"
	"github.com/tablero-app/tablero/internal/config"
	infraauth "github.com/tablero-app/tablero/internal/infrastructure/auth"
	httprouter "github.com/tablero-app/tablero/internal/infrastructure/http"
	"github.com/tablero-app/tablero/internal/infrastructure/http/handlers"
	"github.com/tablero-app/tablero/internal/infrastructure/http/middleware"
	"github.com/tablero-app/tablero/internal/infrastructure/persistence/postgres"
	"github.com/tablero-app/tablero/internal/infrastructure/queue"
	"github.com/tablero-app/tablero/internal/infrastructure/security"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	healthHandler := handlers.NewHealthHandler(pool, redisClient)

	userRepo := postgres.NewUserRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	membershipRepo := postgres.NewMembershipRepository(pool)
	boardRepo := postgres.NewBoardRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	labelRepo := postgres.NewLabelRepository(pool)
	commentRepo := postgres.NewCommentRepository(pool)
	historyRepo := postgres.NewHistoryRepository(pool)

	var historyRecorder ports.HistoryRecorder
	var asynqWorker *queue.Worker
	if redisClient != nil {
		redisOpt, _ := redis.ParseURL(cfg.Redis.URL)
		asynqOpt := asynq.RedisClientOpt{Addr: redisOpt.Addr, Password: redisOpt.Password, DB: redisOpt.DB}
		recorder := queue.NewAsynqRecorder(asynqOpt, log)
		defer recorder.Close()
		historyRecorder = recorder
		asynqWorker = queue.NewWorker(asynqOpt, historyRepo, log)
		go func() {
			if err := asynqWorker.Run(); err != nil {
				log.Warn().Err(err).Msg("asynq worker stopped")
			}
		}()
	} else {
		historyRecorder = queue.NewDirectRecorder(historyRepo)
	}

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})

	pemBytes, err := cfg.LoadJWTPrivateKey()
	if err != nil {
		log.Fatal().Err(err).Msg("load JWT private key")
	}
	var privateKey *rsa.PrivateKey
	if pemBytes != nil {
		privateKey, err = infraauth.LoadRSAPrivateKeyFromPEM(pemBytes)
	} else {
		log.Warn().Msg("JWT_PRIVATE_KEY_PATH not set; using an ephemeral key")
		privateKey, err = infraauth.GenerateEphemeralKey()
	}
	if err != nil {
		log.Fatal().Err(err).Msg("prepare JWT private key")
	}
	issuer := infraauth.NewTokenIssuer(privateKey, cfg.JWT.Issuer, cfg.JWT.Audience)

	authority := authz.NewAuthority(membershipRepo)

	registerUC := auth.NewRegister(userRepo, hasher)
	loginUC := auth.NewLogin(userRepo, hasher, issuer, cfg.JWT.AccessExpiry)

	createProjectUC := projects.NewCreateProject(projectRepo, userRepo)
	listProjectsUC := projects.NewListProjects(projectRepo)
	getProjectUC := projects.NewGetProject(authority, projectRepo, membershipRepo, boardRepo, labelRepo)
	updateProjectUC := projects.NewUpdateProject(authority, projectRepo)
	deleteProjectUC := projects.NewDeleteProject(authority, projectRepo)
	addMemberUC := projects.NewAddMember(authority, membershipRepo, userRepo)
	removeMemberUC := projects.NewRemoveMember(authority, membershipRepo)

	createTaskUC := tasks.NewCreateTask(authority, taskRepo, boardRepo, membershipRepo, historyRecorder)
	getTaskUC := tasks.NewGetTask(authority, taskRepo, commentRepo, historyRepo)
	listTasksUC := tasks.NewListTasks(authority, taskRepo)
	updateTaskUC := tasks.NewUpdateTask(authority, taskRepo, membershipRepo, historyRecorder)
	moveTaskUC := tasks.NewMoveTask(authority, taskRepo, boardRepo, historyRecorder)
	deleteTaskUC := tasks.NewDeleteTask(authority, taskRepo)

	createLabelUC := labels.NewCreateLabel(authority, labelRepo)
	listLabelsUC := labels.NewListLabels(authority, labelRepo)
	updateLabelUC := labels.NewUpdateLabel(authority, labelRepo)
	deleteLabelUC := labels.NewDeleteLabel(authority, labelRepo)
	assignLabelUC := labels.NewAssignLabel(authority, labelRepo, taskRepo)
	unassignLabelUC := labels.NewUnassignLabel(authority, labelRepo, taskRepo)

	createCommentUC := comments.NewCreateComment(authority, commentRepo, taskRepo, userRepo, historyRecorder)
	listCommentsUC := comments.NewListComments(authority, commentRepo, taskRepo)
	updateCommentUC := comments.NewUpdateComment(commentRepo)
	deleteCommentUC := comments.NewDeleteComment(membershipRepo, commentRepo, taskRepo)

	createListUC := boards.NewCreateList(authority, boardRepo)
	moveListUC := boards.NewMoveList(authority, boardRepo)
	deleteListUC := boards.NewDeleteList(authority, boardRepo)
	deleteBoardUC := boards.NewDeleteBoard(authority, boardRepo)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.RatePerIP)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	userLimit, err := middleware.NewUserRateLimiter(cfg.RateLimit.RatePerUser)
	if err != nil {
		log.Fatal().Err(err).Msg("create user rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment))
	corsMiddleware := middleware.CORS(cfg.CORS.AllowedOrigins, nil, nil)
	requireJWT := middleware.NewAuthValidator(issuer).Handler

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:     handlers.NewAuthHandler(registerUC, loginUC, userRepo),
		HealthHandler:   healthHandler,
		ProjectsHandler: handlers.NewProjectsHandler(createProjectUC, listProjectsUC, getProjectUC, updateProjectUC, deleteProjectUC, addMemberUC, removeMemberUC),
		TasksHandler:    handlers.NewTasksHandler(createTaskUC, getTaskUC, listTasksUC, updateTaskUC, moveTaskUC, deleteTaskUC),
		LabelsHandler:   handlers.NewLabelsHandler(createLabelUC, listLabelsUC, updateLabelUC, deleteLabelUC, assignLabelUC, unassignLabelUC),
		CommentsHandler: handlers.NewCommentsHandler(createCommentUC, listCommentsUC, updateCommentUC, deleteCommentUC),
		BoardsHandler:   handlers.NewBoardsHandler(createListUC, moveListUC, deleteListUC, deleteBoardUC),
		RequireJWT:      requireJWT,
		Log:             log,
		CORS:            corsMiddleware,
		Secure:          secureMiddleware,
		IPRateLimit:     ipLimit,
		UserRateLimit:   userLimit,
		Metrics:         true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if asynqWorker != nil {
		asynqWorker.Shutdown()
	}
	log.Info().Msg("server stopped")
}
