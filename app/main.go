package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"estate-go/app/cache"
	"estate-go/app/config"
	"estate-go/app/controllers"
	"estate-go/app/identity"
	"estate-go/app/metrics"
	"estate-go/app/routes"
	"estate-go/app/services"
	"estate-go/app/session"
	"estate-go/app/store"
	"estate-go/app/views"

	"github.com/gorilla/mux"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		stdlog.Fatal("Failed to load configuration: ", err)
	}
	logger := config.NewLogger(conf.App.LogLevel)

	// Initialize Neo4j connection
	neo4jDriver, err := config.InitNeo4j(conf.Neo4j)
	if err != nil {
		logger.Fatal("Failed to initialize Neo4j connection: ", err)
	}
	defer neo4jDriver.Close(context.Background())

	state := store.NewContainer()
	defer state.Reset()

	// Initialize the service layer
	profileService := services.NewProfileService(neo4jDriver, state)
	organisationService := services.NewOrganisationService(neo4jDriver, state)
	projectService := services.NewProjectService(neo4jDriver, state)
	phaseService := services.NewPhaseService(neo4jDriver, state)
	taskService := services.NewTaskService(neo4jDriver, state)
	requestService := services.NewRequestService(neo4jDriver, state)

	readModel := views.NewReadModel(state)
	defer readModel.Close()

	m := metrics.New()
	defer m.Observe(state)()

	syncer := services.NewSynchronizer(conf.App.SyncInterval, logger,
		services.Track(state.Profiles, profileService.ListProfiles),
		services.Track(state.Organisations, organisationService.ListOrganisations),
		services.Track(state.Projects, projectService.ListProjects),
		services.Track(state.Phases, phaseService.ListPhases),
		services.Track(state.Tasks, taskService.ListTasks),
		services.Track(state.Requests, requestService.ListRequests),
	)

	if conf.App.CachePath != "" {
		snapshots, err := cache.Open(conf.App.CachePath)
		if err != nil {
			logger.Fatal("Failed to open snapshot cache: ", err)
		}
		defer snapshots.Close()

		if snap, err := snapshots.Load(); err != nil {
			logger.Warnf("snapshot cache unreadable, starting cold: %v", err)
		} else {
			state.ImportState(snap)
		}
		syncer.OnRefresh(func() {
			if err := snapshots.Save(state.ExportState()); err != nil {
				logger.Warnf("snapshot cache: %v", err)
			}
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go syncer.Run(ctx)

	if conf.Backend.JWTSecret == "" {
		logger.Warn("BACKEND_JWT_SECRET is not set; every request is anonymous")
	}
	verifier := session.NewVerifier(conf.Backend.JWTSecret)
	admin := identity.NewAdminClient(conf.Backend.URL, conf.Backend.ServiceRoleKey)

	// Initialize the controller layer
	handlers := routes.Controllers{
		Dashboard:     controllers.NewDashboardController(state, logger),
		Organisations: controllers.NewOrganisationController(state, readModel, organisationService, logger),
		Projects:      controllers.NewProjectController(state, readModel, projectService, phaseService, logger),
		Tasks:         controllers.NewTaskController(state, taskService, logger),
		Approvals:     controllers.NewApprovalController(state, readModel, requestService, logger),
		Settings:      controllers.NewSettingsController(state, profileService, logger),
		Identity:      controllers.NewIdentityController(state, admin, profileService, m, logger),
	}

	// Setup HTTP server
	router := mux.NewRouter()
	routes.RegisterRoutes(router, handlers, verifier.Middleware(logger), m.Handler(), logger)

	server := &http.Server{Addr: conf.App.Addr, Handler: router}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdown); err != nil {
			logger.Errorf("shutdown: %v", err)
		}
	}()

	logger.Infof("Server is running on http://%s", conf.App.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error(err)
	}
}
