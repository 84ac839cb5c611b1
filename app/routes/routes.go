package routes

import (
	"net/http"
	"time"

	"estate-go/app/controllers"

	"github.com/gorilla/mux"
	"github.com/labstack/gommon/log"
)

// Controllers groups the handlers served by the router.
type Controllers struct {
	Dashboard     *controllers.DashboardController
	Organisations *controllers.OrganisationController
	Projects      *controllers.ProjectController
	Tasks         *controllers.TaskController
	Approvals     *controllers.ApprovalController
	Settings      *controllers.SettingsController
	Identity      *controllers.IdentityController
}

// RegisterRoutes sets up all routes for the application. sessions attaches
// the caller's profile id; metrics is served as is on /metrics.
func RegisterRoutes(router *mux.Router, c Controllers, sessions mux.MiddlewareFunc, metrics http.Handler, logger *log.Logger) {
	router.Use(latency(logger), sessions)

	router.HandleFunc("/", c.Dashboard.Home).Methods(http.MethodGet)
	router.HandleFunc("/dashboard", c.Dashboard.Dashboard).Methods(http.MethodGet)

	router.HandleFunc("/organisations", c.Organisations.List).Methods(http.MethodGet)
	router.HandleFunc("/organisations", c.Organisations.Create).Methods(http.MethodPost)
	router.HandleFunc("/organisations/{orgID}", c.Organisations.Get).Methods(http.MethodGet)

	router.HandleFunc("/projects", c.Projects.List).Methods(http.MethodGet)
	router.HandleFunc("/projects", c.Projects.Create).Methods(http.MethodPost)
	router.HandleFunc("/projects/{projectID}", c.Projects.Get).Methods(http.MethodGet)
	router.HandleFunc("/projects/{projectID}", c.Projects.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/projects/{projectID}/status", c.Projects.UpdateStatus).Methods(http.MethodPut)
	router.HandleFunc("/projects/{projectID}/phases", c.Projects.AddPhase).Methods(http.MethodPost)

	router.HandleFunc("/tasks", c.Tasks.List).Methods(http.MethodGet)
	router.HandleFunc("/tasks", c.Tasks.Create).Methods(http.MethodPost)
	router.HandleFunc("/tasks/{taskID}/status", c.Tasks.UpdateStatus).Methods(http.MethodPut)

	router.HandleFunc("/approvals", c.Approvals.List).Methods(http.MethodGet)
	router.HandleFunc("/approvals/{requestID}/{decision}", c.Approvals.Decide).Methods(http.MethodPost)
	router.HandleFunc("/requests", c.Approvals.Submit).Methods(http.MethodPost)

	router.HandleFunc("/settings", c.Settings.Get).Methods(http.MethodGet)
	router.HandleFunc("/settings", c.Settings.Update).Methods(http.MethodPut)

	router.HandleFunc("/api/delete-user", c.Identity.DeleteUser).Methods(http.MethodPost)

	router.Handle("/metrics", metrics).Methods(http.MethodGet)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// latency logs every request and its response time.
func latency(logger *log.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			meth := r.Method
			path := r.URL
			BEGIN := time.Now()
			logger.Infof("< request @[%s] %s %s", BEGIN, meth, path)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			defer func() {
				END := time.Now()
				logger.Infof(
					"> response @[%s] status = %d (for request @[%s] %s %s) in %v",
					END, rec.status, BEGIN, meth, path, END.Sub(BEGIN),
				)
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
