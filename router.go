package editor

import (
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/cj123/sessions"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/sirupsen/logrus"
)

var (
	logOutput = newLogBuffer(MaxLogSizeBytes)

	logMultiWriter io.Writer

	Debug = os.Getenv("DEBUG") == "true"
)

func InitLogging() {
	if !Debug {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(logrus.DebugLevel)
	}

	logFile, err := os.OpenFile("editor.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)

	if err == nil {
		logMultiWriter = io.MultiWriter(os.Stdout, logOutput, logFile)
	} else {
		logrus.WithError(err).Errorf("Could not create editor log file")
		logMultiWriter = io.MultiWriter(os.Stdout, logOutput)
	}

	logrus.SetOutput(logMultiWriter)
}

func Router(
	fs http.FileSystem,
	recordsHandler *RecordsHandler,
	scheduleHandler *ScheduleHandler,
	gameConfigHandler *GameConfigHandler,
	auditLogHandler *AuditLogHandler,
	serverAdministrationHandler *ServerAdministrationHandler,
	healthCheck *HealthCheck,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(panicHandler)

	r.Handle("/metrics", prometheusMonitoringHandler())
	r.Handle("/healthcheck.json", healthCheck)

	if Debug {
		r.Mount("/debug/", middleware.Profiler())
	}

	// readers
	r.Group(func(r chi.Router) {
		r.Get("/", serverAdministrationHandler.home)
		r.Get("/logs", serverAdministrationHandler.logs)
		r.Get("/api/logs", serverAdministrationHandler.logsAPI)
		r.Get("/changelog", serverAdministrationHandler.changelog)

		r.Get("/records/{kind}", recordsHandler.list)
		r.Get("/schedule", scheduleHandler.view)
		r.Get("/settings", gameConfigHandler.edit)
		r.Get("/audit-logs", auditLogHandler.viewLogs)
	})

	// writers
	r.Group(func(r chi.Router) {
		if config.Editor.AuditLogging {
			r.Use(auditLogHandler.Middleware)
		}

		r.Get("/records/{kind}/new", recordsHandler.create)
		r.Get("/records/{kind}/edit/{recordID}", recordsHandler.edit)
		r.Post("/records/{kind}/edit/{recordID}", recordsHandler.edit)
		r.Get("/records/{kind}/delete/{recordID}", recordsHandler.delete)
		r.Post("/records/{kind}/delete/{recordID}", recordsHandler.delete)

		r.Post("/schedule", scheduleHandler.submit)
		r.Post("/settings/{sessionID}", gameConfigHandler.submit)
	})

	FileServer(r, "/static", fs)

	return prometheusMonitoringWrapper(r)
}

func FileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer does not permit URL parameters.")
	}

	fs := http.StripPrefix(path, http.FileServer(root))

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", http.StatusMovedPermanently).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, fs.ServeHTTP)
}

var sessionsStore sessions.Store

func getSession(r *http.Request) *sessions.Session {
	session, _ := sessionsStore.Get(r, "messages")

	return session
}

func getErrSession(r *http.Request) *sessions.Session {
	session, _ := sessionsStore.Get(r, "errors")

	return session
}

// Helper function to get message session and add a flash
func AddFlash(w http.ResponseWriter, r *http.Request, message string) {
	session := getSession(r)

	session.AddFlash(message)

	// gorilla sessions is dumb and errors weirdly
	_ = session.Save(r, w)
}

func AddErrorFlash(w http.ResponseWriter, r *http.Request, message string) {
	session := getErrSession(r)

	session.AddFlash(message)

	// gorilla sessions is dumb and errors weirdly
	_ = session.Save(r, w)
}
