package editor

import (
	"net/http"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

type AuditEntry struct {
	Method string
	URL    string
	Time   time.Time
}

var ignoredURLs = [3]string{
	"/audit-logs",
	"/logs",
	"/api/logs",
}

type AuditLogHandler struct {
	*BaseHandler

	store Store
}

func NewAuditLogHandler(baseHandler *BaseHandler, store Store) *AuditLogHandler {
	return &AuditLogHandler{
		BaseHandler: baseHandler,
		store:       store,
	}
}

// Middleware records every data-changing request before passing it on.
func (alh *AuditLogHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, url := range ignoredURLs {
			if url == r.URL.String() {
				next.ServeHTTP(w, r)
				return
			}
		}

		entry := &AuditEntry{
			Method: r.Method,
			URL:    r.URL.String(),
			Time:   time.Now(),
		}

		err := alh.store.AddAuditEntry(entry)

		if err != nil {
			logrus.WithError(err).Error("Couldn't add audit entry for request")
		}

		next.ServeHTTP(w, r)
	})
}

type auditLogTemplateVars struct {
	BaseTemplateVars

	AuditLogs []*AuditEntry
}

func (alh *AuditLogHandler) viewLogs(w http.ResponseWriter, r *http.Request) {
	auditLogs, err := alh.store.GetAuditEntries()

	if err != nil {
		logrus.WithError(err).Error("couldn't find audit logs")
		AddErrorFlash(w, r, "Couldn't open audit logs")
	}

	// sort to newest first
	sort.Slice(auditLogs, func(i, j int) bool {
		return auditLogs[i].Time.After(auditLogs[j].Time)
	})

	alh.viewRenderer.MustLoadTemplate(w, r, "audit-logs.html", &auditLogTemplateVars{
		AuditLogs: auditLogs,
	})
}
