package editor

import (
	"net/http"
)

type Resolver struct {
	store           Store
	templateLoader  TemplateLoader
	reloadTemplates bool

	registry *RecordRegistry

	viewRenderer *Renderer

	// handlers
	baseHandler                 *BaseHandler
	recordsHandler              *RecordsHandler
	scheduleHandler             *ScheduleHandler
	gameConfigHandler           *GameConfigHandler
	auditLogHandler             *AuditLogHandler
	serverAdministrationHandler *ServerAdministrationHandler
	healthCheck                 *HealthCheck
}

func NewResolver(templateLoader TemplateLoader, reloadTemplates bool, store Store) (*Resolver, error) {
	r := &Resolver{
		templateLoader:  templateLoader,
		reloadTemplates: reloadTemplates,
		store:           store,
	}

	if err := r.initViewRenderer(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Resolver) initViewRenderer() error {
	if r.viewRenderer != nil {
		return nil
	}

	viewRenderer, err := NewRenderer(r.templateLoader, r.reloadTemplates)

	if err != nil {
		return err
	}

	r.viewRenderer = viewRenderer

	return nil
}

func (r *Resolver) ResolveStore() Store {
	return r.store
}

func (r *Resolver) resolveBaseHandler() *BaseHandler {
	if r.baseHandler != nil {
		return r.baseHandler
	}

	r.baseHandler = NewBaseHandler(r.viewRenderer)

	return r.baseHandler
}

func (r *Resolver) ResolveRecordRegistry() *RecordRegistry {
	if r.registry != nil {
		return r.registry
	}

	r.registry = NewRecordRegistry(r.ResolveStore())

	return r.registry
}

func (r *Resolver) resolveRecordsHandler() *RecordsHandler {
	if r.recordsHandler != nil {
		return r.recordsHandler
	}

	r.recordsHandler = NewRecordsHandler(r.resolveBaseHandler(), r.ResolveRecordRegistry())

	return r.recordsHandler
}

func (r *Resolver) resolveScheduleHandler() *ScheduleHandler {
	if r.scheduleHandler != nil {
		return r.scheduleHandler
	}

	r.scheduleHandler = NewScheduleHandler(r.resolveBaseHandler(), r.ResolveStore())

	return r.scheduleHandler
}

func (r *Resolver) ResolveGameConfigHandler() *GameConfigHandler {
	if r.gameConfigHandler != nil {
		return r.gameConfigHandler
	}

	r.gameConfigHandler = NewGameConfigHandler(r.resolveBaseHandler(), r.ResolveStore())

	return r.gameConfigHandler
}

func (r *Resolver) resolveAuditLogHandler() *AuditLogHandler {
	if r.auditLogHandler != nil {
		return r.auditLogHandler
	}

	r.auditLogHandler = NewAuditLogHandler(r.resolveBaseHandler(), r.ResolveStore())

	return r.auditLogHandler
}

func (r *Resolver) resolveServerAdministrationHandler() *ServerAdministrationHandler {
	if r.serverAdministrationHandler != nil {
		return r.serverAdministrationHandler
	}

	r.serverAdministrationHandler = NewServerAdministrationHandler(
		r.resolveBaseHandler(),
		r.ResolveStore(),
		r.ResolveRecordRegistry(),
	)

	return r.serverAdministrationHandler
}

func (r *Resolver) resolveHealthCheck() *HealthCheck {
	if r.healthCheck != nil {
		return r.healthCheck
	}

	r.healthCheck = NewHealthCheck(r.ResolveStore())

	return r.healthCheck
}

func (r *Resolver) ResolveRouter(fs http.FileSystem) http.Handler {
	return Router(
		fs,
		r.resolveRecordsHandler(),
		r.resolveScheduleHandler(),
		r.ResolveGameConfigHandler(),
		r.resolveAuditLogHandler(),
		r.resolveServerAdministrationHandler(),
		r.resolveHealthCheck(),
	)
}

type BaseHandler struct {
	viewRenderer *Renderer
}

func NewBaseHandler(viewRenderer *Renderer) *BaseHandler {
	return &BaseHandler{
		viewRenderer: viewRenderer,
	}
}
