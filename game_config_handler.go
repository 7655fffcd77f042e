package editor

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const gameConfigSessionTimeout = time.Hour

// gameConfigSession pins one loaded copy of the config document while it is
// being edited, so a submit applies to exactly the tree the form was built
// from.
type gameConfigSession struct {
	id      string
	doc     *Node
	created time.Time
}

// GameConfigHandler edits the schema-less game settings file. Unlike the
// fixed record kinds, it works over whatever keys the file happens to have.
type GameConfigHandler struct {
	*BaseHandler

	store Store

	sessions map[string]*gameConfigSession
	mutex    sync.Mutex
}

func NewGameConfigHandler(baseHandler *BaseHandler, store Store) *GameConfigHandler {
	return &GameConfigHandler{
		BaseHandler: baseHandler,
		store:       store,
		sessions:    make(map[string]*gameConfigSession),
	}
}

func (gh *GameConfigHandler) newSession(doc *Node) *gameConfigSession {
	gh.mutex.Lock()
	defer gh.mutex.Unlock()

	for id, session := range gh.sessions {
		if time.Since(session.created) > gameConfigSessionTimeout {
			delete(gh.sessions, id)
		}
	}

	session := &gameConfigSession{
		id:      uuid.New().String(),
		doc:     doc,
		created: time.Now(),
	}

	gh.sessions[session.id] = session

	return session
}

func (gh *GameConfigHandler) findSession(id string) *gameConfigSession {
	gh.mutex.Lock()
	defer gh.mutex.Unlock()

	session, ok := gh.sessions[id]

	if !ok || time.Since(session.created) > gameConfigSessionTimeout {
		return nil
	}

	return session
}

// InvalidateSessions throws away every open edit session. The data watcher
// calls this when the settings file changes on disk, so a stale form can't
// overwrite the newer contents.
func (gh *GameConfigHandler) InvalidateSessions() {
	gh.mutex.Lock()
	defer gh.mutex.Unlock()

	gh.sessions = make(map[string]*gameConfigSession)
}

type gameConfigCategory struct {
	Key   string
	Label string
}

type gameConfigTemplateVars struct {
	BaseTemplateVars

	SessionID  string
	Categories []gameConfigCategory
	Category   string
	Rows       []ConfigRow
}

// generalCategory collects the top level scalar keys of the document.
const generalCategory = "general"

func (gh *GameConfigHandler) categories(doc *Node) []gameConfigCategory {
	categories := []gameConfigCategory{{Key: generalCategory, Label: "General"}}

	for _, key := range doc.Keys {
		child := doc.Children[key]

		if child.Kind == ObjectNode || child.Kind == ArrayNode {
			categories = append(categories, gameConfigCategory{Key: key, Label: labelise(key)})
		}
	}

	return categories
}

func (gh *GameConfigHandler) rowsFor(doc *Node, category string) []ConfigRow {
	if category == generalCategory {
		var rows []ConfigRow

		for _, key := range doc.Keys {
			child := doc.Children[key]

			if child.Kind != ObjectNode && child.Kind != ArrayNode {
				rows = append(rows, child.fieldRow(key, key))
			}
		}

		return rows
	}

	child, ok := doc.Children[category]

	if !ok {
		return nil
	}

	return child.Rows(category)
}

func (gh *GameConfigHandler) edit(w http.ResponseWriter, r *http.Request) {
	doc, err := gh.store.LoadGameConfig()

	if err != nil {
		logrus.WithError(err).Error("couldn't load game config")
		AddErrorFlash(w, r, "Couldn't load the game settings file")
		doc = NewObjectNode()
	}

	session := gh.newSession(doc)

	category := r.URL.Query().Get("category")

	if category == "" {
		category = generalCategory
	}

	gh.viewRenderer.MustLoadTemplate(w, r, "settings.html", &gameConfigTemplateVars{
		BaseTemplateVars: BaseTemplateVars{
			WideContainer: true,
		},
		SessionID:  session.id,
		Categories: gh.categories(doc),
		Category:   category,
		Rows:       gh.rowsFor(doc, category),
	})
}

func (gh *GameConfigHandler) submit(w http.ResponseWriter, r *http.Request) {
	session := gh.findSession(chi.URLParam(r, "sessionID"))

	if session == nil {
		AddErrorFlash(w, r, "Your settings edit session expired, reload and try again")
		http.Redirect(w, r, "/settings", http.StatusFound)

		return
	}

	if err := r.ParseForm(); err != nil {
		AddErrorFlash(w, r, "Couldn't read the submitted settings")
		http.Redirect(w, r, "/settings", http.StatusFound)

		return
	}

	values := make(map[string]string, len(r.PostForm))

	for key := range r.PostForm {
		values[key] = r.PostForm.Get(key)
	}

	session.doc.Apply(values, "")

	if err := gh.store.SaveGameConfig(session.doc); err != nil {
		logrus.WithError(err).Error("couldn't save game config")
		AddErrorFlash(w, r, "Couldn't save the game settings file, try again")
	} else {
		AddFlash(w, r, "Settings saved")
	}

	category := r.PostForm.Get("category")

	if category == "" {
		category = generalCategory
	}

	http.Redirect(w, r, "/settings?category="+category, http.StatusFound)
}
