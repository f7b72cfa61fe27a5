package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/jsphweid/fretdex/fret"
	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/tablature"
	"github.com/jsphweid/fretdex/tuning"
	"github.com/jsphweid/fretdex/undo"
	"github.com/rs/cors"
)

var ErrUnknownProfile = errors.New("unknown profile")

// ProfileSource looks up stored profiles by name; db.Store is one.
type ProfileSource interface {
	GetProfile(name string) (model.ProfileRecord, bool, error)
}

// ResolveProfile checks the built-in templates first, then store (which may
// be nil). An empty name is the default template.
func ResolveProfile(store ProfileSource, name string) (*tablature.Tablature, error) {
	if name == "" {
		name = tablature.DefaultTemplate
	}
	if t, ok := tablature.Template(name); ok {
		return t, nil
	}
	if store == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProfile, name)
	}
	r, ok, err := store.GetProfile(name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProfile, name)
	}
	return tablature.FromRecord(r)
}

type Server struct {
	store  ProfileSource
	logger *slog.Logger

	validate *validator.Validate

	// guards assigner, which holds the fretting latch
	mu       sync.Mutex
	assigner *fret.Assigner
}

func New(store ProfileSource, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:    store,
		logger:   logger,
		validate: validator.New(),
		assigner: fret.NewAssigner(logger),
	}
}

func (s *Server) Router() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/fret", s.HandleFret).Methods("POST")
	router.HandleFunc("/profiles", s.HandleProfiles).Methods("GET")
	router.HandleFunc("/profiles/{name}", s.HandleProfile).Methods("GET")
	router.HandleFunc("/tuning", s.HandleTuning).Methods("POST")
	return cors.Default().Handler(router)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func optBody(o model.Opt) any {
	if !o.Valid {
		return nil
	}
	return o.Value
}

func changeBody(c fret.Change, index map[*model.Note]int) model.ChangeBody {
	b := model.ChangeBody{Note: index[c.Target()], Field: c.Field()}
	switch c := c.(type) {
	case fret.StringChange:
		b.From, b.To = optBody(c.From), optBody(c.To)
	case fret.FretChange:
		b.From, b.To = optBody(c.From), optBody(c.To)
	case fret.ConflictChange:
		b.From, b.To = c.From, c.To
	}
	return b
}

func (s *Server) tablatureFor(body model.FretRequestBody) (*tablature.Tablature, error) {
	if body.Tablature != nil {
		return tablature.FromRecord(*body.Tablature)
	}
	return ResolveProfile(s.store, body.Profile)
}

func (s *Server) HandleFret(w http.ResponseWriter, r *http.Request) {
	var body model.FretRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("could not decode request body: %w", err))
		return
	}
	if err := s.validate.Struct(body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	tab, err := s.tablatureFor(body)
	if errors.Is(err, ErrUnknownProfile) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var chord model.Chord
	index := make(map[*model.Note]int)
	for i, nb := range body.Notes {
		n := nb.ToNote()
		index[n] = i
		chord.Notes = append(chord.Notes, n)
	}

	log := undo.NewLog()
	s.mu.Lock()
	tx, res := log.FretChord(s.assigner, tab, chord)
	s.mu.Unlock()

	resp := model.FretResponse{Notes: make([]model.NoteBody, 0, len(chord.Notes)), Changes: make([]model.ChangeBody, 0)}
	for _, n := range chord.Notes {
		resp.Notes = append(resp.Notes, model.NoteToBody(n))
	}
	if tx != nil {
		resp.Transaction = tx.ID.String()
		for _, c := range tx.Changes {
			resp.Changes = append(resp.Changes, changeBody(c, index))
		}
	}
	s.logger.Debug("fretted chord", "notes", len(chord.Notes), "changes", res.Changes, "conflicts", res.Conflicts)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) HandleProfiles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, tablature.TemplateNames())
}

func (s *Server) HandleProfile(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	tab, err := ResolveProfile(s.store, name)
	if errors.Is(err, ErrUnknownProfile) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.logger.Error("profile lookup failed", "name", name, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, tab.Record(name))
}

func (s *Server) HandleTuning(w http.ResponseWriter, r *http.Request) {
	tab, err := tuning.ImportMusicXML(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, tab.Record(""))
}
