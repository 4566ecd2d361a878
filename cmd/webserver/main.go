package main

import (
	"encoding/gob"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"

	"mcqgenerator"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

const (
	minQuestions = 1
	maxQuestions = 20
)

type Server struct {
	store     *mcqgenerator.Store
	sessions  *sessions.CookieStore
	templates map[string]*template.Template
	generator *mcqgenerator.Generator
}

// QuizSession is the per-browser interaction state: which set the
// user is answering, their current selections, and the grade once
// submitted. Lives in the cookie session across render cycles.
type QuizSession struct {
	SetID     string   `json:"set_id"`
	Answers   []string `json:"answers"`
	Submitted bool     `json:"submitted"`
	Score     int      `json:"score"`
	Notice    string   `json:"notice"` // e.g. how many characters an upload yielded
}

func init() {
	gob.Register(QuizSession{})
}

func main() {
	mcqgenerator.SetVerbose(os.Getenv("VERBOSE") != "")

	var annotator mcqgenerator.Annotator = mcqgenerator.NewProseAnnotator()
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		log.Printf("Using LLM annotator")
		annotator = mcqgenerator.NewLLMAnnotator(apiKey)
	}

	store, err := mcqgenerator.OpenStore()
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "mcq-generator-dev-secret"
	}

	server := &Server{
		store:     store,
		sessions:  sessions.NewCookieStore([]byte(secret)),
		templates: loadTemplates(),
		generator: mcqgenerator.NewGenerator(annotator),
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8180"
	}

	log.Printf("Starting server on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, server.routes()))
}

// loadTemplates parses the page templates with custom functions.
func loadTemplates() map[string]*template.Template {
	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"index": func(slice []string, i int) string {
			if i < 0 || i >= len(slice) {
				return ""
			}
			return slice[i]
		},
	}

	templates := make(map[string]*template.Template)
	templateFiles := []struct {
		name string
		file string
	}{
		{"home", "templates/home.html"},
		{"quiz", "templates/quiz.html"},
	}
	for _, tmpl := range templateFiles {
		templates[tmpl.name] = template.Must(template.New(tmpl.name).Funcs(funcMap).ParseFiles("templates/base.html", tmpl.file))
	}
	return templates
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleHome).Methods("GET")
	r.HandleFunc("/generate", s.handleGenerate).Methods("POST")
	r.HandleFunc("/quiz/{id}", s.handleQuiz).Methods("GET")
	r.HandleFunc("/quiz/{id}/submit", s.handleSubmit).Methods("POST")
	return r
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	recent, err := s.store.ListSets(10)
	if err != nil {
		log.Printf("Failed to list question sets: %v", err)
		http.Error(w, "Failed to list question sets", http.StatusInternalServerError)
		return
	}

	err = s.templates["home"].ExecuteTemplate(w, "base.html", map[string]interface{}{
		"Recent": recent,
	})
	if err != nil {
		log.Printf("Template error in home: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	// 16 MB cap on uploads
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	text := r.FormValue("text")
	var notice string
	if file, header, err := r.FormFile("document"); err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			http.Error(w, "Failed to read upload", http.StatusBadRequest)
			return
		}
		text = mcqgenerator.ExtractText(header.Filename, data)
		notice = fmt.Sprintf("Extracted %d characters from %s", len(text), header.Filename)
		log.Print(notice)
	}

	numQuestions, err := strconv.Atoi(r.FormValue("num_questions"))
	if err != nil {
		numQuestions = 5
	}
	if numQuestions < minQuestions {
		numQuestions = minQuestions
	}
	if numQuestions > maxQuestions {
		numQuestions = maxQuestions
	}

	set, err := s.generator.Generate(r.Context(), mcqgenerator.GenerationRequest{
		Text:         text,
		NumQuestions: numQuestions,
	})
	if err != nil {
		log.Printf("Failed to generate questions: %v", err)
		http.Error(w, "Failed to generate questions", http.StatusInternalServerError)
		return
	}

	if err := s.store.SaveSet(set); err != nil {
		log.Printf("Failed to save question set: %v", err)
		http.Error(w, "Failed to save question set", http.StatusInternalServerError)
		return
	}

	// Fresh set, fresh answers
	session, _ := s.sessions.Get(r, "mcq-session")
	session.Values["quiz"] = QuizSession{
		SetID:   set.ID,
		Answers: make([]string, len(set.Questions)),
		Notice:  notice,
	}
	if err := session.Save(r, w); err != nil {
		log.Printf("Session save error: %v", err)
	}

	http.Redirect(w, r, "/quiz/"+set.ID, http.StatusSeeOther)
}

func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	setID := mux.Vars(r)["id"]

	set, err := s.store.GetSet(setID)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	quiz := s.quizSession(r, setID, len(set.Questions))

	err = s.templates["quiz"].ExecuteTemplate(w, "base.html", map[string]interface{}{
		"Set":       set,
		"Answers":   quiz.Answers,
		"Submitted": quiz.Submitted,
		"Score":     quiz.Score,
		"Total":     len(set.Questions),
		"Notice":    quiz.Notice,
	})
	if err != nil {
		log.Printf("Template error in quiz: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	setID := mux.Vars(r)["id"]

	set, err := s.store.GetSet(setID)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	quiz := s.quizSession(r, setID, len(set.Questions))
	for i := range set.Questions {
		if answer := r.FormValue(fmt.Sprintf("answer_%d", i)); answer != "" {
			quiz.Answers[i] = answer
		}
	}
	quiz.Score = mcqgenerator.ScoreResponses(set, quiz.Answers)
	quiz.Submitted = true

	session, _ := s.sessions.Get(r, "mcq-session")
	session.Values["quiz"] = quiz
	if err := session.Save(r, w); err != nil {
		log.Printf("Session save error: %v", err)
	}

	http.Redirect(w, r, "/quiz/"+setID, http.StatusSeeOther)
}

// quizSession returns the browser's interaction state for setID,
// starting a blank one when the cookie is missing or belongs to a
// different set.
func (s *Server) quizSession(r *http.Request, setID string, numQuestions int) QuizSession {
	session, _ := s.sessions.Get(r, "mcq-session")
	if stored, ok := session.Values["quiz"].(QuizSession); ok && stored.SetID == setID {
		if len(stored.Answers) == numQuestions {
			return stored
		}
	}
	return QuizSession{
		SetID:   setID,
		Answers: make([]string, numQuestions),
	}
}
