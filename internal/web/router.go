package web

import (
	"database/sql"
	"net/http"

	webembed "github.com/erazemk/inventar/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(db *sql.DB, sessionSecret, adminUsername string, adminHash []byte) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:            db,
		Templates:     templates,
		SessionSecret: sessionSecret,
		AdminUsername: adminUsername,
		AdminHash:     adminHash,
	}

	mux := http.NewServeMux()
	cookieAuth := CookieAuthMiddleware(sessionSecret, db)

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("POST /logout", s.Logout)

	// Authenticated routes.
	mux.Handle("GET /{$}", cookieAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/items", http.StatusSeeOther)
	})))

	mux.Handle("GET /items", cookieAuth(http.HandlerFunc(s.ItemsPage)))
	mux.Handle("POST /items", cookieAuth(http.HandlerFunc(s.ItemCreateSubmit)))
	mux.Handle("GET /items/new", cookieAuth(http.HandlerFunc(s.ItemNewPage)))
	mux.Handle("GET /items/{id}", cookieAuth(http.HandlerFunc(s.ItemDetailPage)))
	mux.Handle("POST /items/{id}", cookieAuth(http.HandlerFunc(s.ItemUpdateSubmit)))
	mux.Handle("GET /items/{id}/edit", cookieAuth(http.HandlerFunc(s.ItemEditPage)))
	mux.Handle("POST /items/{id}/delete", cookieAuth(http.HandlerFunc(s.ItemDeleteSubmit)))
	mux.Handle("POST /items/{id}/photo", cookieAuth(http.HandlerFunc(s.ItemPhotoSubmit)))
	mux.Handle("GET /items/{id}/photo", cookieAuth(http.HandlerFunc(s.ItemPhotoGet)))

	mux.Handle("GET /reports/aging", cookieAuth(http.HandlerFunc(s.AgingPage)))

	return mux, nil
}
